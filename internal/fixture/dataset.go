// Package fixture serves the cockpit data contract from a YAML dataset.
package fixture

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/recera/mission-control/pkg/cockpit"
)

//go:embed default.yaml
var defaultDataset []byte

// Dataset is the on-disk shape of a fixture file
type Dataset struct {
	RegionSummaries       []cockpit.RegionSummary                  `yaml:"regionSummaries"`
	DepartmentTiles       []cockpit.DepartmentTile                 `yaml:"departmentTiles"`
	BusinessCategoryTiles []cockpit.BusinessCategoryTile           `yaml:"businessCategoryTiles"`
	FinanceSettingsBar    cockpit.FinanceSettingsBar               `yaml:"financeSettingsBar"`
	BusinessWindowKPIs    []cockpit.Metric                         `yaml:"businessWindowKpis"`
	SectorContent         map[cockpit.Sector]cockpit.SectorContent `yaml:"sectorContent"`
	Agents                []cockpit.AgentSummary                   `yaml:"agents"`
	AgentDetails          map[string]cockpit.AgentExtension        `yaml:"agentDetails"`
	Pulses                map[string][]cockpit.Pulse               `yaml:"pulses"`
	DepartmentDetails     map[string]cockpit.DepartmentDetail      `yaml:"departmentDetails"`
}

// Default returns the embedded dataset
func Default() (*Dataset, error) {
	return Parse(defaultDataset)
}

// Load reads and validates the fixture at path
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes and validates a fixture document
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Marshal encodes the dataset back to YAML
func (d *Dataset) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Validate checks referential integrity
func (d *Dataset) Validate() error {
	var errs []error

	seenSectors := make(map[cockpit.Sector]bool)
	for _, r := range d.RegionSummaries {
		if !r.Sector.Valid() {
			errs = append(errs, fmt.Errorf("region summary: unknown sector %q", r.Sector))
		}
		if seenSectors[r.Sector] {
			errs = append(errs, fmt.Errorf("region summary: duplicate sector %q", r.Sector))
		}
		seenSectors[r.Sector] = true
	}

	for sector := range d.SectorContent {
		if !sector.Valid() {
			errs = append(errs, fmt.Errorf("sector content: unknown sector %q", sector))
		}
	}

	departments := make(map[string]bool)
	for _, t := range d.DepartmentTiles {
		if t.ID == "" {
			errs = append(errs, errors.New("department tile: missing id"))
			continue
		}
		if departments[t.ID] {
			errs = append(errs, fmt.Errorf("department tile: duplicate id %q", t.ID))
		}
		departments[t.ID] = true
	}
	for id, dd := range d.DepartmentDetails {
		if dd.ID != "" && dd.ID != id {
			errs = append(errs, fmt.Errorf("department detail %q: id mismatch %q", id, dd.ID))
		}
		departments[id] = true
	}

	agents := make(map[string]bool)
	for _, a := range d.Agents {
		if a.ID == "" {
			errs = append(errs, errors.New("agent: missing id"))
			continue
		}
		if agents[a.ID] {
			errs = append(errs, fmt.Errorf("agent: duplicate id %q", a.ID))
		}
		agents[a.ID] = true
		if a.DepartmentID != "" && !departments[a.DepartmentID] {
			errs = append(errs, fmt.Errorf("agent %q: unknown department %q", a.ID, a.DepartmentID))
		}
	}

	for id, ext := range d.AgentDetails {
		if !agents[id] {
			errs = append(errs, fmt.Errorf("agent detail: unknown agent %q", id))
		}
		if ext.ReportsTo != "" && !agents[ext.ReportsTo] {
			errs = append(errs, fmt.Errorf("agent detail %q: reports to unknown agent %q", id, ext.ReportsTo))
		}
	}

	for dept, pulses := range d.Pulses {
		if !departments[dept] {
			errs = append(errs, fmt.Errorf("pulses: unknown department %q", dept))
		}
		for _, p := range pulses {
			if !agents[p.AgentID] {
				errs = append(errs, fmt.Errorf("pulse %q: unknown agent %q", p.ID, p.AgentID))
			}
		}
	}

	return errors.Join(errs...)
}
