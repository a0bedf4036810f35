package fixture

import (
	"slices"
	"sync/atomic"

	"github.com/recera/mission-control/pkg/cockpit"
)

// Provider implements cockpit.Provider over a Dataset. The dataset can be
// swapped while queries run; each query sees one dataset throughout.
type Provider struct {
	data atomic.Pointer[Dataset]
}

var _ cockpit.Provider = (*Provider)(nil)

// NewProvider serves ds
func NewProvider(ds *Dataset) *Provider {
	p := &Provider{}
	p.data.Store(ds)
	return p
}

// Swap replaces the served dataset
func (p *Provider) Swap(ds *Dataset) {
	p.data.Store(ds)
}

// Dataset returns the served dataset
func (p *Provider) Dataset() *Dataset {
	return p.data.Load()
}

func (p *Provider) RegionSummaries() []cockpit.RegionSummary {
	return slices.Clone(p.data.Load().RegionSummaries)
}

func (p *Provider) RegionSummary(sector cockpit.Sector) (cockpit.RegionSummary, bool) {
	for _, r := range p.data.Load().RegionSummaries {
		if r.Sector == sector {
			return r, true
		}
	}
	return cockpit.RegionSummary{}, false
}

func (p *Provider) DepartmentTiles() []cockpit.DepartmentTile {
	return slices.Clone(p.data.Load().DepartmentTiles)
}

func (p *Provider) BusinessCategoryTiles() []cockpit.BusinessCategoryTile {
	return slices.Clone(p.data.Load().BusinessCategoryTiles)
}

func (p *Provider) FinanceSettingsBar() cockpit.FinanceSettingsBar {
	return p.data.Load().FinanceSettingsBar
}

func (p *Provider) BusinessWindowKPIs() []cockpit.Metric {
	return slices.Clone(p.data.Load().BusinessWindowKPIs)
}

func (p *Provider) SectorContent(sector cockpit.Sector) (cockpit.SectorContent, bool) {
	c, ok := p.data.Load().SectorContent[sector]
	if !ok {
		return cockpit.SectorContent{}, false
	}
	c.SummaryCards = slices.Clone(c.SummaryCards)
	for i := range c.SummaryCards {
		c.SummaryCards[i].ChartData = slices.Clone(c.SummaryCards[i].ChartData)
	}
	c.SubAreas = slices.Clone(c.SubAreas)
	c.SectorActions = slices.Clone(c.SectorActions)
	return c, true
}

// DepartmentDetail assembles the department with its roster and pulses
func (p *Provider) DepartmentDetail(id string) (cockpit.DepartmentDetail, bool) {
	ds := p.data.Load()
	d, ok := ds.DepartmentDetails[id]
	if !ok {
		return cockpit.DepartmentDetail{}, false
	}
	if d.ID == "" {
		d.ID = id
	}
	d.Agents = agentsIn(ds, id, nil)
	d.RecentPulses = slices.Clone(ds.Pulses[id])
	if d.RecentPulses == nil {
		d.RecentPulses = []cockpit.Pulse{}
	}
	d.KeyMetrics = slices.Clone(d.KeyMetrics)
	return d, true
}

func (p *Provider) AgentsByDepartment(departmentID string, tier *int) []cockpit.AgentSummary {
	return agentsIn(p.data.Load(), departmentID, tier)
}

// AgentDetail merges the agent with its extension, falling back to the
// default extension
func (p *Provider) AgentDetail(id string) (cockpit.AgentDetail, bool) {
	ds := p.data.Load()
	i := slices.IndexFunc(ds.Agents, func(a cockpit.AgentSummary) bool { return a.ID == id })
	if i < 0 {
		return cockpit.AgentDetail{}, false
	}

	ext, ok := ds.AgentDetails[id]
	if !ok {
		ext = cockpit.DefaultAgentExtension()
	}
	ext.PerformanceSignals = slices.Clone(ext.PerformanceSignals)
	return cockpit.AgentDetail{AgentSummary: ds.Agents[i], AgentExtension: ext}, true
}

func (p *Provider) AllAgents() []cockpit.AgentSummary {
	return slices.Clone(p.data.Load().Agents)
}

func agentsIn(ds *Dataset, departmentID string, tier *int) []cockpit.AgentSummary {
	out := []cockpit.AgentSummary{}
	for _, a := range ds.Agents {
		if a.DepartmentID != departmentID {
			continue
		}
		if tier != nil && a.Tier != *tier {
			continue
		}
		out = append(out, a)
	}
	return out
}
