// Package views resolves the navigation state into the screen shown at
// each zoom level, and renders screens as vnode trees.
package views

import (
	"fmt"
	"strconv"

	"github.com/recera/mission-control/pkg/cockpit"
	"github.com/recera/mission-control/pkg/zoom"
)

// Kind identifies a screen layout
type Kind string

const (
	KindGlobal      Kind = "global"
	KindSector      Kind = "sector"
	KindDepartment  Kind = "department"
	KindAgent       Kind = "agent"
	KindPlaceholder Kind = "placeholder"
)

// Target types understood by the detail screens
const (
	TargetDepartment = "department"
	TargetAgent      = "agent"
)

// Row is one labelled line of a section
type Row struct {
	Label  string         `json:"label"`
	Value  string         `json:"value,omitempty"`
	Health cockpit.Health `json:"health,omitempty"`
	Trend  cockpit.Trend  `json:"trend,omitempty"`
}

// Section groups rows under a heading
type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Target is something the user can zoom into from a screen
type Target struct {
	Label      string         `json:"label"`
	Detail     string         `json:"detail,omitempty"`
	Health     cockpit.Health `json:"health,omitempty"`
	Sector     string         `json:"sector"`
	TargetID   string         `json:"targetId,omitempty"`
	TargetType string         `json:"targetType,omitempty"`

	// Size is the layout size of a region tile on the global view
	Size cockpit.SizeClass `json:"size,omitempty"`

	// Element targets skip intermediate levels with JumpToElement
	Element bool `json:"element,omitempty"`
}

// Apply performs the zoom for t on c
func (t Target) Apply(c *zoom.Controller) zoom.Result {
	if t.Element {
		return c.JumpToElement(t.Sector, t.TargetID, t.TargetType, t.Label)
	}
	return c.EnterSector(t.Sector, t.TargetID, t.TargetType, t.Label)
}

// Screen is the content of one zoom level
type Screen struct {
	Kind     Kind           `json:"kind"`
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle,omitempty"`
	Health   cockpit.Health `json:"health,omitempty"`

	// Summary is shown at once; Details wait for the reveal
	Summary []Section `json:"summary,omitempty"`
	Details []Section `json:"details,omitempty"`
	Targets []Target  `json:"targets,omitempty"`
}

// Resolve picks the screen for s. Missing data resolves to a placeholder
// rather than an error.
func Resolve(s zoom.State, p cockpit.Provider) Screen {
	top := s.Top()
	switch {
	case s.CurrentLevel <= zoom.RootLevel:
		return global(p)
	case top.TargetType == TargetAgent:
		if a, ok := p.AgentDetail(top.TargetID); ok {
			return agent(a)
		}
	case top.TargetType == TargetDepartment:
		if d, ok := p.DepartmentDetail(top.TargetID); ok {
			return department(d)
		}
	case top.TargetID == "":
		return sector(cockpit.Sector(top.Sector), p)
	}
	return placeholder(top)
}

func global(p cockpit.Provider) Screen {
	scr := Screen{Kind: KindGlobal, Title: zoom.RootLabel}

	for _, r := range p.RegionSummaries() {
		scr.Targets = append(scr.Targets, Target{
			Label:  string(r.Sector),
			Detail: r.DisplayLabel + " · " + r.HeadlineKPI,
			Health: r.Health,
			Sector: string(r.Sector),
			Size:   r.Sector.Size(),
		})
		sec := Section{Title: r.DisplayLabel}
		for _, st := range r.Stats {
			sec.Rows = append(sec.Rows, Row{Label: st.Label, Value: st.Value})
		}
		if r.AttentionCount > 0 {
			sec.Rows = append(sec.Rows, Row{Label: "Attention", Value: strconv.Itoa(r.AttentionCount), Health: r.Health})
		}
		scr.Summary = append(scr.Summary, sec)
	}

	for _, d := range p.DepartmentTiles() {
		scr.Targets = append(scr.Targets, Target{
			Label:      d.Name,
			Detail:     fmt.Sprintf("%d open · %d risks · %d people", d.OpenItems, d.Risks, d.Headcount),
			Health:     d.Health,
			Sector:     string(cockpit.SectorOrganization),
			TargetID:   d.ID,
			TargetType: TargetDepartment,
			Element:    true,
		})
	}

	business := Section{Title: "Business Window"}
	for _, k := range p.BusinessWindowKPIs() {
		business.Rows = append(business.Rows, Row{Label: k.Label, Value: k.Value, Trend: k.Trend})
	}
	for _, b := range p.BusinessCategoryTiles() {
		business.Rows = append(business.Rows, Row{Label: b.Label, Value: b.SummaryStat, Health: b.Health})
	}
	scr.Summary = append(scr.Summary, business)

	bar := p.FinanceSettingsBar()
	scr.Summary = append(scr.Summary, Section{
		Title: bar.Label,
		Rows:  []Row{{Label: "Quick stats", Value: bar.QuickStats}},
	})
	return scr
}

func sector(s cockpit.Sector, p cockpit.Provider) Screen {
	content, ok := p.SectorContent(s)
	if !ok {
		scr := placeholder(zoom.StackEntry{Sector: string(s), Label: s.Label()})
		if r, ok := p.RegionSummary(s); ok {
			scr.Health = r.Health
			scr.Subtitle = r.HeadlineKPI
		}
		return scr
	}

	scr := Screen{
		Kind:     KindSector,
		Title:    content.Header.Label,
		Subtitle: content.Header.Subtitle,
		Health:   content.Header.Health,
	}

	cards := Section{Title: "Summary"}
	for _, c := range content.SummaryCards {
		cards.Rows = append(cards.Rows, Row{Label: c.Label, Value: joinDetail(c.Value, c.Detail)})
	}
	scr.Summary = append(scr.Summary, cards)

	if len(content.SectorActions) > 0 {
		actions := Section{Title: "Actions"}
		for _, a := range content.SectorActions {
			actions.Rows = append(actions.Rows, Row{Label: a.Label, Value: a.ActionType})
		}
		scr.Details = append(scr.Details, actions)
	}

	for _, a := range content.SubAreas {
		scr.Targets = append(scr.Targets, Target{
			Label:      a.Label,
			Detail:     a.Summary,
			Health:     a.Health,
			Sector:     string(s),
			TargetID:   a.ID,
			TargetType: a.Type,
		})
	}
	return scr
}

func department(d cockpit.DepartmentDetail) Screen {
	scr := Screen{
		Kind:     KindDepartment,
		Title:    d.Name,
		Subtitle: d.HealthDetail,
		Health:   d.Health,
	}

	scr.Summary = append(scr.Summary, Section{
		Title: "Overview",
		Rows: []Row{
			{Label: "Chief", Value: d.ChiefName},
			{Label: "Headcount", Value: strconv.Itoa(d.Headcount)},
			{Label: "Active blockers", Value: strconv.Itoa(d.ActiveBlockers)},
			{Label: "Open tasks", Value: strconv.Itoa(d.OpenTasks)},
			{Label: "Completed tasks", Value: strconv.Itoa(d.CompletedTasks)},
		},
	})

	metrics := Section{Title: "Key Metrics"}
	for _, m := range d.KeyMetrics {
		metrics.Rows = append(metrics.Rows, Row{Label: m.Label, Value: m.Value, Trend: m.Trend})
	}
	pulses := Section{Title: "Recent Pulses"}
	for _, p := range d.RecentPulses {
		pulses.Rows = append(pulses.Rows, Row{
			Label: p.AgentName,
			Value: fmt.Sprintf("%s · %d actions", p.Status, p.ActionCount),
		})
	}
	scr.Details = append(scr.Details, metrics, pulses)

	for _, a := range d.Agents {
		scr.Targets = append(scr.Targets, Target{
			Label:      a.Name,
			Detail:     fmt.Sprintf("%s · tier %d · %d tasks", a.Role, a.Tier, a.ActiveTasks),
			Health:     a.Health,
			Sector:     string(cockpit.SectorOrganization),
			TargetID:   a.ID,
			TargetType: TargetAgent,
		})
	}
	return scr
}

func agent(a cockpit.AgentDetail) Screen {
	scr := Screen{
		Kind:     KindAgent,
		Title:    a.Name,
		Subtitle: a.Role,
		Health:   a.Health,
	}

	overview := Section{Title: "Overview", Rows: []Row{
		{Label: "Status", Value: a.Status},
		{Label: "Tier", Value: strconv.Itoa(a.Tier)},
		{Label: "Autonomy", Value: a.AutonomyLevel},
		{Label: "Active tasks", Value: strconv.Itoa(a.ActiveTasks)},
		{Label: "Inbox", Value: strconv.Itoa(a.Inbox)},
		{Label: "Last pulse", Value: a.LastPulse},
	}}
	if a.ReportsToName != "" {
		overview.Rows = append(overview.Rows, Row{Label: "Reports to", Value: a.ReportsToName})
	}
	scr.Summary = append(scr.Summary, overview)

	scr.Details = append(scr.Details, Section{
		Title: "Mandate",
		Rows:  []Row{{Label: a.Mandate}},
	})
	if len(a.PerformanceSignals) > 0 {
		signals := Section{Title: "Performance"}
		for _, s := range a.PerformanceSignals {
			signals.Rows = append(signals.Rows, Row{Label: s.Label, Value: s.Value, Trend: s.Trend})
		}
		scr.Details = append(scr.Details, signals)
	}
	return scr
}

func placeholder(top zoom.StackEntry) Screen {
	title := top.Label
	if title == "" {
		title = top.Sector
	}
	return Screen{
		Kind:     KindPlaceholder,
		Title:    title,
		Subtitle: "This view is not available yet.",
	}
}

func joinDetail(value, detail string) string {
	if detail == "" {
		return value
	}
	return value + " (" + detail + ")"
}
