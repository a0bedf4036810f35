package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/recera/mission-control/pkg/cockpit"
)

// RegionsTool handles the cockpit_regions MCP tool.
type RegionsTool struct {
	provider cockpit.Provider
}

// NewRegionsTool creates a RegionsTool.
func NewRegionsTool(p cockpit.Provider) *RegionsTool {
	return &RegionsTool{provider: p}
}

// Definition returns the MCP tool definition for cockpit_regions.
func (t *RegionsTool) Definition() mcp.Tool {
	return mcp.NewTool("cockpit_regions",
		mcp.WithDescription(
			"List the six cockpit regions with health, attention count and headline KPI. "+
				"Start here to see the whole organization at a glance.",
		),
		mcp.WithBoolean("include_departments",
			mcp.Description("Also list the department tiles of the Organization region (default: false)"),
		),
	)
}

// Handle processes the cockpit_regions tool call.
func (t *RegionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	b.WriteString("## Regions\n\n")
	for _, r := range t.provider.RegionSummaries() {
		fmt.Fprintf(&b, "- **%s** (%s): %s, %d need attention, %s\n",
			r.Sector, r.DisplayLabel, r.Health, r.AttentionCount, r.HeadlineKPI)
	}

	writeMetrics(&b, "Business Window", t.provider.BusinessWindowKPIs())

	if boolArg(req, "include_departments", false) {
		b.WriteString("\n### Departments\n\n")
		for _, d := range t.provider.DepartmentTiles() {
			fmt.Fprintf(&b, "- **%s** `%s`: %s, %d open, %d risks, %d people\n",
				d.Name, d.ID, d.Health, d.OpenItems, d.Risks, d.Headcount)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

// SectorTool handles the cockpit_sector MCP tool.
type SectorTool struct {
	provider cockpit.Provider
}

// NewSectorTool creates a SectorTool.
func NewSectorTool(p cockpit.Provider) *SectorTool {
	return &SectorTool{provider: p}
}

// Definition returns the MCP tool definition for cockpit_sector.
func (t *SectorTool) Definition() mcp.Tool {
	return mcp.NewTool("cockpit_sector",
		mcp.WithDescription("Show one region: header, summary cards, drillable sub-areas and actions."),
		mcp.WithString("sector",
			mcp.Required(),
			mcp.Description("Region to show"),
			mcp.Enum(sectorNames()...),
		),
	)
}

// Handle processes the cockpit_sector tool call.
func (t *SectorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sector := cockpit.Sector(strings.ToUpper(req.GetString("sector", "")))
	if !sector.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown sector %q", sector)), nil
	}

	content, ok := t.provider.SectorContent(sector)
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("## %s\n\nNo detail is available for this region yet.\n", sector.Label())), nil
	}

	var b strings.Builder
	h := content.Header
	fmt.Fprintf(&b, "## %s\n\n%s\n\n**Health**: %s", h.Label, h.Subtitle, h.Health)
	if h.HealthDetail != "" {
		fmt.Fprintf(&b, " (%s)", h.HealthDetail)
	}
	b.WriteString("\n")

	if len(content.SummaryCards) > 0 {
		b.WriteString("\n### Summary\n\n")
		for _, c := range content.SummaryCards {
			fmt.Fprintf(&b, "- %s: %s", c.Label, c.Value)
			if c.Detail != "" {
				fmt.Fprintf(&b, " (%s)", c.Detail)
			}
			b.WriteString("\n")
		}
	}

	if len(content.SubAreas) > 0 {
		b.WriteString("\n### Sub-areas\n\n")
		for _, a := range content.SubAreas {
			fmt.Fprintf(&b, "- **%s** `%s` [%s]: %s, %s\n", a.Label, a.ID, a.Type, a.Health, a.Summary)
		}
	}

	if len(content.SectorActions) > 0 {
		b.WriteString("\n### Actions\n\n")
		for _, a := range content.SectorActions {
			confirm := ""
			if a.RequiresConfirmation {
				confirm = " (requires confirmation)"
			}
			fmt.Fprintf(&b, "- %s%s\n", a.Label, confirm)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

// DepartmentTool handles the cockpit_department MCP tool.
type DepartmentTool struct {
	provider cockpit.Provider
}

// NewDepartmentTool creates a DepartmentTool.
func NewDepartmentTool(p cockpit.Provider) *DepartmentTool {
	return &DepartmentTool{provider: p}
}

// Definition returns the MCP tool definition for cockpit_department.
func (t *DepartmentTool) Definition() mcp.Tool {
	return mcp.NewTool("cockpit_department",
		mcp.WithDescription("Show a department with its key metrics, agent roster and recent pulses."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Department id, e.g. dept-eng"),
		),
		mcp.WithNumber("tier",
			mcp.Description("Only list agents of this tier"),
		),
	)
}

// Handle processes the cockpit_department tool call.
func (t *DepartmentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	d, ok := t.provider.DepartmentDetail(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("department %q not found", id)), nil
	}

	agents := d.Agents
	if hasArg(req, "tier") {
		agents = t.provider.AgentsByDepartment(id, cockpit.Tier(intArg(req, "tier", 0)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n**Health**: %s", d.Name, d.Health)
	if d.HealthDetail != "" {
		fmt.Fprintf(&b, " (%s)", d.HealthDetail)
	}
	b.WriteString("\n")
	if d.ChiefName != "" {
		fmt.Fprintf(&b, "**Chief**: %s\n", d.ChiefName)
	}
	fmt.Fprintf(&b, "**Headcount**: %d, **Open tasks**: %d, **Blockers**: %d\n", d.Headcount, d.OpenTasks, d.ActiveBlockers)

	writeMetrics(&b, "Key Metrics", d.KeyMetrics)

	fmt.Fprintf(&b, "\n### Agents (%d)\n\n", len(agents))
	for _, a := range agents {
		fmt.Fprintf(&b, "- **%s** `%s`: %s, tier %d, %s, %d active tasks\n", a.Name, a.ID, a.Role, a.Tier, a.Status, a.ActiveTasks)
	}

	if len(d.RecentPulses) > 0 {
		b.WriteString("\n### Recent Pulses\n\n")
		for _, p := range d.RecentPulses {
			fmt.Fprintf(&b, "- %s at %s: %s, %d actions\n", p.AgentName, p.CompletedAt, p.Status, p.ActionCount)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

// AgentTool handles the cockpit_agent MCP tool.
type AgentTool struct {
	provider cockpit.Provider
}

// NewAgentTool creates an AgentTool.
func NewAgentTool(p cockpit.Provider) *AgentTool {
	return &AgentTool{provider: p}
}

// Definition returns the MCP tool definition for cockpit_agent.
func (t *AgentTool) Definition() mcp.Tool {
	return mcp.NewTool("cockpit_agent",
		mcp.WithDescription("Show an agent's mandate, autonomy, reporting line and performance signals."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Agent id, e.g. agent-cto"),
		),
	)
}

// Handle processes the cockpit_agent tool call.
func (t *AgentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	a, ok := t.provider.AgentDetail(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("agent %q not found", id)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", a.Name)
	fmt.Fprintf(&b, "- **Role**: %s (tier %d)\n", a.Role, a.Tier)
	fmt.Fprintf(&b, "- **Status**: %s, health %s\n", a.Status, a.Health)
	fmt.Fprintf(&b, "- **Department**: %s\n", a.DepartmentID)
	if a.ReportsToName != "" {
		fmt.Fprintf(&b, "- **Reports to**: %s\n", a.ReportsToName)
	}
	fmt.Fprintf(&b, "- **Autonomy**: %s\n", a.AutonomyLevel)
	fmt.Fprintf(&b, "- **Inbox**: %d, **Active tasks**: %d\n", a.Inbox, a.ActiveTasks)
	fmt.Fprintf(&b, "\n### Mandate\n\n%s\n", a.Mandate)

	writeMetrics(&b, "Performance", a.PerformanceSignals)

	return mcp.NewToolResultText(b.String()), nil
}
