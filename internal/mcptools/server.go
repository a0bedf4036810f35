package mcptools

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/recera/mission-control/pkg/cockpit"
)

// New creates the cockpit MCP server with all tools registered.
//
// The returned cleanup function stops the navigation session and must be
// called on shutdown (typically via defer).
func New(p cockpit.Provider, version string, opts ...Option) (*server.MCPServer, func()) {
	s := server.NewMCPServer(
		"mission-control",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	// --- Query tools ---

	regions := NewRegionsTool(p)
	s.AddTool(regions.Definition(), regions.Handle)

	sector := NewSectorTool(p)
	s.AddTool(sector.Definition(), sector.Handle)

	department := NewDepartmentTool(p)
	s.AddTool(department.Definition(), department.Handle)

	agent := NewAgentTool(p)
	s.AddTool(agent.Definition(), agent.Handle)

	// --- Navigation tools ---

	nav := NewNavigation(p, opts...)

	navigate := NewNavigateTool(nav)
	s.AddTool(navigate.Definition(), navigate.Handle)

	crumbs := NewBreadcrumbsTool(nav)
	s.AddTool(crumbs.Definition(), crumbs.Handle)

	return s, nav.Close
}

const instructions = `Mission Control is a zoomable cockpit over an organization of
departments and agents. Use cockpit_regions for the overview and the
query tools for any detail. cockpit_navigate moves a shared zoom session
one level at a time; cockpit_breadcrumbs shows where it is.`
