// Package mcptools provides MCP tool handlers for the cockpit.
//
// Each tool follows the same shape:
// - A struct with its dependencies injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Query tools read the cockpit.Provider directly. Navigation tools share
// one Navigation, the MCP client's own zoom session.
package mcptools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/recera/mission-control/internal/views"
	"github.com/recera/mission-control/pkg/cockpit"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// hasArg reports whether key was passed at all
func hasArg(req mcp.CallToolRequest, key string) bool {
	_, ok := req.GetArguments()[key]
	return ok
}

func sectorNames() []string {
	names := make([]string, len(cockpit.Sectors))
	for i, s := range cockpit.Sectors {
		names[i] = string(s)
	}
	return names
}

func trendMark(t cockpit.Trend) string {
	switch t {
	case cockpit.TrendUp:
		return " ↑"
	case cockpit.TrendDown:
		return " ↓"
	}
	return ""
}

func writeMetrics(b *strings.Builder, title string, metrics []cockpit.Metric) {
	if len(metrics) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, m := range metrics {
		fmt.Fprintf(b, "- %s: %s%s\n", m.Label, m.Value, trendMark(m.Trend))
	}
}

// writeScreen renders a resolved view as markdown, listing the targets
// a client may navigate to next
func writeScreen(b *strings.Builder, scr views.Screen) {
	fmt.Fprintf(b, "## %s\n", scr.Title)
	if scr.Subtitle != "" {
		fmt.Fprintf(b, "\n%s\n", scr.Subtitle)
	}
	if scr.Health != "" {
		fmt.Fprintf(b, "\n**Health**: %s\n", scr.Health)
	}

	for _, sec := range append(append([]views.Section{}, scr.Summary...), scr.Details...) {
		fmt.Fprintf(b, "\n### %s\n\n", sec.Title)
		for _, r := range sec.Rows {
			if r.Value == "" {
				fmt.Fprintf(b, "- %s\n", r.Label)
				continue
			}
			fmt.Fprintf(b, "- %s: %s%s\n", r.Label, r.Value, trendMark(r.Trend))
		}
	}

	if len(scr.Targets) == 0 {
		return
	}
	b.WriteString("\n### Targets\n\n")
	for _, t := range scr.Targets {
		op := "enter"
		if t.Element {
			op = "element"
		}
		fmt.Fprintf(b, "- %s (op=%s, sector=%s", t.Label, op, t.Sector)
		if t.TargetID != "" {
			fmt.Fprintf(b, ", id=%s, type=%s", t.TargetID, t.TargetType)
		}
		b.WriteString(")\n")
	}
}
