package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/recera/mission-control/internal/views"
	"github.com/recera/mission-control/pkg/cockpit"
	"github.com/recera/mission-control/pkg/zoom"
)

// Style definitions
var (
	// Colors
	accentColor = lipgloss.Color("#81a1c1")
	greenColor  = lipgloss.Color("#a3be8c")
	yellowColor = lipgloss.Color("#ebcb8b")
	redColor    = lipgloss.Color("#bf616a")
	mutedColor  = lipgloss.Color("#4c566a")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#eceff4"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	crumbStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	currentCrumbStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1).
			MarginRight(1)

	sectionTitleStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(yellowColor)

	animatingStyle = lipgloss.NewStyle().Faint(true)
)

func healthDot(h cockpit.Health) string {
	switch h {
	case cockpit.HealthGreen:
		return lipgloss.NewStyle().Foreground(greenColor).Render("●")
	case cockpit.HealthYellow:
		return lipgloss.NewStyle().Foreground(yellowColor).Render("●")
	case cockpit.HealthRed:
		return lipgloss.NewStyle().Foreground(redColor).Render("●")
	}
	return " "
}

func trendArrow(t cockpit.Trend) string {
	switch t {
	case cockpit.TrendUp:
		return " ▲"
	case cockpit.TrendDown:
		return " ▼"
	}
	return ""
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if crumbs := m.renderCrumbs(); crumbs != "" {
		b.WriteString(crumbs)
		b.WriteString("\n\n")
	}

	body := m.renderBody()
	if !m.snap.Presentation.Settled {
		body = animatingStyle.Render(body)
	}
	b.WriteString(body)

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(level(m.snap.State) + " " + string(m.snap.Presentation.Phase)))
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderCrumbs() string {
	var parts []string
	for _, c := range m.snap.Breadcrumbs {
		switch {
		case c.Ellipsis:
			parts = append(parts, crumbStyle.Render("…"))
		case c.Current:
			parts = append(parts, currentCrumbStyle.Render(c.Entry.Label))
		default:
			parts = append(parts, crumbStyle.Render(fmt.Sprintf("%d %s", c.Index+1, c.Entry.Label)))
		}
	}
	return strings.Join(parts, crumbStyle.Render(" / "))
}

func (m Model) renderBody() string {
	scr := m.screen

	var b strings.Builder
	b.WriteString(healthDot(scr.Health))
	b.WriteString(" ")
	b.WriteString(titleStyle.Render(scr.Title))
	if m.snap.State.Transitioning {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
	}
	if scr.Subtitle != "" {
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render(scr.Subtitle))
	}
	b.WriteString("\n\n")

	if len(scr.Summary) > 0 {
		b.WriteString(renderSections(scr.Summary, m.width))
		b.WriteString("\n")
	}

	if len(scr.Details) > 0 {
		if m.snap.Revealed {
			b.WriteString(renderSections(scr.Details, m.width))
		} else {
			b.WriteString(mutedStyle.Render("loading details…"))
		}
		b.WriteString("\n")
	}

	if len(scr.Targets) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderTargets())
	}
	return b.String()
}

func renderSections(sections []views.Section, width int) string {
	boxes := make([]string, 0, len(sections))
	for _, s := range sections {
		lines := []string{sectionTitleStyle.Render(s.Title)}
		for _, r := range s.Rows {
			line := r.Label
			if r.Value != "" {
				line += ": " + r.Value + trendArrow(r.Trend)
			}
			if r.Health != "" {
				line = healthDot(r.Health) + " " + line
			}
			lines = append(lines, line)
		}
		boxes = append(boxes, sectionStyle.Render(strings.Join(lines, "\n")))
	}

	// Lay boxes out in rows that fit the terminal
	var rows []string
	var row []string
	used := 0
	for _, box := range boxes {
		w := lipgloss.Width(box)
		if width > 0 && used+w > width && len(row) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, box)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderTargets() string {
	var lines []string
	for i, t := range m.screen.Targets {
		cursor := "  "
		label := t.Label
		if i == m.selected {
			cursor = selectedStyle.Render("> ")
			label = selectedStyle.Render(label)
		}
		line := cursor + healthDot(t.Health) + " " + label
		if t.Detail != "" {
			line += mutedStyle.Render("  " + t.Detail)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// level reports the current zoom level for the status line
func level(s zoom.State) string {
	return fmt.Sprintf("L%d", s.CurrentLevel)
}
