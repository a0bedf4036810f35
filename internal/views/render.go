package views

import (
	"fmt"
	"strconv"

	"github.com/recera/mission-control/pkg/cockpit"
	"github.com/recera/mission-control/pkg/styling"
	"github.com/recera/mission-control/pkg/vango/vdom"
	"github.com/recera/mission-control/pkg/zoom"
)

// Styles holds the CSS for every class the views emit
var Styles = styling.NewSheet()

// Ops carried in data-op attributes
const (
	OpEnter   = "enter"
	OpExit    = "exit"
	OpJump    = "jump"
	OpElement = "element"
)

var (
	clsCockpit = Styles.Add("cockpit", `
.cockpit { font-family: system-ui, sans-serif; background: #0b0f14; color: #d8dee9; min-height: 100vh; padding: 1rem 1.5rem; }
.cockpit button { font: inherit; color: inherit; background: none; border: 0; cursor: pointer; }
.cockpit button:disabled { cursor: default; opacity: 0.5; }`)

	clsCrumbs = Styles.Add("crumbs", `
.crumbs { display: flex; gap: 0.5rem; list-style: none; padding: 0; margin: 0 0 1rem; font-size: 0.85rem; }
.crumbs li + li::before { content: "/"; margin-right: 0.5rem; color: #4c566a; }
.crumb-current { color: #eceff4; font-weight: 600; }
.crumb-ellipsis { color: #4c566a; }`)

	clsStage = Styles.Add("stage", `
.stage { transform-origin: center top; transition-property: transform, opacity; transition-duration: 300ms; }`)

	clsHeader = Styles.Add("screen-header", `
.screen-header { display: flex; align-items: baseline; gap: 1rem; border-left: 4px solid #4c566a; padding-left: 0.75rem; }
.screen-header h1 { margin: 0; font-size: 1.4rem; }
.screen-header p { margin: 0; color: #81a1c1; }`)

	clsSection = Styles.Add("panel", `
.panel { background: #111821; border: 1px solid #1f2a36; border-radius: 6px; padding: 0.75rem 1rem; margin: 0.75rem 0; }
.panel h2 { margin: 0 0 0.5rem; font-size: 0.9rem; text-transform: uppercase; letter-spacing: 0.05em; color: #81a1c1; }
.panel dl { display: grid; grid-template-columns: max-content 1fr; gap: 0.25rem 1rem; margin: 0; }
.panel dd { margin: 0; }`)

	clsDetails = Styles.Add("details", `
.details[aria-busy="true"] { min-height: 4rem; }`)

	clsTargets = Styles.Add("targets", `
.targets { display: grid; grid-template-columns: repeat(auto-fill, minmax(14rem, 1fr)); gap: 0.75rem; list-style: none; padding: 0; }
.target { width: 100%; text-align: left; background: #111821; border: 1px solid #1f2a36; border-radius: 6px; padding: 0.75rem; }
.target small { display: block; color: #81a1c1; margin-top: 0.25rem; }`)

	clsHealth = Styles.Add("health", `
.health-green { border-left-color: #a3be8c; }
.health-yellow { border-left-color: #ebcb8b; }
.health-red { border-left-color: #bf616a; }
.trend-up::after { content: " ▲"; color: #a3be8c; }
.trend-down::after { content: " ▼"; color: #bf616a; }`)
)

// Render builds the cockpit frame for snap showing scr
func Render(snap zoom.Snapshot, scr Screen) *vdom.VNode {
	st := snap.State

	return vdom.NewElement("main", vdom.Props{
		"id":             "cockpit",
		"class":          clsCockpit,
		"data-level":     st.CurrentLevel,
		"data-phase":     string(snap.Presentation.Phase),
		"data-direction": string(st.Direction),
		"data-screen":    string(scr.Kind),
	},
		Breadcrumbs(snap.Breadcrumbs, st.Transitioning),
		vdom.NewElement("section", vdom.Props{
			"class": clsStage,
			"style": stageStyle(snap.Presentation),
		},
			header(scr, st),
			vdom.NewFragment(vdom.Map(scr.Summary, section)...),
			details(scr, snap.Revealed),
			targets(scr.Targets, st.Transitioning),
		),
	)
}

// Breadcrumbs renders the trail, or nil when there is none
func Breadcrumbs(crumbs []zoom.Crumb, transitioning bool) *vdom.VNode {
	if len(crumbs) == 0 {
		return nil
	}

	items := vdom.Map(crumbs, func(_ int, c zoom.Crumb) *vdom.VNode {
		switch {
		case c.Ellipsis:
			return vdom.NewElement("li", vdom.Props{"class": "crumb crumb-ellipsis"}, vdom.NewText("…"))
		case c.Current:
			return vdom.NewElement("li", vdom.Props{
				"class":        "crumb crumb-current",
				"aria-current": "page",
			}, vdom.NewText(crumbLabel(c.Entry))).WithKey(strconv.Itoa(c.Index))
		}
		return vdom.NewElement("li", vdom.Props{"class": "crumb"},
			vdom.NewElement("button", vdom.Props{
				"type":       "button",
				"data-op":    OpJump,
				"data-index": c.Index,
				"disabled":   !c.Clickable(transitioning),
			}, vdom.NewText(crumbLabel(c.Entry))),
		).WithKey(strconv.Itoa(c.Index))
	})

	return vdom.NewElement("nav", vdom.Props{"aria-label": "Breadcrumb"},
		vdom.NewElement("ol", vdom.Props{"class": clsCrumbs}, items...),
	)
}

func crumbLabel(e zoom.StackEntry) string {
	if e.Label != "" {
		return e.Label
	}
	return cockpit.Sector(e.Sector).Label()
}

func stageStyle(p zoom.Presentation) string {
	style := fmt.Sprintf("transform: %s; opacity: %g;", p.Transform(), p.Opacity)
	if p.Easing != "" {
		style += " transition-timing-function: " + p.Easing + ";"
	}
	return style
}

func header(scr Screen, st zoom.State) *vdom.VNode {
	return vdom.NewElement("header", vdom.Props{
		"class": styling.Classes(clsHeader, styling.Modifier(clsHealth, string(scr.Health))),
	},
		vdom.If(st.CurrentLevel > zoom.RootLevel, func() *vdom.VNode {
			return vdom.NewElement("button", vdom.Props{
				"type":       "button",
				"class":      "back",
				"data-op":    OpExit,
				"disabled":   st.Transitioning,
				"aria-label": "Zoom out",
			}, vdom.NewText("← Back"))
		}),
		vdom.NewElement("h1", nil, vdom.NewText(scr.Title)),
		vdom.If(scr.Subtitle != "", func() *vdom.VNode {
			return vdom.NewElement("p", nil, vdom.NewText(scr.Subtitle))
		}),
	)
}

func section(_ int, s Section) *vdom.VNode {
	var rows []*vdom.VNode
	for _, r := range s.Rows {
		rows = append(rows,
			vdom.NewElement("dt", vdom.Props{
				"class": styling.Classes(styling.Modifier(clsHealth, string(r.Health))),
			}, vdom.NewText(r.Label)),
			vdom.NewElement("dd", vdom.Props{
				"class": styling.Classes(styling.Modifier("trend", string(r.Trend))),
			}, vdom.NewText(r.Value)),
		)
	}
	return vdom.NewElement("section", vdom.Props{"class": clsSection},
		vdom.NewElement("h2", nil, vdom.NewText(s.Title)),
		vdom.NewElement("dl", nil, rows...),
	)
}

func details(scr Screen, revealed bool) *vdom.VNode {
	if len(scr.Details) == 0 {
		return nil
	}
	if !revealed {
		return vdom.NewElement("div", vdom.Props{"class": clsDetails, "aria-busy": "true"})
	}
	return vdom.NewElement("div", vdom.Props{"class": clsDetails, "aria-busy": "false"},
		vdom.Map(scr.Details, section)...,
	)
}

func targets(ts []Target, transitioning bool) *vdom.VNode {
	if len(ts) == 0 {
		return nil
	}

	items := vdom.Map(ts, func(_ int, t Target) *vdom.VNode {
		op := OpEnter
		if t.Element {
			op = OpElement
		}
		props := vdom.Props{
			"type":             "button",
			"class":            styling.Classes("target", styling.Modifier(clsHealth, string(t.Health))),
			"data-op":          op,
			"data-sector":      t.Sector,
			"data-target-id":   t.TargetID,
			"data-target-type": t.TargetType,
			"data-label":       t.Label,
			"disabled":         transitioning,
		}
		if t.Size != "" {
			props["data-size"] = string(t.Size)
		}
		return vdom.NewElement("li", nil,
			vdom.NewElement("button", props,
				vdom.NewText(t.Label),
				vdom.If(t.Detail != "", func() *vdom.VNode {
					return vdom.NewElement("small", nil, vdom.NewText(t.Detail))
				}),
			),
		).WithKey(t.Sector + "/" + t.TargetID)
	})
	return vdom.NewElement("ul", vdom.Props{"class": clsTargets}, items...)
}
