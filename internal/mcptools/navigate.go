package mcptools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/recera/mission-control/internal/clock"
	"github.com/recera/mission-control/internal/views"
	"github.com/recera/mission-control/pkg/cockpit"
	"github.com/recera/mission-control/pkg/live"
	"github.com/recera/mission-control/pkg/scheduler"
	"github.com/recera/mission-control/pkg/zoom"
)

// settleGrace is how long past the transition timing a navigate call
// waits before giving up
const settleGrace = 2 * time.Second

type options struct {
	clock  clock.Clock
	timing zoom.Timing
	logger *slog.Logger
}

// Option configures a Navigation
type Option func(*options)

// WithClock sets the clock transitions are timed on
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithTiming sets the transition timing
func WithTiming(t zoom.Timing) Option {
	return func(o *options) { o.timing = t }
}

// WithLogger sets the logger for failed navigation tasks
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Navigation is the zoom session of an MCP client. Intents and timer
// callbacks run on its loop.
type Navigation struct {
	provider cockpit.Provider
	nav      *zoom.Navigator
	loop     *scheduler.Loop
	timing   zoom.Timing

	// settled receives after every completed transition
	settled chan struct{}
}

// NewNavigation starts a session at the root
func NewNavigation(p cockpit.Provider, opts ...Option) *Navigation {
	o := options{clock: clock.Real(), timing: zoom.DefaultTiming(), logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	n := &Navigation{
		provider: p,
		loop:     scheduler.NewLoop(0),
		timing:   o.timing,
		settled:  make(chan struct{}, 1),
	}
	logger := o.logger.With("component", "mcp")
	n.loop.SetErrorHandler(func(err error) {
		logger.Error("navigation task failed", "error", err)
	})
	n.loop.Start()

	n.nav = zoom.NewNavigator(
		zoom.WithClock(o.clock),
		zoom.WithTiming(o.timing),
		zoom.WithPost(n.loop.Go),
	)
	n.nav.OnChange(func(snap zoom.Snapshot) {
		if snap.State.Transitioning || snap.Presentation.Phase != zoom.PhaseIdle {
			return
		}
		select {
		case n.settled <- struct{}{}:
		default:
		}
	})
	return n
}

// Snapshot returns the current frame
func (n *Navigation) Snapshot() zoom.Snapshot {
	return n.nav.Snapshot()
}

// Screen resolves the view at the current level
func (n *Navigation) Screen() views.Screen {
	return views.Resolve(n.nav.State(), n.provider)
}

// Navigate applies in and, when it was accepted, waits for the
// transition to settle
func (n *Navigation) Navigate(ctx context.Context, in live.Intent) (zoom.Result, error) {
	if err := in.Validate(); err != nil {
		return zoom.Result{}, err
	}

	var res zoom.Result
	var applyErr error
	err := n.loop.Do(func() {
		// Drop a signal left over from an earlier transition
		select {
		case <-n.settled:
		default:
		}
		res, applyErr = in.Apply(n.nav.Controller)
	})
	if err != nil {
		return zoom.Result{}, fmt.Errorf("navigate: %w", err)
	}
	if applyErr != nil || !res.Applied {
		return res, applyErr
	}

	ctx, cancel := context.WithTimeout(ctx, n.timing.Total()+settleGrace)
	defer cancel()
	select {
	case <-n.settled:
		return res, nil
	case <-ctx.Done():
		return res, fmt.Errorf("wait for transition: %w", ctx.Err())
	}
}

// Close stops the session's timers and loop
func (n *Navigation) Close() {
	_ = n.loop.Do(n.nav.Close)
	n.loop.Stop()
}

// NavigateTool handles the cockpit_navigate MCP tool.
type NavigateTool struct {
	nav *Navigation
}

// NewNavigateTool creates a NavigateTool.
func NewNavigateTool(nav *Navigation) *NavigateTool {
	return &NavigateTool{nav: nav}
}

// Definition returns the MCP tool definition for cockpit_navigate.
func (t *NavigateTool) Definition() mcp.Tool {
	return mcp.NewTool("cockpit_navigate",
		mcp.WithDescription(
			"Zoom the cockpit. 'enter' drills into a sector or one of its targets, 'exit' goes up one level, "+
				"'jump' returns to a breadcrumb index, 'element' opens a department or agent directly from the root. "+
				"Waits for the transition to finish and returns the view it lands on with the next targets.",
		),
		mcp.WithString("op",
			mcp.Required(),
			mcp.Description("Navigation operation"),
			mcp.Enum(string(live.OpEnter), string(live.OpExit), string(live.OpJump), string(live.OpElement)),
		),
		mcp.WithString("sector",
			mcp.Description("Sector for enter and element"),
			mcp.Enum(sectorNames()...),
		),
		mcp.WithString("id",
			mcp.Description("Target id for enter, element id for element"),
		),
		mcp.WithString("type",
			mcp.Description("Target type: department or agent"),
		),
		mcp.WithString("label",
			mcp.Description("Label shown in the breadcrumb trail"),
		),
		mcp.WithNumber("index",
			mcp.Description("Breadcrumb index for jump; 0 is the root"),
		),
	)
}

// Handle processes the cockpit_navigate tool call.
func (t *NavigateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := live.Intent{
		Op:     live.Op(req.GetString("op", "")),
		Sector: strings.ToUpper(req.GetString("sector", "")),
		Label:  req.GetString("label", ""),
	}
	if in.Op == live.OpElement {
		in.ElementID = req.GetString("id", "")
		in.ElementType = req.GetString("type", "")
	} else {
		in.TargetID = req.GetString("id", "")
		in.TargetType = req.GetString("type", "")
	}
	if hasArg(req, "index") {
		index := intArg(req, "index", 0)
		in.Index = &index
	}

	res, err := t.nav.Navigate(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !res.Applied {
		return mcp.NewToolResultError(fmt.Sprintf("%s rejected: %s", in.Op, res.Reason)), nil
	}

	var b strings.Builder
	writeTrail(&b, t.nav.Snapshot())
	b.WriteString("\n")
	writeScreen(&b, t.nav.Screen())
	return mcp.NewToolResultText(b.String()), nil
}

// BreadcrumbsTool handles the cockpit_breadcrumbs MCP tool.
type BreadcrumbsTool struct {
	nav *Navigation
}

// NewBreadcrumbsTool creates a BreadcrumbsTool.
func NewBreadcrumbsTool(nav *Navigation) *BreadcrumbsTool {
	return &BreadcrumbsTool{nav: nav}
}

// Definition returns the MCP tool definition for cockpit_breadcrumbs.
func (t *BreadcrumbsTool) Definition() mcp.Tool {
	return mcp.NewTool("cockpit_breadcrumbs",
		mcp.WithDescription("Show where the cockpit is zoomed to: the level, the breadcrumb trail and the jump index of each crumb."),
	)
}

// Handle processes the cockpit_breadcrumbs tool call.
func (t *BreadcrumbsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	writeTrail(&b, t.nav.Snapshot())
	return mcp.NewToolResultText(b.String()), nil
}

func writeTrail(b *strings.Builder, snap zoom.Snapshot) {
	s := snap.State
	fmt.Fprintf(b, "**Level**: %d", s.CurrentLevel)
	if s.Transitioning {
		fmt.Fprintf(b, " (transitioning, %s)", s.Direction)
	}
	b.WriteString("\n")

	if len(snap.Breadcrumbs) == 0 {
		fmt.Fprintf(b, "**Trail**: %s\n", zoom.RootLabel)
		return
	}

	parts := make([]string, 0, len(snap.Breadcrumbs))
	for _, c := range snap.Breadcrumbs {
		switch {
		case c.Ellipsis:
			parts = append(parts, "…")
		case c.Current:
			parts = append(parts, fmt.Sprintf("**%s**", c.Entry.Label))
		default:
			parts = append(parts, fmt.Sprintf("%s [%d]", c.Entry.Label, c.Index))
		}
	}
	fmt.Fprintf(b, "**Trail**: %s\n", strings.Join(parts, " › "))
}
