package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/recera/mission-control/internal/clock"
	"github.com/recera/mission-control/internal/fixture"
	"github.com/recera/mission-control/internal/views"
	"github.com/recera/mission-control/pkg/zoom"
)

func newTestModel(t *testing.T) (Model, *clock.Fake) {
	t.Helper()
	ds, err := fixture.Default()
	if err != nil {
		t.Fatalf("Failed to load fixture: %v", err)
	}
	fake := clock.NewFake(time.Date(2026, 2, 5, 14, 0, 0, 0, time.UTC))
	m := New(fixture.NewProvider(ds), WithClock(fake))
	t.Cleanup(m.nav.Close)
	return m, fake
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyType) Model {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: k})
}

func typeRune(t *testing.T, m Model, r rune) Model {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// drain runs every timer callback queued for the update loop
func drain(t *testing.T, m Model) Model {
	t.Helper()
	for {
		select {
		case run := <-m.tasks:
			m = send(t, m, taskMsg{run: run})
		default:
			return m
		}
	}
}

// step advances the clock in phase-sized steps, delivering callbacks
// between them the way the program would
func step(t *testing.T, m Model, fake *clock.Fake) Model {
	t.Helper()
	for _, d := range []time.Duration{300, 50, 100} {
		fake.Advance(d * time.Millisecond)
		m = drain(t, m)
	}
	return m
}

func TestModel_StartsAtGlobal(t *testing.T) {
	m, _ := newTestModel(t)

	if m.Screen().Kind != views.KindGlobal {
		t.Errorf("Expected global screen, got %s", m.Screen().Kind)
	}
	if m.Snapshot().State.CurrentLevel != zoom.RootLevel {
		t.Errorf("Expected root level, got %d", m.Snapshot().State.CurrentLevel)
	}
	if len(m.Snapshot().Breadcrumbs) != 0 {
		t.Errorf("Expected no crumbs at root, got %d", len(m.Snapshot().Breadcrumbs))
	}
	if !strings.Contains(m.View(), zoom.RootLabel) {
		t.Error("Expected view to show the root title")
	}
}

func TestModel_EnterPlaysTransition(t *testing.T) {
	m, fake := newTestModel(t)
	target := m.Screen().Targets[0]

	m = press(t, m, tea.KeyEnter)
	snap := m.Snapshot()
	if !snap.State.Transitioning || snap.State.CurrentLevel != 2 {
		t.Fatalf("Expected transition to level 2, got %+v", snap.State)
	}
	if snap.Presentation.Phase != zoom.PhaseAnimating || snap.Revealed {
		t.Errorf("Expected animating with details hidden, got %+v", snap)
	}
	if snap.State.CurrentSector != target.Sector {
		t.Errorf("Expected sector %s, got %s", target.Sector, snap.State.CurrentSector)
	}

	// Overlapping intents are dropped
	m = press(t, m, tea.KeyEsc)
	if m.Snapshot().State.CurrentLevel != 2 {
		t.Error("Expected exit ignored mid-transition")
	}
	if !strings.Contains(m.status, string(zoom.ReasonTransitioning)) {
		t.Errorf("Expected transitioning status, got %q", m.status)
	}

	m = step(t, m, fake)
	snap = m.Snapshot()
	if snap.State.Transitioning || snap.Presentation.Phase != zoom.PhaseIdle {
		t.Fatalf("Expected settled state, got %+v", snap)
	}
	if !snap.Revealed {
		t.Error("Expected details revealed after settling")
	}
	if len(snap.Breadcrumbs) != 2 {
		t.Errorf("Expected 2 crumbs, got %d", len(snap.Breadcrumbs))
	}
}

func TestModel_ElementTargetJumpsToDepartment(t *testing.T) {
	m, fake := newTestModel(t)

	// Department tiles follow the region sectors
	for m.Screen().Targets[m.Selected()].TargetType != views.TargetDepartment {
		m = press(t, m, tea.KeyDown)
	}
	want := m.Screen().Targets[m.Selected()]

	m = press(t, m, tea.KeyEnter)
	m = step(t, m, fake)

	s := m.Snapshot().State
	if s.CurrentLevel != 3 || s.CurrentTarget != want.TargetID {
		t.Fatalf("Expected level 3 at %s, got %+v", want.TargetID, s)
	}
	if m.Screen().Kind != views.KindDepartment {
		t.Errorf("Expected department screen, got %s", m.Screen().Kind)
	}
	if m.Selected() != 0 {
		t.Errorf("Expected selection reset, got %d", m.Selected())
	}

	// Jump back to the root crumb
	m = typeRune(t, m, '1')
	if m.Snapshot().State.Direction != zoom.DirectionExiting {
		t.Errorf("Expected exiting jump, got %s", m.Snapshot().State.Direction)
	}
	m = step(t, m, fake)
	if m.Snapshot().State.CurrentLevel != zoom.RootLevel {
		t.Errorf("Expected root after jump, got %d", m.Snapshot().State.CurrentLevel)
	}
}

func TestModel_BackAtRootIsRejected(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, tea.KeyEsc)
	if m.Snapshot().State.Transitioning {
		t.Error("Expected no transition at root")
	}
	if !strings.Contains(m.status, string(zoom.ReasonAtRoot)) {
		t.Errorf("Expected at-root status, got %q", m.status)
	}
	if !strings.Contains(m.View(), string(zoom.ReasonAtRoot)) {
		t.Error("Expected status in view")
	}
}

func TestModel_SelectionBounds(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, tea.KeyUp)
	if m.Selected() != 0 {
		t.Errorf("Expected selection clamped at 0, got %d", m.Selected())
	}

	n := len(m.Screen().Targets)
	for i := 0; i < n+3; i++ {
		m = press(t, m, tea.KeyDown)
	}
	if m.Selected() != n-1 {
		t.Errorf("Expected selection clamped at %d, got %d", n-1, m.Selected())
	}
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m = typeRune(t, m, '?')
	if !m.help.ShowAll {
		t.Error("Expected full help after ?")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)
	if !m.quitting || cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quitting")
	}
}
