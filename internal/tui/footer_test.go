package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/scribble/internal/catalog"
	"github.com/verte-zerg/scribble/internal/generator"
	"github.com/verte-zerg/scribble/internal/model"
	"github.com/verte-zerg/scribble/internal/score"
	"github.com/verte-zerg/scribble/internal/session"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	sess, err := session.New(catalog.Default(), score.New(score.DefaultConfig()), catalog.Letters)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	cfg := model.PracticeConfig{Category: catalog.Letters, CanvasWidth: 40, CanvasHeight: 16}
	m, err := NewModel(cfg, nil, sess, generator.NewWithSeed(1))
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	return m
}

func TestRenderFooterFormats(t *testing.T) {
	m := newTestModel(t)
	m.hasLast = true
	m.lastScore = 72
	m.allAttempts = 4
	m.allPassed = 1
	m.allScored = 4
	m.allScoreSum = 300

	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Item 1/26", "Points 0", "Last 72", "All-time avg 75.0", "25.0% passed"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestMouseGestureFeedsSession(t *testing.T) {
	m := newTestModel(t)
	send := func(x, y int, action tea.MouseAction) {
		m.Update(tea.MouseMsg{X: canvasOriginX + x, Y: canvasOriginY + y, Action: action, Button: tea.MouseButtonLeft})
	}
	send(2, 1, tea.MouseActionPress)
	send(3, 1, tea.MouseActionMotion)
	send(60, 1, tea.MouseActionMotion)
	send(4, 1, tea.MouseActionMotion)
	send(4, 1, tea.MouseActionRelease)

	if got := m.session.PointCount(); got != 2 {
		t.Fatalf("expected 2 points, got %d", got)
	}
	pts := m.session.Strokes()
	if pts[0].X != 2.5/40 || pts[0].Y != 1.5/16 {
		t.Fatalf("unexpected normalized point %+v", pts[0])
	}
	if m.capture.Drawing() {
		t.Fatalf("expected pen lifted")
	}
}

func TestPressOutsideCanvasIgnored(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: canvasOriginX + 1, Y: canvasOriginY + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if m.session.PointCount() != 0 {
		t.Fatalf("expected no points for a gesture starting outside the canvas")
	}
}

func TestKeysDriveSession(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	res, ok := m.session.LastResult()
	if !ok || res.Score != nil || !strings.Contains(res.Feedback, "write something") {
		t.Fatalf("expected empty-stroke feedback, got %+v", res)
	}
	if m.hasLast {
		t.Fatalf("empty check should not count as an attempt")
	}

	m.Update(tea.MouseMsg{X: canvasOriginX + 5, Y: canvasOriginY + 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: canvasOriginX + 6, Y: canvasOriginY + 6, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if !m.hasLast || m.allAttempts != 1 {
		t.Fatalf("expected a scored attempt, got last=%v attempts=%d", m.hasLast, m.allAttempts)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if pos := m.session.Position(); pos.ItemIndex != 1 || m.session.PointCount() != 0 {
		t.Fatalf("expected next item with cleared stroke, got %+v", pos)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	if pos := m.session.Position(); pos.Category != catalog.Capitals || pos.ItemIndex != 0 {
		t.Fatalf("expected capitals category, got %+v", pos)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	if pos := m.session.Position(); pos.Category != catalog.Sentences {
		t.Fatalf("expected wraparound to sentences, got %+v", pos)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestWeakPickWithoutHistory(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	if !strings.Contains(m.status, "picking at random") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestViewShowsPromptAndGuide(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	if !containsAll(out, []string{"Letter Practice", "Write:", "·"}) {
		t.Fatalf("view missing expected content:\n%s", out)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	if strings.Contains(m.renderCanvas(), "·") {
		t.Fatalf("expected guide hidden after toggle")
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
