package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/scribble/internal/model"
	"github.com/verte-zerg/scribble/internal/store"
)

func TestStepWindow(t *testing.T) {
	tests := []struct {
		current, delta, want int
	}{
		{current: 5, delta: 1, want: 10},
		{current: 5, delta: -1, want: 3},
		{current: 0, delta: -1, want: 1},
		{current: 50, delta: 1, want: 50},
		{current: 7, delta: 1, want: 10},
	}
	for _, tt := range tests {
		if got := stepWindow(tt.current, tt.delta); got != tt.want {
			t.Fatalf("stepWindow(%d, %d) = %d, want %d", tt.current, tt.delta, got, tt.want)
		}
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("abcdef\nxy", 3, 3)
	if out != "abcdef\nxy \n   " {
		t.Fatalf("unexpected fit %q", out)
	}
}

func TestModelRendersReport(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "scribble.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	for i, content := range []string{"a", "b"} {
		score := 60 + i*30
		if _, err := st.InsertAttempt(context.Background(), model.Attempt{
			AttemptedAt: time.Unix(int64(i), 0),
			Category:    "letters",
			Content:     content,
			Mode:        model.ModeGlyph,
			Score:       &score,
			Passed:      score >= 85,
		}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	m := NewModel(st, model.StatsConfig{Window: 10})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := m.View()
	if !strings.Contains(out, "Overview") || !strings.Contains(out, "Attempts") {
		t.Fatalf("unexpected overview:\n%s", out)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabItems {
		t.Fatalf("expected items tab")
	}
	if out := m.View(); !strings.Contains(out, "letters") {
		t.Fatalf("expected item rows:\n%s", out)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("=")})
	if m.cfg.Window != 20 {
		t.Fatalf("expected window 20, got %d", m.cfg.Window)
	}
}
