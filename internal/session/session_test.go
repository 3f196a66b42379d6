package session

import (
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/scribble/internal/catalog"
	"github.com/verte-zerg/scribble/internal/geom"
	"github.com/verte-zerg/scribble/internal/model"
	"github.com/verte-zerg/scribble/internal/score"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(catalog.Default(), score.New(score.DefaultConfig()), catalog.Letters)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestSelectCategoryResets(t *testing.T) {
	s := newSession(t)
	s.NextItem()
	s.AppendPoint(model.Point{X: 0.5, Y: 0.5})
	s.Check()

	if err := s.SelectCategory(catalog.Numbers); err != nil {
		t.Fatalf("select: %v", err)
	}
	pos := s.Position()
	if pos.ItemIndex != 0 || pos.Content != "1" || pos.Category != catalog.Numbers {
		t.Fatalf("unexpected position: %+v", pos)
	}
	if s.PointCount() != 0 {
		t.Fatalf("expected strokes cleared, got %d", s.PointCount())
	}
	if _, ok := s.LastResult(); ok {
		t.Fatalf("expected result cleared")
	}
	if ex := s.Exercise(); ex.Title != "Number Writing" {
		t.Fatalf("unexpected exercise: %+v", ex)
	}
}

func TestSelectUnknownCategoryKeepsState(t *testing.T) {
	s := newSession(t)
	s.NextItem()
	s.AppendPoint(model.Point{X: 0.1, Y: 0.1})
	if err := s.SelectCategory("cursive"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
	pos := s.Position()
	if pos.Category != catalog.Letters || pos.ItemIndex != 1 || s.PointCount() != 1 {
		t.Fatalf("state changed after failed select: %+v, %d points", pos, s.PointCount())
	}
	if _, err := New(catalog.Default(), score.New(score.DefaultConfig()), "cursive"); err == nil {
		t.Fatalf("expected New to reject an unknown category")
	}
}

func TestNextItemWraps(t *testing.T) {
	s := newSession(t)
	count := catalog.Default().ItemCount(catalog.Letters)
	for i := 1; i < count; i++ {
		if pos := s.NextItem(); pos.ItemIndex != i {
			t.Fatalf("expected index %d, got %d", i, pos.ItemIndex)
		}
	}
	if s.Content() != "e" {
		t.Fatalf("expected last letter, got %q", s.Content())
	}
	s.AppendPoint(model.Point{X: 0.2, Y: 0.2})
	pos := s.NextItem()
	if pos.ItemIndex != 0 || pos.Content != "a" {
		t.Fatalf("expected wrap to first item, got %+v", pos)
	}
	if s.PointCount() != 0 {
		t.Fatalf("expected strokes cleared on next")
	}
}

func TestCheckKeepsStrokes(t *testing.T) {
	s := newSession(t)
	res := s.Check()
	if res.Score != nil || res.Passed || !strings.Contains(res.Feedback, "write something") {
		t.Fatalf("unexpected empty-stroke result: %+v", res)
	}

	for _, p := range []model.Point{{X: 0.2, Y: 0.5}, {X: 0.4, Y: 0.3}, {X: 0.6, Y: 0.5}, {X: 0.4, Y: 0.7}, {X: 0.2, Y: 0.5}} {
		s.AppendPoint(p)
	}
	res = s.Check()
	if res.Score == nil || *res.Score != 100 || !res.Passed {
		t.Fatalf("expected a perfect letter a, got %+v", res)
	}
	if s.PointCount() != 5 {
		t.Fatalf("expected strokes kept after check, got %d", s.PointCount())
	}
	last, ok := s.LastResult()
	if !ok || last.Score == nil || *last.Score != 100 {
		t.Fatalf("expected stored result, got %+v", last)
	}

	s.ClearStrokes()
	if s.PointCount() != 0 {
		t.Fatalf("expected strokes cleared")
	}
	if _, ok := s.LastResult(); ok {
		t.Fatalf("expected result cleared")
	}
}

func TestStrokesReturnsCopy(t *testing.T) {
	s := newSession(t)
	s.AppendPoint(model.Point{X: 0.1, Y: 0.2})
	pts := s.Strokes()
	pts[0] = model.Point{X: 9, Y: 9}
	if s.Strokes()[0] != (model.Point{X: 0.1, Y: 0.2}) {
		t.Fatalf("strokes leaked internal state")
	}
}

func TestCaptureGuard(t *testing.T) {
	s := newSession(t)
	c, err := NewCapture(s, model.Surface{Width: 400, Height: 300})
	if err != nil {
		t.Fatalf("new capture: %v", err)
	}
	if c.Move(model.Point{X: 10, Y: 10}) {
		t.Fatalf("move outside a gesture must be dropped")
	}
	if s.PointCount() != 0 {
		t.Fatalf("expected no points before press")
	}

	c.Start(model.Point{X: 100, Y: 150})
	if !c.Drawing() {
		t.Fatalf("expected drawing after start")
	}
	c.Move(model.Point{X: 200, Y: 150})
	c.Cancel()
	if c.Drawing() {
		t.Fatalf("expected idle after cancel")
	}
	if c.Move(model.Point{X: 300, Y: 150}) {
		t.Fatalf("move after cancel must be dropped")
	}
	got := s.Strokes()
	want := []model.Point{{X: 0.25, Y: 0.5}, {X: 0.5, Y: 0.5}}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	// A second gesture accumulates onto the same stroke.
	c.Start(model.Point{X: 0, Y: 0})
	c.End()
	if s.PointCount() != 3 {
		t.Fatalf("expected 3 points across gestures, got %d", s.PointCount())
	}
}

func TestCaptureInvalidSurface(t *testing.T) {
	s := newSession(t)
	if _, err := NewCapture(s, model.Surface{Width: 0, Height: 300}); !errors.Is(err, geom.ErrInvalidSurface) {
		t.Fatalf("expected ErrInvalidSurface, got %v", err)
	}
}

func TestJumpTo(t *testing.T) {
	s := newSession(t)
	s.AppendPoint(model.Point{X: 0.5, Y: 0.5})
	pos, err := s.JumpTo(2)
	if err != nil {
		t.Fatalf("jump: %v", err)
	}
	if pos.ItemIndex != 2 || s.PointCount() != 0 {
		t.Fatalf("unexpected position %+v points %d", pos, s.PointCount())
	}
	if _, err := s.JumpTo(99); err == nil {
		t.Fatalf("expected out of range error")
	}
	if s.Position().ItemIndex != 2 {
		t.Fatalf("failed jump should keep position")
	}
}
