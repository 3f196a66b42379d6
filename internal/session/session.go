// Package session holds the exercise state machine and the capture guard that feeds it.
package session

import (
	"fmt"

	"github.com/verte-zerg/scribble/internal/catalog"
	"github.com/verte-zerg/scribble/internal/model"
	"github.com/verte-zerg/scribble/internal/score"
)

// Session is the mutable state of one practice view.
// It is not safe for concurrent use; a single event loop owns it.
type Session struct {
	catalog *catalog.Catalog
	scorer  *score.Scorer

	category  string
	itemIndex int
	strokes   []model.Point
	last      *model.Result
}

// New returns a session positioned on the first item of category.
func New(cat *catalog.Catalog, scorer *score.Scorer, category string) (*Session, error) {
	s := &Session{catalog: cat, scorer: scorer}
	if err := s.SelectCategory(category); err != nil {
		return nil, err
	}
	return s, nil
}

// SelectCategory switches category and restarts at its first item.
// An unknown category leaves the session unchanged.
func (s *Session) SelectCategory(category string) error {
	if s.catalog.ItemCount(category) == 0 {
		return fmt.Errorf("unknown category %q", category)
	}
	s.category = category
	s.itemIndex = 0
	s.reset()
	return nil
}

// NextItem advances to the next item, wrapping to the first.
func (s *Session) NextItem() model.Position {
	s.itemIndex = (s.itemIndex + 1) % s.catalog.ItemCount(s.category)
	s.reset()
	return s.Position()
}

// JumpTo moves to item index of the current category.
func (s *Session) JumpTo(index int) (model.Position, error) {
	if index < 0 || index >= s.catalog.ItemCount(s.category) {
		return s.Position(), fmt.Errorf("item index %d out of range", index)
	}
	s.itemIndex = index
	s.reset()
	return s.Position(), nil
}

// AppendPoint adds a normalized point to the current stroke.
func (s *Session) AppendPoint(p model.Point) {
	s.strokes = append(s.strokes, p)
}

// ClearStrokes discards the stroke and the last result.
func (s *Session) ClearStrokes() {
	s.reset()
}

// Check grades the current stroke and keeps the result. The stroke is kept.
func (s *Session) Check() model.Result {
	res := s.scorer.Grade(s.category, s.Content(), s.strokes)
	s.last = &res
	return res
}

func (s *Session) reset() {
	s.strokes = nil
	s.last = nil
}

// Position reports category, index and content.
func (s *Session) Position() model.Position {
	return model.Position{
		Category:  s.category,
		ItemIndex: s.itemIndex,
		Content:   s.Content(),
	}
}

// Content is the current item text.
func (s *Session) Content() string {
	item, _ := s.catalog.Item(s.category, s.itemIndex)
	return item
}

// Exercise returns the active catalog entry.
func (s *Session) Exercise() model.Exercise {
	ex, _ := s.catalog.Lookup(s.category)
	return ex
}

// Categories lists the catalog categories in display order.
func (s *Session) Categories() []string {
	return s.catalog.Categories()
}

// Strokes returns a copy of the captured points.
func (s *Session) Strokes() []model.Point {
	out := make([]model.Point, len(s.strokes))
	copy(out, s.strokes)
	return out
}

// PointCount returns the number of captured points.
func (s *Session) PointCount() int {
	return len(s.strokes)
}

// LastResult returns the result of the last Check since the stroke was cleared.
func (s *Session) LastResult() (model.Result, bool) {
	if s.last == nil {
		return model.Result{}, false
	}
	return *s.last, true
}
