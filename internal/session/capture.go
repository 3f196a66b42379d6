package session

import (
	"github.com/verte-zerg/scribble/internal/geom"
	"github.com/verte-zerg/scribble/internal/model"
)

// Capture turns press/move/release events in surface units into session points.
type Capture struct {
	session    *Session
	normalizer geom.Normalizer
	drawing    bool
}

// NewCapture binds a session to a surface of fixed size.
func NewCapture(s *Session, surface model.Surface) (*Capture, error) {
	n, err := geom.NewNormalizer(surface)
	if err != nil {
		return nil, err
	}
	return &Capture{session: s, normalizer: n}, nil
}

// Start opens a gesture at raw.
func (c *Capture) Start(raw model.Point) {
	c.drawing = true
	c.session.AppendPoint(c.normalizer.Normalize(raw))
}

// Move appends raw while a gesture is open and reports whether it was kept.
func (c *Capture) Move(raw model.Point) bool {
	if !c.drawing {
		return false
	}
	c.session.AppendPoint(c.normalizer.Normalize(raw))
	return true
}

// End closes the gesture.
func (c *Capture) End() {
	c.drawing = false
}

// Cancel closes the gesture exactly like End; appended points are kept.
func (c *Capture) Cancel() {
	c.End()
}

// Drawing reports whether a gesture is open.
func (c *Capture) Drawing() bool {
	return c.drawing
}

// Surface returns the capture surface.
func (c *Capture) Surface() model.Surface {
	return c.normalizer.Surface()
}

// Session returns the session fed by c.
func (c *Capture) Session() *Session {
	return c.session
}
