// Package geom holds the coordinate and polyline math for captured strokes.
package geom

import (
	"errors"
	"math"

	"github.com/verte-zerg/scribble/internal/model"
)

// ErrInvalidSurface is returned for surfaces without a positive width and height.
var ErrInvalidSurface = errors.New("surface dimensions must be positive")

// Normalizer maps surface points into unit-square space.
type Normalizer struct {
	surface model.Surface
}

// NewNormalizer validates the surface once; its size is assumed constant afterwards.
func NewNormalizer(surface model.Surface) (Normalizer, error) {
	if err := validSurface(surface); err != nil {
		return Normalizer{}, err
	}
	return Normalizer{surface: surface}, nil
}

// Surface returns the surface the normalizer was built for.
func (n Normalizer) Surface() model.Surface {
	return n.surface
}

// Normalize divides by the surface size. Points outside the surface are not clamped.
func (n Normalizer) Normalize(p model.Point) model.Point {
	return model.Point{X: p.X / n.surface.Width, Y: p.Y / n.surface.Height}
}

// Normalize maps a single raw point. It is the one-shot form of Normalizer.Normalize.
func Normalize(p model.Point, surface model.Surface) (model.Point, error) {
	n, err := NewNormalizer(surface)
	if err != nil {
		return model.Point{}, err
	}
	return n.Normalize(p), nil
}

// NormalizeStroke maps every point of a raw stroke.
func NormalizeStroke(points []model.Point, surface model.Surface) ([]model.Point, error) {
	n, err := NewNormalizer(surface)
	if err != nil {
		return nil, err
	}
	out := make([]model.Point, len(points))
	for i, p := range points {
		out[i] = n.Normalize(p)
	}
	return out, nil
}

func validSurface(s model.Surface) error {
	// NaN fails both comparisons.
	if !(s.Width > 0) || !(s.Height > 0) {
		return ErrInvalidSurface
	}
	return nil
}

// Distance is the Euclidean distance between two points.
func Distance(a, b model.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PathLength sums the consecutive segment lengths.
func PathLength(points []model.Point) float64 {
	d := 0.0
	for i := 1; i < len(points); i++ {
		d += Distance(points[i-1], points[i])
	}
	return d
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width of the box.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height of the box.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// BoundingBox returns the bounds of points. An empty slice yields the zero box.
func BoundingBox(points []model.Point) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}
