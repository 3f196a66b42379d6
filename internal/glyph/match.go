package glyph

import (
	"errors"
	"math"

	"github.com/verte-zerg/scribble/internal/geom"
	"github.com/verte-zerg/scribble/internal/model"
)

// ErrLengthMismatch means the stroke was not resampled to the template length.
var ErrLengthMismatch = errors.New("stroke and template lengths differ")

// InfiniteDistance is returned when two paths cannot be compared.
var InfiniteDistance = model.Distance{Avg: math.Inf(1), Max: math.Inf(1)}

// Match compares stroke and template point by point, without alignment.
func Match(stroke, template []model.Point) (model.Distance, error) {
	if len(stroke) != len(template) || len(stroke) == 0 {
		return InfiniteDistance, ErrLengthMismatch
	}
	var sum, maxDist float64
	for i := range stroke {
		d := geom.Distance(stroke[i], template[i])
		sum += d
		if d > maxDist {
			maxDist = d
		}
	}
	return model.Distance{Avg: sum / float64(len(stroke)), Max: maxDist}, nil
}

// Passes reports whether d is within both tolerances.
func Passes(d model.Distance, avgTol, maxTol float64) bool {
	return d.Avg < avgTol && d.Max < maxTol
}
