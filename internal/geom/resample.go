package geom

import (
	"math"

	"github.com/verte-zerg/scribble/internal/model"
)

// snapTolerance is the share of the interval within which a sample lands on
// the original vertex instead of an interpolated point.
const snapTolerance = 1e-9

// Resample reduces points to n points spaced at equal arc-length intervals.
// Strokes of two points or fewer are returned unchanged. A stroke with zero
// length resamples to n copies of its point.
//
// https://depts.washington.edu/acelab/proj/dollar/dollar.pdf (step 1)
func Resample(points []model.Point, n int) []model.Point {
	if len(points) <= 2 || n < 2 {
		out := make([]model.Point, len(points))
		copy(out, points)
		return out
	}

	interval := PathLength(points) / float64(n-1)
	eps := interval * snapTolerance
	out := make([]model.Point, 0, n)
	out = append(out, points[0])

	if interval > 0 {
		acc := 0.0
		prev := points[0]
		for i := 1; i < len(points) && len(out) < n; i++ {
			cur := points[i]
			d := Distance(prev, cur)
			for d > 0 && len(out) < n {
				remaining := interval - acc
				if d < remaining-eps {
					break
				}
				q := cur
				if math.Abs(d-remaining) > eps {
					t := remaining / d
					q = model.Point{
						X: prev.X + t*(cur.X-prev.X),
						Y: prev.Y + t*(cur.Y-prev.Y),
					}
				}
				out = append(out, q)
				// q splits the segment; keep walking from it.
				prev = q
				d = Distance(prev, cur)
				acc = 0
			}
			acc += d
			prev = cur
		}
	}

	last := points[len(points)-1]
	for len(out) < n {
		out = append(out, last)
	}
	return out
}
