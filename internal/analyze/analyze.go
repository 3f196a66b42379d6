// Package analyze runs the shape, spacing and density checks on a normalized stroke.
package analyze

import (
	"github.com/verte-zerg/scribble/internal/geom"
	"github.com/verte-zerg/scribble/internal/model"
)

// Rules parameterizes the checks. Distances are in normalized units.
type Rules struct {
	MinSize         float64
	MaxSize         float64
	ClusterGap      float64
	MaxClusterShare float64
}

// DefaultRules returns the stock thresholds.
func DefaultRules() Rules {
	return Rules{
		MinSize:         0.2,
		MaxSize:         0.8,
		ClusterGap:      0.05,
		MaxClusterShare: 0.3,
	}
}

// Analyze runs all three checks. An empty stroke fails every check.
func Analyze(points []model.Point, minStrokePoints int, rules Rules) model.Heuristics {
	if len(points) == 0 {
		return model.Heuristics{}
	}
	return model.Heuristics{
		HasGoodSize:      GoodSize(points, rules),
		HasGoodSpacing:   GoodSpacing(points, rules),
		HasEnoughStrokes: len(points) >= minStrokePoints,
	}
}

// GoodSize reports whether both bounding-box sides lie strictly inside (MinSize, MaxSize).
func GoodSize(points []model.Point, rules Rules) bool {
	b := geom.BoundingBox(points)
	return inside(b.Width(), rules.MinSize, rules.MaxSize) && inside(b.Height(), rules.MinSize, rules.MaxSize)
}

func inside(v, lo, hi float64) bool {
	return v > lo && v < hi
}

// GoodSpacing fails when a single cluster holds more than MaxClusterShare of the points.
func GoodSpacing(points []model.Point, rules Rules) bool {
	limit := float64(len(points)) * rules.MaxClusterShare
	for _, size := range Clusters(points, rules.ClusterGap) {
		if float64(size) > limit {
			return false
		}
	}
	return true
}

// Clusters greedily groups consecutive points closer than gap and returns the
// size of every cluster in order. The sizes sum to len(points).
func Clusters(points []model.Point, gap float64) []int {
	if len(points) == 0 {
		return nil
	}
	var sizes []int
	current := 1
	for i := 1; i < len(points); i++ {
		if geom.Distance(points[i-1], points[i]) < gap {
			current++
			continue
		}
		sizes = append(sizes, current)
		current = 1
	}
	return append(sizes, current)
}
