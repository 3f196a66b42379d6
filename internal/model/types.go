// Package model defines shared data structures.
package model

import "time"

// Point is a 2-D coordinate, either in surface units or normalized to the unit square.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is an ordered sequence of points in capture order.
type Stroke []Point

// Template is the idealized path of a single lowercase glyph.
type Template struct {
	Name   string
	Points []Point
}

// Exercise is one catalog entry.
type Exercise struct {
	Category        string
	Title           string
	Items           []string
	MinStrokePoints int
	Description     string
}

// Position reports where a session currently is.
type Position struct {
	Category  string
	ItemIndex int
	Content   string
}

// Mode identifies how an attempt was scored.
type Mode string

const (
	// ModeGlyph compares against a reference template.
	ModeGlyph Mode = "glyph"
	// ModeFreeForm relies on heuristics only.
	ModeFreeForm Mode = "freeform"
)

// Issue names a failed sub-check.
type Issue string

const (
	IssueSize    Issue = "size"
	IssueSpacing Issue = "spacing"
	IssueDensity Issue = "density"
	IssuePattern Issue = "pattern"
	IssueEmpty   Issue = "empty"

	// IssuePointCount marks free-form strokes with fewer points than the content length calls for.
	IssuePointCount Issue = "point-count"
)

// Distance holds template matcher output.
type Distance struct {
	Avg float64
	Max float64
}

// Heuristics holds the analyzer's independent checks.
type Heuristics struct {
	HasGoodSize      bool
	HasGoodSpacing   bool
	HasEnoughStrokes bool
}

// Result is the outcome of checking a stroke.
// Score is nil when no score was computed.
type Result struct {
	Score      *int
	Passed     bool
	Feedback   string
	Issues     []Issue
	Mode       Mode
	Distance   Distance
	Heuristics Heuristics
}

// PracticeConfig defines practice settings.
type PracticeConfig struct {
	Category      string
	CanvasWidth   int
	CanvasHeight  int
	WordsFile     string
	PassThreshold int
	PatternAvg    float64
	PatternMax    float64
	MinSize       float64
	MaxSize       float64
	ClusterGap    float64
	ClusterShare  float64
	History       bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Category string
	Since    *time.Time
	Last     int
	Window   int
}

// Attempt captures one checked stroke.
type Attempt struct {
	ID          int64
	AttemptedAt time.Time
	Category    string
	Content     string
	Mode        Mode
	Score       *int
	Passed      bool
	PointCount  int
	AvgDistance float64
	MaxDistance float64
	Issues      []Issue
	Surface     Surface
	Points      []Point
}

// Surface is the size of a capture area in its own units.
type Surface struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AttemptAggregate summarizes an attempt for reporting.
type AttemptAggregate struct {
	AttemptID   int64
	AttemptedAt time.Time
	Category    string
	Content     string
	Score       *int
	Passed      bool
}

// ItemAggregate aggregates attempts of one exercise item.
type ItemAggregate struct {
	Category string
	Content  string
	Attempts int
	Passed   int
	ScoreSum int
	Scored   int
}
