// Package score combines template distance and heuristics into a composite grade.
package score

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/scribble/internal/analyze"
	"github.com/verte-zerg/scribble/internal/catalog"
	"github.com/verte-zerg/scribble/internal/geom"
	"github.com/verte-zerg/scribble/internal/glyph"
	"github.com/verte-zerg/scribble/internal/model"
)

// ErrEmptyStroke is returned when there is nothing to score.
var ErrEmptyStroke = errors.New("stroke has no points")

// Points expected per character of free-form content.
const pointsPerChar = 4

// Glyph-mode weights.
const (
	weightPattern = 0.5
	weightMax     = 0.15
	weightSize    = 0.15
	weightSpacing = 0.10
	weightStrokes = 0.10
)

// Free-form weights.
const (
	freeWeightSize    = 0.4
	freeWeightSpacing = 0.4
	freeWeightStrokes = 0.2
)

// Feedback text.
const (
	msgEmpty       = "Please write something before checking."
	msgGlyphPass   = "Excellent writing! Move on to the next exercise."
	msgFreePass    = "Good job! Your writing looks neat."
	msgRetry       = "Keep practicing!"
	msgSize        = "Your writing size needs adjustment - not too big or too small"
	msgSpacing     = "Mind the spacing between strokes"
	msgDensity     = "Use more strokes to form the shape properly"
	msgFreeDensity = "Use more strokes - aim for about %d for this word"
	msgPattern     = "The letter shape doesn't match the expected pattern"
	msgCloser      = "Trace the shape more closely"
)

// Config holds the empirical thresholds.
type Config struct {
	PassThreshold int
	PatternAvg    float64
	PatternMax    float64
	Rules         analyze.Rules
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		PassThreshold: 85,
		PatternAvg:    0.09,
		PatternMax:    0.18,
		Rules:         analyze.DefaultRules(),
	}
}

// Scorer grades normalized strokes.
type Scorer struct {
	cfg Config
}

// New returns a Scorer using cfg.
func New(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Config returns the scorer thresholds.
func (s *Scorer) Config() Config {
	return s.cfg
}

// Grade scores points and never fails: an empty stroke becomes advisory feedback.
func (s *Scorer) Grade(category, content string, points []model.Point) model.Result {
	res, err := s.Evaluate(category, content, points)
	if errors.Is(err, ErrEmptyStroke) {
		return model.Result{
			Passed:   false,
			Feedback: msgEmpty,
			Issues:   []model.Issue{model.IssueEmpty},
		}
	}
	return res
}

// Evaluate scores points against the item content of category.
func (s *Scorer) Evaluate(category, content string, points []model.Point) (model.Result, error) {
	if len(points) == 0 {
		return model.Result{}, ErrEmptyStroke
	}
	heur := analyze.Analyze(points, catalog.MinStrokePoints(category), s.cfg.Rules)
	if category == catalog.Letters {
		if tmpl, ok := glyph.Lookup(content); ok {
			return s.glyphResult(content, points, tmpl, heur), nil
		}
	}
	return s.freeFormResult(content, points, heur), nil
}

func (s *Scorer) glyphResult(content string, points []model.Point, tmpl model.Template, heur model.Heuristics) model.Result {
	// Two points or fewer cannot be resampled; treat them as an unmatched shape.
	dist := glyph.InfiniteDistance
	if len(points) > 2 {
		resampled := geom.Resample(points, len(tmpl.Points))
		var err error
		dist, err = glyph.Match(resampled, tmpl.Points)
		if err != nil {
			Logger().Error("template comparison skipped",
				"content", content,
				"resampled", len(resampled),
				"template", len(tmpl.Points),
				"error", err)
		}
	}

	total := s.glyphComposite(dist, heur)

	var issues []model.Issue
	var advice []string
	if !heur.HasGoodSize {
		issues = append(issues, model.IssueSize)
		advice = append(advice, msgSize)
	}
	if !heur.HasGoodSpacing {
		issues = append(issues, model.IssueSpacing)
		advice = append(advice, msgSpacing)
	}
	if !heur.HasEnoughStrokes {
		issues = append(issues, model.IssueDensity)
		advice = append(advice, msgDensity)
	}
	if !glyph.Passes(dist, s.cfg.PatternAvg, s.cfg.PatternMax) {
		issues = append(issues, model.IssuePattern)
		advice = append(advice, msgPattern)
	}

	Logger().Debug("glyph scored",
		"content", content,
		"avg", dist.Avg,
		"max", dist.Max,
		"score", total)

	return s.finish(model.ModeGlyph, total, dist, heur, issues, advice, msgGlyphPass)
}

// glyphComposite never increases as either distance grows.
func (s *Scorer) glyphComposite(dist model.Distance, heur model.Heuristics) int {
	pattern := math.Max(0, 1-dist.Avg/s.cfg.PatternAvg)
	maxScore := math.Max(0, 1-dist.Max/s.cfg.PatternMax)
	return clampScore(100 * (weightPattern*pattern +
		weightMax*maxScore +
		weightSize*boolScore(heur.HasGoodSize) +
		weightSpacing*boolScore(heur.HasGoodSpacing) +
		weightStrokes*boolScore(heur.HasEnoughStrokes)))
}

func (s *Scorer) freeFormResult(content string, points []model.Point, heur model.Heuristics) model.Result {
	expected := ExpectedPoints(content)
	enough := len(points) >= expected

	composite := 100 * (freeWeightSize*boolScore(heur.HasGoodSize) +
		freeWeightSpacing*boolScore(heur.HasGoodSpacing) +
		freeWeightStrokes*boolScore(enough))
	total := clampScore(composite)

	var issues []model.Issue
	var advice []string
	if !heur.HasGoodSize {
		issues = append(issues, model.IssueSize)
		advice = append(advice, msgSize)
	}
	if !heur.HasGoodSpacing {
		issues = append(issues, model.IssueSpacing)
		advice = append(advice, msgSpacing)
	}
	if !heur.HasEnoughStrokes {
		issues = append(issues, model.IssueDensity)
		advice = append(advice, msgDensity)
	}
	if !enough {
		issues = append(issues, model.IssuePointCount)
		advice = append(advice, fmt.Sprintf(msgFreeDensity, expected))
	}

	Logger().Debug("free-form scored",
		"content", content,
		"points", len(points),
		"expected", expected,
		"score", total)

	return s.finish(model.ModeFreeForm, total, model.Distance{}, heur, issues, advice, msgFreePass)
}

func (s *Scorer) finish(mode model.Mode, total int, dist model.Distance, heur model.Heuristics, issues []model.Issue, advice []string, passMsg string) model.Result {
	res := model.Result{
		Score:      &total,
		Passed:     total >= s.cfg.PassThreshold,
		Issues:     issues,
		Mode:       mode,
		Distance:   dist,
		Heuristics: heur,
	}
	if res.Passed {
		res.Feedback = passMsg
		return res
	}
	if len(advice) == 0 {
		advice = []string{msgCloser}
	}
	res.Feedback = msgRetry + " " + strings.Join(advice, ". ")
	return res
}

// ExpectedPoints is the free-form lower bound on captured points for content.
func ExpectedPoints(content string) int {
	return utf8.RuneCountInString(content) * pointsPerChar
}

func boolScore(ok bool) float64 {
	if ok {
		return 1.0
	}
	return 0.5
}

func clampScore(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
