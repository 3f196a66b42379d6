package main

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/scribble/internal/analyze"
	"github.com/verte-zerg/scribble/internal/catalog"
	"github.com/verte-zerg/scribble/internal/model"
	"github.com/verte-zerg/scribble/internal/score"
)

func validPracticeConfig() model.PracticeConfig {
	defaults := score.DefaultConfig()
	rules := analyze.DefaultRules()
	return model.PracticeConfig{
		Category:      catalog.Letters,
		CanvasWidth:   defaultCanvasWidth,
		CanvasHeight:  defaultCanvasHeight,
		PassThreshold: defaults.PassThreshold,
		PatternAvg:    defaults.PatternAvg,
		PatternMax:    defaults.PatternMax,
		MinSize:       rules.MinSize,
		MaxSize:       rules.MaxSize,
		ClusterGap:    rules.ClusterGap,
		ClusterShare:  rules.MaxClusterShare,
		History:       true,
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(validPracticeConfig()); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*model.PracticeConfig)
	}{
		{"threshold high", func(c *model.PracticeConfig) { c.PassThreshold = 101 }},
		{"threshold negative", func(c *model.PracticeConfig) { c.PassThreshold = -1 }},
		{"pattern avg", func(c *model.PracticeConfig) { c.PatternAvg = 0 }},
		{"pattern max", func(c *model.PracticeConfig) { c.PatternMax = -0.1 }},
		{"canvas", func(c *model.PracticeConfig) { c.CanvasWidth = minCanvasWidth - 1 }},
		{"size order", func(c *model.PracticeConfig) { c.MinSize = c.MaxSize }},
		{"cluster gap", func(c *model.PracticeConfig) { c.ClusterGap = 0 }},
		{"cluster share", func(c *model.PracticeConfig) { c.ClusterShare = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validPracticeConfig()
			tt.mutate(&cfg)
			if err := validateConfig(cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDecodeDocument(t *testing.T) {
	input := `{"category":"letters","item":2,"surface":{"width":100,"height":50},"points":[{"x":10,"y":5},{"x":20,"y":10}]}`
	doc, err := decodeDocument(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Category != "letters" || doc.Item == nil || *doc.Item != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if len(doc.Points) != 2 || doc.Surface.Width != 100 {
		t.Fatalf("unexpected points or surface: %+v", doc)
	}

	if _, err := decodeDocument(strings.NewReader(`{"category":"letters","extra":1}`)); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := decodeDocument(strings.NewReader(`{"points":[]}`)); err == nil {
		t.Fatalf("expected missing category error")
	}
}

func TestResolveContent(t *testing.T) {
	cat := catalog.Default()
	item := 1

	got, err := resolveContent(cat, strokeDocument{Category: catalog.Letters, Item: &item})
	if err != nil || got != "b" {
		t.Fatalf("expected b, got %q (%v)", got, err)
	}
	got, err = resolveContent(cat, strokeDocument{Category: catalog.Letters, Item: &item, Content: "z"})
	if err != nil || got != "z" {
		t.Fatalf("expected explicit content to win, got %q (%v)", got, err)
	}

	outOfRange := 99
	if _, err := resolveContent(cat, strokeDocument{Category: catalog.Letters, Item: &outOfRange}); err == nil {
		t.Fatalf("expected out of range error")
	}
	if _, err := resolveContent(cat, strokeDocument{Category: "cursive", Content: "a"}); err == nil {
		t.Fatalf("expected unknown category error")
	}
	if _, err := resolveContent(cat, strokeDocument{Category: catalog.Letters}); err == nil {
		t.Fatalf("expected missing item error")
	}
}

func TestCheckOutputDropsInfiniteDistance(t *testing.T) {
	total := 40
	res := model.Result{
		Score:    &total,
		Mode:     model.ModeGlyph,
		Distance: model.Distance{Avg: math.Inf(1), Max: math.Inf(1)},
		Issues:   []model.Issue{model.IssuePattern},
		Feedback: "Keep practicing!",
	}
	out := newCheckOutput(catalog.Letters, "a", res)
	if out.AvgDistance != nil || out.MaxDistance != nil {
		t.Fatalf("expected infinite distances to be omitted")
	}
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "Distance") {
		t.Fatalf("unexpected distance in %s", data)
	}

	res.Distance = model.Distance{Avg: 0.05, Max: 0.1}
	out = newCheckOutput(catalog.Letters, "a", res)
	if out.AvgDistance == nil || *out.AvgDistance != 0.05 {
		t.Fatalf("expected finite avg distance")
	}
}

func TestWriteCheckText(t *testing.T) {
	total := 90
	avg, maxDist := 0.04, 0.08
	out := checkOutput{
		Category:    catalog.Letters,
		Content:     "a",
		Score:       &total,
		Passed:      true,
		Feedback:    "Excellent writing!",
		Mode:        model.ModeGlyph,
		AvgDistance: &avg,
		MaxDistance: &maxDist,
	}
	var buf bytes.Buffer
	if err := writeCheckText(&buf, out); err != nil {
		t.Fatalf("write: %v", err)
	}
	text := buf.String()
	for _, want := range []string{"Item: a (letters)", "Score: 90 (passed)", "Distance: avg 0.040, max 0.080", "Feedback: Excellent writing!"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in:\n%s", want, text)
		}
	}

	buf.Reset()
	if err := writeCheckText(&buf, checkOutput{Content: "a", Category: catalog.Letters, Feedback: "Please write something before checking."}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.Contains(buf.String(), "Score:") {
		t.Fatalf("expected no score line for unscored result:\n%s", buf.String())
	}
}

func TestRenderLabel(t *testing.T) {
	if got := renderLabel("a", nil); got != "a" {
		t.Fatalf("expected bare content, got %q", got)
	}
	total := 88
	if got := renderLabel("a", &model.Result{Score: &total, Passed: true}); got != "a  88  passed" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestBuildStatsConfig(t *testing.T) {
	cfg, err := buildStatsConfig(catalog.Words, "2025-02-03", 10, 5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cfg.Since == nil || cfg.Since.Day() != 3 || cfg.Last != 10 || cfg.Window != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if _, err := buildStatsConfig("cursive", "", 0, 5); err == nil {
		t.Fatalf("expected unknown category error")
	}
	if _, err := buildStatsConfig("", "03/02/2025", 0, 5); err == nil {
		t.Fatalf("expected date error")
	}
	if _, err := buildStatsConfig("", "", -1, 5); err == nil {
		t.Fatalf("expected last error")
	}
	if _, err := buildStatsConfig("", "", 0, 0); err == nil {
		t.Fatalf("expected window error")
	}
}

func TestWriteExercises(t *testing.T) {
	var buf bytes.Buffer
	if err := writeExercises(&buf, catalog.Default()); err != nil {
		t.Fatalf("write: %v", err)
	}
	text := buf.String()
	for _, want := range []string{"letters: Letter Practice (5 items, min 5 points)", "a | b | c | d | e", "sentences: Simple Sentences"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in:\n%s", want, text)
		}
	}
}
