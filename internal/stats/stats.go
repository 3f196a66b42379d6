// Package stats contains statistics calculations and reporting.
package stats

import (
	"io"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/verte-zerg/scribble/internal/model"
)

const sparkChars = " .:-=+*#%@"

var printer = message.NewPrinter(language.English)

// PassRate returns the share of passed attempts in [0,1].
func PassRate(attempts []model.AttemptAggregate) float64 {
	if len(attempts) == 0 {
		return 0
	}
	passed := 0
	for _, a := range attempts {
		if a.Passed {
			passed++
		}
	}
	return float64(passed) / float64(len(attempts))
}

// AverageScore returns the mean score over attempts that carry one.
// The second value is false when no attempt was scored.
func AverageScore(attempts []model.AttemptAggregate) (float64, bool) {
	sum, n := 0, 0
	for _, a := range attempts {
		if a.Score == nil {
			continue
		}
		sum += *a.Score
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// BestScore returns the highest recorded score.
func BestScore(attempts []model.AttemptAggregate) (int, bool) {
	best, ok := 0, false
	for _, a := range attempts {
		if a.Score != nil && (!ok || *a.Score > best) {
			best, ok = *a.Score, true
		}
	}
	return best, ok
}

// ScoreSeries extracts scored attempts in order.
func ScoreSeries(attempts []model.AttemptAggregate) []float64 {
	out := make([]float64, 0, len(attempts))
	for _, a := range attempts {
		if a.Score != nil {
			out = append(out, float64(*a.Score))
		}
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Downsample averages values into at most width buckets.
func Downsample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := range out {
		start := i * len(values) / width
		end := max((i+1)*len(values)/width, start+1)
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// RenderSummary prints a summary block for attempts.
func RenderSummary(w io.Writer, attempts []model.AttemptAggregate) error {
	if len(attempts) == 0 {
		_, err := printer.Fprintln(w, "No attempts found.")
		return err
	}
	lines := []string{
		"Summary",
		printer.Sprintf("Attempts: %d", len(attempts)),
		printer.Sprintf("Pass rate: %.1f%%", PassRate(attempts)*100),
	}
	if avg, ok := AverageScore(attempts); ok {
		lines = append(lines, printer.Sprintf("Avg score: %.1f", avg))
	}
	if best, ok := BestScore(attempts); ok {
		lines = append(lines, printer.Sprintf("Best score: %d", best))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := printer.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurve prints the smoothed score trend as a sparkline no wider than width.
func RenderCurve(w io.Writer, attempts []model.AttemptAggregate, window, width int) error {
	scores := ScoreSeries(attempts)
	if len(scores) == 0 {
		return nil
	}
	const label = "Score trend: "
	curve := Downsample(MovingAverage(scores, window), width-len(label))
	if _, err := printer.Fprintf(w, "%s%s\n\n", label, Sparkline(curve)); err != nil {
		return err
	}
	return nil
}

// RenderItemTable prints per-item aggregates, weakest first.
func RenderItemTable(w io.Writer, title string, aggs []model.ItemAggregate) error {
	if len(aggs) == 0 {
		_, err := printer.Fprintln(w, "No item stats found.")
		return err
	}
	rows := make([]model.ItemAggregate, len(aggs))
	copy(rows, aggs)
	sortWeakest(rows)

	if _, err := printer.Fprintln(w, title); err != nil {
		return err
	}
	headers := []string{"Category", "Item", "Attempts", "Pass Rate", "Avg Score"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		avg := "-"
		if r.Scored > 0 {
			avg = printer.Sprintf("%.1f", averageScore(r))
		}
		tableRows = append(tableRows, []string{
			r.Category,
			r.Content,
			printer.Sprintf("%d", r.Attempts),
			printer.Sprintf("%.1f%%", passRate(r)*100),
			avg,
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := printer.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := printer.Fprintln(w, "")
	return err
}

func sortWeakest(rows []model.ItemAggregate) {
	sort.SliceStable(rows, func(i, j int) bool {
		pi, pj := passRate(rows[i]), passRate(rows[j])
		if pi != pj {
			return pi < pj
		}
		ai, aj := averageScore(rows[i]), averageScore(rows[j])
		if ai != aj {
			return ai < aj
		}
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Content < rows[j].Content
	})
}

func passRate(agg model.ItemAggregate) float64 {
	if agg.Attempts == 0 {
		return 1.0
	}
	return float64(agg.Passed) / float64(agg.Attempts)
}

func averageScore(agg model.ItemAggregate) float64 {
	if agg.Scored == 0 {
		return 0
	}
	return float64(agg.ScoreSum) / float64(agg.Scored)
}
