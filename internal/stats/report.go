package stats

import (
	"context"
	"io"
	"strings"

	"github.com/verte-zerg/scribble/internal/model"
	"github.com/verte-zerg/scribble/internal/store"
)

const weakItemCount = 5

// Report contains precomputed data for stats rendering.
type Report struct {
	Attempts []model.AttemptAggregate
	Items    []model.ItemAggregate
	Weak     []model.ItemAggregate
	Top      []string
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	attempts, err := st.ListAttempts(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	window := cfg.Window
	if window <= 0 {
		window = len(attempts)
	}
	items, err := st.ItemAggregates(ctx, window, cfg.Category)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Attempts: attempts,
		Items:    items,
		Weak:     SelectWeakItems(items, weakItemCount),
		Top:      TopItemsByAttempts(items, weakItemCount),
	}, nil
}

// Render writes the whole report to w, fitting curves into width columns.
func (r Report) Render(w io.Writer, window, width int) error {
	if err := RenderSummary(w, r.Attempts); err != nil {
		return err
	}
	if len(r.Attempts) == 0 {
		return nil
	}
	if err := RenderCurve(w, r.Attempts, window, width); err != nil {
		return err
	}
	if err := RenderItemTable(w, "Per-Item (Windowed)", r.Items); err != nil {
		return err
	}
	if len(r.Weak) > 0 {
		if err := RenderItemTable(w, "Needs Practice", r.Weak); err != nil {
			return err
		}
	}
	if line := r.MostPracticed(); line != "" {
		if _, err := printer.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// MostPracticed lists the most attempted items on one line.
func (r Report) MostPracticed() string {
	if len(r.Top) == 0 {
		return ""
	}
	return "Most practiced: " + strings.Join(r.Top, ", ")
}
