package store

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/scribble/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "scribble.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return st
}

func intPtr(v int) *int { return &v }

func TestInsertAndGetAttempt(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	in := model.Attempt{
		AttemptedAt: at,
		Category:    "letters",
		Content:     "a",
		Mode:        model.ModeGlyph,
		Score:       intPtr(72),
		PointCount:  3,
		AvgDistance: 0.05,
		MaxDistance: 0.12,
		Issues:      []model.Issue{model.IssueSize, model.IssuePattern},
		Surface:     model.Surface{Width: 400, Height: 300},
		Points:      []model.Point{{X: 0.3, Y: 0.3}, {X: 0.5, Y: 0.5}, {X: 0.7, Y: 0.6}},
	}
	id, err := st.InsertAttempt(ctx, in)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := st.GetAttempt(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.AttemptedAt.Equal(at) {
		t.Fatalf("unexpected time %v", got.AttemptedAt)
	}
	if got.Score == nil || *got.Score != 72 || got.Passed {
		t.Fatalf("unexpected score %v passed %v", got.Score, got.Passed)
	}
	if got.Mode != model.ModeGlyph || got.Content != "a" {
		t.Fatalf("unexpected attempt %+v", got)
	}
	if len(got.Issues) != 2 || got.Issues[1] != model.IssuePattern {
		t.Fatalf("unexpected issues %v", got.Issues)
	}
	if got.Surface.Width != 400 || len(got.Points) != 3 || got.Points[2].Y != 0.6 {
		t.Fatalf("unexpected stroke %+v %+v", got.Surface, got.Points)
	}
}

func TestInsertAttemptStoresUnmatchedDistances(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	id, err := st.InsertAttempt(ctx, model.Attempt{
		AttemptedAt: time.Now(),
		Category:    "letters",
		Content:     "b",
		Mode:        model.ModeGlyph,
		Score:       intPtr(20),
		AvgDistance: math.Inf(1),
		MaxDistance: math.Inf(1),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := st.GetAttempt(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AvgDistance != -1 || got.MaxDistance != -1 {
		t.Fatalf("expected -1 distances, got %v %v", got.AvgDistance, got.MaxDistance)
	}
}

func TestGetAttemptNotFound(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.GetAttempt(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := st.LatestAttemptID(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubSecondAttemptsKeepTimeOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	second := time.Date(2025, 3, 1, 10, 0, 5, 0, time.UTC)
	// The later attempt is inserted first so id order disagrees with time order.
	later, err := st.InsertAttempt(ctx, model.Attempt{
		AttemptedAt: second.Add(120 * time.Millisecond),
		Category:    "letters",
		Content:     "b",
		Mode:        model.ModeGlyph,
		Score:       intPtr(80),
	})
	if err != nil {
		t.Fatalf("insert later: %v", err)
	}
	earlier, err := st.InsertAttempt(ctx, model.Attempt{
		AttemptedAt: second.Add(100 * time.Millisecond),
		Category:    "letters",
		Content:     "a",
		Mode:        model.ModeGlyph,
		Score:       intPtr(70),
	})
	if err != nil {
		t.Fatalf("insert earlier: %v", err)
	}

	latest, err := st.LatestAttemptID(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest != later {
		t.Fatalf("expected latest attempt %d, got %d", later, latest)
	}
	attempts, err := st.ListAttempts(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attempts) != 2 || attempts[0].AttemptID != earlier || attempts[1].AttemptID != later {
		t.Fatalf("unexpected order: %+v", attempts)
	}
	got, err := st.GetAttempt(ctx, earlier)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.AttemptedAt.Equal(second.Add(100 * time.Millisecond)) {
		t.Fatalf("unexpected time %v", got.AttemptedAt)
	}
}

func seedAttempts(t *testing.T, st *Store) time.Time {
	t.Helper()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rows := []model.Attempt{
		{Category: "letters", Content: "a", Score: intPtr(90), Passed: true},
		{Category: "letters", Content: "a", Score: intPtr(60)},
		{Category: "words", Content: "cat", Score: intPtr(70)},
		{Category: "letters", Content: "b", Score: nil},
		{Category: "words", Content: "cat", Score: intPtr(100), Passed: true},
	}
	for i, a := range rows {
		a.AttemptedAt = base.Add(time.Duration(i) * time.Hour)
		a.Mode = model.ModeFreeForm
		if _, err := st.InsertAttempt(context.Background(), a); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	return base
}

func TestListAttemptsFilters(t *testing.T) {
	st := openTestStore(t)
	base := seedAttempts(t, st)
	ctx := context.Background()

	all, err := st.ListAttempts(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 || all[0].Content != "a" || all[4].Content != "cat" {
		t.Fatalf("unexpected attempts %+v", all)
	}
	if all[3].Score != nil {
		t.Fatalf("expected nil score for unscored attempt")
	}

	letters, err := st.ListAttempts(ctx, model.StatsConfig{Category: "letters"})
	if err != nil {
		t.Fatalf("list letters: %v", err)
	}
	if len(letters) != 3 {
		t.Fatalf("expected 3 letter attempts, got %d", len(letters))
	}

	since := base.Add(2 * time.Hour)
	recent, err := st.ListAttempts(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 attempts since, got %d", len(recent))
	}

	last, err := st.ListAttempts(ctx, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 2 || last[0].Content != "b" || last[1].Content != "cat" {
		t.Fatalf("unexpected last attempts %+v", last)
	}

	id, err := st.LatestAttemptID(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if id != last[1].AttemptID {
		t.Fatalf("expected latest id %d, got %d", last[1].AttemptID, id)
	}
}

func TestItemAggregates(t *testing.T) {
	st := openTestStore(t)
	seedAttempts(t, st)
	ctx := context.Background()

	aggs, err := st.ItemAggregates(ctx, 10, "")
	if err != nil {
		t.Fatalf("aggregates: %v", err)
	}
	byItem := map[string]model.ItemAggregate{}
	for _, agg := range aggs {
		byItem[agg.Category+"/"+agg.Content] = agg
	}
	a := byItem["letters/a"]
	if a.Attempts != 2 || a.Passed != 1 || a.ScoreSum != 150 || a.Scored != 2 {
		t.Fatalf("unexpected aggregate for a: %+v", a)
	}
	b := byItem["letters/b"]
	if b.Attempts != 1 || b.Scored != 0 || b.ScoreSum != 0 {
		t.Fatalf("unexpected aggregate for b: %+v", b)
	}

	words, err := st.ItemAggregates(ctx, 1, "words")
	if err != nil {
		t.Fatalf("aggregates words: %v", err)
	}
	if len(words) != 1 || words[0].Attempts != 1 || words[0].ScoreSum != 100 {
		t.Fatalf("unexpected windowed aggregates %+v", words)
	}

	none, err := st.ItemAggregates(ctx, 0, "")
	if err != nil || none != nil {
		t.Fatalf("expected nil for empty window, got %v %v", none, err)
	}
}
