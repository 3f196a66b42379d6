package stats

import (
	"testing"

	"github.com/verte-zerg/scribble/internal/model"
)

func TestTopItemsByAttempts(t *testing.T) {
	aggs := []model.ItemAggregate{
		{Category: "letters", Content: "b", Attempts: 4},
		{Category: "letters", Content: "a", Attempts: 4},
		{Category: "words", Content: "cat", Attempts: 1},
	}
	top := TopItemsByAttempts(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 items, got %d", len(top))
	}
	if top[0] != "letters/a" || top[1] != "letters/b" {
		t.Fatalf("unexpected order: %v", top)
	}
	if TopItemsByAttempts(aggs, 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}

func TestSelectWeakItems(t *testing.T) {
	aggs := []model.ItemAggregate{
		{Category: "letters", Content: "a", Attempts: 4, Passed: 4, ScoreSum: 360, Scored: 4},
		{Category: "letters", Content: "b", Attempts: 2, Passed: 0, ScoreSum: 140, Scored: 2},
		{Category: "letters", Content: "c", Attempts: 2, Passed: 0, ScoreSum: 100, Scored: 2},
		{Category: "words", Content: "cat", Attempts: 2, Passed: 1, ScoreSum: 170, Scored: 2},
	}
	weak := SelectWeakItems(aggs, 3)
	if len(weak) != 3 {
		t.Fatalf("expected 3 weak items, got %d", len(weak))
	}
	if weak[0].Content != "c" || weak[1].Content != "b" || weak[2].Content != "cat" {
		t.Fatalf("unexpected weak order: %+v", weak)
	}
	if got := SelectWeakItems(aggs, 0); len(got) != 4 {
		t.Fatalf("expected all items when top is 0, got %d", len(got))
	}
	if SelectWeakItems(nil, 3) != nil {
		t.Fatalf("expected nil for no aggregates")
	}
}
