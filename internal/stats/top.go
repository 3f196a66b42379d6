package stats

import (
	"sort"

	"github.com/verte-zerg/scribble/internal/model"
)

// TopItemsByAttempts returns the n most practiced items as "category/content" keys.
func TopItemsByAttempts(aggs []model.ItemAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.ItemAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Attempts == items[j].Attempts {
			return itemKey(items[i]) < itemKey(items[j])
		}
		return items[i].Attempts > items[j].Attempts
	})
	n = min(n, len(items))
	out := make([]string, 0, n)
	for _, item := range items[:n] {
		out = append(out, itemKey(item))
	}
	return out
}

func itemKey(agg model.ItemAggregate) string {
	return agg.Category + "/" + agg.Content
}
