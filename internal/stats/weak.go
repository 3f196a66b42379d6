package stats

import "github.com/verte-zerg/scribble/internal/model"

// SelectWeakItems returns the top lowest pass-rate items; ties fall back to average score.
func SelectWeakItems(aggs []model.ItemAggregate, top int) []model.ItemAggregate {
	if len(aggs) == 0 {
		return nil
	}
	candidates := make([]model.ItemAggregate, len(aggs))
	copy(candidates, aggs)
	sortWeakest(candidates)
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	return candidates[:top]
}
