package rewrite

import (
	"sort"
	"time"

	"marketwire/internal/model"
)

// MinStoryLength is the narrative length below which an item still counts
// as unenriched and a returned narrative is rejected as too thin.
const MinStoryLength = 120

// Policy bounds what gets submitted to the paid rewrite call. Lookback
// controls enrichment cost and is typically much narrower than the
// retention TTL, which controls display lifetime.
type Policy struct {
	Lookback time.Duration
	Budget   int
}

// Eligible selects the items worth rewriting this run. An item qualifies
// when it is brand-new to the prior snapshot, or was present but never
// successfully enriched and still has a thin narrative. Qualifying items
// must fall inside the lookback window; the result is capped to the
// per-region budget, most recent first.
func (p Policy) Eligible(items []model.NewsItem, prior map[string]model.NewsItem, now time.Time) []model.NewsItem {
	cutoff := now.Add(-p.Lookback)

	var eligible []model.NewsItem
	for _, item := range items {
		// Once enriched, never re-submitted.
		if item.LLM {
			continue
		}
		if old, ok := prior[item.StoryKey]; ok {
			if old.LLM {
				continue
			}
			if len(item.Story) >= MinStoryLength {
				continue
			}
		}

		if item.PublishedAt.IsZero() || item.PublishedAt.Before(cutoff) {
			continue
		}
		eligible = append(eligible, item)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].PublishedAt.After(eligible[j].PublishedAt)
	})
	if p.Budget > 0 && len(eligible) > p.Budget {
		eligible = eligible[:p.Budget]
	}
	return eligible
}
