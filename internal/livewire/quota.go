package livewire

import (
	"sort"

	"marketwire/internal/model"
)

// EnforceQuota bounds a view to maxTotal items with impact stratification:
// HIGH and MEDIUM each get a cap scaled from maxTotal and are taken in
// priority order by recency, then LOW fills the remaining capacity. A
// sector view keeps impact diversity instead of drowning in LOW filler.
func EnforceQuota(items []model.NewsItem, maxTotal int) []model.NewsItem {
	if maxTotal <= 0 || len(items) == 0 {
		return []model.NewsItem{}
	}

	var high, medium, low []model.NewsItem
	for _, item := range items {
		switch item.Impact {
		case model.ImpactHigh:
			high = append(high, item)
		case model.ImpactMedium:
			medium = append(medium, item)
		default:
			low = append(low, item)
		}
	}
	byRecency(high)
	byRecency(medium)
	byRecency(low)

	limit := bucketCap(maxTotal)

	out := make([]model.NewsItem, 0, maxTotal)
	out = append(out, take(high, min(limit, maxTotal))...)
	out = append(out, take(medium, min(limit, maxTotal-len(out)))...)
	out = append(out, take(low, maxTotal-len(out))...)
	return out
}

// bucketCap is the per-bucket limit for HIGH and MEDIUM: 2/5 of the view,
// at least one slot.
func bucketCap(maxTotal int) int {
	c := maxTotal * 2 / 5
	if c < 1 {
		c = 1
	}
	return c
}

func take(items []model.NewsItem, n int) []model.NewsItem {
	if n <= 0 {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

func byRecency(items []model.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
}
