// Package livewire maintains the merged, TTL-bounded set of news items
// eligible for display.
package livewire

import (
	"sort"
	"time"

	"marketwire/internal/model"
)

// MergeByStory combines two item sets keyed by story identity. Used when a
// region's previously-classified stories meet freshly reclassified ones
// before quota enforcement.
func MergeByStory(prev, next []model.NewsItem) []model.NewsItem {
	return merge(prev, next, func(n model.NewsItem) string { return n.StoryKey })
}

// MergeByID combines two item sets keyed by presentation identity
// (storyKey:region:sector). Used for the final cross-run livewire merge,
// where the same story may appear as several region/sector cards.
func MergeByID(prev, next []model.NewsItem) []model.NewsItem {
	return merge(prev, next, func(n model.NewsItem) string { return n.ID() })
}

func merge(prev, next []model.NewsItem, key func(model.NewsItem) string) []model.NewsItem {
	index := make(map[string]int, len(prev))
	out := make([]model.NewsItem, 0, len(prev)+len(next))

	for _, item := range prev {
		k := key(item)
		if i, ok := index[k]; ok {
			out[i] = mergeItem(out[i], item)
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	for _, item := range next {
		k := key(item)
		if i, ok := index[k]; ok {
			out[i] = mergeItem(out[i], item)
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}

// mergeItem resolves a key conflict by keeping the union of richer fields.
// The enriched version of a story is the base when exactly one side has
// been rewritten; otherwise the more recent one is. Populated fields are
// never regressed to empty, and GENERAL never displaces a real sector.
func mergeItem(a, b model.NewsItem) model.NewsItem {
	base, other := a, b
	switch {
	case a.LLM && !b.LLM:
		// keep a as base
	case b.LLM && !a.LLM:
		base, other = b, a
	case b.PublishedAt.After(a.PublishedAt):
		base, other = b, a
	}

	out := base
	if out.Headline == "" {
		out.Headline = other.Headline
	}
	if out.Story == "" {
		out.Story = other.Story
	}
	if len(out.Keypoints) == 0 {
		out.Keypoints = other.Keypoints
	}
	if out.ImageURL == "" {
		out.ImageURL = other.ImageURL
	}
	if len(out.Sources) == 0 {
		out.Sources = other.Sources
	}
	if out.Sector == model.SectorGeneral && other.Sector != "" && other.Sector != model.SectorGeneral {
		out.Sector = other.Sector
		out.Sectors = other.Sectors
	}
	if other.PublishedAt.After(out.PublishedAt) {
		out.PublishedAt = other.PublishedAt
	}
	out.LLM = a.LLM || b.LLM
	return out
}

// EvictExpired drops every item older than the retention window. This is
// the only removal mechanism in the pipeline; an empty result is valid.
func EvictExpired(items []model.NewsItem, now time.Time, ttl time.Duration) []model.NewsItem {
	out := make([]model.NewsItem, 0, len(items))
	for _, item := range items {
		if item.Expired(now, ttl) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SortWire orders items for presentation: impact rank descending, then
// recency descending.
func SortWire(items []model.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := model.ImpactRank(items[i].Impact), model.ImpactRank(items[j].Impact)
		if ri != rj {
			return ri > rj
		}
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
}
