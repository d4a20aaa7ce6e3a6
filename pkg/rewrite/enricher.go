package rewrite

import (
	"context"
	"log/slog"
	"time"

	"marketwire/internal/model"
)

// ContextFetcher supplies an article excerpt for rewrite context.
// Implementations are best-effort; an error just means less context.
type ContextFetcher interface {
	Excerpt(ctx context.Context, url string) (string, error)
}

// Enricher runs the rewrite step for one region's items: pick the
// eligible subset, send one bulk request through the provider chain, and
// fold validated answers back in. On total failure the whole batch
// silently keeps its pre-rewrite form.
type Enricher struct {
	provider Provider
	policy   Policy
	fetcher  ContextFetcher
	timeout  time.Duration
}

func NewEnricher(provider Provider, policy Policy, fetcher ContextFetcher, timeout time.Duration) *Enricher {
	return &Enricher{
		provider: provider,
		policy:   policy,
		fetcher:  fetcher,
		timeout:  timeout,
	}
}

func (e *Enricher) EnrichRegion(ctx context.Context, items []model.NewsItem, prior map[string]model.NewsItem, now time.Time) []model.NewsItem {
	if e.provider == nil {
		return items
	}

	eligible := e.policy.Eligible(items, prior, now)
	if len(eligible) == 0 {
		return items
	}

	batch := make([]Item, len(eligible))
	for i, item := range eligible {
		batch[i] = Item{
			StoryKey: item.StoryKey,
			Headline: item.Headline,
			Context:  e.articleContext(ctx, item),
			Region:   item.Region,
			Sector:   item.Sector,
			Impact:   item.Impact,
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	enriched, err := e.provider.Rewrite(callCtx, batch)
	if err != nil {
		slog.Warn("rewrite batch failed, keeping pre-rewrite items",
			"provider", e.provider.Name(), "batch", len(batch), "error", err)
		return items
	}

	byKey := make(map[string]Enriched, len(enriched))
	for _, en := range enriched {
		byKey[en.StoryKey] = en
	}

	submitted := make(map[string]bool, len(eligible))
	for _, item := range eligible {
		submitted[item.StoryKey] = true
	}

	out := make([]model.NewsItem, len(items))
	for i, item := range items {
		if en, ok := byKey[item.StoryKey]; ok && submitted[item.StoryKey] {
			out[i] = Apply(item, en)
			continue
		}
		// Absent from the response: stays in pre-rewrite form.
		out[i] = item
	}

	slog.Info("rewrite batch applied",
		"provider", e.provider.Name(), "submitted", len(batch), "returned", len(enriched))
	return out
}

// articleContext prefers a fetched excerpt over the feed snippet.
func (e *Enricher) articleContext(ctx context.Context, item model.NewsItem) string {
	text := item.Story

	if e.fetcher != nil {
		src := item.PrimarySource()
		if src.URL != "" {
			if excerpt, err := e.fetcher.Excerpt(ctx, src.URL); err == nil && len(excerpt) > len(text) {
				text = excerpt
			}
		}
	}
	return text
}
