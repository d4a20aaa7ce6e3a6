package feeds

import (
	"context"
	"log/slog"
	"sync"

	"marketwire/internal/model"
	"marketwire/pkg/classify"
	"marketwire/pkg/textutil"
)

// Aggregator fans discovery queries out concurrently and deduplicates the
// combined results by URL fingerprint.
type Aggregator struct {
	client      FeedClient
	classifier  *classify.Classifier
	windowHours int
}

func NewAggregator(client FeedClient, classifier *classify.Classifier, windowHours int) *Aggregator {
	return &Aggregator{
		client:      client,
		classifier:  classifier,
		windowHours: windowHours,
	}
}

// GatherRegionNews runs the region's query plan. Every query executes
// concurrently; a failing query is logged and contributes zero items, so
// one bad feed never aborts discovery for the region.
func (a *Aggregator) GatherRegionNews(ctx context.Context, region model.Region) []RawItem {
	plan := QueryPlan(region, a.windowHours)

	var (
		mu      sync.Mutex
		results []RawItem
		wg      sync.WaitGroup
	)

	for _, q := range plan {
		wg.Add(1)
		go func(q Query) {
			defer wg.Done()
			items, err := a.client.Search(ctx, q)
			if err != nil {
				slog.Warn("discovery query failed",
					"region", q.Region, "hint", q.HintSector, "error", err)
				return
			}
			mu.Lock()
			results = append(results, items...)
			mu.Unlock()
		}(q)
	}
	wg.Wait()

	return a.dedupe(results)
}

// dedupe groups raw results by URL fingerprint. A story returned by
// several differently-hinted queries keeps the duplicate whose hint best
// matches its actual content.
func (a *Aggregator) dedupe(items []RawItem) []RawItem {
	best := make(map[string]RawItem)
	scores := make(map[string]int)
	var order []string

	for _, item := range items {
		fp := textutil.Fingerprint(item.Link)
		score := a.hintScore(item)

		current, seen := best[fp]
		if !seen {
			best[fp] = item
			scores[fp] = score
			order = append(order, fp)
			continue
		}

		if score > scores[fp] ||
			(score == scores[fp] && item.Published.After(current.Published)) {
			best[fp] = item
			scores[fp] = score
		}
	}

	out := make([]RawItem, 0, len(order))
	for _, fp := range order {
		out = append(out, best[fp])
	}
	return out
}

// hintScore rates how well a query hint reflects the item's own content:
// +2 for any non-GENERAL hint, +3 when the independently-inferred top
// sector equals the hint, +2 when the hint appears anywhere in the
// inferred set.
func (a *Aggregator) hintScore(item RawItem) int {
	score := 0
	if item.HintSector != model.SectorGeneral && item.HintSector != "" {
		score += 2
	}

	inferred := a.classifier.InferSectors(item.Title, item.Description)
	if len(inferred) > 0 && inferred[0] == item.HintSector {
		score += 3
	}
	for _, s := range inferred {
		if s == item.HintSector {
			score += 2
			break
		}
	}
	return score
}
