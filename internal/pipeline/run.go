// Package pipeline orchestrates one scheduled run: discover, filter,
// classify, enrich, enforce quotas, merge with the prior snapshot, evict
// by TTL and persist atomically.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"marketwire/internal/config"
	"marketwire/internal/digest"
	"marketwire/internal/livewire"
	"marketwire/internal/model"
	"marketwire/internal/store"
	"marketwire/pkg/classify"
	"marketwire/pkg/feeds"
	"marketwire/pkg/textutil"
	"marketwire/pkg/trust"
)

// Discoverer yields a region's raw feed results, already deduplicated.
type Discoverer interface {
	GatherRegionNews(ctx context.Context, region model.Region) []feeds.RawItem
}

// RegionEnricher runs the rewrite step over one region's stories.
type RegionEnricher interface {
	EnrichRegion(ctx context.Context, items []model.NewsItem, prior map[string]model.NewsItem, now time.Time) []model.NewsItem
}

// IndicatorSource refreshes the market-index side channel.
type IndicatorSource interface {
	FetchIndices(ctx context.Context, prior map[string][]model.IndexQuote) map[string][]model.IndexQuote
}

// BriefSender delivers a freshly generated morning brief.
type BriefSender interface {
	Send(brief model.MorningBrief) error
}

type Runner struct {
	cfg        *config.Config
	discoverer Discoverer
	classifier *classify.Classifier
	trust      *trust.Filter
	enricher   RegionEnricher
	indicators IndicatorSource
	store      store.Store
	digests    *digest.Builder
	mailer     BriefSender
}

// NewRunner wires the pipeline. enricher, indicators and mailer may be
// nil; the corresponding stages are skipped.
func NewRunner(cfg *config.Config, discoverer Discoverer, classifier *classify.Classifier,
	trustFilter *trust.Filter, enricher RegionEnricher, indicators IndicatorSource,
	snapStore store.Store, builder *digest.Builder, mailer BriefSender) *Runner {
	return &Runner{
		cfg:        cfg,
		discoverer: discoverer,
		classifier: classifier,
		trust:      trustFilter,
		enricher:   enricher,
		indicators: indicators,
		store:      snapStore,
		digests:    builder,
		mailer:     mailer,
	}
}

// Run executes one full pipeline pass. Discovery, enrichment and
// indicator failures are absorbed; only a persistence write failure
// surfaces, since a failed write loses the run's work.
func (r *Runner) Run(ctx context.Context, now time.Time) error {
	runID := uuid.NewString()
	logger := slog.With("run_id", runID)

	prior, err := r.store.Load(ctx)
	if err != nil {
		logger.Warn("prior snapshot unreadable, starting from empty baseline", "error", err)
		prior = nil
	}
	if prior == nil {
		prior = model.EmptySnapshot()
	}

	var cards []model.NewsItem
	for _, region := range model.Regions() {
		regionCards := r.processRegion(ctx, logger, region, prior.Livewire, now)
		cards = append(cards, regionCards...)
		logger.Info("region processed", "region", region, "cards", len(regionCards))
	}

	wire := livewire.MergeByID(prior.Livewire, cards)
	wire = livewire.EvictExpired(wire, now, r.cfg.RetentionTTL)
	livewire.SortWire(wire)

	indices := prior.Indices
	if r.indicators != nil {
		indices = r.indicators.FetchIndices(ctx, prior.Indices)
	}

	digests := r.digests.BuildDigests(wire, now)
	briefs, freshBriefs := r.digests.BuildBriefs(prior.Briefs, wire, now)
	r.deliverBriefs(logger, briefs, freshBriefs)

	snap := &model.Snapshot{
		SchemaVersion: model.SchemaVersion,
		GeneratedAt:   r.stamp(now),
		RunID:         runID,
		Status: model.Status{
			OK:            true,
			LastSuccessAt: r.stamp(now),
		},
		Indices:  indices,
		Livewire: wire,
		Digests:  digests,
		Briefs:   briefs,
	}

	if err := r.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}

	logger.Info("run complete", "wire", len(wire), "digests", len(digests), "briefs", len(briefs))
	return nil
}

// RecordFailure rewrites the prior snapshot with the failure noted in its
// status, leaving every derived view untouched. Best-effort: if the store
// itself is the problem the attempt is logged and dropped.
func (r *Runner) RecordFailure(ctx context.Context, runErr error, now time.Time) {
	prior, err := r.store.Load(ctx)
	if err != nil || prior == nil {
		prior = model.EmptySnapshot()
	}

	prior.GeneratedAt = r.stamp(now)
	prior.Status.OK = false
	prior.Status.LastError = runErr.Error()

	if err := r.store.Save(ctx, prior); err != nil {
		slog.Error("failed to record run failure in snapshot", "error", err)
	}
}

// stamp renders an instant in the display timezone for generation
// metadata; day-key idempotency in the digest builder uses the same zone.
func (r *Runner) stamp(now time.Time) time.Time {
	if r.cfg.DisplayLocation == nil {
		return now
	}
	return now.In(r.cfg.DisplayLocation)
}

// processRegion turns raw discoveries into quota-bounded presentation
// cards for one region.
func (r *Runner) processRegion(ctx context.Context, logger *slog.Logger, region model.Region, priorWire []model.NewsItem, now time.Time) []model.NewsItem {
	raw := r.discoverer.GatherRegionNews(ctx, region)

	var untrusted, irrelevant int
	var fresh []model.NewsItem
	for _, item := range raw {
		news, ok := r.buildItem(item, region)
		if !ok {
			if !r.trusted(item) {
				untrusted++
			} else {
				irrelevant++
			}
			continue
		}
		fresh = append(fresh, news)
	}
	logger.Info("discovery filtered", "region", region,
		"raw", len(raw), "kept", len(fresh), "untrusted", untrusted, "irrelevant", irrelevant)

	priorStories, priorByKey := regionStories(priorWire, region)
	stories := livewire.MergeByStory(priorStories, fresh)

	if r.enricher != nil {
		stories = r.enricher.EnrichRegion(ctx, stories, priorByKey, now)
	}

	return r.buildCards(stories)
}

// buildItem applies trust and relevance filters, then classifies. The
// second return is false when the item was dropped.
func (r *Runner) buildItem(raw feeds.RawItem, region model.Region) (model.NewsItem, bool) {
	if !r.trusted(raw) {
		return model.NewsItem{}, false
	}
	if !r.classifier.IsMarketRelevant(raw.Title, raw.Description) {
		return model.NewsItem{}, false
	}

	sectors := r.classifier.InferSectors(raw.Title, raw.Description)
	sectors = classify.ApplyHint(sectors, raw.HintSector)

	return model.NewsItem{
		StoryKey:    textutil.StoryKey(raw.Link, raw.Title),
		Region:      region,
		Sector:      sectors[0],
		Sectors:     sectors,
		Impact:      r.classifier.InferImpact(raw.Title + " " + raw.Description),
		Headline:    raw.Title,
		Story:       raw.Description,
		ImageURL:    raw.ImageURL,
		PublishedAt: raw.Published,
		Sources:     rawSources(raw),
	}, true
}

func (r *Runner) trusted(raw feeds.RawItem) bool {
	return r.trust.IsTrusted(rawSources(raw), raw.ViaAggregator)
}

// rawSources lists the article link first, then the publisher site when
// it differs; the trust filter inspects all of them.
func rawSources(raw feeds.RawItem) []model.Source {
	sources := []model.Source{{Name: raw.SourceName, URL: raw.Link}}
	if raw.SourceURL != "" && raw.SourceURL != raw.Link {
		sources = append(sources, model.Source{Name: raw.SourceName, URL: raw.SourceURL})
	}
	return sources
}

// buildCards derives the presentation entries: one quota-bounded
// aggregated view per region plus one per sector label a story carries.
// Duplicated ids collapse in the final merge.
func (r *Runner) buildCards(stories []model.NewsItem) []model.NewsItem {
	var cards []model.NewsItem

	aggregated := livewire.EnforceQuota(stories, r.cfg.WireViewCap)
	cards = append(cards, aggregated...)

	for _, sector := range model.Sectors() {
		var view []model.NewsItem
		for _, story := range stories {
			if hasSector(story, sector) {
				view = append(view, story)
			}
		}
		for _, story := range livewire.EnforceQuota(view, r.cfg.SectorViewCap) {
			card := story
			card.Sector = sector
			cards = append(cards, card)
		}
	}
	return cards
}

func hasSector(item model.NewsItem, sector model.Sector) bool {
	if item.Sector == sector {
		return true
	}
	for _, s := range item.Sectors {
		if s == sector {
			return true
		}
	}
	return false
}

// regionStories reduces the prior wire to one entry per story for a
// region, plus a lookup by story key for the rewrite policy.
func regionStories(wire []model.NewsItem, region model.Region) ([]model.NewsItem, map[string]model.NewsItem) {
	var regional []model.NewsItem
	for _, item := range wire {
		if item.Region == region {
			regional = append(regional, item)
		}
	}
	stories := livewire.MergeByStory(nil, regional)

	byKey := make(map[string]model.NewsItem, len(stories))
	for _, s := range stories {
		byKey[s.StoryKey] = s
	}
	return stories, byKey
}

func (r *Runner) deliverBriefs(logger *slog.Logger, briefs map[model.Region]model.MorningBrief, fresh []model.Region) {
	if r.mailer == nil {
		return
	}
	for _, region := range fresh {
		if err := r.mailer.Send(briefs[region]); err != nil {
			logger.Warn("brief delivery failed", "region", region, "error", err)
		}
	}
}
