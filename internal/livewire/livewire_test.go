package livewire

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"marketwire/internal/model"
)

func item(key string, region model.Region, sector model.Sector, published time.Time) model.NewsItem {
	return model.NewsItem{
		StoryKey:    key,
		Region:      region,
		Sector:      sector,
		Sectors:     []model.Sector{sector},
		Impact:      model.ImpactLow,
		Headline:    "headline " + key,
		PublishedAt: published,
	}
}

func TestMergeByStoryKeepsRicherContent(t *testing.T) {
	now := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)

	old := item("k1", model.RegionGlobal, model.SectorFinance, now.Add(-2*time.Hour))
	old.Story = "A full narrative from the prior run."
	old.Keypoints = []string{"a", "b"}

	fresh := item("k1", model.RegionGlobal, model.SectorGeneral, now.Add(-time.Hour))
	fresh.Story = ""

	got := MergeByStory([]model.NewsItem{old}, []model.NewsItem{fresh})

	assert.Equal(t, 1, len(got))
	// Narrative never regresses from populated to empty.
	assert.Equal(t, old.Story, got[0].Story)
	assert.Equal(t, old.Keypoints, got[0].Keypoints)
	// Non-GENERAL sector wins over GENERAL.
	assert.Equal(t, model.SectorFinance, got[0].Sector)
	// Recency moves forward.
	assert.Equal(t, fresh.PublishedAt, got[0].PublishedAt)
}

func TestMergePreservesEnrichment(t *testing.T) {
	now := time.Now().UTC()

	enriched := item("k1", model.RegionGlobal, model.SectorFinance, now.Add(-3*time.Hour))
	enriched.Story = "A rewritten, enriched narrative."
	enriched.Headline = "Enriched headline"
	enriched.LLM = true

	rediscovered := item("k1", model.RegionGlobal, model.SectorFinance, now.Add(-time.Hour))
	rediscovered.Story = "feed snippet"

	got := MergeByStory([]model.NewsItem{enriched}, []model.NewsItem{rediscovered})

	assert.Equal(t, 1, len(got))
	assert.Equal(t, true, got[0].LLM)
	assert.Equal(t, "Enriched headline", got[0].Headline)
	assert.Equal(t, enriched.Story, got[0].Story)
}

func TestMergeIdempotent(t *testing.T) {
	now := time.Now().UTC()
	a := item("k1", model.RegionUSA, model.SectorMining, now)
	a.Story = "narrative"

	once := MergeByStory([]model.NewsItem{a}, []model.NewsItem{a})
	twice := MergeByStory(once, []model.NewsItem{a})

	assert.Equal(t, once, twice)
	assert.Equal(t, 1, len(twice))
}

func TestMergeByIDKeepsDistinctCards(t *testing.T) {
	now := time.Now().UTC()

	// Same story under two sector views: two separate presentation cards.
	techCard := item("k1", model.RegionGlobal, model.SectorTechnology, now)
	finCard := item("k1", model.RegionGlobal, model.SectorFinance, now)

	got := MergeByID([]model.NewsItem{techCard}, []model.NewsItem{finCard})
	assert.Equal(t, 2, len(got))
}

func TestEvictExpired(t *testing.T) {
	now := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)
	ttl := 24 * time.Hour

	fresh := item("fresh", model.RegionGlobal, model.SectorFinance, now.Add(-2*time.Hour))
	stale := item("stale", model.RegionGlobal, model.SectorFinance, now.Add(-30*time.Hour))
	undated := item("undated", model.RegionGlobal, model.SectorFinance, time.Time{})

	got := EvictExpired([]model.NewsItem{fresh, stale, undated}, now, ttl)

	assert.Equal(t, 1, len(got))
	assert.Equal(t, "fresh", got[0].StoryKey)
}

func TestEvictAllIsValid(t *testing.T) {
	now := time.Now().UTC()
	stale := item("stale", model.RegionGlobal, model.SectorFinance, now.Add(-48*time.Hour))

	got := EvictExpired([]model.NewsItem{stale}, now, 24*time.Hour)
	assert.Equal(t, 0, len(got))
	assert.NotEqual(t, nil, got)
}

func TestEnforceQuotaBound(t *testing.T) {
	now := time.Now().UTC()

	var items []model.NewsItem
	for i := 0; i < 20; i++ {
		it := item(string(rune('a'+i)), model.RegionGlobal, model.SectorFinance, now.Add(-time.Duration(i)*time.Minute))
		items = append(items, it)
	}
	one := item("high", model.RegionGlobal, model.SectorFinance, now.Add(-5*time.Hour))
	one.Impact = model.ImpactHigh
	items = append(items, one)

	got := EnforceQuota(items, 10)

	assert.Equal(t, 10, len(got))
	// Impact representation guarantee: the lone HIGH item is present.
	highs := 0
	for _, it := range got {
		if it.Impact == model.ImpactHigh {
			highs++
		}
	}
	assert.Equal(t, 1, highs)
}

func TestEnforceQuotaBucketCaps(t *testing.T) {
	now := time.Now().UTC()

	var items []model.NewsItem
	for i := 0; i < 10; i++ {
		it := item(string(rune('a'+i)), model.RegionGlobal, model.SectorFinance, now.Add(-time.Duration(i)*time.Minute))
		it.Impact = model.ImpactHigh
		items = append(items, it)
	}

	got := EnforceQuota(items, 10)

	// A flood of HIGH items is held to the bucket cap.
	assert.Equal(t, bucketCap(10), len(got))
	// Most recent first within the bucket.
	assert.Equal(t, "a", got[0].StoryKey)
}

func TestEnforceQuotaEmpty(t *testing.T) {
	got := EnforceQuota(nil, 10)
	assert.Equal(t, 0, len(got))
}

func TestSortWire(t *testing.T) {
	now := time.Now().UTC()

	low := item("low", model.RegionGlobal, model.SectorFinance, now)
	high := item("high", model.RegionGlobal, model.SectorFinance, now.Add(-4*time.Hour))
	high.Impact = model.ImpactHigh
	medNew := item("mednew", model.RegionGlobal, model.SectorFinance, now)
	medNew.Impact = model.ImpactMedium
	medOld := item("medold", model.RegionGlobal, model.SectorFinance, now.Add(-time.Hour))
	medOld.Impact = model.ImpactMedium

	wire := []model.NewsItem{low, medOld, medNew, high}
	SortWire(wire)

	assert.Equal(t, "high", wire[0].StoryKey)
	assert.Equal(t, "mednew", wire[1].StoryKey)
	assert.Equal(t, "medold", wire[2].StoryKey)
	assert.Equal(t, "low", wire[3].StoryKey)
}
