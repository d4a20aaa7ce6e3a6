package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"marketwire/internal/model"
)

func wireItem(key string, region model.Region, sector model.Sector, impact model.Impact, published time.Time) model.NewsItem {
	return model.NewsItem{
		StoryKey:    key,
		Region:      region,
		Sector:      sector,
		Impact:      impact,
		Headline:    "headline " + key,
		PublishedAt: published,
	}
}

func TestBuildDigestsGroupsByRegionSector(t *testing.T) {
	now := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)
	b := NewBuilder(time.UTC)

	wire := []model.NewsItem{
		wireItem("a", model.RegionGlobal, model.SectorFinance, model.ImpactLow, now),
		wireItem("b", model.RegionGlobal, model.SectorFinance, model.ImpactHigh, now.Add(-time.Hour)),
		wireItem("c", model.RegionIndonesia, model.SectorMining, model.ImpactLow, now),
	}

	got := b.BuildDigests(wire, now)

	assert.Equal(t, 2, len(got))

	fin := got[model.DigestKey(model.RegionGlobal, model.SectorFinance)]
	assert.Equal(t, 2, len(fin.Bullets))
	// HIGH impact leads regardless of recency.
	assert.Equal(t, "headline b", fin.Bullets[0])

	mining := got[model.DigestKey(model.RegionIndonesia, model.SectorMining)]
	assert.Equal(t, model.RegionIndonesia, mining.Region)
	assert.Equal(t, 1, len(mining.Bullets))
}

func TestBuildDigestsPrefersKeypoints(t *testing.T) {
	now := time.Now().UTC()
	b := NewBuilder(time.UTC)

	item := wireItem("a", model.RegionUSA, model.SectorTechnology, model.ImpactLow, now)
	item.Keypoints = []string{"chips rallied on export news", "second", "third"}

	got := b.BuildDigests([]model.NewsItem{item}, now)
	d := got[model.DigestKey(model.RegionUSA, model.SectorTechnology)]
	assert.Equal(t, "chips rallied on export news", d.Bullets[0])
}

func TestBuildBriefsSameDayIdempotent(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Jakarta")
	b := NewBuilder(loc)

	now := time.Date(2026, 8, 17, 2, 0, 0, 0, time.UTC) // 09:00 WIB
	today := now.In(loc).Format("2006-01-02")

	wire := []model.NewsItem{
		wireItem("a", model.RegionGlobal, model.SectorFinance, model.ImpactHigh, now.Add(-time.Hour)),
	}

	first, fresh := b.BuildBriefs(nil, wire, now)
	assert.Equal(t, 1, len(fresh))
	assert.Equal(t, model.RegionGlobal, fresh[0])
	assert.Equal(t, today, first[model.RegionGlobal].DayKey)

	// A later run the same day keeps the stored brief untouched.
	later := now.Add(3 * time.Hour)
	second, fresh2 := b.BuildBriefs(first, wire, later)
	assert.Equal(t, 0, len(fresh2))
	assert.Equal(t, first[model.RegionGlobal].GeneratedAt, second[model.RegionGlobal].GeneratedAt)

	// The next calendar day regenerates.
	nextDay := now.Add(24 * time.Hour)
	third, fresh3 := b.BuildBriefs(first, wire, nextDay)
	assert.Equal(t, 1, len(fresh3))
	assert.NotEqual(t, first[model.RegionGlobal].DayKey, third[model.RegionGlobal].DayKey)
}

func TestBuildBriefsEmptyRegionKeepsPrior(t *testing.T) {
	b := NewBuilder(time.UTC)
	now := time.Now().UTC()

	prior := map[model.Region]model.MorningBrief{
		model.RegionUSA: {Region: model.RegionUSA, DayKey: "2026-08-16", Title: "old"},
	}

	got, fresh := b.BuildBriefs(prior, nil, now)
	assert.Equal(t, 0, len(fresh))
	assert.Equal(t, "old", got[model.RegionUSA].Title)
	// Regions with no items and no prior brief stay absent.
	_, ok := got[model.RegionGlobal]
	assert.Equal(t, false, ok)
}

func TestComposeBriefWhatToWatch(t *testing.T) {
	b := NewBuilder(time.UTC)
	now := time.Now().UTC()

	wire := []model.NewsItem{
		wireItem("h", model.RegionGlobal, model.SectorFinance, model.ImpactHigh, now),
		wireItem("m", model.RegionGlobal, model.SectorMining, model.ImpactMedium, now),
		wireItem("l", model.RegionGlobal, model.SectorConsumer, model.ImpactLow, now),
	}

	got, _ := b.BuildBriefs(nil, wire, now)
	brief := got[model.RegionGlobal]

	assert.Equal(t, 2, len(brief.WhatToWatch))
	assert.Equal(t, 3, len(brief.Bullets))
}

func TestRenderBrief(t *testing.T) {
	text := renderBrief(model.MorningBrief{
		Title:       "GLOBAL Morning Brief, 17 Aug 2026",
		Bullets:     []string{"one", "two"},
		WhatToWatch: []string{"rates"},
	})

	assert.Equal(t, true, strings.Contains(text, "* one"))
	assert.Equal(t, true, strings.Contains(text, "What to watch:"))
}
