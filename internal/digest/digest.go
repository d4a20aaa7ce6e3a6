// Package digest derives the secondary read views from the merged item
// set: rolling per-region-per-sector digests and the once-per-day morning
// brief. Both are consumers of the livewire, not part of the pipeline core.
package digest

import (
	"fmt"
	"time"

	"marketwire/internal/livewire"
	"marketwire/internal/model"
)

const (
	maxDigestBullets = 5
	maxBriefBullets  = 6
	maxWatchItems    = 4
)

// Builder derives read views. The location fixes the calendar day used
// for brief idempotency and display stamps.
type Builder struct {
	loc *time.Location
}

func NewBuilder(loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{loc: loc}
}

// BuildDigests groups the wire by (region, sector) and renders a short
// bullet view for each non-empty group.
func (b *Builder) BuildDigests(wire []model.NewsItem, now time.Time) map[string]model.Digest {
	grouped := make(map[string][]model.NewsItem)
	for _, item := range wire {
		key := model.DigestKey(item.Region, item.Sector)
		grouped[key] = append(grouped[key], item)
	}

	out := make(map[string]model.Digest, len(grouped))
	for key, items := range grouped {
		livewire.SortWire(items)

		bullets := make([]string, 0, maxDigestBullets)
		for _, item := range items {
			bullets = append(bullets, bullet(item))
			if len(bullets) == maxDigestBullets {
				break
			}
		}

		out[key] = model.Digest{
			Region:    items[0].Region,
			Sector:    items[0].Sector,
			Bullets:   bullets,
			UpdatedAt: now,
		}
	}
	return out
}

// BuildBriefs composes the morning brief for each region, at most once per
// calendar day: a region whose stored brief carries today's day key is
// returned unchanged. Fresh returns the keys generated this call.
func (b *Builder) BuildBriefs(prior map[model.Region]model.MorningBrief, wire []model.NewsItem, now time.Time) (map[model.Region]model.MorningBrief, []model.Region) {
	today := now.In(b.loc).Format("2006-01-02")

	out := make(map[model.Region]model.MorningBrief, len(model.Regions()))
	var fresh []model.Region

	for _, region := range model.Regions() {
		if old, ok := prior[region]; ok && old.DayKey == today {
			out[region] = old
			continue
		}

		regional := filterRegion(wire, region)
		if len(regional) == 0 {
			// Nothing to brief on; retry on a later run today.
			if old, ok := prior[region]; ok {
				out[region] = old
			}
			continue
		}

		out[region] = b.composeBrief(region, regional, today, now)
		fresh = append(fresh, region)
	}
	return out, fresh
}

func (b *Builder) composeBrief(region model.Region, items []model.NewsItem, dayKey string, now time.Time) model.MorningBrief {
	livewire.SortWire(items)

	bullets := make([]string, 0, maxBriefBullets)
	for _, item := range items {
		bullets = append(bullets, bullet(item))
		if len(bullets) == maxBriefBullets {
			break
		}
	}

	var watch []string
	for _, item := range items {
		if item.Impact == model.ImpactLow {
			continue
		}
		watch = append(watch, item.Headline)
		if len(watch) == maxWatchItems {
			break
		}
	}

	return model.MorningBrief{
		Region:      region,
		Title:       fmt.Sprintf("%s Morning Brief, %s", region, now.In(b.loc).Format("2 Jan 2006")),
		Bullets:     bullets,
		WhatToWatch: watch,
		DayKey:      dayKey,
		GeneratedAt: now,
	}
}

// bullet prefers the first keypoint over the raw headline.
func bullet(item model.NewsItem) string {
	if len(item.Keypoints) > 0 && item.Keypoints[0] != "" {
		return item.Keypoints[0]
	}
	return item.Headline
}

func filterRegion(wire []model.NewsItem, region model.Region) []model.NewsItem {
	var out []model.NewsItem
	for _, item := range wire {
		if item.Region == region {
			out = append(out, item)
		}
	}
	return out
}
