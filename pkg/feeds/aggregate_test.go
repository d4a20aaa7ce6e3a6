package feeds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"marketwire/internal/model"
	"marketwire/pkg/classify"
)

type fakeFeedClient struct {
	byHint map[model.Sector][]RawItem
	err    map[model.Sector]error
}

func (f *fakeFeedClient) Search(_ context.Context, q Query) ([]RawItem, error) {
	if err := f.err[q.HintSector]; err != nil {
		return nil, err
	}
	items := f.byHint[q.HintSector]
	out := make([]RawItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].HintSector = q.HintSector
		out[i].Region = q.Region
	}
	return out, nil
}

func testAggregator(client FeedClient) *Aggregator {
	c := classify.NewClassifier(&classify.Lexicon{
		Sectors: map[string][]string{
			"TECHNOLOGY": {"chip", "chip shortage", "semiconductor"},
			"FINANCE":    {"bank", "market"},
		},
	})
	return NewAggregator(client, c, 24)
}

func TestGatherDeduplicatesByHintQuality(t *testing.T) {
	chipStory := RawItem{
		Title:     "Chip shortage worsens for carmakers",
		Link:      "https://example.com/chip-shortage",
		Published: time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC),
	}

	// The same story surfaces from both a GENERAL and a TECHNOLOGY query;
	// the TECHNOLOGY hint matches the content and must win.
	client := &fakeFeedClient{byHint: map[model.Sector][]RawItem{
		model.SectorGeneral:    {chipStory},
		model.SectorTechnology: {chipStory},
	}}

	got := testAggregator(client).GatherRegionNews(context.Background(), model.RegionGlobal)

	assert.Equal(t, 1, len(got))
	assert.Equal(t, model.SectorTechnology, got[0].HintSector)
}

func TestGatherTieBreaksByRecency(t *testing.T) {
	older := RawItem{
		Title:     "Market update",
		Link:      "https://example.com/update",
		Published: time.Date(2026, 8, 17, 8, 0, 0, 0, time.UTC),
	}
	newer := older
	newer.Published = older.Published.Add(2 * time.Hour)

	client := &fakeFeedClient{byHint: map[model.Sector][]RawItem{
		model.SectorMining:     {older},
		model.SectorHealthcare: {newer},
	}}

	got := testAggregator(client).GatherRegionNews(context.Background(), model.RegionGlobal)

	assert.Equal(t, 1, len(got))
	assert.Equal(t, newer.Published, got[0].Published)
}

func TestGatherSwallowsQueryFailures(t *testing.T) {
	story := RawItem{
		Title:     "Banks report steady quarter",
		Link:      "https://example.com/banks",
		Published: time.Now().UTC(),
	}

	client := &fakeFeedClient{
		byHint: map[model.Sector][]RawItem{model.SectorFinance: {story}},
		err: map[model.Sector]error{
			model.SectorTechnology: errors.New("connection refused"),
			model.SectorGeneral:    errors.New("timeout"),
		},
	}

	got := testAggregator(client).GatherRegionNews(context.Background(), model.RegionGlobal)

	assert.Equal(t, 1, len(got))
	assert.Equal(t, "https://example.com/banks", got[0].Link)
}

func TestGatherEmptyRegionIsValid(t *testing.T) {
	client := &fakeFeedClient{}
	got := testAggregator(client).GatherRegionNews(context.Background(), model.RegionIndonesia)
	assert.Equal(t, 0, len(got))
}
