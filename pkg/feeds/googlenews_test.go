package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"marketwire/internal/model"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>search results</title>
<item>
  <title>Fed Holds Rates Steady - Reuters</title>
  <link>https://news.google.com/rss/articles/abc123</link>
  <pubDate>Mon, 17 Aug 2026 08:00:00 GMT</pubDate>
  <description>&lt;a href="#"&gt;The Federal Reserve kept rates unchanged.&lt;/a&gt;</description>
  <source url="https://www.reuters.com">Reuters</source>
  <enclosure url="https://img.example.com/fed.jpg" type="image/jpeg" length="0"/>
</item>
<item>
  <title>Missing link item</title>
  <pubDate>Mon, 17 Aug 2026 09:00:00 GMT</pubDate>
</item>
</channel>
</rss>`

func TestSearchParsesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEqual(t, "", r.URL.Query().Get("q"))
		assert.NotEqual(t, "", r.URL.Query().Get("ceid"))
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	client := NewGoogleNewsClient(5 * time.Second)
	client.baseURL = srv.URL

	items, err := client.Search(context.Background(), Query{
		Region:      model.RegionUSA,
		HintSector:  model.SectorFinance,
		Terms:       "US markets banking",
		WindowHours: 24,
	})
	assert.Equal(t, nil, err)

	// The link-less item is dropped.
	assert.Equal(t, 1, len(items))

	got := items[0]
	assert.Equal(t, "Fed Holds Rates Steady", got.Title)
	assert.Equal(t, "https://news.google.com/rss/articles/abc123", got.Link)
	assert.Equal(t, "Reuters", got.SourceName)
	assert.Equal(t, "https://www.reuters.com", got.SourceURL)
	assert.Equal(t, "https://img.example.com/fed.jpg", got.ImageURL)
	assert.Equal(t, model.SectorFinance, got.HintSector)
	assert.Equal(t, true, got.ViaAggregator)
	assert.Equal(t, 2026, got.Published.Year())
}

func TestSearchFeedDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewGoogleNewsClient(5 * time.Second)
	client.baseURL = srv.URL

	_, err := client.Search(context.Background(), Query{Region: model.RegionGlobal})
	assert.NotEqual(t, nil, err)
}

func TestQueryPlanShape(t *testing.T) {
	plan := QueryPlan(model.RegionIndonesia, 24)

	// One query per keyword sector, one broad region query, plus the
	// supplementary broad queries.
	assert.Equal(t, len(model.KeywordSectors())+1+len(broadQueries), len(plan))

	generalCount := 0
	for _, q := range plan {
		assert.Equal(t, model.RegionIndonesia, q.Region)
		assert.Equal(t, 24, q.WindowHours)
		if q.HintSector == model.SectorGeneral {
			generalCount++
		}
	}
	assert.Equal(t, 1+len(broadQueries), generalCount)
}
