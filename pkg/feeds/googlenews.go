package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/rss"

	"marketwire/internal/model"
	"marketwire/pkg/textutil"
)

const googleNewsBase = "https://news.google.com/rss/search"

type locale struct {
	hl   string
	gl   string
	ceid string
}

var regionLocales = map[model.Region]locale{
	model.RegionGlobal:    {hl: "en-US", gl: "US", ceid: "US:en"},
	model.RegionIndonesia: {hl: "en-ID", gl: "ID", ceid: "ID:en"},
	model.RegionUSA:       {hl: "en-US", gl: "US", ceid: "US:en"},
}

// GoogleNewsClient searches the Google News RSS endpoint. Results arrive
// through the aggregator's redirect links, with the real publisher carried
// in each item's source element.
type GoogleNewsClient struct {
	baseURL    string
	httpClient *http.Client
	parser     *rss.Parser
}

func NewGoogleNewsClient(timeout time.Duration) *GoogleNewsClient {
	return &GoogleNewsClient{
		baseURL:    googleNewsBase,
		httpClient: &http.Client{Timeout: timeout},
		parser:     &rss.Parser{},
	}
}

func (c *GoogleNewsClient) Search(ctx context.Context, q Query) ([]RawItem, error) {
	terms := q.Terms
	if q.WindowHours > 0 {
		terms = fmt.Sprintf("%s when:%dh", terms, q.WindowHours)
	}

	loc, ok := regionLocales[q.Region]
	if !ok {
		loc = regionLocales[model.RegionGlobal]
	}

	params := url.Values{}
	params.Set("q", terms)
	params.Set("hl", loc.hl)
	params.Set("gl", loc.gl)
	params.Set("ceid", loc.ceid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed fetch: unexpected status %d", resp.StatusCode)
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed parse: %w", err)
	}

	items := make([]RawItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		raw := c.toRawItem(entry, q)
		if raw.Title == "" || raw.Link == "" {
			continue
		}
		items = append(items, raw)
	}
	return items, nil
}

func (c *GoogleNewsClient) toRawItem(entry *rss.Item, q Query) RawItem {
	raw := RawItem{
		Title:         textutil.StripMarkup(entry.Title),
		Link:          textutil.CanonicalizeURL(entry.Link),
		Description:   textutil.StripMarkup(entry.Description),
		HintSector:    q.HintSector,
		Region:        q.Region,
		ViaAggregator: true,
	}

	if entry.PubDateParsed != nil {
		raw.Published = entry.PubDateParsed.UTC()
	}

	if entry.Source != nil {
		raw.SourceName = strings.TrimSpace(entry.Source.Title)
		raw.SourceURL = textutil.CanonicalizeURL(entry.Source.URL)
	}

	if entry.Enclosure != nil && strings.HasPrefix(entry.Enclosure.Type, "image/") {
		raw.ImageURL = textutil.CanonicalizeURL(entry.Enclosure.URL)
	}

	// Google News titles carry a trailing " - Publisher" suffix.
	if raw.SourceName != "" {
		suffix := " - " + raw.SourceName
		raw.Title = strings.TrimSuffix(raw.Title, suffix)
	}

	return raw
}
