// Package fetch pulls article pages to extract excerpt text used as
// rewrite context. Everything here is best-effort with hard timeouts; a
// failed fetch just means the feed snippet is used instead.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxExcerptChars = 1200
	userAgent       = "Mozilla/5.0 (compatible; marketwire/1.0)"
)

// ArticleFetcher fetches pages with a bounded number of simultaneous
// outbound requests so bursts never overwhelm article hosts.
type ArticleFetcher struct {
	httpClient *http.Client
	sem        chan struct{}
}

func NewArticleFetcher(timeout time.Duration, maxConcurrent int) *ArticleFetcher {
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	return &ArticleFetcher{
		httpClient: &http.Client{Timeout: timeout},
		sem:        make(chan struct{}, maxConcurrent),
	}
}

// Excerpt returns the first paragraphs of the article at url, capped to a
// length that keeps rewrite prompts cheap.
func (f *ArticleFetcher) Excerpt(ctx context.Context, url string) (string, error) {
	select {
	case f.sem <- struct{}{}:
		defer func() { <-f.sem }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build article request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("article fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("article fetch: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("article parse: %w", err)
	}

	var sb strings.Builder
	doc.Find("article p, main p, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if len(text) < 40 {
			return true // skip captions and nav fragments
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
		return sb.Len() < maxExcerptChars
	})

	excerpt := sb.String()
	if len(excerpt) > maxExcerptChars {
		excerpt = excerpt[:maxExcerptChars]
	}
	if excerpt == "" {
		return "", fmt.Errorf("article parse: no paragraph text in %s", url)
	}
	return excerpt, nil
}
