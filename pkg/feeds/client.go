// Package feeds discovers market news through region- and sector-targeted
// RSS search queries and deduplicates the combined results.
package feeds

import (
	"context"
	"time"

	"marketwire/internal/model"
)

// RawItem is one discovered story before filtering and classification.
type RawItem struct {
	Title       string
	Link        string
	Description string
	Published   time.Time
	SourceName  string
	SourceURL   string
	ImageURL    string

	// HintSector is the sector the query that surfaced this item was
	// designed to find; a classification prior, not a verdict.
	HintSector    model.Sector
	Region        model.Region
	ViaAggregator bool
}

// Query is a single feed search request.
type Query struct {
	Region      model.Region
	HintSector  model.Sector
	Terms       string
	WindowHours int
}

// FeedClient executes one search query against an external feed endpoint.
type FeedClient interface {
	Search(ctx context.Context, q Query) ([]RawItem, error)
}
