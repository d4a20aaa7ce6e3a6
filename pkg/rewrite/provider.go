// Package rewrite decides which stories get enriched by a generative text
// provider, performs the batched call, and validates what comes back.
// Enrichment is strictly best-effort: any provider failure leaves the
// batch in its pre-rewrite form.
package rewrite

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"marketwire/internal/model"
)

// Item is one story submitted for rewriting, with article context.
type Item struct {
	StoryKey string       `json:"story_key"`
	Headline string       `json:"headline"`
	Context  string       `json:"context"`
	Region   model.Region `json:"region"`
	Sector   model.Sector `json:"sector"`
	Impact   model.Impact `json:"impact"`
}

// Enriched is the provider's answer for one story, matched back to its
// input by StoryKey. Fields are validated individually before acceptance.
type Enriched struct {
	StoryKey  string   `json:"story_key"`
	Headline  string   `json:"headline"`
	Sector    string   `json:"sector"`
	Impact    string   `json:"impact"`
	Keypoints []string `json:"keypoints"`
	Story     string   `json:"story"`
}

// Provider performs one bulk rewrite call.
type Provider interface {
	Name() string
	Rewrite(ctx context.Context, batch []Item) ([]Enriched, error)
}

var errNoProviders = errors.New("rewrite: no providers configured")

// Chain tries providers in order and returns the first success.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Name() string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return strings.Join(names, ">")
}

func (c *Chain) Rewrite(ctx context.Context, batch []Item) ([]Enriched, error) {
	if len(c.providers) == 0 {
		return nil, errNoProviders
	}

	var lastErr error
	for _, p := range c.providers {
		enriched, err := p.Rewrite(ctx, batch)
		if err != nil {
			slog.Warn("rewrite provider failed", "provider", p.Name(), "error", err)
			lastErr = err
			continue
		}
		return enriched, nil
	}
	return nil, lastErr
}

// cleanJSONArray strips code fences and any prose surrounding the JSON
// array a model was asked to return.
func cleanJSONArray(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
