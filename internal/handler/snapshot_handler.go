package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"marketwire/internal/model"
)

// SnapshotStore is the read surface the handlers need. Load returns
// (nil, nil) when no snapshot has been written yet.
type SnapshotStore interface {
	Load(ctx context.Context) (*model.Snapshot, error)
}

type SnapshotHandler struct {
	store SnapshotStore
}

func NewSnapshotHandler(store SnapshotStore) *SnapshotHandler {
	return &SnapshotHandler{store: store}
}

func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
	snap, ok := h.loadSnapshot(c)
	if !ok {
		return
	}
	if snap == nil {
		c.JSON(http.StatusOK, SnapshotResponse{
			Available: false,
			Status:    StatusResponse{OK: false, LastError: "snapshot not yet available"},
			Livewire:  []NewsItemResponse{},
		})
		return
	}

	indices := make(map[string][]IndexQuoteResponse, len(snap.Indices))
	for region, quotes := range snap.Indices {
		out := make([]IndexQuoteResponse, 0, len(quotes))
		for _, q := range quotes {
			out = append(out, IndexQuoteResponse{
				Symbol: q.Symbol,
				Name:   q.Name,
				Value:  q.Value,
				Change: q.Change,
				Trend:  q.Trend,
			})
		}
		indices[region] = out
	}

	c.JSON(http.StatusOK, SnapshotResponse{
		Available:     true,
		SchemaVersion: snap.SchemaVersion,
		GeneratedAt:   snap.GeneratedAt.Format(time.RFC3339),
		Status:        statusResponse(snap.Status),
		Indices:       indices,
		Livewire:      itemResponses(snap.Livewire),
	})
}

func (h *SnapshotHandler) GetLivewire(c *gin.Context) {
	snap, ok := h.loadSnapshot(c)
	if !ok {
		return
	}
	if snap == nil {
		c.JSON(http.StatusOK, LivewireResponse{Available: false, Items: []NewsItemResponse{}})
		return
	}

	items := snap.Livewire
	if region := c.Query("region"); region != "" {
		parsed, valid := parseRegion(region)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid region"})
			return
		}
		items = filterItems(items, func(n model.NewsItem) bool { return n.Region == parsed })
	}
	if sector := c.Query("sector"); sector != "" {
		upper := strings.ToUpper(sector)
		if !model.ValidSector(upper) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sector"})
			return
		}
		items = filterItems(items, func(n model.NewsItem) bool { return string(n.Sector) == upper })
	}

	total := len(items)
	if limit := getQueryLimit(c); limit < len(items) {
		items = items[:limit]
	}

	c.JSON(http.StatusOK, LivewireResponse{
		Available:   true,
		GeneratedAt: snap.GeneratedAt.Format(time.RFC3339),
		Items:       itemResponses(items),
		Total:       total,
	})
}

func (h *SnapshotHandler) GetDigest(c *gin.Context) {
	region, valid := parseRegion(c.Param("region"))
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid region"})
		return
	}
	sector := strings.ToUpper(c.Param("sector"))
	if !model.ValidSector(sector) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sector"})
		return
	}

	snap, ok := h.loadSnapshot(c)
	if !ok {
		return
	}
	if snap == nil {
		c.JSON(http.StatusOK, DigestResponse{
			Available: false, Region: string(region), Sector: sector, Bullets: []string{},
		})
		return
	}

	d, ok := snap.Digests[model.DigestKey(region, model.Sector(sector))]
	if !ok {
		c.JSON(http.StatusOK, DigestResponse{
			Available: false, Region: string(region), Sector: sector, Bullets: []string{},
		})
		return
	}

	c.JSON(http.StatusOK, DigestResponse{
		Available: true,
		Region:    string(d.Region),
		Sector:    string(d.Sector),
		Bullets:   d.Bullets,
		UpdatedAt: d.UpdatedAt.Format(time.RFC3339),
	})
}

func (h *SnapshotHandler) GetBrief(c *gin.Context) {
	region, valid := parseRegion(c.Param("region"))
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid region"})
		return
	}

	snap, ok := h.loadSnapshot(c)
	if !ok {
		return
	}
	if snap != nil {
		if brief, found := snap.Briefs[region]; found {
			c.JSON(http.StatusOK, BriefResponse{
				Available:   true,
				Region:      string(brief.Region),
				Title:       brief.Title,
				Bullets:     brief.Bullets,
				WhatToWatch: brief.WhatToWatch,
				DayKey:      brief.DayKey,
				GeneratedAt: brief.GeneratedAt.Format(time.RFC3339),
			})
			return
		}
	}

	c.JSON(http.StatusOK, BriefResponse{
		Available: false, Region: string(region), Bullets: []string{}, WhatToWatch: []string{},
	})
}

func (h *SnapshotHandler) GetHealth(c *gin.Context) {
	snap, err := h.store.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"snapshot": "unreadable",
		})
		return
	}

	status := gin.H{"status": "healthy", "snapshot": "present"}
	if snap == nil {
		status["snapshot"] = "absent"
	}
	c.JSON(http.StatusOK, status)
}

// loadSnapshot reads the current snapshot; a read failure is answered
// directly and signalled with ok=false. A missing snapshot is (nil, true).
func (h *SnapshotHandler) loadSnapshot(c *gin.Context) (*model.Snapshot, bool) {
	snap, err := h.store.Load(c.Request.Context())
	if err != nil {
		slog.Error("error reading snapshot", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Store error"})
		return nil, false
	}
	return snap, true
}

func itemResponses(items []model.NewsItem) []NewsItemResponse {
	out := make([]NewsItemResponse, 0, len(items))
	for _, n := range items {
		sectors := make([]string, 0, len(n.Sectors))
		for _, s := range n.Sectors {
			sectors = append(sectors, string(s))
		}
		sources := make([]SourceResponse, 0, len(n.Sources))
		for _, s := range n.Sources {
			sources = append(sources, SourceResponse{Name: s.Name, URL: s.URL})
		}
		out = append(out, NewsItemResponse{
			ID:          n.ID(),
			StoryKey:    n.StoryKey,
			Region:      string(n.Region),
			Sector:      string(n.Sector),
			Sectors:     sectors,
			Impact:      string(n.Impact),
			Headline:    n.Headline,
			Keypoints:   n.Keypoints,
			Story:       n.Story,
			ImageURL:    n.ImageURL,
			PublishedAt: n.PublishedAt.Format(time.RFC3339),
			Sources:     sources,
			LLM:         n.LLM,
		})
	}
	return out
}

func statusResponse(s model.Status) StatusResponse {
	out := StatusResponse{OK: s.OK, LastError: s.LastError}
	if !s.LastSuccessAt.IsZero() {
		out.LastSuccessAt = s.LastSuccessAt.Format(time.RFC3339)
	}
	return out
}

func filterItems(items []model.NewsItem, keep func(model.NewsItem) bool) []model.NewsItem {
	var out []model.NewsItem
	for _, n := range items {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

func parseRegion(raw string) (model.Region, bool) {
	upper := strings.ToUpper(raw)
	for _, r := range model.Regions() {
		if string(r) == upper {
			return r, true
		}
	}
	return "", false
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)
	if param == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}
	return parsed
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}
	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}
	return limit
}
