package model

import (
	"fmt"
	"time"
)

type Region string

const (
	RegionGlobal    Region = "GLOBAL"
	RegionIndonesia Region = "INDONESIA"
	RegionUSA       Region = "USA"
)

// Regions returns all markets in processing order.
func Regions() []Region {
	return []Region{RegionGlobal, RegionIndonesia, RegionUSA}
}

type Sector string

const (
	SectorGeneral    Sector = "GENERAL"
	SectorTechnology Sector = "TECHNOLOGY"
	SectorFinance    Sector = "FINANCE"
	SectorMining     Sector = "MINING"
	SectorHealthcare Sector = "HEALTHCARE"
	SectorRegulation Sector = "REGULATION"
	SectorConsumer   Sector = "CONSUMER"
)

// Sectors returns every label including the GENERAL catch-all.
func Sectors() []Sector {
	return []Sector{
		SectorGeneral,
		SectorTechnology,
		SectorFinance,
		SectorMining,
		SectorHealthcare,
		SectorRegulation,
		SectorConsumer,
	}
}

// KeywordSectors returns the labels that can be matched from text.
// GENERAL is only ever assigned as a default, never by keyword.
func KeywordSectors() []Sector {
	return []Sector{
		SectorTechnology,
		SectorFinance,
		SectorMining,
		SectorHealthcare,
		SectorRegulation,
		SectorConsumer,
	}
}

func ValidSector(s string) bool {
	for _, sec := range Sectors() {
		if string(sec) == s {
			return true
		}
	}
	return false
}

type Impact string

const (
	ImpactHigh   Impact = "HIGH"
	ImpactMedium Impact = "MEDIUM"
	ImpactLow    Impact = "LOW"
)

func ValidImpact(s string) bool {
	return s == string(ImpactHigh) || s == string(ImpactMedium) || s == string(ImpactLow)
}

// ImpactRank orders impacts for sorting; unknown values rank below LOW.
func ImpactRank(i Impact) int {
	switch i {
	case ImpactHigh:
		return 3
	case ImpactMedium:
		return 2
	case ImpactLow:
		return 1
	}
	return 0
}

type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type NewsItem struct {
	StoryKey    string    `json:"story_key"`
	Region      Region    `json:"region"`
	Sector      Sector    `json:"sector"`
	Sectors     []Sector  `json:"sectors,omitempty"`
	Impact      Impact    `json:"impact"`
	Headline    string    `json:"headline"`
	Keypoints   []string  `json:"keypoints,omitempty"`
	Story       string    `json:"story,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Sources     []Source  `json:"sources,omitempty"`
	LLM         bool      `json:"llm"`
}

// ID is the presentation identity. The same story can appear as separate
// cards under different region/sector views, all sharing one StoryKey.
func (n NewsItem) ID() string {
	return fmt.Sprintf("%s:%s:%s", n.StoryKey, n.Region, n.Sector)
}

// PrimarySource returns the first listed source, if any.
func (n NewsItem) PrimarySource() Source {
	if len(n.Sources) == 0 {
		return Source{}
	}
	return n.Sources[0]
}

// Expired reports whether the item falls outside the retention window.
// Items without a parseable publish time are treated as maximally stale.
func (n NewsItem) Expired(now time.Time, ttl time.Duration) bool {
	if n.PublishedAt.IsZero() {
		return true
	}
	return n.PublishedAt.Before(now.Add(-ttl))
}
