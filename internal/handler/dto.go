package handler

type SourceResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type NewsItemResponse struct {
	ID          string           `json:"id"`
	StoryKey    string           `json:"story_key"`
	Region      string           `json:"region"`
	Sector      string           `json:"sector"`
	Sectors     []string         `json:"sectors"`
	Impact      string           `json:"impact"`
	Headline    string           `json:"headline"`
	Keypoints   []string         `json:"keypoints"`
	Story       string           `json:"story"`
	ImageURL    string           `json:"image_url,omitempty"`
	PublishedAt string           `json:"published_at"`
	Sources     []SourceResponse `json:"sources"`
	LLM         bool             `json:"llm"`
}

type IndexQuoteResponse struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Change string  `json:"change"`
	Trend  string  `json:"trend"`
}

type StatusResponse struct {
	OK            bool   `json:"ok"`
	LastError     string `json:"last_error,omitempty"`
	LastSuccessAt string `json:"last_success_at,omitempty"`
}

type SnapshotResponse struct {
	Available     bool                            `json:"available"`
	SchemaVersion int                             `json:"schema_version,omitempty"`
	GeneratedAt   string                          `json:"generated_at,omitempty"`
	Status        StatusResponse                  `json:"status"`
	Indices       map[string][]IndexQuoteResponse `json:"indices,omitempty"`
	Livewire      []NewsItemResponse              `json:"livewire"`
}

type LivewireResponse struct {
	Available   bool               `json:"available"`
	GeneratedAt string             `json:"generated_at,omitempty"`
	Items       []NewsItemResponse `json:"items"`
	Total       int                `json:"total"`
}

type DigestResponse struct {
	Available bool     `json:"available"`
	Region    string   `json:"region"`
	Sector    string   `json:"sector"`
	Bullets   []string `json:"bullets"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

type BriefResponse struct {
	Available   bool     `json:"available"`
	Region      string   `json:"region"`
	Title       string   `json:"title,omitempty"`
	Bullets     []string `json:"bullets"`
	WhatToWatch []string `json:"what_to_watch"`
	DayKey      string   `json:"day_key,omitempty"`
	GeneratedAt string   `json:"generated_at,omitempty"`
}
