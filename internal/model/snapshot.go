package model

import "time"

const SchemaVersion = 2

const (
	TrendUp   = "UP"
	TrendDown = "DOWN"
	TrendFlat = "FLAT"
)

// IndexQuote is one market index reading in the indicator side-channel.
type IndexQuote struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Change string  `json:"change"`
	Trend  string  `json:"trend"`
}

// Status records the outcome of the most recent worker run. A failed run
// rewrites the prior snapshot with OK=false, leaving derived state intact.
type Status struct {
	OK            bool      `json:"ok"`
	LastError     string    `json:"last_error,omitempty"`
	LastSuccessAt time.Time `json:"last_success_at"`
}

// Digest is the rolling bullet view for one (region, sector) pair.
type Digest struct {
	Region    Region    `json:"region"`
	Sector    Sector    `json:"sector"`
	Bullets   []string  `json:"bullets"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MorningBrief is the once-per-day composite view for a region. DayKey is
// the generation calendar day in display-timezone terms; a brief is not
// regenerated while the stored DayKey matches the current day.
type MorningBrief struct {
	Region      Region    `json:"region"`
	Title       string    `json:"title"`
	Bullets     []string  `json:"bullets"`
	WhatToWatch []string  `json:"what_to_watch,omitempty"`
	DayKey      string    `json:"day_key"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Snapshot is the single persisted document. It is read at the start of a
// run, merged with the run's output and overwritten atomically at the end;
// an absent snapshot is an empty baseline, never an error.
type Snapshot struct {
	SchemaVersion int                     `json:"schema_version"`
	GeneratedAt   time.Time               `json:"generated_at"`
	RunID         string                  `json:"run_id,omitempty"`
	Status        Status                  `json:"status"`
	Indices       map[string][]IndexQuote `json:"indices,omitempty"`
	Livewire      []NewsItem              `json:"livewire"`
	Digests       map[string]Digest       `json:"digests,omitempty"`
	Briefs        map[Region]MorningBrief `json:"briefs,omitempty"`
}

// DigestKey addresses one digest inside Snapshot.Digests.
func DigestKey(region Region, sector Sector) string {
	return string(region) + ":" + string(sector)
}

// EmptySnapshot is the cold-start baseline.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		SchemaVersion: SchemaVersion,
		Livewire:      []NewsItem{},
	}
}
