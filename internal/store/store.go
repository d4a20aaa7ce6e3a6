// Package store persists the single snapshot document between runs.
// Loading tolerates an absent snapshot (cold start); saving is the one
// operation whose failure must surface as a run failure.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"marketwire/internal/config"
	"marketwire/internal/model"
)

// Store reads and writes the persisted snapshot. Load returns (nil, nil)
// when no snapshot exists yet; that is a valid empty baseline.
type Store interface {
	Load(ctx context.Context) (*model.Snapshot, error)
	Save(ctx context.Context, snap *model.Snapshot) error
	Exists(ctx context.Context) (bool, error)
}

// decodeSnapshot parses stored snapshot bytes. A document written under a
// different schema version is treated as absent, not migrated: the next
// run rebuilds from an empty baseline.
func decodeSnapshot(data []byte) (*model.Snapshot, error) {
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if snap.SchemaVersion != model.SchemaVersion {
		return nil, nil
	}
	return &snap, nil
}

// New selects a backend from configuration.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case "", "file":
		return NewFileStore(cfg.SnapshotPath), nil
	case "redis":
		return NewRedisStore(cfg.RedisURL)
	case "s3":
		return NewS3Store(ctx, cfg.S3Bucket, cfg.S3Key)
	}
	return nil, fmt.Errorf("unknown snapshot store backend %q", cfg.StoreBackend)
}
