package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
	"github.com/aussiebroadwan/userreport/internal/report/store"
)

// LatestSnapshot selects the most recent snapshot.
const LatestSnapshot = "latest"

// SnapshotSource reloads the collections of a stored snapshot.
type SnapshotSource struct {
	Snapshots store.Snapshots
	// ID is a snapshot id, or LatestSnapshot / empty for the newest one.
	ID     string
	Logger *slog.Logger
}

func NewSnapshotSource(snapshots store.Snapshots, id string, logger *slog.Logger) *SnapshotSource {
	return &SnapshotSource{Snapshots: snapshots, ID: id, Logger: logger}
}

func (s *SnapshotSource) Load(ctx context.Context) (domain.Collections, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Collections{}, err
	}
	return snap.Collections, nil
}

// Snapshot loads the selected snapshot with its metadata.
func (s *SnapshotSource) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var (
		snap domain.Snapshot
		err  error
	)
	if s.ID == "" || s.ID == LatestSnapshot {
		snap, err = s.Snapshots.GetLatestSnapshot(ctx)
	} else {
		snap, err = s.Snapshots.GetSnapshot(ctx, s.ID)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load snapshot %q: %w", s.ID, err)
	}

	s.Logger.Info("snapshot_loaded",
		"snapshot_id", snap.ID,
		"source", snap.Source,
		"created_at", snap.CreatedAt,
		"users", len(snap.Collections.Users),
	)
	return snap, nil
}
