package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so transactional work goes through Tx explicitly.
type Store interface {
	Snapshots() Snapshots
	Runs() Runs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Snapshots interface {
	// CreateSnapshot stores the snapshot header and every collection payload.
	// Run it inside a transaction so a snapshot is never half written.
	CreateSnapshot(ctx context.Context, s domain.Snapshot) error

	// GetSnapshot loads a snapshot with its collections.
	GetSnapshot(ctx context.Context, id string) (domain.Snapshot, error)

	// GetLatestSnapshot loads the most recently created snapshot.
	GetLatestSnapshot(ctx context.Context) (domain.Snapshot, error)

	// ListSnapshots returns summaries, newest first.
	ListSnapshots(ctx context.Context) ([]domain.SnapshotSummary, error)
}

type Runs interface {
	CreateRun(ctx context.Context, r domain.Run) error

	// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)

	ListRunsForSnapshot(ctx context.Context, snapshotID string) ([]domain.Run, error)
}
