package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
	"github.com/aussiebroadwan/userreport/internal/report/export"
	"github.com/aussiebroadwan/userreport/internal/report/service"
	"github.com/aussiebroadwan/userreport/internal/report/source"
	"github.com/aussiebroadwan/userreport/internal/report/store"
	"github.com/aussiebroadwan/userreport/internal/report/store/drivers/sqlite"
	"github.com/aussiebroadwan/userreport/pkg/idx"
	"github.com/aussiebroadwan/userreport/pkg/slogx"
	"github.com/aussiebroadwan/userreport/pkg/so4tsdk"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	processedDataName = "processed_user_data"
)

// Application wires the report pipeline to its inputs and outputs.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	reports *service.ReportService

	// Out receives the console summary tables.
	Out io.Writer
	now func() time.Time
}

// New creates an Application with its logger and history database ready.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "userreport",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		Out: os.Stdout,
		now: time.Now,
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.reports = service.NewReportService(app.logger)
	app.reports.Now = func() time.Time { return app.now() }

	return app, nil
}

// initDatabase opens the history database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Debug("database migrations applied", "file", app.cfg.DatabaseFile)
	return nil
}

// Close releases the database.
func (app *Application) Close() error {
	return app.db.Close()
}

// Run loads the collections, builds the report, writes the CSV and the
// processed JSON, records the run, and prints a summary.
func (app *Application) Run(ctx context.Context) (domain.Run, error) {
	if err := app.cfg.Validate(); err != nil {
		return domain.Run{}, err
	}
	window, err := app.cfg.Window()
	if err != nil {
		return domain.Run{}, err
	}

	started := app.now()
	runID := idx.NewAt(started).String()
	ctx = slogx.WithRunID(slogx.WithContext(ctx, app.logger), runID)
	logger := slogx.FromContext(ctx)

	collections, snapshotID, err := app.load(ctx, logger)
	if err != nil {
		return domain.Run{}, err
	}

	index, report := app.reports.Build(collections, window)

	if _, err := export.WriteJSON(app.cfg.DataDir, processedDataName, index.Users()); err != nil {
		return domain.Run{}, fmt.Errorf("write processed data: %w", err)
	}

	name := export.ReportName(app.cfg.StartDate, app.cfg.EndDate)
	path, err := export.WriteCSV(app.cfg.OutputDir, name, started, report)
	if err != nil {
		return domain.Run{}, fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written", "path", path, "rows", len(report.Rows))

	for _, s := range report.Skipped {
		logger.Warn("user left out of report",
			"user", s.Key.String(),
			"missing_column", s.Column,
			"link", s.Link,
		)
	}

	run := domain.Run{
		ID:          runID,
		SnapshotID:  snapshotID,
		WindowStart: window.Start,
		WindowEnd:   window.End,
		Users:       index.Len(),
		Rows:        len(report.Rows),
		Skipped:     len(report.Skipped),
		OutputPath:  path,
		CreatedAt:   started,
	}
	if err := app.db.Runs().CreateRun(ctx, run); err != nil {
		return domain.Run{}, fmt.Errorf("record run: %w", err)
	}

	export.Summary(app.Out, report, app.cfg.Top)
	return run, nil
}

// load picks the input named by the config. Fresh inputs are stored as a
// snapshot so the run can be repeated later with a different window.
func (app *Application) load(ctx context.Context, logger *slog.Logger) (domain.Collections, string, error) {
	if app.cfg.Snapshot != "" {
		snap, err := source.NewSnapshotSource(app.db.Snapshots(), app.cfg.Snapshot, logger).Snapshot(ctx)
		if err != nil {
			return domain.Collections{}, "", err
		}
		return snap.Collections, snap.ID, nil
	}

	var (
		src    source.Source
		origin string
	)
	if app.cfg.NoAPI {
		logger.Info("loading collections from JSON files", "dir", app.cfg.DataDir)
		src = source.NewDirSource(app.cfg.DataDir, logger)
		origin = "dir:" + app.cfg.DataDir
	} else {
		client, err := app.newClient()
		if err != nil {
			return domain.Collections{}, "", err
		}
		src = source.NewAPISource(client, logger)
		origin = app.cfg.URL
	}

	collections, err := src.Load(ctx)
	if err != nil {
		return domain.Collections{}, "", err
	}

	if !app.cfg.NoAPI {
		if err := source.Dump(app.cfg.DataDir, collections); err != nil {
			return domain.Collections{}, "", fmt.Errorf("dump collections: %w", err)
		}
	}

	snap := domain.Snapshot{
		ID:          idx.NewAt(app.now()).String(),
		Source:      origin,
		CreatedAt:   app.now(),
		Collections: collections,
	}
	err = app.db.WithTx(ctx, func(tx store.Tx) error {
		return tx.Snapshots().CreateSnapshot(ctx, snap)
	})
	if err != nil {
		return domain.Collections{}, "", fmt.Errorf("store snapshot: %w", err)
	}
	logger.Info("snapshot stored", "snapshot_id", snap.ID)

	return collections, snap.ID, nil
}

func (app *Application) newClient() (*so4tsdk.Client, error) {
	client, err := so4tsdk.NewClient(app.cfg.URL, app.cfg.Token, app.cfg.Key)
	if err != nil {
		return nil, err
	}
	if app.cfg.MaxRetries >= 0 {
		client.MaxRetries = uint64(app.cfg.MaxRetries)
	}
	if app.cfg.APITimeout > 0 {
		client.HTTPClient.Timeout = app.cfg.APITimeout
	}
	return client, nil
}

// History prints stored runs, newest first. limit <= 0 prints all.
func (app *Application) History(ctx context.Context, limit int) error {
	runs, err := app.db.Runs().ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	export.Runs(app.Out, runs)
	return nil
}

// Snapshots prints stored snapshots, newest first.
func (app *Application) Snapshots(ctx context.Context) error {
	snaps, err := app.db.Snapshots().ListSnapshots(ctx)
	if err != nil {
		return err
	}
	export.Snapshots(app.Out, snaps)
	return nil
}
