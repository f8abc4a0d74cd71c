package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
	"github.com/aussiebroadwan/userreport/internal/report/source"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 7, 1, 12, 0, 0, 0, time.Local)

func ptr[T any](v T) *T { return &v }

func profiled(id int64, name string, created int64) domain.User {
	return domain.User{
		UserID:         id,
		AccountID:      domain.Some(id * 10),
		DisplayName:    name,
		CreationDate:   created,
		LastAccessDate: created,
		IsDeactivated:  ptr(false),
		Email:          domain.Some(name + "@example.com"),
		Title:          domain.Blank[string](),
		Department:     domain.Blank[string](),
		ExternalID:     domain.Blank[string](),
		Moderator:      domain.Some(false),
	}
}

func seedDataDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	ts := fixedNow.Unix()
	c := domain.Collections{
		Users: []domain.User{
			profiled(10, "alice", ts-86400*30),
			profiled(20, "bob", ts-86400*10),
		},
		ReputationHistory: []domain.ReputationEvent{
			{UserID: 20, CreationDate: ts - 86400*5, ReputationChange: 15},
			{UserID: 10, CreationDate: ts - 86400*400, ReputationChange: 5},
		},
		Questions: []domain.Question{{
			ID:           1,
			Owner:        domain.Owner{UserID: ptr(int64(10)), DisplayName: "alice"},
			CreationDate: ts - 86400*6,
			Answers: []domain.Answer{{
				ID:           2,
				QuestionID:   1,
				Owner:        domain.Owner{UserID: ptr(int64(20)), DisplayName: "bob"},
				CreationDate: ts - 86400*6 + 7200,
				IsAccepted:   true,
			}},
		}},
	}
	require.NoError(t, source.Dump(dir, c))
	return dir
}

func newTestApp(t *testing.T, cfg Config) (*Application, *bytes.Buffer) {
	t.Helper()

	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	var out bytes.Buffer
	app.Out = &out
	app.now = func() time.Time { return fixedNow }
	return app, &out
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestRunFromDataDirThenSnapshot(t *testing.T) {
	ctx := context.Background()
	dataDir := seedDataDir(t)
	outDir := t.TempDir()
	dbFile := filepath.Join(t.TempDir(), "history.db")

	app, out := newTestApp(t, Config{
		NoAPI:        true,
		DataDir:      dataDir,
		OutputDir:    outDir,
		DatabaseFile: dbFile,
		Top:          10,
	})

	first, err := app.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(outDir, "2024-07-01_user_metrics.csv"), first.OutputPath)
	require.Equal(t, 2, first.Users)
	require.Equal(t, 2, first.Rows)
	require.Zero(t, first.Skipped)
	require.NotEmpty(t, first.SnapshotID)
	require.Contains(t, out.String(), "alice")

	records := readCSV(t, first.OutputPath)
	require.Len(t, records, 3)
	require.Equal(t, "User ID", records[0][0])
	require.Equal(t, "20", records[1][0]) // bob leads on net reputation
	require.Equal(t, "15", records[1][2])
	require.FileExists(t, filepath.Join(dataDir, "processed_user_data.json"))

	t.Run("rebuild from snapshot with a window", func(t *testing.T) {
		start := fixedNow.AddDate(0, 0, -30).Format(time.DateOnly)
		end := fixedNow.AddDate(0, 0, 1).Format(time.DateOnly)

		again, _ := newTestApp(t, Config{
			Snapshot:     "latest",
			StartDate:    start,
			EndDate:      end,
			DataDir:      t.TempDir(),
			OutputDir:    outDir,
			DatabaseFile: dbFile,
		})

		second, err := again.Run(ctx)
		require.NoError(t, err)
		require.Equal(t, first.SnapshotID, second.SnapshotID)
		require.Equal(t, filepath.Join(outDir, "2024-07-01_user_metrics_"+start+"_to_"+end+".csv"), second.OutputPath)

		records := readCSV(t, second.OutputPath)
		require.Len(t, records, 3)
		// alice's only reputation event is older than the window
		require.Equal(t, []string{"10", "alice", "0"}, records[2][:3])
	})

	t.Run("history lists both runs", func(t *testing.T) {
		out.Reset()
		require.NoError(t, app.History(ctx, 0))
		require.Contains(t, out.String(), first.ID)
		require.Contains(t, out.String(), "all time")

		out.Reset()
		require.NoError(t, app.Snapshots(ctx))
		require.Contains(t, out.String(), first.SnapshotID)
		require.Contains(t, out.String(), "dir:"+dataDir)
	})
}

func TestRunWithMissingUsers(t *testing.T) {
	app, _ := newTestApp(t, Config{
		NoAPI:        true,
		DataDir:      t.TempDir(),
		OutputDir:    t.TempDir(),
		DatabaseFile: filepath.Join(t.TempDir(), "history.db"),
	})

	_, err := app.Run(context.Background())
	require.ErrorIs(t, err, source.ErrMissingCollection)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	app, _ := newTestApp(t, Config{
		DataDir:      t.TempDir(),
		OutputDir:    t.TempDir(),
		DatabaseFile: filepath.Join(t.TempDir(), "history.db"),
	})

	_, err := app.Run(context.Background())
	require.ErrorIs(t, err, ErrMissingURL)
}
