package source

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
	"github.com/aussiebroadwan/userreport/internal/report/service"
	"github.com/aussiebroadwan/userreport/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleCollections() domain.Collections {
	return domain.Collections{
		Users: []domain.User{{
			UserID:         10,
			AccountID:      domain.Some(int64(100)),
			DisplayName:    "alice",
			CreationDate:   1000,
			LastAccessDate: 2000,
			Email:          domain.Blank[string](),
			Moderator:      domain.Some(false),
		}},
		ReputationHistory: []domain.ReputationEvent{{UserID: 10, CreationDate: 1500, ReputationChange: 5}},
		Questions: []domain.Question{{
			ID:           1,
			Owner:        domain.Owner{UserID: ptr(int64(10)), DisplayName: "alice"},
			CreationDate: 1100,
			Tags:         []string{"go"},
		}},
		Articles: []domain.Article{{
			ID:           3,
			Owner:        domain.Owner{DisplayName: "user4242"},
			CreationDate: 1200,
			Comments:     []domain.Comment{{ID: 9, Owner: domain.Owner{UserID: ptr(int64(10))}, CreationDate: 1300}},
		}},
		Tags: []domain.Tag{{ID: 7, Name: "go", SMEs: domain.SMEs{Users: []domain.SMEUser{{ID: 10}}, UserGroups: []domain.SMEGroup{}}}},
	}
}

func TestDumpAndReload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := sampleCollections()
	require.NoError(t, Dump(dir, want))

	for _, name := range []string{FileUsers, FileReputationHistory, FileQuestions, FileArticles, FileTags} {
		require.FileExists(t, filepath.Join(dir, name+".json"))
	}

	got, err := NewDirSource(dir, slogx.Discard()).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDirSource(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing users is fatal", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "questions.json"), []byte("[]"), 0o644))

		_, err := NewDirSource(dir, slogx.Discard()).Load(ctx)
		require.ErrorIs(t, err, ErrMissingCollection)
	})

	t.Run("other collections default to empty", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"),
			[]byte(`[{"user_id": 10, "display_name": "alice", "creation_date": 1, "last_access_date": 2}]`), 0o644))

		c, err := NewDirSource(dir, slogx.Discard()).Load(ctx)
		require.NoError(t, err)
		require.Len(t, c.Users, 1)
		require.Empty(t, c.Questions)
		require.Empty(t, c.Articles)
		require.Empty(t, c.Tags)
		require.Empty(t, c.ReputationHistory)
	})

	t.Run("null profile fields still report", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte(`[
			{"user_id": 10, "display_name": "alice", "creation_date": 1, "last_access_date": 2,
			 "account_id": 100, "is_deactivated": false, "email": "alice@example.com",
			 "title": null, "department": null, "external_id": null, "moderator": false},
			{"user_id": 20, "display_name": "bob", "creation_date": 1, "last_access_date": 2,
			 "account_id": 200, "email": "bob@example.com", "department": "", "external_id": "", "moderator": false}
		]`), 0o644))

		c, err := NewDirSource(dir, slogx.Discard()).Load(ctx)
		require.NoError(t, err)

		svc := &service.ReportService{Logger: slogx.Discard(), Now: time.Now}
		_, r := svc.Build(c, domain.DefaultWindow())

		require.Len(t, r.Rows, 1)
		require.Equal(t, "10", r.Rows[0][0])
		require.Equal(t, "", r.Rows[0][slices.Index(r.Header, "Title")])
		require.Equal(t, []domain.SkippedUser{{Key: domain.KeyOf(20), Column: "Title"}}, r.Skipped)
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte(`[]`), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tags.json"), []byte(`{not json`), 0o644))

		_, err := NewDirSource(dir, slogx.Discard()).Load(ctx)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrMissingCollection)
	})
}
