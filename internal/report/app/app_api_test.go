package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/userreport/internal/report/source"
	"github.com/stretchr/testify/require"
)

func serveJSON(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}

func TestRunAgainstAPI(t *testing.T) {
	ts := fixedNow.Unix()

	mux := http.NewServeMux()
	mux.Handle("GET /api/2.3/filters/create", serveJSON(map[string]any{
		"items": []map[string]any{{"filter": "!custom"}},
	}))
	mux.Handle("GET /api/2.3/users", serveJSON(map[string]any{
		"items": []map[string]any{
			{"user_id": -1, "display_name": "Community"},
			{"user_id": 10, "display_name": "alice", "account_id": 100, "is_deactivated": false,
				"creation_date": ts - 86400, "last_access_date": ts},
		},
	}))
	mux.Handle("GET /api/2.3/users/{ids}/reputation-history", serveJSON(map[string]any{
		"items": []map[string]any{{"user_id": 10, "creation_date": ts - 60, "reputation_change": 10}},
	}))
	mux.Handle("GET /api/2.3/questions", serveJSON(map[string]any{
		"items": []map[string]any{{
			"question_id":   1,
			"owner":         map[string]any{"user_id": 10, "display_name": "alice"},
			"creation_date": ts - 3600,
		}},
	}))
	mux.Handle("GET /api/2.3/articles", serveJSON(map[string]any{"items": []any{}}))
	mux.Handle("GET /api/v3/users", serveJSON(map[string]any{
		"page": 1, "totalPages": 1,
		"items": []map[string]any{{"id": 10, "email": "alice@example.com", "role": "Moderator"}},
	}))
	mux.Handle("GET /api/v3/tags", serveJSON(map[string]any{"page": 1, "totalPages": 1, "items": []any{}}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dataDir := t.TempDir()
	outDir := t.TempDir()
	app, _ := newTestApp(t, Config{
		URL:          srv.URL,
		Token:        "tok",
		Key:          "key",
		DataDir:      dataDir,
		OutputDir:    outDir,
		DatabaseFile: filepath.Join(t.TempDir(), "history.db"),
		MaxRetries:   1,
	})

	run, err := app.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, run.Rows)

	records := readCSV(t, run.OutputPath)
	require.Equal(t, []string{"10", "alice", "10"}, records[1][:3])
	require.Contains(t, records[1], "alice@example.com")
	require.Contains(t, records[1], "True") // moderator

	// raw collections are dumped so the next run can use --no-api
	for _, name := range []string{source.FileUsers, source.FileQuestions, source.FileTags} {
		require.FileExists(t, filepath.Join(dataDir, name+".json"))
	}
}
