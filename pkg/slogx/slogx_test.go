package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/userreport/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{
		Service: "userreport",
		Version: "test",
		Env:     "test",
		Level:   "info",
		Output:  &buf,
	})

	logger.Info("hello", "users", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "hello", record["msg"])
	require.Equal(t, "userreport", record["service"])
	require.EqualValues(t, 3, record["users"])
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, slogx.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, slogx.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, slogx.ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, slogx.ParseLevel("nonsense"))
}

func TestTransportUsesContextLogger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := slogx.WithRunID(slogx.WithContext(context.Background(), logger), "run-1")

	client := &http.Client{Transport: slogx.NewTransport(nil, slogx.Discard())}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/users?key=secret", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Contains(t, buf.String(), `"run_id":"run-1"`)
	require.Contains(t, buf.String(), `"path":"/users"`)
	require.Contains(t, buf.String(), `"status":418`)
	require.NotContains(t, buf.String(), "secret")
}
