package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
)

// DirSource reads collections previously written by Dump.
type DirSource struct {
	Dir    string
	Logger *slog.Logger
}

func NewDirSource(dir string, logger *slog.Logger) *DirSource {
	return &DirSource{Dir: dir, Logger: logger}
}

func (s *DirSource) Load(ctx context.Context) (domain.Collections, error) {
	var c domain.Collections

	if err := s.read(FileUsers, &c.Users); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Collections{}, fmt.Errorf("%w: %s", ErrMissingCollection, s.path(FileUsers))
		}
		return domain.Collections{}, err
	}

	optional := []struct {
		name string
		v    any
	}{
		{FileReputationHistory, &c.ReputationHistory},
		{FileQuestions, &c.Questions},
		{FileArticles, &c.Articles},
		{FileTags, &c.Tags},
	}
	for _, o := range optional {
		err := s.read(o.name, o.v)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist):
			s.Logger.Warn("collection_missing", "file", s.path(o.name))
		default:
			return domain.Collections{}, err
		}
	}

	s.Logger.Info("collections_loaded",
		"dir", s.Dir,
		"users", len(c.Users),
		"questions", len(c.Questions),
		"articles", len(c.Articles),
		"tags", len(c.Tags),
		"reputation_events", len(c.ReputationHistory),
	)
	return c, nil
}

func (s *DirSource) path(name string) string {
	return filepath.Join(s.Dir, name+".json")
}

func (s *DirSource) read(name string, target any) error {
	raw, err := os.ReadFile(s.path(name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s: %w", s.path(name), err)
	}
	return nil
}
