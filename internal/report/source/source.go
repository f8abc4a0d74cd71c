// Package source loads the raw collections a report is built from: live from
// the API, from JSON files in a data directory, or from a stored snapshot.
package source

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
	"github.com/aussiebroadwan/userreport/internal/report/export"
)

// ErrMissingCollection is returned when the user collection cannot be found.
// Every other collection may be absent and defaults to empty.
var ErrMissingCollection = errors.New("source: user collection missing")

// Collection file names, shared by Dump and DirSource.
const (
	FileUsers             = "users"
	FileReputationHistory = "reputation_history"
	FileQuestions         = "questions"
	FileArticles          = "articles"
	FileTags              = "tags"
)

type Source interface {
	Load(ctx context.Context) (domain.Collections, error)
}

// Dump writes each collection to dir as <name>.json so a later run can
// reload it with DirSource.
func Dump(dir string, c domain.Collections) error {
	files := []struct {
		name string
		v    any
	}{
		{FileUsers, orEmpty(c.Users)},
		{FileReputationHistory, orEmpty(c.ReputationHistory)},
		{FileQuestions, orEmpty(c.Questions)},
		{FileArticles, orEmpty(c.Articles)},
		{FileTags, orEmpty(c.Tags)},
	}
	for _, f := range files {
		if _, err := export.WriteJSON(dir, f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// orEmpty keeps dumps as [] instead of null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
