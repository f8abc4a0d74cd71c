package domain

import "time"

// Snapshot is a stored copy of the raw collections of one fetch, so a report
// can be rebuilt later for a different window without hitting the API.
type Snapshot struct {
	ID          string
	Source      string // base URL, or "dir:<path>" for file loads
	CreatedAt   time.Time
	Collections Collections
}

// SnapshotSummary describes a snapshot without its payload.
type SnapshotSummary struct {
	ID               string
	Source           string
	CreatedAt        time.Time
	Users            int
	Questions        int
	Articles         int
	Tags             int
	ReputationEvents int
}

// Summarize counts the collections of s.
func (s Snapshot) Summarize() SnapshotSummary {
	return SnapshotSummary{
		ID:               s.ID,
		Source:           s.Source,
		CreatedAt:        s.CreatedAt,
		Users:            len(s.Collections.Users),
		Questions:        len(s.Collections.Questions),
		Articles:         len(s.Collections.Articles),
		Tags:             len(s.Collections.Tags),
		ReputationEvents: len(s.Collections.ReputationHistory),
	}
}

// Run records one report build.
type Run struct {
	ID          string
	SnapshotID  string // empty when the input was not stored
	WindowStart int64
	WindowEnd   int64
	Users       int
	Rows        int
	Skipped     int
	OutputPath  string
	CreatedAt   time.Time
}
