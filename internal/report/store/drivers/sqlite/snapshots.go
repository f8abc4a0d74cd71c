package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
)

const (
	kindUsers      = "users"
	kindReputation = "reputation_history"
	kindQuestions  = "questions"
	kindArticles   = "articles"
	kindTags       = "tags"
)

type snapshotsRepo struct {
	q querier
}

func (r *snapshotsRepo) CreateSnapshot(ctx context.Context, s domain.Snapshot) error {
	sum := s.Summarize()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO snapshots (id, source, user_count, question_count, article_count, tag_count, reputation_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Source, sum.Users, sum.Questions, sum.Articles, sum.Tags, sum.ReputationEvents, toMillis(s.CreatedAt),
	)
	if err != nil {
		return mapConstraint(err)
	}

	payloads := []struct {
		kind  string
		value any
	}{
		{kindUsers, s.Collections.Users},
		{kindReputation, s.Collections.ReputationHistory},
		{kindQuestions, s.Collections.Questions},
		{kindArticles, s.Collections.Articles},
		{kindTags, s.Collections.Tags},
	}
	for _, p := range payloads {
		blob, err := json.Marshal(p.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", p.kind, err)
		}
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO snapshot_collections (snapshot_id, kind, payload) VALUES (?, ?, ?)`,
			s.ID, p.kind, blob,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *snapshotsRepo) GetSnapshot(ctx context.Context, id string) (domain.Snapshot, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, source, created_at FROM snapshots WHERE id = ?`, id)
	return r.load(ctx, row)
}

func (r *snapshotsRepo) GetLatestSnapshot(ctx context.Context) (domain.Snapshot, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, source, created_at FROM snapshots ORDER BY created_at DESC, id DESC LIMIT 1`)
	return r.load(ctx, row)
}

func (r *snapshotsRepo) load(ctx context.Context, row interface{ Scan(...any) error }) (domain.Snapshot, error) {
	var (
		s       domain.Snapshot
		created int64
	)
	if err := row.Scan(&s.ID, &s.Source, &created); err != nil {
		return domain.Snapshot{}, mapNotFound(err)
	}
	s.CreatedAt = fromMillis(created)

	rows, err := r.q.QueryContext(ctx,
		`SELECT kind, payload FROM snapshot_collections WHERE snapshot_id = ?`, s.ID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind    string
			payload []byte
		)
		if err := rows.Scan(&kind, &payload); err != nil {
			return domain.Snapshot{}, err
		}
		if err := decodeCollection(&s.Collections, kind, payload); err != nil {
			return domain.Snapshot{}, fmt.Errorf("snapshot %s: %w", s.ID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	return s, nil
}

func decodeCollection(c *domain.Collections, kind string, payload []byte) error {
	var target any
	switch kind {
	case kindUsers:
		target = &c.Users
	case kindReputation:
		target = &c.ReputationHistory
	case kindQuestions:
		target = &c.Questions
	case kindArticles:
		target = &c.Articles
	case kindTags:
		target = &c.Tags
	default:
		return fmt.Errorf("unknown collection kind %q", kind)
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}
	return nil
}

func (r *snapshotsRepo) ListSnapshots(ctx context.Context) ([]domain.SnapshotSummary, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, source, user_count, question_count, article_count, tag_count, reputation_count, created_at
		FROM snapshots
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SnapshotSummary
	for rows.Next() {
		var (
			s       domain.SnapshotSummary
			created int64
		)
		if err := rows.Scan(&s.ID, &s.Source, &s.Users, &s.Questions, &s.Articles, &s.Tags, &s.ReputationEvents, &created); err != nil {
			return nil, err
		}
		s.CreatedAt = fromMillis(created)
		out = append(out, s)
	}
	return out, rows.Err()
}
