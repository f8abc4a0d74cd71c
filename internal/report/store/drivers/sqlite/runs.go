package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
)

type runsRepo struct {
	q querier
}

const runColumns = `id, snapshot_id, window_start, window_end, user_count, row_count, skipped_count, output_path, created_at`

func (r *runsRepo) CreateRun(ctx context.Context, run domain.Run) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO report_runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, mapStringNull(run.SnapshotID), run.WindowStart, run.WindowEnd,
		run.Users, run.Rows, run.Skipped, run.OutputPath, toMillis(run.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *runsRepo) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+runColumns+` FROM report_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return scanRuns(rows)
}

func (r *runsRepo) ListRunsForSnapshot(ctx context.Context, snapshotID string) ([]domain.Run, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+runColumns+` FROM report_runs
		WHERE snapshot_id = ?
		ORDER BY created_at DESC, id DESC`, snapshotID)
	if err != nil {
		return nil, err
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]domain.Run, error) {
	defer rows.Close()

	var out []domain.Run
	for rows.Next() {
		var (
			run      domain.Run
			snapshot sql.NullString
			created  int64
		)
		if err := rows.Scan(
			&run.ID, &snapshot, &run.WindowStart, &run.WindowEnd,
			&run.Users, &run.Rows, &run.Skipped, &run.OutputPath, &created,
		); err != nil {
			return nil, err
		}
		run.SnapshotID = mapNullString(snapshot)
		run.CreatedAt = fromMillis(created)
		out = append(out, run)
	}
	return out, rows.Err()
}
