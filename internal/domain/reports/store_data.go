package reports

import (
	"context"
	"fmt"
)

func (s *Store) CreateRun(ctx context.Context, employees, metrics int) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO report_runs (status, employee_count, metric_count)
    VALUES ($1,$2,$3)
    RETURNING id
  `, RunStatusRunning, employees, metrics).Scan(&id); err != nil {
		return "", fmt.Errorf("create report run: %w", err)
	}
	return id, nil
}

func (s *Store) CompleteRun(ctx context.Context, runID, status, filename, errMsg string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE report_runs
    SET status = $1, filename = $2, error = $3, completed_at = now()
    WHERE id = $4
  `, status, filename, errMsg, runID)
	if err != nil {
		return fmt.Errorf("complete report run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRunNotFound
	}
	return nil
}

func (s *Store) ListRuns(ctx context.Context, limit, offset int) ([]Run, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, status, employee_count, metric_count, filename, error, requested_at, completed_at
    FROM report_runs
    ORDER BY requested_at DESC
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Status, &run.Employees, &run.Metrics, &run.Filename, &run.Error, &run.RequestedAt, &run.CompletedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
