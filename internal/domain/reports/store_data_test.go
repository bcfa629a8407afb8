package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func TestStoreCreateRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO report_runs").
		WithArgs(RunStatusRunning, 3, 2).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("run-1"))

	id, err := NewStore(mock).CreateRun(context.Background(), 3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "run-1" {
		t.Fatalf("expected run-1, got %q", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreCompleteRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("UPDATE report_runs").
		WithArgs(RunStatusCompleted, "kpi-report.pdf", "", "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE report_runs").
		WithArgs(RunStatusFailed, "", "boom", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := NewStore(mock)
	if err := store.CompleteRun(context.Background(), "run-1", RunStatusCompleted, "kpi-report.pdf", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.CompleteRun(context.Background(), "missing", RunStatusFailed, "", "boom"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreListRuns(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	requested := time.Date(2026, time.January, 2, 10, 0, 0, 0, time.UTC)
	completed := requested.Add(3 * time.Second)
	mock.ExpectQuery("SELECT id, status").
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "status", "employee_count", "metric_count", "filename", "error", "requested_at", "completed_at"}).
			AddRow("run-2", RunStatusCompleted, 3, 3, "kpi-report.pdf", "", requested, &completed).
			AddRow("run-1", RunStatusFailed, 1, 0, "", "generator unavailable", requested, &completed))

	runs, err := NewStore(mock).ListRuns(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].CompletedAt == nil || !runs[0].CompletedAt.Equal(completed) {
		t.Fatalf("expected completed timestamp, got %+v", runs[0])
	}
	if runs[1].Status != RunStatusFailed || runs[1].Error != "generator unavailable" {
		t.Fatalf("unexpected failed run: %+v", runs[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
