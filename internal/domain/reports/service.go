package reports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"kpi/internal/domain/kpi"
)

// Generator turns a request into a rendered document.
type Generator interface {
	Generate(ctx context.Context, req Request) (Document, error)
}

type Recorder interface {
	RecordExport(status string)
}

type Service struct {
	generator Generator
	store     StoreAPI
	recorder  Recorder
}

func NewService(generator Generator, store StoreAPI, recorder Recorder) *Service {
	return &Service{generator: generator, store: store, recorder: recorder}
}

func NewRequest(state kpi.State) Request {
	req := Request{
		Employees: make([]EmployeeRow, 0, len(state.Employees)),
		Metrics:   make([]MetricRow, 0, len(state.Metrics)),
	}
	for _, e := range state.Employees {
		req.Employees = append(req.Employees, EmployeeRow{
			ID:         e.ID,
			Name:       e.Name,
			Plan:       e.Plan,
			Fact:       e.Fact,
			Percentage: e.Percentage,
			Grade:      e.Grade,
		})
	}
	for _, m := range state.Metrics {
		req.Metrics = append(req.Metrics, MetricRow{
			ID:         m.ID,
			Name:       m.Name,
			Plan:       m.Plan,
			Fact:       m.Fact,
			Percentage: m.Percentage,
		})
	}
	return req
}

// Export sends a recalculated state to the generator. It only reads state.
func (s *Service) Export(ctx context.Context, state kpi.State) (Document, error) {
	if s.generator == nil {
		return Document{}, ErrGeneratorUnavailable
	}
	req := NewRequest(state)

	runID := ""
	if s.store != nil {
		id, err := s.store.CreateRun(ctx, len(req.Employees), len(req.Metrics))
		if err != nil {
			slog.Warn("report run insert failed", "err", err)
		} else {
			runID = id
		}
	}

	doc, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.finish(ctx, runID, RunStatusFailed, "", err.Error())
		if errors.Is(err, ErrExportFailed) {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	if doc.Filename == "" {
		doc.Filename = DefaultFilename
	}
	if doc.ContentType == "" {
		doc.ContentType = DefaultContentType
	}
	s.finish(ctx, runID, RunStatusCompleted, doc.Filename, "")
	return doc, nil
}

func (s *Service) Runs(ctx context.Context, limit, offset int) ([]Run, error) {
	if s.store == nil {
		return []Run{}, nil
	}
	return s.store.ListRuns(ctx, limit, offset)
}

func (s *Service) finish(ctx context.Context, runID, status, filename, errMsg string) {
	if s.recorder != nil {
		s.recorder.RecordExport(status)
	}
	if s.store == nil || runID == "" {
		return
	}
	// The run must not stay "running" when the caller went away mid-export.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), runLogTimeout)
	defer cancel()
	if err := s.store.CompleteRun(ctx, runID, status, filename, errMsg); err != nil {
		slog.Warn("report run update failed", "runId", runID, "err", err)
	}
}
