package reportshandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kpi/internal/domain/kpi"
	"kpi/internal/domain/reports"
	"kpi/internal/requestctx"
	"kpi/internal/transport/http/api"
	"kpi/internal/transport/http/middleware"
)

// StateSource yields the already recalculated board to export.
type StateSource interface {
	State() kpi.State
}

type Handler struct {
	Board   StateSource
	Reports *reports.Service
	Limit   func(http.Handler) http.Handler
}

func NewHandler(board StateSource, service *reports.Service, limit func(http.Handler) http.Handler) *Handler {
	return &Handler{Board: board, Reports: service, Limit: limit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		if h.Limit != nil {
			r.With(h.Limit).Post("/export", h.handleExport)
		} else {
			r.Post("/export", h.handleExport)
		}
		r.Get("/runs", h.handleListRuns)
	})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Reports.Export(r.Context(), h.Board.State())
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrGeneratorUnavailable):
			api.Fail(w, http.StatusServiceUnavailable, "export_unavailable", "report generator is not configured", middleware.GetRequestID(r.Context()))
		default:
			requestctx.Logger(r.Context()).Warn("report export failed", "err", err)
			api.Fail(w, http.StatusBadGateway, "export_failed", "report generation failed", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Attachment(w, doc.Filename, doc.ContentType, doc.Data)
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	page := api.ParsePage(r, 20, 100)
	runs, err := h.Reports.Runs(r.Context(), page.Limit, page.Offset)
	if err != nil {
		requestctx.Logger(r.Context()).Warn("report runs list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "runs_failed", "failed to list report runs", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, runs, middleware.GetRequestID(r.Context()))
}
