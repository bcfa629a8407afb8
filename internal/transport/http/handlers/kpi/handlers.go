package kpihandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kpi/internal/domain/kpi"
	"kpi/internal/requestctx"
	"kpi/internal/transport/http/api"
	"kpi/internal/transport/http/middleware"
)

type Handler struct {
	Service *kpi.Service
}

func NewHandler(service *kpi.Service) *Handler {
	return &Handler{Service: service}
}

type updatePayload struct {
	Field string   `json:"field"`
	Value *float64 `json:"value"`
}

type countPayload struct {
	Value *int `json:"value"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/state", h.handleState)
	r.Get("/summary", h.handleSummary)

	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleAddEmployee)
		r.Patch("/{id}", h.handleUpdateEmployee)
		r.Delete("/{id}", h.handleDeleteEmployee)
	})

	r.Route("/metrics", func(r chi.Router) {
		r.Get("/", h.handleListMetrics)
		r.Post("/", h.handleAddMetric)
		r.Patch("/{id}", h.handleUpdateMetric)
		r.Delete("/{id}", h.handleDeleteMetric)
	})

	r.Put("/employee-count", h.handleSetEmployeeCount)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.State(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Summary(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Employees(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	state, err := h.Service.AddEmployee()
	respond(w, r, http.StatusCreated, state, err)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	field, value, ok := decodeUpdate(w, r)
	if !ok {
		return
	}
	state, err := h.Service.UpdateEmployee(chi.URLParam(r, "id"), field, value)
	respond(w, r, http.StatusOK, state, err)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	state, err := h.Service.DeleteEmployee(chi.URLParam(r, "id"))
	respond(w, r, http.StatusOK, state, err)
}

func (h *Handler) handleListMetrics(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Metrics(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddMetric(w http.ResponseWriter, r *http.Request) {
	state, err := h.Service.AddMetric()
	respond(w, r, http.StatusCreated, state, err)
}

func (h *Handler) handleUpdateMetric(w http.ResponseWriter, r *http.Request) {
	field, value, ok := decodeUpdate(w, r)
	if !ok {
		return
	}
	state, err := h.Service.UpdateMetric(chi.URLParam(r, "id"), field, value)
	respond(w, r, http.StatusOK, state, err)
}

func (h *Handler) handleDeleteMetric(w http.ResponseWriter, r *http.Request) {
	state, err := h.Service.DeleteMetric(chi.URLParam(r, "id"))
	respond(w, r, http.StatusOK, state, err)
}

func (h *Handler) handleSetEmployeeCount(w http.ResponseWriter, r *http.Request) {
	var payload countPayload
	if err := api.DecodeJSON(r, &payload); err != nil {
		failPayload(w, r, err)
		return
	}
	if payload.Value == nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "value is required", middleware.GetRequestID(r.Context()))
		return
	}
	state, err := h.Service.SetEmployeeCount(*payload.Value)
	respond(w, r, http.StatusOK, state, err)
}

// respond writes the post-mutation state, or a 400 when the mutation was
// refused because it would produce non-finite results.
func respond(w http.ResponseWriter, r *http.Request, status int, state kpi.State, err error) {
	if err != nil {
		if errors.Is(err, kpi.ErrNonFinite) {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "value is out of range", middleware.GetRequestID(r.Context()))
			return
		}
		requestctx.Logger(r.Context()).Warn("board mutation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "board mutation failed", middleware.GetRequestID(r.Context()))
		return
	}
	if status == http.StatusCreated {
		api.Created(w, state, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, state, middleware.GetRequestID(r.Context()))
}

func decodeUpdate(w http.ResponseWriter, r *http.Request) (kpi.Field, float64, bool) {
	var payload updatePayload
	if err := api.DecodeJSON(r, &payload); err != nil {
		failPayload(w, r, err)
		return 0, 0, false
	}
	field, err := kpi.ParseField(payload.Field)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_field", "field must be plan or fact", middleware.GetRequestID(r.Context()))
		return 0, 0, false
	}
	if payload.Value == nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "value is required", middleware.GetRequestID(r.Context()))
		return 0, 0, false
	}
	return field, *payload.Value, true
}

func failPayload(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", middleware.GetRequestID(r.Context()))
		return
	}
	api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
}
