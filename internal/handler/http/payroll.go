package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gardops/gardops-backend-go/internal/domain/params"
	"github.com/gardops/gardops-backend-go/internal/domain/simulation"
	"github.com/gardops/gardops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetParameters(w http.ResponseWriter, r *http.Request)
	Simulate(w http.ResponseWriter, r *http.Request)
	GetSimulation(w http.ResponseWriter, r *http.Request)
	ListSimulations(w http.ResponseWriter, r *http.Request)
	ListParameterVersions(w http.ResponseWriter, r *http.Request)
	PublishParameterVersion(w http.ResponseWriter, r *http.Request)
	UpsertUFRate(w http.ResponseWriter, r *http.Request)
	UpsertUTMRate(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService simulation.PayrollService
}

func NewPayrollHandler(payrollService simulation.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) GetParameters(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetParameters(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Simulate(w http.ResponseWriter, r *http.Request) {
	var req simulation.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Simulate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetSimulation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Simulation ID is required", nil)
		return
	}

	result, err := h.payrollService.GetSimulation(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListSimulations(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.payrollService.ListSimulations(r.Context(), page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ===== ADMIN PARAMETER IMPORT =====

func (h *payrollHandlerImpl) ListParameterVersions(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListParameterVersions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) PublishParameterVersion(w http.ResponseWriter, r *http.Request) {
	var req params.PublishVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.PublishParameterVersion(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Parameter version published", result)
}

func (h *payrollHandlerImpl) UpsertUFRate(w http.ResponseWriter, r *http.Request) {
	var req params.UpsertUFRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.payrollService.UpsertUFRate(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"date": req.Date})
}

func (h *payrollHandlerImpl) UpsertUTMRate(w http.ResponseWriter, r *http.Request) {
	var req params.UpsertUTMRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.payrollService.UpsertUTMRate(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"month": req.Month})
}
