package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gardops/gardops-backend-go/internal/domain/cpq"
	"github.com/gardops/gardops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CpqHandler interface {
	CreateQuote(w http.ResponseWriter, r *http.Request)
	GetQuote(w http.ResponseWriter, r *http.Request)
	ListQuotes(w http.ResponseWriter, r *http.Request)
	AddPosition(w http.ResponseWriter, r *http.Request)
	ClonePosition(w http.ResponseWriter, r *http.Request)
	DeletePosition(w http.ResponseWriter, r *http.Request)
	GetBreakdown(w http.ResponseWriter, r *http.Request)
}

type cpqHandlerImpl struct {
	cpqService cpq.CpqService
}

func NewCpqHandler(cpqService cpq.CpqService) CpqHandler {
	return &cpqHandlerImpl{cpqService: cpqService}
}

func (h *cpqHandlerImpl) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req cpq.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.cpqService.CreateQuote(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Quote created", result)
}

func (h *cpqHandlerImpl) GetQuote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Quote ID is required", nil)
		return
	}

	result, err := h.cpqService.GetQuote(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *cpqHandlerImpl) ListQuotes(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	quotes, total, err := h.cpqService.ListQuotes(r.Context(), page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	response.SuccessWithMeta(w, quotes, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

func (h *cpqHandlerImpl) AddPosition(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "id")
	if quoteID == "" {
		response.BadRequest(w, "Quote ID is required", nil)
		return
	}

	var req cpq.AddPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.QuoteID = quoteID

	result, err := h.cpqService.AddPosition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position added", result)
}

func (h *cpqHandlerImpl) ClonePosition(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "id")
	positionID := chi.URLParam(r, "positionId")
	if quoteID == "" || positionID == "" {
		response.BadRequest(w, "Quote ID and position ID are required", nil)
		return
	}

	result, err := h.cpqService.ClonePosition(r.Context(), quoteID, positionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position cloned", result)
}

func (h *cpqHandlerImpl) DeletePosition(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "id")
	positionID := chi.URLParam(r, "positionId")
	if quoteID == "" || positionID == "" {
		response.BadRequest(w, "Quote ID and position ID are required", nil)
		return
	}

	if err := h.cpqService.DeletePosition(r.Context(), quoteID, positionID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position deleted", nil)
}

func (h *cpqHandlerImpl) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "id")
	if quoteID == "" {
		response.BadRequest(w, "Quote ID is required", nil)
		return
	}

	result, err := h.cpqService.GetBreakdown(r.Context(), quoteID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
