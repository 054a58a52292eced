package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pontoeletronico/ponto-reports/internal/domain/daterange"
	"github.com/pontoeletronico/ponto-reports/internal/handler/http/response"
)

type DateRangeHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Select(w http.ResponseWriter, r *http.Request)
	Clear(w http.ResponseWriter, r *http.Request)
	SetBounds(w http.ResponseWriter, r *http.Request)
}

type dateRangeHandlerImpl struct {
	selectors daterange.SelectorService
}

func NewDateRangeHandler(selectors daterange.SelectorService) DateRangeHandler {
	return &dateRangeHandlerImpl{
		selectors: selectors,
	}
}

// Get handles GET /date-ranges/{name}
func (h *dateRangeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.selectors.State(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, state)
}

// Select handles POST /date-ranges/{name}/select
func (h *dateRangeHandlerImpl) Select(w http.ResponseWriter, r *http.Request) {
	var req daterange.SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	state, err := h.selectors.Select(r.Context(), chi.URLParam(r, "name"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, state)
}

// Clear handles DELETE /date-ranges/{name}
func (h *dateRangeHandlerImpl) Clear(w http.ResponseWriter, r *http.Request) {
	state, err := h.selectors.Clear(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Date range cleared", state)
}

// SetBounds handles PUT /date-ranges/{name}/bounds
func (h *dateRangeHandlerImpl) SetBounds(w http.ResponseWriter, r *http.Request) {
	var req daterange.BoundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	state, err := h.selectors.SetBounds(r.Context(), chi.URLParam(r, "name"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, state)
}
