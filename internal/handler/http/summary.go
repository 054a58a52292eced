package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pontoeletronico/ponto-reports/internal/domain/summary"
	"github.com/pontoeletronico/ponto-reports/internal/handler/http/response"
)

type SummaryHandler interface {
	// GetCompanySummary handles GET /summaries/company?date_from&date_to
	GetCompanySummary(w http.ResponseWriter, r *http.Request)
	ListDailySummaries(w http.ResponseWriter, r *http.Request)
	GetDailySummary(w http.ResponseWriter, r *http.Request)
	RecalculateDaily(w http.ResponseWriter, r *http.Request)
	RebuildDaily(w http.ResponseWriter, r *http.Request)
	GetMonthlySummaries(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	summaryService summary.SummaryService
}

func NewSummaryHandler(summaryService summary.SummaryService) SummaryHandler {
	return &summaryHandlerImpl{
		summaryService: summaryService,
	}
}

// GetCompanySummary returns the untouched single-day dashboard when both dates
// are equal and an aggregated range report otherwise.
func (h *summaryHandlerImpl) GetCompanySummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := summary.CompanySummaryRequest{
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
	}

	result, err := h.summaryService.GetCompanySummary(r.Context(), req)
	if err != nil {
		slog.Error("Failed to get company summary", "error", err, "date_from", req.DateFrom, "date_to", req.DateTo)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListDailySummaries handles GET /daily-summaries
func (h *summaryHandlerImpl) ListDailySummaries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := summary.ListDailySummariesRequest{
		EmployeeID: q.Get("employee_id"),
		DateFrom:   q.Get("date_from"),
		DateTo:     q.Get("date_to"),
	}

	result, err := h.summaryService.ListDailySummaries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Items, &response.Meta{
		DateFrom:   result.DateFrom,
		DateTo:     result.DateTo,
		TotalItems: int64(result.Total),
	})
}

// GetDailySummary handles GET /daily-summaries/{employeeID}/{date}
func (h *summaryHandlerImpl) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	req := summary.DailySummaryRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Date:       chi.URLParam(r, "date"),
	}

	result, err := h.summaryService.GetDailySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RecalculateDaily handles POST /daily-summaries/recalc
func (h *summaryHandlerImpl) RecalculateDaily(w http.ResponseWriter, r *http.Request) {
	var req summary.RecalculateDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.summaryService.RecalculateDaily(r.Context(), req)
	if err != nil {
		slog.Error("Failed to recalculate daily summary", "error", err, "employee_id", req.EmployeeID, "date", req.Date)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily summary recalculated", result)
}

// RebuildDaily handles POST /daily-summaries/rebuild
func (h *summaryHandlerImpl) RebuildDaily(w http.ResponseWriter, r *http.Request) {
	var req summary.RebuildDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.summaryService.RebuildDaily(r.Context(), req)
	if err != nil {
		slog.Error("Failed to rebuild daily summaries", "error", err, "employee_id", req.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily summaries rebuilt", result)
}

// GetMonthlySummaries handles GET /monthly-summaries?month=YYYY-MM&employee_id=a,b
// employee_id may also be repeated.
func (h *summaryHandlerImpl) GetMonthlySummaries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := summary.MonthlySummariesRequest{Month: q.Get("month")}
	for _, v := range q["employee_id"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.EmployeeIDs = append(req.EmployeeIDs, id)
			}
		}
	}

	result, err := h.summaryService.GetMonthlySummaries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
