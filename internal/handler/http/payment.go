package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
	"github.com/pontoeletronico/ponto-reports/internal/handler/http/response"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/locale"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
)

type PaymentHandler interface {
	// Super admin
	ListPayments(w http.ResponseWriter, r *http.Request)
	GetWindow(w http.ResponseWriter, r *http.Request)
	SetPaymentStatus(w http.ResponseWriter, r *http.Request)

	// Company users
	GetMyWindow(w http.ResponseWriter, r *http.Request)
}

type paymentHandlerImpl struct {
	paymentService payment.PaymentService
}

func NewPaymentHandler(paymentService payment.PaymentService) PaymentHandler {
	return &paymentHandlerImpl{
		paymentService: paymentService,
	}
}

// ListPayments handles GET /admin/companies/{companyID}/payments
func (h *paymentHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.ListPayments(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWindow handles GET /admin/companies/{companyID}/payments/window
func (h *paymentHandlerImpl) GetWindow(w http.ResponseWriter, r *http.Request) {
	h.window(w, r, chi.URLParam(r, "companyID"))
}

// GetMyWindow handles GET /companies/my/payments/window
func (h *paymentHandlerImpl) GetMyWindow(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session is required")
		return
	}
	h.window(w, r, s.CompanyID)
}

func (h *paymentHandlerImpl) window(w http.ResponseWriter, r *http.Request, companyID string) {
	q := r.URL.Query()
	req := payment.WindowRequest{
		CompanyID: companyID,
		Center:    q.Get("center"),
		Locale:    q.Get("locale"),
	}
	if req.Locale == "" {
		if header := r.Header.Get("Accept-Language"); header != "" {
			req.Locale = locale.FromAcceptLanguage(header, locale.Default).String()
		}
	}

	result, err := h.paymentService.GetWindow(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetPaymentStatus handles PUT /admin/companies/{companyID}/payments
func (h *paymentHandlerImpl) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req payment.SetPaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	companyID := chi.URLParam(r, "companyID")
	result, err := h.paymentService.SetPaymentStatus(r.Context(), companyID, req)
	if err != nil {
		slog.Error("Failed to set payment status", "error", err, "company_id", companyID, "month_year", req.MonthYear)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment status updated", result)
}
