package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pontoeletronico/ponto-reports/internal/domain/daterange"
	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
	"github.com/pontoeletronico/ponto-reports/internal/domain/summary"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/calendar"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/pontoapi"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Upstream errors keep their status and message
	var apiErr *pontoapi.APIError
	if errors.As(err, &apiErr) {
		UpstreamError(w, apiErr.StatusCode, apiErr.Message)
		return
	}

	switch {
	// Upstream transport and session errors
	case errors.Is(err, pontoapi.ErrSessionExpired):
		SessionExpired(w, "Session expired, please log in again")
	case errors.Is(err, pontoapi.ErrMissingToken):
		Unauthorized(w, "Missing bearer token")
	case errors.Is(err, pontoapi.ErrUpstreamUnavailable):
		BadGateway(w, "Ponto API is unavailable")
	case errors.Is(err, pontoapi.ErrUnexpectedResponse):
		BadGateway(w, "Ponto API returned an unexpected response")
	case errors.Is(err, context.DeadlineExceeded):
		GatewayTimeout(w, "Ponto API did not answer in time")

	// Session errors
	case errors.Is(err, session.ErrMissingCompany), errors.Is(err, session.ErrUnknownKind):
		Unauthorized(w, err.Error())
	case errors.Is(err, daterange.ErrSessionRequired):
		Unauthorized(w, err.Error())

	// Summary domain errors
	case errors.Is(err, summary.ErrDailySummaryNotFound):
		NotFound(w, "Daily summary not found")
	case errors.Is(err, summary.ErrMonthlySummaryNotFound):
		NotFound(w, "Monthly summary not found")

	// Date range errors
	case errors.Is(err, daterange.ErrDateDisabled):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, daterange.ErrInvalidName):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, daterange.ErrTooManyRanges):
		ValidationError(w, map[string]string{"name": err.Error()})
	case errors.Is(err, calendar.ErrInvalidDate), errors.Is(err, calendar.ErrInvalidYearMonth):
		ValidationError(w, map[string]string{"date": err.Error()})

	// Payment domain errors
	case errors.Is(err, payment.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, payment.ErrCompanyRequired):
		BadRequest(w, "Company is required", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
