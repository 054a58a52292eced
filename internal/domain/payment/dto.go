package payment

import "github.com/pontoeletronico/ponto-reports/internal/pkg/validator"

type WindowRequest struct {
	CompanyID string `json:"company_id"`
	// Center is YYYY-MM; empty means the current month.
	Center string `json:"center,omitempty"`
	Locale string `json:"locale,omitempty"`
}

func (r *WindowRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	}
	if r.Center != "" {
		if _, ok := validator.IsValidYearMonth(r.Center); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "center",
				Message: "center must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WindowResponse struct {
	CompanyID string       `json:"company_id"`
	Center    string       `json:"center"`
	Current   string       `json:"current"`
	Months    []MonthEntry `json:"months"`
}

type SetPaymentStatusRequest struct {
	MonthYear string `json:"month_year"`
	IsPaid    *bool  `json:"is_paid"`
}

func (r *SetPaymentStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.MonthYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "month_year",
			Message: "month_year is required",
		})
	} else if _, ok := validator.IsValidYearMonth(r.MonthYear); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month_year",
			Message: "month_year must be in YYYY-MM format",
		})
	}
	if r.IsPaid == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "is_paid",
			Message: "is_paid is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PaymentsResponse struct {
	CompanyID string          `json:"company_id"`
	Payments  map[string]bool `json:"payments"`
}
