package summary

import "github.com/pontoeletronico/ponto-reports/internal/pkg/validator"

type CompanySummaryRequest struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

func (r *CompanySummaryRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = append(errs, validateRange(r.DateFrom, r.DateTo)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListDailySummariesRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
}

func (r *ListDailySummariesRequest) Validate() error {
	var errs validator.ValidationErrors

	// Employee filter is optional
	if r.EmployeeID != "" && !validator.IsValidIdentifier(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id contains invalid characters",
		})
	}
	errs = append(errs, validateRange(r.DateFrom, r.DateTo)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailySummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r *DailySummaryRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = append(errs, validateEmployee(r.EmployeeID)...)

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RecalculateDailyRequest asks the upstream to recompute one employee-day.
type RecalculateDailyRequest = DailySummaryRequest

type RebuildDailyRequest struct {
	EmployeeID string `json:"employee_id"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
}

func (r *RebuildDailyRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = append(errs, validateEmployee(r.EmployeeID)...)
	errs = append(errs, validateRange(r.DateFrom, r.DateTo)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MonthlySummariesRequest struct {
	Month       string   `json:"month"`
	EmployeeIDs []string `json:"employee_ids"`
}

func (r *MonthlySummariesRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidYearMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}
	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "at least one employee_id is required",
		})
	}
	for _, id := range r.EmployeeIDs {
		if !validator.IsValidIdentifier(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee_ids contains an invalid id: " + id,
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RebuildResult is whatever the upstream reports for a rebuild.
type RebuildResult map[string]interface{}

func validateEmployee(id string) validator.ValidationErrors {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}
	if !validator.IsValidIdentifier(id) {
		return validator.ValidationErrors{{Field: "employee_id", Message: "employee_id contains invalid characters"}}
	}
	return nil
}

func validateRange(from, to string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	start, okFrom := validator.IsValidDate(from)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be in YYYY-MM-DD format",
		})
	}
	end, okTo := validator.IsValidDate(to)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be in YYYY-MM-DD format",
		})
	}
	if okFrom && okTo && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must not be before date_from",
		})
	}
	return errs
}
