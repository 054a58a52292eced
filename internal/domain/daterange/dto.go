package daterange

import "github.com/pontoeletronico/ponto-reports/internal/pkg/validator"

type SelectRequest struct {
	Date string `json:"date"`
}

func (r *SelectRequest) Validate() error {
	var errs validator.ValidationErrors

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

// BoundsRequest sets inclusive limits; an empty value removes that limit.
type BoundsRequest struct {
	MinDate string `json:"min_date"`
	MaxDate string `json:"max_date"`
}

func (r *BoundsRequest) Validate() error {
	var errs validator.ValidationErrors

	lo, okMin := validator.IsValidDate(r.MinDate)
	if r.MinDate != "" && !okMin {
		errs = append(errs, validator.ValidationError{
			Field:   "min_date",
			Message: "min_date must be in YYYY-MM-DD format",
		})
	}
	hi, okMax := validator.IsValidDate(r.MaxDate)
	if r.MaxDate != "" && !okMax {
		errs = append(errs, validator.ValidationError{
			Field:   "max_date",
			Message: "max_date must be in YYYY-MM-DD format",
		})
	}
	if okMin && okMax && hi.Before(lo) {
		errs = append(errs, validator.ValidationError{
			Field:   "max_date",
			Message: "max_date must not be before min_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
