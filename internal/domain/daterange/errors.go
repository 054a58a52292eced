package daterange

import "errors"

var (
	ErrDateDisabled    = errors.New("Date is outside the selectable range")
	ErrInvalidName     = errors.New("Invalid date range name")
	ErrSessionRequired = errors.New("Session is required")
	ErrTooManyRanges   = errors.New("Too many date ranges for this session")
)
