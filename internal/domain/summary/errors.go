package summary

import "errors"

var (
	ErrDailySummaryNotFound   = errors.New("Daily summary not found")
	ErrMonthlySummaryNotFound = errors.New("Monthly summary not found")
)
