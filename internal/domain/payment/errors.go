package payment

import "errors"

var (
	ErrCompanyNotFound = errors.New("Company not found")
	ErrCompanyRequired = errors.New("Company is required")
)
