package payment

import "context"

type PaymentRepository interface {
	// ListByCompany returns month_year -> is_paid for every stored month.
	ListByCompany(ctx context.Context, companyID string) (map[string]bool, error)
	// SetStatus upserts the flag for one month.
	SetStatus(ctx context.Context, companyID, monthYear string, isPaid bool, updatedBy string) error
}

// Transactor runs fn atomically. Repository calls made with the ctx passed
// to fn join the transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
