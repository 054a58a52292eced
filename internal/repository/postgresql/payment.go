package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/database"
)

type paymentRepository struct {
	db *database.DB
}

var _ payment.Transactor = (*paymentRepository)(nil)

func NewPaymentRepository(db *database.DB) payment.PaymentRepository {
	return &paymentRepository{db: db}
}

// WithinTransaction implements payment.Transactor.
func (r *paymentRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, r.db, fn)
}

// ListByCompany implements payment.PaymentRepository.
func (r *paymentRepository) ListByCompany(ctx context.Context, companyID string) (map[string]bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT month_year, is_paid
		FROM company_payments
		WHERE company_id = $1
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query company payments: %w", err)
	}
	defer rows.Close()

	payments := make(map[string]bool)
	for rows.Next() {
		var monthYear string
		var isPaid bool
		if err := rows.Scan(&monthYear, &isPaid); err != nil {
			return nil, fmt.Errorf("failed to scan company payment: %w", err)
		}
		payments[monthYear] = isPaid
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company payments: %w", err)
	}

	return payments, nil
}

// SetStatus implements payment.PaymentRepository.
func (r *paymentRepository) SetStatus(ctx context.Context, companyID, monthYear string, isPaid bool, updatedBy string) error {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate payment id: %w", err)
	}

	query := `
		INSERT INTO company_payments (id, company_id, month_year, is_paid, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NOW())
		ON CONFLICT (company_id, month_year)
		DO UPDATE SET is_paid = EXCLUDED.is_paid, updated_by = EXCLUDED.updated_by, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, id, companyID, monthYear, isPaid, updatedBy); err != nil {
		return fmt.Errorf("failed to upsert company payment: %w", err)
	}

	return nil
}
