package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) payment.PaymentRepository {
	return &paymentRepository{db: db}
}

// ListByCompany implements payment.PaymentRepository.
func (r *paymentRepository) ListByCompany(ctx context.Context, companyID string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT month_year, is_paid FROM company_payments WHERE company_id = ?",
		companyID,
	)
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
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate payment id: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO company_payments (id, company_id, month_year, is_paid, updated_by, updated_at)
		VALUES (?, ?, ?, ?, NULLIF(?, ''), CURRENT_TIMESTAMP)
		ON CONFLICT (company_id, month_year)
		DO UPDATE SET is_paid = excluded.is_paid, updated_by = excluded.updated_by, updated_at = CURRENT_TIMESTAMP
	`, id.String(), companyID, monthYear, isPaid, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to upsert company payment: %w", err)
	}
	return nil
}
