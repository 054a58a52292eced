// Package upstream stores payment flags in the remote ponto admin API.
package upstream

import (
	"context"
	"errors"
	"net/http"

	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/pontoapi"
)

type paymentRepository struct {
	client *pontoapi.Client
}

func NewPaymentRepository(client *pontoapi.Client) payment.PaymentRepository {
	return &paymentRepository{client: client}
}

func (r *paymentRepository) ListByCompany(ctx context.Context, companyID string) (map[string]bool, error) {
	payments, err := r.client.GetPaymentStatus(ctx, companyID)
	if err != nil {
		return nil, mapError(err)
	}
	return payments, nil
}

// SetStatus ignores updatedBy; the admin API records the caller itself.
func (r *paymentRepository) SetStatus(ctx context.Context, companyID, monthYear string, isPaid bool, updatedBy string) error {
	return mapError(r.client.SetPaymentStatus(ctx, companyID, monthYear, isPaid))
}

func mapError(err error) error {
	var apiErr *pontoapi.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return payment.ErrCompanyNotFound
	}
	return err
}
