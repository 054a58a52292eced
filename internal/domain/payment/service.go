package payment

import "context"

type PaymentService interface {
	// GetWindow returns the nine months centered on req.Center with their paid flags
	GetWindow(ctx context.Context, req WindowRequest) (*WindowResponse, error)
	ListPayments(ctx context.Context, companyID string) (*PaymentsResponse, error)
	SetPaymentStatus(ctx context.Context, companyID string, req SetPaymentStatusRequest) (*PaymentsResponse, error)
}
