package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/calendar"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/locale"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
)

type PaymentServiceImpl struct {
	repo          payment.PaymentRepository
	tx            payment.Transactor
	loc           *time.Location
	defaultLocale language.Tag
	now           func() time.Time
}

type Option func(*PaymentServiceImpl)

func WithClock(now func() time.Time) Option {
	return func(s *PaymentServiceImpl) { s.now = now }
}

// WithTransactor overrides the transactor picked up from the repository.
func WithTransactor(tx payment.Transactor) Option {
	return func(s *PaymentServiceImpl) { s.tx = tx }
}

func WithDefaultLocale(tag language.Tag) Option {
	return func(s *PaymentServiceImpl) { s.defaultLocale = tag }
}

func NewPaymentService(repo payment.PaymentRepository, loc *time.Location, opts ...Option) payment.PaymentService {
	if loc == nil {
		loc = time.Local
	}
	s := &PaymentServiceImpl{
		repo:          repo,
		loc:           loc,
		defaultLocale: locale.Default,
		now:           time.Now,
	}
	if tx, ok := repo.(payment.Transactor); ok {
		s.tx = tx
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetWindow implements payment.PaymentService.
func (s *PaymentServiceImpl) GetWindow(ctx context.Context, req payment.WindowRequest) (*payment.WindowResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	today := calendar.FromTime(s.now().In(s.loc)).YearMonth()
	center := today
	if req.Center != "" {
		center, _ = calendar.ParseYearMonth(req.Center)
	}

	tag := s.defaultLocale
	if req.Locale != "" {
		tag = locale.Match(req.Locale)
	}

	payments, err := s.repo.ListByCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &payment.WindowResponse{
		CompanyID: req.CompanyID,
		Center:    center.String(),
		Current:   today.String(),
		Months:    Generate(center, today, payments, tag),
	}, nil
}

// ListPayments implements payment.PaymentService.
func (s *PaymentServiceImpl) ListPayments(ctx context.Context, companyID string) (*payment.PaymentsResponse, error) {
	if companyID == "" {
		return nil, payment.ErrCompanyRequired
	}

	payments, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		payments = map[string]bool{}
	}

	return &payment.PaymentsResponse{CompanyID: companyID, Payments: payments}, nil
}

// SetPaymentStatus implements payment.PaymentService.
func (s *PaymentServiceImpl) SetPaymentStatus(ctx context.Context, companyID string, req payment.SetPaymentStatusRequest) (*payment.PaymentsResponse, error) {
	if companyID == "" {
		return nil, payment.ErrCompanyRequired
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updatedBy string
	if sess, ok := session.FromContext(ctx); ok {
		updatedBy = sess.UserID
	}

	var payments map[string]bool
	err := s.withinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.SetStatus(ctx, companyID, req.MonthYear, *req.IsPaid, updatedBy); err != nil {
			return fmt.Errorf("failed to set payment status: %w", err)
		}
		var err error
		payments, err = s.repo.ListByCompany(ctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to list payments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = map[string]bool{}
	}
	slog.Info("Payment status updated",
		"company_id", companyID,
		"month_year", req.MonthYear,
		"is_paid", *req.IsPaid,
		"updated_by", updatedBy,
	)

	return &payment.PaymentsResponse{CompanyID: companyID, Payments: payments}, nil
}

// withinTransaction runs the upsert and the re-read in one transaction when
// the store supports it.
func (s *PaymentServiceImpl) withinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.WithinTransaction(ctx, fn)
}
