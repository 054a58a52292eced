package summary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pontoeletronico/ponto-reports/internal/domain/summary"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/calendar"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/pontoapi"
)

const defaultMonthlyConcurrency = 8

type SummaryServiceImpl struct {
	source     summary.SummarySource
	aggregator summary.Aggregator
	loc        *time.Location
	now        func() time.Time
	monthlyMax int
}

type Option func(*SummaryServiceImpl)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *SummaryServiceImpl) { s.now = now }
}

func WithMonthlyConcurrency(n int) Option {
	return func(s *SummaryServiceImpl) {
		if n > 0 {
			s.monthlyMax = n
		}
	}
}

func NewSummaryService(source summary.SummarySource, aggregator summary.Aggregator, loc *time.Location, opts ...Option) summary.SummaryService {
	if loc == nil {
		loc = time.Local
	}
	s := &SummaryServiceImpl{
		source:     source,
		aggregator: aggregator,
		loc:        loc,
		now:        time.Now,
		monthlyMax: defaultMonthlyConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SummaryServiceImpl) today() string {
	return calendar.FromTime(s.now().In(s.loc)).String()
}

// defaultRange fills empty bounds: both empty means today, one empty copies the other.
func (s *SummaryServiceImpl) defaultRange(from, to string) (string, string) {
	switch {
	case from == "" && to == "":
		today := s.today()
		return today, today
	case from == "":
		return to, to
	case to == "":
		return from, from
	}
	return from, to
}

func (s *SummaryServiceImpl) GetCompanySummary(ctx context.Context, req summary.CompanySummaryRequest) (*summary.CompanySummary, error) {
	req.DateFrom, req.DateTo = s.defaultRange(req.DateFrom, req.DateTo)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.DateFrom == req.DateTo {
		day, err := s.source.GetCompanyDashboard(ctx, req.DateFrom)
		if err != nil {
			return nil, err
		}
		return &summary.CompanySummary{Day: day}, nil
	}

	list, err := s.source.ListDailySummaries(ctx, summary.ListDailySummariesRequest{
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
	})
	if err != nil {
		return nil, err
	}

	report := s.aggregator.Aggregate(req.DateFrom, req.DateTo, list.Items)
	slog.Debug("Company range aggregated",
		"date_from", req.DateFrom,
		"date_to", req.DateTo,
		"items", len(list.Items),
		"employees", report.Summary.TotalEmployees,
	)
	return &summary.CompanySummary{Range: report}, nil
}

func (s *SummaryServiceImpl) ListDailySummaries(ctx context.Context, req summary.ListDailySummariesRequest) (*summary.DailySummaryList, error) {
	req.DateFrom, req.DateTo = s.defaultRange(req.DateFrom, req.DateTo)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.source.ListDailySummaries(ctx, req)
}

func (s *SummaryServiceImpl) GetDailySummary(ctx context.Context, req summary.DailySummaryRequest) (*summary.DailySummary, error) {
	if req.Date == "" {
		req.Date = s.today()
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.source.GetDailySummary(ctx, req.EmployeeID, req.Date)
}

func (s *SummaryServiceImpl) RecalculateDaily(ctx context.Context, req summary.RecalculateDailyRequest) (*summary.DailySummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	result, err := s.source.RecalculateDaily(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return nil, err
	}
	slog.Info("Daily summary recalculated", "employee_id", req.EmployeeID, "date", req.Date)
	return result, nil
}

func (s *SummaryServiceImpl) RebuildDaily(ctx context.Context, req summary.RebuildDailyRequest) (summary.RebuildResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	result, err := s.source.RebuildDaily(ctx, req)
	if err != nil {
		return nil, err
	}
	slog.Info("Daily summaries rebuilt", "employee_id", req.EmployeeID, "date_from", req.DateFrom, "date_to", req.DateTo)
	return result, nil
}

// GetMonthlySummaries fans out one request per employee. An employee whose
// request fails is logged and omitted; only an expired session or a cancelled
// context fails the whole call.
func (s *SummaryServiceImpl) GetMonthlySummaries(ctx context.Context, req summary.MonthlySummariesRequest) ([]summary.MonthlySummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	month, _ := calendar.ParseYearMonth(req.Month)

	results := make([]*summary.MonthlySummary, len(req.EmployeeIDs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.monthlyMax)

	for i, employeeID := range req.EmployeeIDs {
		i, employeeID := i, employeeID
		g.Go(func() error {
			m, err := s.source.GetMonthlySummary(gCtx, employeeID, month.Year, int(month.Month))
			if err != nil {
				if errors.Is(err, pontoapi.ErrSessionExpired) {
					return err
				}
				slog.Warn("Monthly summary unavailable", "employee_id", employeeID, "month", req.Month, "error", err)
				return nil
			}
			m.EmployeeID = employeeID
			m.Month = month.String()
			results[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]summary.MonthlySummary, 0, len(results))
	for _, m := range results {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out, nil
}
