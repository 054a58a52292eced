package summary

import "context"

// SummaryService defines reporting operations over daily and monthly summaries
type SummaryService interface {
	// GetCompanySummary returns the single-day dashboard when from == to,
	// otherwise a range report aggregated from the daily summaries
	GetCompanySummary(ctx context.Context, req CompanySummaryRequest) (*CompanySummary, error)

	ListDailySummaries(ctx context.Context, req ListDailySummariesRequest) (*DailySummaryList, error)
	GetDailySummary(ctx context.Context, req DailySummaryRequest) (*DailySummary, error)
	RecalculateDaily(ctx context.Context, req RecalculateDailyRequest) (*DailySummary, error)
	RebuildDaily(ctx context.Context, req RebuildDailyRequest) (RebuildResult, error)

	// GetMonthlySummaries fetches each employee concurrently; failed employees are left out
	GetMonthlySummaries(ctx context.Context, req MonthlySummariesRequest) ([]MonthlySummary, error)
}

// Aggregator folds daily summaries into per-employee and company totals
type Aggregator interface {
	Aggregate(dateFrom, dateTo string, items []DailySummary) *RangeReport
}
