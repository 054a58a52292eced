package summary

import (
	"context"
	"encoding/json"
)

// SummarySource is the upstream ponto API as seen by the summary service.
// Credentials travel in ctx.
type SummarySource interface {
	ListDailySummaries(ctx context.Context, req ListDailySummariesRequest) (*DailySummaryList, error)
	GetDailySummary(ctx context.Context, employeeID, date string) (*DailySummary, error)
	// GetCompanyDashboard returns the single-day company dashboard body as sent.
	GetCompanyDashboard(ctx context.Context, date string) (json.RawMessage, error)
	RecalculateDaily(ctx context.Context, employeeID, date string) (*DailySummary, error)
	RebuildDaily(ctx context.Context, req RebuildDailyRequest) (RebuildResult, error)
	GetMonthlySummary(ctx context.Context, employeeID string, year, month int) (*MonthlySummary, error)
}
