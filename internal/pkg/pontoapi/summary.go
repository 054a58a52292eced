package pontoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/pontoeletronico/ponto-reports/internal/domain/summary"
)

var _ summary.SummarySource = (*Client)(nil)

func (c *Client) ListDailySummaries(ctx context.Context, req summary.ListDailySummariesRequest) (*summary.DailySummaryList, error) {
	q := url.Values{}
	if req.EmployeeID != "" {
		q.Set("employee_id", req.EmployeeID)
	}
	q.Set("date_from", req.DateFrom)
	q.Set("date_to", req.DateTo)

	var list summary.DailySummaryList
	if err := c.do(ctx, request{method: http.MethodGet, path: apiPrefix + "/daily-summary", query: q}, &list); err != nil {
		return nil, err
	}
	if list.Skipped > 0 {
		slog.Warn("Malformed daily summaries skipped",
			"count", list.Skipped, "date_from", req.DateFrom, "date_to", req.DateTo)
	}
	if list.Items == nil {
		list.Items = []summary.DailySummary{}
	}
	if list.DateFrom == "" {
		list.DateFrom, list.DateTo = req.DateFrom, req.DateTo
	}
	if list.Total == 0 {
		list.Total = len(list.Items)
	}
	return &list, nil
}

func (c *Client) GetDailySummary(ctx context.Context, employeeID, date string) (*summary.DailySummary, error) {
	path := fmt.Sprintf("%s/daily-summary/%s/%s", apiPrefix, url.PathEscape(employeeID), url.PathEscape(date))

	var item summary.DailySummary
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &item); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %v", summary.ErrDailySummaryNotFound, err)
		}
		return nil, err
	}
	return &item, nil
}

func (c *Client) GetCompanyDashboard(ctx context.Context, date string) (json.RawMessage, error) {
	path := fmt.Sprintf("%s/dashboard/company/%s", apiPrefix, url.PathEscape(date))

	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) RecalculateDaily(ctx context.Context, employeeID, date string) (*summary.DailySummary, error) {
	q := url.Values{}
	q.Set("employee_id", employeeID)
	q.Set("date", date)

	var raw json.RawMessage
	req := request{method: http.MethodPost, path: apiPrefix + "/recalc/daily", query: q, body: struct{}{}}
	if err := c.do(ctx, req, &raw); err != nil {
		return nil, err
	}

	// Some deployments wrap the item as {"summary": {...}}.
	var wrapped struct {
		Summary *summary.DailySummary `json:"summary"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Summary != nil {
		return wrapped.Summary, nil
	}
	var item summary.DailySummary
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return &item, nil
}

func (c *Client) RebuildDaily(ctx context.Context, req summary.RebuildDailyRequest) (summary.RebuildResult, error) {
	result := summary.RebuildResult{}
	if err := c.do(ctx, request{method: http.MethodPost, path: apiPrefix + "/rebuild/daily", body: req}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetMonthlySummary(ctx context.Context, employeeID string, year, month int) (*summary.MonthlySummary, error) {
	path := fmt.Sprintf("%s/monthly-summary/%s/%d/%02d", apiPrefix, url.PathEscape(employeeID), year, month)

	var m summary.MonthlySummary
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &m); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %v", summary.ErrMonthlySummaryNotFound, err)
		}
		return nil, err
	}
	return &m, nil
}
