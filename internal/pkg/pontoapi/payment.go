package pontoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type paymentStatusResponse struct {
	CompanyID string                     `json:"companyId"`
	Payments  map[string]json.RawMessage `json:"payments"`
}

type paymentStatusRequest struct {
	MonthYear string `json:"monthYear"`
	IsPaid    bool   `json:"isPaid"`
}

// GetPaymentStatus reads the admin payment map. Only a literal true counts as paid.
func (c *Client) GetPaymentStatus(ctx context.Context, companyID string) (map[string]bool, error) {
	path := fmt.Sprintf("%s/companies/%s/payment-status", adminPrefix, url.PathEscape(companyID))

	var resp paymentStatusResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &resp); err != nil {
		return nil, err
	}

	payments := make(map[string]bool, len(resp.Payments))
	for month, raw := range resp.Payments {
		var paid bool
		if err := json.Unmarshal(raw, &paid); err == nil {
			payments[month] = paid
		}
	}
	return payments, nil
}

func (c *Client) SetPaymentStatus(ctx context.Context, companyID, monthYear string, isPaid bool) error {
	path := fmt.Sprintf("%s/companies/%s/payment-status", adminPrefix, url.PathEscape(companyID))
	body := paymentStatusRequest{MonthYear: monthYear, IsPaid: isPaid}
	return c.do(ctx, request{method: http.MethodPost, path: path, body: body}, nil)
}
