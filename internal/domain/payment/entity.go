package payment

import "time"

// WindowRadius is how many months the window shows on each side of the center.
const WindowRadius = 4

type Period string

const (
	PeriodPast    Period = "past"
	PeriodCurrent Period = "current"
	PeriodFuture  Period = "future"
)

// MonthEntry is one month of the payment window.
type MonthEntry struct {
	MonthYear string `json:"month_year"`
	Label     string `json:"label"`
	IsPaid    bool   `json:"is_paid"`
	Period    Period `json:"period"`
}

// PaymentRecord is a stored per-company, per-month paid flag.
// A month with no record is unpaid.
type PaymentRecord struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	MonthYear string    `json:"month_year"`
	IsPaid    bool      `json:"is_paid"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
