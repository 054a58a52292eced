package summary

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Status string

const (
	StatusNormal      Status = "normal"
	StatusLate        Status = "late"
	StatusExtra       Status = "extra"
	StatusAbsent      Status = "absent"
	StatusMissingExit Status = "missing_exit"
	StatusIncomplete  Status = "incomplete"
)

// DailySummary is one employee-day as computed by the ponto API.
// Balance is backend-computed and never derived here.
type DailySummary struct {
	CompanyID         string   `json:"company_id,omitempty"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      string   `json:"employee_name,omitempty"`
	Date              string   `json:"date"`
	WorkedMinutes     Minutes  `json:"worked_minutes"`
	ExpectedMinutes   Minutes  `json:"expected_minutes"`
	BalanceMinutes    Minutes  `json:"balance_minutes"`
	DelayMinutes      *Minutes `json:"delay_minutes,omitempty"`
	OvertimeMinutes   *Minutes `json:"overtime_minutes,omitempty"`
	Status            Status   `json:"status,omitempty"`
	TotalRecords      int64    `json:"total_records"`
	FirstEntryTime    string   `json:"first_entry_time,omitempty"`
	LastExitTime      string   `json:"last_exit_time,omitempty"`
	MissingExit       bool     `json:"missing_exit,omitempty"`
	HasLocationIssues bool     `json:"has_location_issues,omitempty"`

	// raw is the item exactly as the upstream sent it.
	raw json.RawMessage
}

// Field aliases seen across versions of the ponto API, in priority order.
var (
	aliasName         = []string{"employee_name", "nome"}
	aliasWorked       = []string{"worked_minutes", "worked_hours", "horas_trabalhadas"}
	aliasExpected     = []string{"expected_minutes", "expected_hours"}
	aliasBalance      = []string{"balance_minutes", "daily_balance", "difference_minutes"}
	aliasDelay        = []string{"delay_minutes"}
	aliasOvertime     = []string{"overtime_minutes", "extra_minutes", "horas_extras", "extra_hours"}
	aliasTotalRecords = []string{"total_records", "records_count"}
	aliasFirstEntry   = []string{"first_entry_time", "hora_entrada", "actual_start"}
	aliasLastExit     = []string{"last_exit_time", "hora_saida", "actual_end"}
)

func (s *DailySummary) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("daily summary: %w", err)
	}

	*s = DailySummary{
		CompanyID:         text(fields, "company_id"),
		EmployeeID:        text(fields, "employee_id"),
		EmployeeName:      text(fields, aliasName...),
		Date:              text(fields, "date"),
		WorkedMinutes:     number(fields, aliasWorked...),
		ExpectedMinutes:   number(fields, aliasExpected...),
		BalanceMinutes:    number(fields, aliasBalance...),
		DelayMinutes:      optionalNumber(fields, aliasDelay...),
		OvertimeMinutes:   optionalNumber(fields, aliasOvertime...),
		Status:            Status(text(fields, "status")),
		TotalRecords:      number(fields, aliasTotalRecords...).Decimal().IntPart(),
		FirstEntryTime:    text(fields, aliasFirstEntry...),
		LastExitTime:      text(fields, aliasLastExit...),
		MissingExit:       flag(fields, "missing_exit"),
		HasLocationIssues: flag(fields, "has_location_issues"),
		raw:               append(json.RawMessage(nil), b...),
	}
	return nil
}

// MarshalJSON re-emits the upstream item unchanged when there is one.
func (s DailySummary) MarshalJSON() ([]byte, error) {
	if len(s.raw) > 0 {
		return s.raw, nil
	}
	type plain DailySummary
	return json.Marshal(plain(s))
}

// Delay is the explicit delay when the upstream sent one, otherwise the
// negative part of the balance.
func (s DailySummary) Delay() Minutes {
	if s.DelayMinutes != nil {
		return *s.DelayMinutes
	}
	return s.BalanceMinutes.Neg().ClampPositive()
}

// Overtime is the explicit overtime when the upstream sent one, otherwise
// the positive part of the balance.
func (s DailySummary) Overtime() Minutes {
	if s.OvertimeMinutes != nil {
		return *s.OvertimeMinutes
	}
	return s.BalanceMinutes.ClampPositive()
}

func (s DailySummary) IsPresent() bool { return s.Status != StatusAbsent }

// EmployeeAggregate accumulates one employee's days within a range.
type EmployeeAggregate struct {
	EmployeeID      string         `json:"employee_id"`
	EmployeeName    string         `json:"employee_name"`
	WorkedMinutes   Minutes        `json:"worked_minutes"`
	ExpectedMinutes Minutes        `json:"expected_minutes"`
	BalanceMinutes  Minutes        `json:"balance_minutes"`
	DelayMinutes    Minutes        `json:"delay_minutes"`
	ExtraMinutes    Minutes        `json:"extra_minutes"`
	TotalDays       int            `json:"total_days"`
	DaysPresent     int            `json:"days_present"`
	DaysLate        int            `json:"days_late"`
	DaysExtra       int            `json:"days_extra"`
	Records         []DailySummary `json:"records"`
}

// CompanyRollup is the company-wide view over all employee aggregates.
type CompanyRollup struct {
	TotalEmployees       int     `json:"total_employees"`
	Present              int     `json:"present"`
	Late                 int     `json:"late"`
	ExtraTime            int     `json:"extra_time"`
	TotalWorkedMinutes   Minutes `json:"total_worked_minutes"`
	TotalExpectedMinutes Minutes `json:"total_expected_minutes"`
	TotalBalanceMinutes  Minutes `json:"total_balance_minutes"`
}

type RangeReport struct {
	DateFrom  string              `json:"date_from"`
	DateTo    string              `json:"date_to"`
	Summary   CompanyRollup       `json:"summary"`
	Employees []EmployeeAggregate `json:"employees"`
}

// CompanySummary is either the upstream single-day dashboard, untouched, or
// an aggregated RangeReport.
type CompanySummary struct {
	Day   json.RawMessage
	Range *RangeReport
}

func (c CompanySummary) IsSingleDay() bool { return c.Range == nil }

func (c CompanySummary) MarshalJSON() ([]byte, error) {
	if c.Range != nil {
		return json.Marshal(c.Range)
	}
	if len(c.Day) == 0 {
		return []byte("null"), nil
	}
	return c.Day, nil
}

// DailySummaryList is the upstream range listing.
type DailySummaryList struct {
	DateFrom string         `json:"date_from"`
	DateTo   string         `json:"date_to"`
	Total    int            `json:"total"`
	Items    []DailySummary `json:"items"`

	// Skipped counts items that were not JSON objects and were dropped.
	Skipped int `json:"-"`
}

func (l *DailySummaryList) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("daily summary list: %w", err)
	}
	*l = DailySummaryList{
		DateFrom: text(fields, "date_from"),
		DateTo:   text(fields, "date_to"),
		Total:    int(number(fields, "total").Decimal().IntPart()),
	}

	raw, ok := lookup(fields, "items")
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("daily summary list items: %w", err)
	}
	l.Items = make([]DailySummary, 0, len(items))
	for _, item := range items {
		var d DailySummary
		if err := json.Unmarshal(item, &d); err != nil {
			l.Skipped++
			continue
		}
		l.Items = append(l.Items, d)
	}
	return nil
}

// MonthlySummary is one employee's month as reported by the ponto API.
type MonthlySummary struct {
	EmployeeID  string  `json:"employee_id"`
	Month       string  `json:"month"`
	WorkedHours Minutes `json:"total_worked_hours"`
	ExtraHours  Minutes `json:"total_extra_hours"`
	DaysWorked  int64   `json:"days_worked"`
}

func (m *MonthlySummary) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("monthly summary: %w", err)
	}
	*m = MonthlySummary{
		EmployeeID:  text(fields, "employee_id"),
		Month:       text(fields, "month"),
		WorkedHours: number(fields, "total_worked_hours", "total_horas_trabalhadas", "worked_hours"),
		ExtraHours:  number(fields, "total_extra_hours", "total_horas_extras", "extra_hours"),
		DaysWorked:  number(fields, "days_worked", "dias_trabalhados").Decimal().IntPart(),
	}
	return nil
}

// lookup returns the first alias present with a non-null value.
func lookup(fields map[string]json.RawMessage, keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		v, ok := fields[k]
		if !ok {
			continue
		}
		if t := bytes.TrimSpace(v); len(t) == 0 || bytes.Equal(t, []byte("null")) {
			continue
		}
		return v, true
	}
	return nil, false
}

func number(fields map[string]json.RawMessage, keys ...string) Minutes {
	v, ok := lookup(fields, keys...)
	if !ok {
		return Minutes{}
	}
	return ParseMinutes(v)
}

func optionalNumber(fields map[string]json.RawMessage, keys ...string) *Minutes {
	v, ok := lookup(fields, keys...)
	if !ok {
		return nil
	}
	m := ParseMinutes(v)
	return &m
}

// text accepts strings and, for ids, bare numbers.
func text(fields map[string]json.RawMessage, keys ...string) string {
	v, ok := lookup(fields, keys...)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	return ""
}

func flag(fields map[string]json.RawMessage, keys ...string) bool {
	v, ok := lookup(fields, keys...)
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b
	}
	return false
}
