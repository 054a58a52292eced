package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
	"github.com/pontoeletronico/ponto-reports/internal/domain/summary"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   summary.Minutes
		want string
	}{
		{summary.MinutesFromInt(0), "0h00"},
		{summary.MinutesFromInt(450), "7h30"},
		{summary.MinutesFromInt(-450), "-7h30"},
		{summary.MinutesFromInt(-5), "-0h05"},
		{summary.NewMinutes(59.6), "1h00"},
		{summary.MinutesFromInt(1505), "25h05"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinutes(tt.in))
		})
	}
}

func TestRenderRangeReport(t *testing.T) {
	r := &summary.RangeReport{
		DateFrom: "2025-03-01",
		DateTo:   "2025-03-02",
		Summary: summary.CompanyRollup{
			TotalEmployees:     1,
			Present:            1,
			Late:               1,
			TotalWorkedMinutes: summary.MinutesFromInt(930),
		},
		Employees: []summary.EmployeeAggregate{{
			EmployeeID:     "e1",
			EmployeeName:   "Ana",
			WorkedMinutes:  summary.MinutesFromInt(930),
			BalanceMinutes: summary.MinutesFromInt(-30),
			TotalDays:      2,
		}},
	}

	out := RenderRangeReport(r)
	assert.Contains(t, out, "2025-03-01 → 2025-03-02")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "15h30")
	assert.Contains(t, out, "-0h30")
}

func TestRenderRangeReport_Empty(t *testing.T) {
	out := RenderRangeReport(&summary.RangeReport{DateFrom: "2025-03-01", DateTo: "2025-03-01"})
	assert.Contains(t, out, "No records in this range.")
}

func TestRenderDailySummaries(t *testing.T) {
	list := &summary.DailySummaryList{
		DateFrom: "2025-03-01",
		DateTo:   "2025-03-01",
		Total:    1,
		Items: []summary.DailySummary{{
			EmployeeID:     "e1",
			Date:           "2025-03-01",
			Status:         summary.StatusMissingExit,
			FirstEntryTime: "08:02",
			WorkedMinutes:  summary.MinutesFromInt(240),
		}},
	}
	out := RenderDailySummaries(list)
	assert.Contains(t, out, "missing_exit")
	assert.Contains(t, out, "08:02")
	assert.Contains(t, out, "4h00")
}

func TestRenderMonthly(t *testing.T) {
	assert.Contains(t, RenderMonthly(nil), "No monthly summaries.")

	out := RenderMonthly([]summary.MonthlySummary{{
		EmployeeID: "e1", Month: "2025-03", WorkedHours: summary.NewMinutes(160.5), DaysWorked: 20,
	}})
	assert.Contains(t, out, "160.5")
	assert.Contains(t, out, "2025-03")
}

func TestRenderPaymentWindow(t *testing.T) {
	out := RenderPaymentWindow("c1", []payment.MonthEntry{
		{MonthYear: "2025-02", Label: "Fevereiro de 2025", Period: payment.PeriodPast, IsPaid: true},
		{MonthYear: "2025-03", Label: "Março de 2025", Period: payment.PeriodCurrent},
	})
	assert.Contains(t, out, "Payments for c1")
	assert.Contains(t, out, "Fevereiro de 2025")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
}
