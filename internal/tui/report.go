package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
	"github.com/pontoeletronico/ponto-reports/internal/domain/summary"
)

// FormatMinutes renders a minute count as hours and minutes, e.g. "7h05" or "-0h30".
func FormatMinutes(m summary.Minutes) string {
	total := m.Decimal().Round(0).IntPart()
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%dh%02d", sign, total/60, total%60)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(BorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		})
}

func balanceCell(m summary.Minutes) string {
	switch {
	case m.IsPositive():
		return SuccessStyle.Render(FormatMinutes(m))
	case m.IsZero():
		return FormatMinutes(m)
	}
	return ErrorStyle.Render(FormatMinutes(m))
}

// RenderRangeReport prints the company rollup followed by one row per employee.
func RenderRangeReport(r *summary.RangeReport) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Company summary %s → %s", r.DateFrom, r.DateTo)))
	b.WriteString("\n")

	s := r.Summary
	rollup := newTable("Employees", "Present", "Late", "Extra", "Worked", "Expected", "Balance").
		Row(
			fmt.Sprint(s.TotalEmployees),
			fmt.Sprint(s.Present),
			fmt.Sprint(s.Late),
			fmt.Sprint(s.ExtraTime),
			FormatMinutes(s.TotalWorkedMinutes),
			FormatMinutes(s.TotalExpectedMinutes),
			balanceCell(s.TotalBalanceMinutes),
		)
	b.WriteString(rollup.Render())
	b.WriteString("\n")

	if len(r.Employees) == 0 {
		b.WriteString(DimStyle.Render("No records in this range."))
		return b.String()
	}

	t := newTable("Employee", "Name", "Days", "Present", "Late", "Extra", "Worked", "Delay", "Overtime", "Balance")
	for _, e := range r.Employees {
		t.Row(
			e.EmployeeID,
			e.EmployeeName,
			fmt.Sprint(e.TotalDays),
			fmt.Sprint(e.DaysPresent),
			fmt.Sprint(e.DaysLate),
			fmt.Sprint(e.DaysExtra),
			FormatMinutes(e.WorkedMinutes),
			FormatMinutes(e.DelayMinutes),
			FormatMinutes(e.ExtraMinutes),
			balanceCell(e.BalanceMinutes),
		)
	}
	b.WriteString(t.Render())
	return b.String()
}

func RenderDailySummaries(list *summary.DailySummaryList) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Daily summaries %s → %s (%d)", list.DateFrom, list.DateTo, list.Total)))
	b.WriteString("\n")

	if len(list.Items) == 0 {
		b.WriteString(DimStyle.Render("No records in this range."))
		return b.String()
	}

	t := newTable("Date", "Employee", "Status", "In", "Out", "Worked", "Expected", "Balance")
	for _, d := range list.Items {
		t.Row(
			d.Date,
			d.EmployeeID,
			statusCell(d.Status),
			orDash(d.FirstEntryTime),
			orDash(d.LastExitTime),
			FormatMinutes(d.WorkedMinutes),
			FormatMinutes(d.ExpectedMinutes),
			balanceCell(d.BalanceMinutes),
		)
	}
	b.WriteString(t.Render())
	return b.String()
}

func statusCell(s summary.Status) string {
	switch s {
	case summary.StatusLate, summary.StatusMissingExit, summary.StatusIncomplete:
		return WarningStyle.Render(string(s))
	case summary.StatusAbsent:
		return ErrorStyle.Render(string(s))
	case summary.StatusExtra:
		return SuccessStyle.Render(string(s))
	case "":
		return "-"
	}
	return string(s)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// RenderMonthly prints monthly totals. The hour fields are shown as sent.
func RenderMonthly(items []summary.MonthlySummary) string {
	if len(items) == 0 {
		return DimStyle.Render("No monthly summaries.")
	}
	t := newTable("Employee", "Month", "Worked hours", "Extra hours", "Days worked")
	for _, m := range items {
		t.Row(m.EmployeeID, m.Month, m.WorkedHours.String(), m.ExtraHours.String(), fmt.Sprint(m.DaysWorked))
	}
	return t.Render()
}

// RenderPaymentWindow prints the nine-month window, marking the current month.
func RenderPaymentWindow(companyID string, months []payment.MonthEntry) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Payments for " + companyID))
	b.WriteString("\n")

	t := newTable("Month", "", "Paid")
	for _, m := range months {
		paid := ErrorStyle.Render("no")
		if m.IsPaid {
			paid = SuccessStyle.Render("yes")
		}
		label := m.Label
		switch m.Period {
		case payment.PeriodCurrent:
			label = lipgloss.NewStyle().Bold(true).Render(label + " •")
		case payment.PeriodFuture:
			label = DimStyle.Render(label)
		}
		t.Row(m.MonthYear, label, paid)
	}
	b.WriteString(t.Render())
	return b.String()
}
