package payment

import (
	"golang.org/x/text/language"

	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/calendar"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/locale"
)

// Generate builds the payment window: center-4 through center+4, in order.
// A month is paid only when payments holds true for its YYYY-MM key.
func Generate(center, today calendar.YearMonth, payments map[string]bool, tag language.Tag) []payment.MonthEntry {
	entries := make([]payment.MonthEntry, 0, 2*payment.WindowRadius+1)
	current := today.String()

	for offset := -payment.WindowRadius; offset <= payment.WindowRadius; offset++ {
		ym := center.AddMonths(offset)
		key := ym.String()

		period := payment.PeriodCurrent
		switch {
		case key < current:
			period = payment.PeriodPast
		case key > current:
			period = payment.PeriodFuture
		}

		entries = append(entries, payment.MonthEntry{
			MonthYear: key,
			Label:     locale.MonthLabel(ym, tag),
			IsPaid:    payments[key],
			Period:    period,
		})
	}
	return entries
}
