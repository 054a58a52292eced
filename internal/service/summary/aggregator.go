package summary

import (
	"sort"

	"github.com/pontoeletronico/ponto-reports/internal/domain/summary"
)

type AggregatorImpl struct{}

func NewAggregator() summary.Aggregator {
	return AggregatorImpl{}
}

// Aggregate groups items by employee in a single pass and rolls the groups up
// into company totals. Records keep input order; employees come out sorted by
// id so equal inputs always produce equal reports.
func (AggregatorImpl) Aggregate(dateFrom, dateTo string, items []summary.DailySummary) *summary.RangeReport {
	byEmployee := make(map[string]*summary.EmployeeAggregate)

	for _, item := range items {
		acc, ok := byEmployee[item.EmployeeID]
		if !ok {
			acc = &summary.EmployeeAggregate{
				EmployeeID: item.EmployeeID,
				Records:    make([]summary.DailySummary, 0, 1),
			}
			byEmployee[item.EmployeeID] = acc
		}
		// Smallest non-empty name wins so the label does not depend on order.
		if item.EmployeeName != "" && (acc.EmployeeName == "" || item.EmployeeName < acc.EmployeeName) {
			acc.EmployeeName = item.EmployeeName
		}

		delay := item.Delay()
		overtime := item.Overtime()

		acc.WorkedMinutes = acc.WorkedMinutes.Add(item.WorkedMinutes)
		acc.ExpectedMinutes = acc.ExpectedMinutes.Add(item.ExpectedMinutes)
		acc.BalanceMinutes = acc.BalanceMinutes.Add(item.BalanceMinutes)
		acc.DelayMinutes = acc.DelayMinutes.Add(delay)
		acc.ExtraMinutes = acc.ExtraMinutes.Add(overtime)
		acc.TotalDays++
		if item.IsPresent() {
			acc.DaysPresent++
		}
		if delay.IsPositive() {
			acc.DaysLate++
		}
		if overtime.IsPositive() {
			acc.DaysExtra++
		}
		acc.Records = append(acc.Records, item)
	}

	employees := make([]summary.EmployeeAggregate, 0, len(byEmployee))
	for _, acc := range byEmployee {
		if acc.EmployeeName == "" {
			acc.EmployeeName = acc.EmployeeID
		}
		employees = append(employees, *acc)
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].EmployeeID < employees[j].EmployeeID
	})

	return &summary.RangeReport{
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Summary:   rollup(employees),
		Employees: employees,
	}
}

func rollup(employees []summary.EmployeeAggregate) summary.CompanyRollup {
	r := summary.CompanyRollup{TotalEmployees: len(employees)}
	for _, e := range employees {
		if e.DaysPresent > 0 {
			r.Present++
		}
		if e.DaysLate > 0 {
			r.Late++
		}
		if e.DaysExtra > 0 {
			r.ExtraTime++
		}
		r.TotalWorkedMinutes = r.TotalWorkedMinutes.Add(e.WorkedMinutes)
		r.TotalExpectedMinutes = r.TotalExpectedMinutes.Add(e.ExpectedMinutes)
		r.TotalBalanceMinutes = r.TotalBalanceMinutes.Add(e.BalanceMinutes)
	}
	return r
}
