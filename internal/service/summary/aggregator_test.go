package summary

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontoeletronico/ponto-reports/internal/domain/summary"
)

func decodeItems(t *testing.T, body string) []summary.DailySummary {
	t.Helper()
	var items []summary.DailySummary
	require.NoError(t, json.Unmarshal([]byte(body), &items))
	return items
}

const rangeItems = `[
	{"employee_id":"e2","employee_name":"Bia","date":"2025-03-01","worked_minutes":480,"expected_minutes":480,"balance_minutes":0,"status":"normal"},
	{"employee_id":"e1","employee_name":"Ana","date":"2025-03-01","worked_minutes":450.5,"expected_minutes":480,"balance_minutes":-29.5,"status":"late"},
	{"employee_id":"e1","employee_name":"Ana","date":"2025-03-02","worked_minutes":0,"expected_minutes":480,"balance_minutes":-480,"delay_minutes":0,"status":"absent"},
	{"employee_id":"e3","date":"2025-03-01","worked_minutes":540,"expected_minutes":480,"balance_minutes":60,"status":"extra"},
	{"employee_id":"e2","employee_name":"Bia","date":"2025-03-02","worked_minutes":500,"expected_minutes":480,"balance_minutes":20,"extra_minutes":0,"status":"normal"}
]`

func TestAggregate_EmployeeTotals(t *testing.T) {
	report := NewAggregator().Aggregate("2025-03-01", "2025-03-02", decodeItems(t, rangeItems))

	require.Len(t, report.Employees, 3)
	e1, e2, e3 := report.Employees[0], report.Employees[1], report.Employees[2]

	assert.Equal(t, "e1", e1.EmployeeID)
	assert.Equal(t, "Ana", e1.EmployeeName)
	assert.Equal(t, "450.5", e1.WorkedMinutes.String())
	assert.Equal(t, "960", e1.ExpectedMinutes.String())
	assert.Equal(t, "-509.5", e1.BalanceMinutes.String())
	assert.Equal(t, 2, e1.TotalDays)
	assert.Equal(t, 1, e1.DaysPresent)
	// day 1 derives delay from the balance, day 2 has an explicit zero
	assert.Equal(t, 1, e1.DaysLate)
	assert.Equal(t, "29.5", e1.DelayMinutes.String())
	assert.Equal(t, 0, e1.DaysExtra)

	assert.Equal(t, 0, e2.DaysExtra, "explicit extra_minutes=0 wins over a positive balance")
	assert.Equal(t, 2, e2.DaysPresent)
	assert.Equal(t, []string{"2025-03-01", "2025-03-02"}, []string{e2.Records[0].Date, e2.Records[1].Date})

	assert.Equal(t, "e3", e3.EmployeeName, "name falls back to id")
	assert.Equal(t, 1, e3.DaysExtra)
	assert.Equal(t, "60", e3.ExtraMinutes.String())
}

func TestAggregate_CompanyRollup(t *testing.T) {
	items := decodeItems(t, rangeItems)
	report := NewAggregator().Aggregate("2025-03-01", "2025-03-02", items)

	r := report.Summary
	assert.Equal(t, 3, r.TotalEmployees)
	assert.Equal(t, 3, r.Present)
	assert.Equal(t, 1, r.Late)
	assert.Equal(t, 1, r.ExtraTime)

	sum := summary.Minutes{}
	for _, it := range items {
		sum = sum.Add(it.WorkedMinutes)
	}
	assert.True(t, sum.Equal(r.TotalWorkedMinutes), "total worked %s != %s", r.TotalWorkedMinutes, sum)
	assert.Equal(t, "1970.5", r.TotalWorkedMinutes.String())
	assert.Equal(t, "2400", r.TotalExpectedMinutes.String())
	assert.Equal(t, "-429.5", r.TotalBalanceMinutes.String())
}

func TestAggregate_PermutationInvariant(t *testing.T) {
	items := decodeItems(t, rangeItems)
	agg := NewAggregator()

	want, err := json.Marshal(agg.Aggregate("a", "b", items).Summary)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]summary.DailySummary(nil), items...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := json.Marshal(agg.Aggregate("a", "b", shuffled).Summary)
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(got))
	}

	named := decodeItems(t, `[
		{"employee_id":"e9","employee_name":"Ana Souza","worked_hours":8},
		{"employee_id":"e9","employee_name":"Ana","worked_hours":8},
		{"employee_id":"e9","worked_hours":8}
	]`)
	reversed := []summary.DailySummary{named[2], named[1], named[0]}
	for _, in := range [][]summary.DailySummary{named, reversed} {
		report := agg.Aggregate("a", "b", in)
		require.Len(t, report.Employees, 1)
		assert.Equal(t, "Ana", report.Employees[0].EmployeeName)
	}
}

func TestAggregate_NonNumericWorkedHoursCountsZero(t *testing.T) {
	items := decodeItems(t, `[
		{"employee_id":"e1","worked_hours":"oito horas","expected_hours":8},
		{"employee_id":"e1","worked_hours":6,"expected_hours":8}
	]`)

	report := NewAggregator().Aggregate("2025-03-01", "2025-03-02", items)
	assert.Equal(t, "6", report.Summary.TotalWorkedMinutes.String())
	assert.Equal(t, "16", report.Summary.TotalExpectedMinutes.String())
}

func TestAggregate_Empty(t *testing.T) {
	report := NewAggregator().Aggregate("2025-03-01", "2025-03-02", nil)

	assert.Equal(t, 0, report.Summary.TotalEmployees)
	assert.NotNil(t, report.Employees)

	out, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"employees":[]`)
}
