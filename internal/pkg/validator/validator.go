package validator

import (
	"regexp"
	"strings"

	"github.com/pontoeletronico/ponto-reports/internal/pkg/calendar"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Employee and company ids in the ponto API are opaque path segments.
var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,128}$`)

func IsValidIdentifier(id string) bool {
	return identifierRegex.MatchString(id)
}

// Date validation (YYYY-MM-DD, zero padded)
func IsValidDate(dateStr string) (calendar.Date, bool) {
	d, err := calendar.ParseDate(dateStr)
	return d, err == nil
}

// Month validation (YYYY-MM, zero padded)
func IsValidYearMonth(s string) (calendar.YearMonth, bool) {
	ym, err := calendar.ParseYearMonth(s)
	return ym, err == nil
}
