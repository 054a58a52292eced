package locale

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pontoeletronico/ponto-reports/internal/pkg/calendar"
)

// Default is the product's home locale.
var Default = language.BrazilianPortuguese

var supported = []language.Tag{
	language.BrazilianPortuguese,
	language.English,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

type monthTable struct {
	names    [12]string
	format   string // month, year
	weekdays [7]string
}

var tables = map[language.Tag]monthTable{
	language.BrazilianPortuguese: {
		names: [12]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho",
			"julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
		format:   "%s de %d",
		weekdays: [7]string{"Do", "Se", "Te", "Qu", "Qu", "Se", "Sá"},
	},
	language.English: {
		names: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
		format:   "%s %d",
		weekdays: [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	},
	language.Spanish: {
		names: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		format:   "%s de %d",
		weekdays: [7]string{"Do", "Lu", "Ma", "Mi", "Ju", "Vi", "Sá"},
	},
}

// Match returns the supported locale closest to the given BCP 47 tag.
// Empty or unparseable input yields Default.
func Match(tag string) language.Tag {
	if tag == "" {
		return Default
	}
	t, err := language.Parse(tag)
	if err != nil {
		return Default
	}
	_, idx, _ := matcher.Match(t)
	return supported[idx]
}

// FromAcceptLanguage picks a supported locale from an Accept-Language header.
func FromAcceptLanguage(header string, fallback language.Tag) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return supported[idx]
}

// MonthLabel renders a month as "Janeiro de 2025" (pt-BR), "January 2025" (en)...
// Only the first letter is upper-cased.
func MonthLabel(ym calendar.YearMonth, tag language.Tag) string {
	tag, tbl := table(tag)
	label := fmt.Sprintf(tbl.format, tbl.names[ym.Month-1], ym.Year)
	return upperFirst(label, tag)
}

func upperFirst(s string, tag language.Tag) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(tag).String(string(r)) + s[size:]
}

// WeekdayLabels returns two-letter weekday names starting on Sunday.
func WeekdayLabels(tag language.Tag) [7]string {
	_, tbl := table(tag)
	return tbl.weekdays
}

func table(tag language.Tag) (language.Tag, monthTable) {
	if tbl, ok := tables[tag]; ok {
		return tag, tbl
	}
	tag = Match(tag.String())
	return tag, tables[tag]
}
