package summary

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Minutes is a duration amount in whatever unit the ponto API reports for the
// field. Values are exact decimals so sums do not depend on input order.
// Decoding never fails: null, booleans, objects and non-numeric strings all
// become zero.
type Minutes struct {
	d decimal.Decimal
}

func NewMinutes(v float64) Minutes { return Minutes{d: decimal.NewFromFloat(v)} }

func MinutesFromInt(v int64) Minutes { return Minutes{d: decimal.NewFromInt(v)} }

// ParseMinutes is the lenient parser behind UnmarshalJSON.
func ParseMinutes(raw []byte) Minutes {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Minutes{}
	}
	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Minutes{}
		}
		text = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Minutes{}
	}
	return Minutes{d: d}
}

func (m Minutes) Decimal() decimal.Decimal { return m.d }
func (m Minutes) Add(o Minutes) Minutes    { return Minutes{d: m.d.Add(o.d)} }
func (m Minutes) Neg() Minutes             { return Minutes{d: m.d.Neg()} }
func (m Minutes) IsPositive() bool         { return m.d.IsPositive() }
func (m Minutes) IsZero() bool             { return m.d.IsZero() }
func (m Minutes) Equal(o Minutes) bool     { return m.d.Equal(o.d) }
func (m Minutes) String() string           { return m.d.String() }

// ClampPositive returns m when m > 0, otherwise zero.
func (m Minutes) ClampPositive() Minutes {
	if m.d.IsPositive() {
		return m
	}
	return Minutes{}
}

// MarshalJSON emits a bare JSON number.
func (m Minutes) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

func (m *Minutes) UnmarshalJSON(b []byte) error {
	*m = ParseMinutes(b)
	return nil
}
