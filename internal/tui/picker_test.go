package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/pontoeletronico/ponto-reports/internal/domain/daterange"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/calendar"
	daterangeService "github.com/pontoeletronico/ponto-reports/internal/service/daterange"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(t *testing.T, p *Picker, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = p.Update(msg)
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestPicker_SelectsRangeAndQuits(t *testing.T) {
	p := NewPicker(calendar.MustParseDate("2025-03-10"), language.BrazilianPortuguese)

	assert.False(t, isQuit(send(t, p, keyEnter)))
	assert.Equal(t, "2025-03-10", p.selector.Start().String())

	cmd := send(t, p, keyDown, keyRight, keyEnter)
	require.True(t, isQuit(cmd))

	r, ok := p.Result()
	require.True(t, ok)
	assert.Equal(t, daterange.Range{StartDate: "2025-03-10", EndDate: "2025-03-18"}, r)
}

func TestPicker_EarlierDateRestarts(t *testing.T) {
	p := NewPicker(calendar.MustParseDate("2025-03-10"), language.English)

	send(t, p, keyEnter, keyLeft, keyLeft)
	assert.False(t, isQuit(send(t, p, keyEnter)))
	assert.Equal(t, "2025-03-08", p.selector.Start().String())

	_, ok := p.Result()
	assert.False(t, ok)
}

func TestPicker_ClearAndQuit(t *testing.T) {
	p := NewPicker(calendar.MustParseDate("2025-03-10"), language.English)

	send(t, p, keyEnter, runes("c"))
	assert.True(t, p.selector.Start().IsZero())

	require.True(t, isQuit(send(t, p, keyEsc)))
	_, ok := p.Result()
	assert.False(t, ok)
}

func TestPicker_DisabledDateShowsMessage(t *testing.T) {
	p := NewPicker(calendar.MustParseDate("2025-03-10"), language.English,
		daterangeService.WithBounds(calendar.MustParseDate("2025-03-01"), calendar.MustParseDate("2025-03-10")))

	cmd := send(t, p, keyRight, keyEnter)
	assert.False(t, isQuit(cmd))
	assert.True(t, p.selector.Start().IsZero())
	assert.Contains(t, p.View(), "2025-03-11 is outside the allowed range")

	// any key clears the message
	send(t, p, keyLeft)
	assert.NotContains(t, p.View(), "outside the allowed range")
}

func TestPicker_MonthNavigationClampsDay(t *testing.T) {
	p := NewPicker(calendar.MustParseDate("2025-01-31"), language.English)

	send(t, p, runes("n"))
	assert.Equal(t, "2025-02-28", p.cursor.String())

	send(t, p, runes("p"), runes("p"))
	assert.Equal(t, "2024-12-28", p.cursor.String())
}

func TestPicker_View(t *testing.T) {
	p := NewPicker(calendar.MustParseDate("2025-03-10"), language.BrazilianPortuguese)

	view := p.View()
	assert.Contains(t, view, "Março de 2025")
	assert.Contains(t, view, "Sá")
	assert.Contains(t, view, "31")
	assert.Contains(t, view, "choose the first day")

	send(t, p, keyEnter)
	assert.Contains(t, p.View(), "from 2025-03-10, choose the last day")
}
