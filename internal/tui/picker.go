package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/pontoeletronico/ponto-reports/internal/domain/daterange"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/calendar"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/locale"
	daterangeService "github.com/pontoeletronico/ponto-reports/internal/service/daterange"
)

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Clear     key.Binding
	NextMonth key.Binding
	PrevMonth key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Clear, k.PrevMonth, k.NextMonth, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Select, k.Clear, k.PrevMonth, k.NextMonth, k.Quit},
	}
}

var defaultKeys = keyMap{
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous day")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next day")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "previous week")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "next week")),
	Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	NextMonth: key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next month")),
	PrevMonth: key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "previous month")),
	Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Picker is a month-grid date range picker driven by a daterange Selector.
// It quits as soon as a range is finalized.
type Picker struct {
	selector *daterangeService.Selector
	tag      language.Tag
	today    calendar.Date
	cursor   calendar.Date
	keys     keyMap
	help     help.Model

	result    *daterange.Range
	message   string
	cancelled bool
}

// NewPicker opens on today's month. Extra options go to the underlying selector.
func NewPicker(today calendar.Date, tag language.Tag, opts ...daterangeService.SelectorOption) *Picker {
	p := &Picker{
		tag:    tag,
		today:  today,
		cursor: today,
		keys:   defaultKeys,
		help:   help.New(),
	}
	opts = append(opts,
		daterangeService.WithResetDelay(0),
		daterangeService.WithOnChange(func(r daterange.Range) {
			if r.StartDate == "" {
				p.result = nil
				return
			}
			p.result = &r
		}),
	)
	p.selector = daterangeService.NewSelector(opts...)
	return p
}

func (p *Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.help.Width = msg.Width

	case tea.KeyMsg:
		p.message = ""
		switch {
		case key.Matches(msg, p.keys.Quit):
			p.cancelled = true
			return p, tea.Quit
		case key.Matches(msg, p.keys.Left):
			p.cursor = p.cursor.AddDays(-1)
		case key.Matches(msg, p.keys.Right):
			p.cursor = p.cursor.AddDays(1)
		case key.Matches(msg, p.keys.Up):
			p.cursor = p.cursor.AddDays(-7)
		case key.Matches(msg, p.keys.Down):
			p.cursor = p.cursor.AddDays(7)
		case key.Matches(msg, p.keys.NextMonth):
			p.cursor = shiftMonth(p.cursor, 1)
		case key.Matches(msg, p.keys.PrevMonth):
			p.cursor = shiftMonth(p.cursor, -1)
		case key.Matches(msg, p.keys.Clear):
			p.selector.Clear()
		case key.Matches(msg, p.keys.Select):
			if err := p.selector.Select(p.cursor); err != nil {
				if errors.Is(err, daterange.ErrDateDisabled) {
					p.message = fmt.Sprintf("%s is outside the allowed range", p.cursor)
				} else {
					p.message = err.Error()
				}
				return p, nil
			}
			if p.result != nil {
				return p, tea.Quit
			}
		}
	}
	return p, nil
}

// shiftMonth moves by whole months, clamping the day to the target month.
func shiftMonth(d calendar.Date, n int) calendar.Date {
	ym := d.YearMonth().AddMonths(n)
	last := ym.LastDay()
	if d.Day > last.Day {
		return last
	}
	return calendar.Date{Year: ym.Year, Month: ym.Month, Day: d.Day}
}

func (p *Picker) View() string {
	var b strings.Builder

	month := p.cursor.YearMonth()
	b.WriteString(TitleStyle.Render(locale.MonthLabel(month, p.tag)))
	b.WriteString("\n")

	for _, wd := range locale.WeekdayLabels(p.tag) {
		b.WriteString(dayStyle.Render(wd))
	}
	b.WriteString("\n")

	first := month.FirstDay()
	last := month.LastDay()
	col := int(first.Weekday())
	b.WriteString(strings.Repeat(dayStyle.Render(""), col))

	start, end := p.selector.Start(), p.selector.End()
	for d := first; !d.After(last); d = d.AddDays(1) {
		b.WriteString(p.cellStyle(d, start, end).Render(fmt.Sprintf("%d", d.Day)))
		col++
		if col == 7 && d.Day != last.Day {
			b.WriteString("\n")
			col = 0
		}
	}
	b.WriteString("\n")

	status := "choose the first day"
	if !start.IsZero() {
		status = fmt.Sprintf("from %s, choose the last day", start)
	}
	b.WriteString(DimStyle.Render(status))
	if p.message != "" {
		b.WriteString("\n" + ErrorStyle.Render(p.message))
	}
	b.WriteString("\n" + HelpStyle.Render(p.help.View(p.keys)))
	return b.String()
}

func (p *Picker) cellStyle(d, start, end calendar.Date) styleRenderer {
	switch {
	case d.Equal(p.cursor):
		return cursorStyle
	case p.selector.IsDateDisabled(d):
		return disabledStyle
	case !start.IsZero() && (d.Equal(start) || d.Equal(end)):
		return endpointStyle
	case !start.IsZero() && end.IsZero() && d.After(start) && d.Before(p.cursor):
		// preview of the range being chosen
		return inRangeStyle
	case !start.IsZero() && !end.IsZero() && d.After(start) && d.Before(end):
		return inRangeStyle
	case d.Equal(p.today):
		return todayStyle
	}
	return dayStyle
}

type styleRenderer interface {
	Render(strs ...string) string
}

// Result is the finalized range, false if the user quit first.
func (p *Picker) Result() (daterange.Range, bool) {
	if p.cancelled || p.result == nil {
		return daterange.Range{}, false
	}
	return *p.result, true
}

// RunPicker runs the picker full screen and returns the chosen range.
func RunPicker(p *Picker) (daterange.Range, bool, error) {
	final, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	if err != nil {
		return daterange.Range{}, false, err
	}
	r, ok := final.(*Picker).Result()
	return r, ok, nil
}
