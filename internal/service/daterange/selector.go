package daterange

import (
	"sync"
	"time"

	"github.com/pontoeletronico/ponto-reports/internal/domain/daterange"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/calendar"
)

// DefaultResetDelay is how long a finalized selection stays in
// choosing-end mode before the next click starts a new range.
const DefaultResetDelay = 300 * time.Millisecond

// Selector is the two-click date range state machine. The first click sets
// the start, the second sets the end and finalizes, a click before the start
// restarts. It is safe for concurrent use.
type Selector struct {
	mu sync.Mutex

	start, end    calendar.Date
	choosingStart bool
	min, max      calendar.Date
	last          *daterange.Range
	resetDelay    time.Duration
	resetTimer    *time.Timer
	resetGen      uint64
	onChange      func(daterange.Range)
	lastTouchedAt time.Time
	clock         func() time.Time
}

type SelectorOption func(*Selector)

func WithResetDelay(d time.Duration) SelectorOption {
	return func(s *Selector) {
		if d >= 0 {
			s.resetDelay = d
		}
	}
}

// WithOnChange registers the callback that receives finalized and cleared ranges.
func WithOnChange(fn func(daterange.Range)) SelectorOption {
	return func(s *Selector) { s.onChange = fn }
}

func WithBounds(lo, hi calendar.Date) SelectorOption {
	return func(s *Selector) { s.min, s.max = lo, hi }
}

func WithSelectorClock(now func() time.Time) SelectorOption {
	return func(s *Selector) { s.clock = now }
}

func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{
		choosingStart: true,
		resetDelay:    DefaultResetDelay,
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastTouchedAt = s.clock()
	return s
}

// IsDateDisabled reports whether d falls outside the inclusive bounds.
func (s *Selector) IsDateDisabled(d calendar.Date) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled(d)
}

func (s *Selector) disabled(d calendar.Date) bool {
	if !s.min.IsZero() && d.Before(s.min) {
		return true
	}
	if !s.max.IsZero() && d.After(s.max) {
		return true
	}
	return false
}

// Select applies one click. Disabled dates return ErrDateDisabled and leave
// the state untouched.
func (s *Selector) Select(d calendar.Date) error {
	s.mu.Lock()
	if s.disabled(d) {
		s.mu.Unlock()
		return daterange.ErrDateDisabled
	}
	s.lastTouchedAt = s.clock()
	s.stopResetLocked()

	var emit *daterange.Range
	switch {
	case s.start.IsZero() || s.choosingStart:
		s.start = d
		s.end = calendar.Date{}
		s.choosingStart = false
	case d.Before(s.start):
		s.start = d
		s.end = calendar.Date{}
	default:
		s.end = d
		r := daterange.Range{StartDate: s.start.String(), EndDate: s.end.String()}
		s.last = &r
		emit = &r
		s.scheduleResetLocked()
	}
	fn := s.onChange
	s.mu.Unlock()

	if emit != nil && fn != nil {
		fn(*emit)
	}
	return nil
}

// Clear empties both dates, returns to choosing-start and emits the empty range.
func (s *Selector) Clear() {
	s.mu.Lock()
	s.lastTouchedAt = s.clock()
	s.stopResetLocked()
	s.start = calendar.Date{}
	s.end = calendar.Date{}
	s.choosingStart = true
	r := daterange.Range{}
	s.last = &r
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(r)
	}
}

// SetBounds replaces the inclusive limits. Zero dates mean unbounded.
// The current selection is kept even if it now falls outside.
func (s *Selector) SetBounds(lo, hi calendar.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouchedAt = s.clock()
	s.min, s.max = lo, hi
}

func (s *Selector) State() daterange.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := daterange.State{
		StartDate: s.start.String(),
		EndDate:   s.end.String(),
		Selecting: daterange.ModeChoosingEnd,
		MinDate:   s.min.String(),
		MaxDate:   s.max.String(),
	}
	if s.choosingStart {
		st.Selecting = daterange.ModeChoosingStart
	}
	if s.last != nil {
		r := *s.last
		st.LastRange = &r
	}
	return st
}

// Range returns the last emitted range, if any.
func (s *Selector) Range() (daterange.Range, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return daterange.Range{}, false
	}
	return *s.last, true
}

// Start and End return the in-progress selection.
func (s *Selector) Start() calendar.Date {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start
}

func (s *Selector) End() calendar.Date {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.end
}

func (s *Selector) LastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTouchedAt
}

// Close stops a pending reset timer.
func (s *Selector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopResetLocked()
}

func (s *Selector) scheduleResetLocked() {
	if s.resetDelay == 0 {
		s.choosingStart = true
		return
	}
	s.resetGen++
	gen := s.resetGen
	s.resetTimer = time.AfterFunc(s.resetDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// a later click or clear superseded this reset
		if gen != s.resetGen {
			return
		}
		s.choosingStart = true
		s.resetTimer = nil
	})
}

func (s *Selector) stopResetLocked() {
	s.resetGen++
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}
