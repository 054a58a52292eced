package daterange

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pontoeletronico/ponto-reports/internal/domain/daterange"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/calendar"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/validator"
)

const (
	DefaultIdleTTL       = 30 * time.Minute
	DefaultMaxPerSession = 16
)

type storeKey struct {
	sessionID string
	name      string
}

// SelectorStore keeps one Selector per (session, name), created on first use.
type SelectorStore struct {
	mu         sync.Mutex
	selectors  map[storeKey]*Selector
	perSession map[string]int

	resetDelay    time.Duration
	idleTTL       time.Duration
	maxPerSession int
	clock         func() time.Time
}

type StoreOption func(*SelectorStore)

// WithMaxPerSession caps how many named selectors one session may hold.
func WithMaxPerSession(n int) StoreOption {
	return func(st *SelectorStore) {
		if n > 0 {
			st.maxPerSession = n
		}
	}
}

func NewSelectorStore(resetDelay, idleTTL time.Duration, opts ...StoreOption) *SelectorStore {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	st := &SelectorStore{
		selectors:     make(map[storeKey]*Selector),
		perSession:    make(map[string]int),
		resetDelay:    resetDelay,
		idleTTL:       idleTTL,
		maxPerSession: DefaultMaxPerSession,
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

var _ daterange.SelectorService = (*SelectorStore)(nil)

func (st *SelectorStore) get(ctx context.Context, name string) (*Selector, error) {
	s, ok := session.FromContext(ctx)
	if !ok {
		return nil, daterange.ErrSessionRequired
	}
	if !validator.IsValidIdentifier(name) {
		return nil, daterange.ErrInvalidName
	}

	key := storeKey{sessionID: s.ID, name: name}

	st.mu.Lock()
	defer st.mu.Unlock()
	sel, ok := st.selectors[key]
	if !ok {
		if st.perSession[s.ID] >= st.maxPerSession {
			return nil, daterange.ErrTooManyRanges
		}
		sel = NewSelector(WithResetDelay(st.resetDelay), WithSelectorClock(st.clock))
		st.selectors[key] = sel
		st.perSession[s.ID]++
	}
	return sel, nil
}

// remove must be called with st.mu held.
func (st *SelectorStore) remove(key storeKey, sel *Selector) {
	sel.Close()
	delete(st.selectors, key)
	if st.perSession[key.sessionID]--; st.perSession[key.sessionID] <= 0 {
		delete(st.perSession, key.sessionID)
	}
}

func stateOf(name string, sel *Selector) *daterange.State {
	state := sel.State()
	state.Name = name
	return &state
}

func (st *SelectorStore) State(ctx context.Context, name string) (*daterange.State, error) {
	sel, err := st.get(ctx, name)
	if err != nil {
		return nil, err
	}
	return stateOf(name, sel), nil
}

func (st *SelectorStore) Select(ctx context.Context, name string, req daterange.SelectRequest) (*daterange.State, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sel, err := st.get(ctx, name)
	if err != nil {
		return nil, err
	}

	d, _ := calendar.ParseDate(req.Date)
	if err := sel.Select(d); err != nil {
		return nil, err
	}
	return stateOf(name, sel), nil
}

func (st *SelectorStore) Clear(ctx context.Context, name string) (*daterange.State, error) {
	sel, err := st.get(ctx, name)
	if err != nil {
		return nil, err
	}
	sel.Clear()
	return stateOf(name, sel), nil
}

func (st *SelectorStore) SetBounds(ctx context.Context, name string, req daterange.BoundsRequest) (*daterange.State, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sel, err := st.get(ctx, name)
	if err != nil {
		return nil, err
	}

	lo, _ := calendar.ParseDate(req.MinDate)
	hi, _ := calendar.ParseDate(req.MaxDate)
	sel.SetBounds(lo, hi)
	return stateOf(name, sel), nil
}

func (st *SelectorStore) SweepIdle(ctx context.Context, now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	swept := 0
	for key, sel := range st.selectors {
		if now.Sub(sel.LastTouched()) > st.idleTTL {
			st.remove(key, sel)
			swept++
		}
	}
	if swept > 0 {
		slog.Info("Idle date range selectors swept", "count", swept, "remaining", len(st.selectors))
	}
	return swept
}

func (st *SelectorStore) DropSession(sessionID string) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	dropped := 0
	for key, sel := range st.selectors {
		if key.sessionID == sessionID {
			st.remove(key, sel)
			dropped++
		}
	}
	return dropped
}

// Len is the number of live selectors.
func (st *SelectorStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.selectors)
}
