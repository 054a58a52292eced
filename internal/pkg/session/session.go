package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCompany  Kind = "empresa"
	KindEmployee Kind = "funcionario"
	KindAdmin    Kind = "super_admin"
)

var (
	ErrMissingCompany = errors.New("token carries no company_id")
	ErrUnknownKind    = errors.New("token type is not recognised")
)

// namespace for deterministic session ids derived from the bearer token.
var namespace = uuid.MustParse("6f1d9c1e-3b0a-4c55-9a49-5e2f4f7b0c11")

// Session is the explicit per-request identity built from verified claims.
type Session struct {
	ID         string
	Token      string
	Kind       Kind
	CompanyID  string
	UserID     string
	EmployeeID string
	Name       string
	ExpiresAt  time.Time
}

func (s *Session) IsAdmin() bool { return s.Kind == KindAdmin }

type ctxKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// Revoker is satisfied by the jwt service.
type Revoker interface {
	RevokeToken(token string, expiresAt time.Time)
	IsTokenRevoked(token string) bool
}

// Manager builds sessions from verified tokens and tears them down when the
// upstream rejects their token.
type Manager struct {
	revoker Revoker

	mu    sync.RWMutex
	hooks []func(*Session)
}

func NewManager(revoker Revoker) *Manager {
	return &Manager{revoker: revoker}
}

// OnTeardown registers a callback run for every torn down session.
func (m *Manager) OnTeardown(fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
}

func (m *Manager) IsRevoked(token string) bool {
	return m.revoker.IsTokenRevoked(token)
}

// Init builds a Session for a company or employee token.
func (m *Manager) Init(token string, claims map[string]interface{}) (*Session, error) {
	s := &Session{
		ID:        sessionID(token),
		Token:     token,
		CompanyID: claimString(claims, "company_id"),
		Name:      firstNonEmpty(claimString(claims, "nome"), claimString(claims, "empresa_nome")),
		ExpiresAt: claimTime(claims, "exp"),
	}

	switch Kind(claimString(claims, "tipo")) {
	case KindEmployee:
		s.Kind = KindEmployee
		s.EmployeeID = claimString(claims, "funcionario_id")
		s.UserID = s.EmployeeID
	case KindCompany, "":
		// older tokens have no tipo claim and are always company tokens
		s.Kind = KindCompany
		s.UserID = claimString(claims, "usuario_id")
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, claims["tipo"])
	}

	if s.CompanyID == "" {
		return nil, ErrMissingCompany
	}
	return s, nil
}

// InitAdmin builds a Session for a super-admin token.
func (m *Manager) InitAdmin(token string, claims map[string]interface{}) (*Session, error) {
	if claimString(claims, "role") != string(KindAdmin) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, claims["role"])
	}
	return &Session{
		ID:        sessionID(token),
		Token:     token,
		Kind:      KindAdmin,
		UserID:    claimString(claims, "login"),
		Name:      claimString(claims, "login"),
		ExpiresAt: claimTime(claims, "exp"),
	}, nil
}

// Teardown revokes the session token locally and notifies hooks.
func (m *Manager) Teardown(s *Session) {
	if s == nil {
		return
	}
	m.revoker.RevokeToken(s.Token, s.ExpiresAt)

	m.mu.RLock()
	hooks := append([]func(*Session){}, m.hooks...)
	m.mu.RUnlock()
	for _, fn := range hooks {
		fn(s)
	}
	slog.Info("Session torn down", "session_id", s.ID, "company_id", s.CompanyID, "kind", s.Kind)
}

// TeardownContext tears down the session carried by ctx, if any.
func (m *Manager) TeardownContext(ctx context.Context) {
	if s, ok := FromContext(ctx); ok {
		m.Teardown(s)
	}
}

func sessionID(token string) string {
	return uuid.NewSHA1(namespace, []byte(token)).String()
}

func claimString(claims map[string]interface{}, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

func claimTime(claims map[string]interface{}, key string) time.Time {
	switch v := claims[key].(type) {
	case time.Time:
		return v
	case float64:
		return time.Unix(int64(v), 0)
	case int64:
		return time.Unix(v, 0)
	default:
		return time.Time{}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
