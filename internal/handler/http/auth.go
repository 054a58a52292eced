package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/pontoeletronico/ponto-reports/internal/handler/http/response"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/pontoapi"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/validator"
)

// Authenticator exchanges credentials for an upstream token.
type Authenticator interface {
	Login(ctx context.Context, req pontoapi.LoginRequest) (*pontoapi.LoginResponse, error)
}

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Session(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authenticator Authenticator
	sessions      *session.Manager
}

type sessionResponse struct {
	SessionID  string       `json:"session_id"`
	Kind       session.Kind `json:"kind"`
	CompanyID  string       `json:"company_id,omitempty"`
	UserID     string       `json:"user_id,omitempty"`
	EmployeeID string       `json:"employee_id,omitempty"`
	Name       string       `json:"name,omitempty"`
	ExpiresAt  *time.Time   `json:"expires_at,omitempty"`
}

// Login relays POST /auth/login to the ponto API and returns its token.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req pontoapi.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(req.UserID) {
		errs = append(errs, validator.ValidationError{Field: "usuario_id", Message: "usuario_id is required"})
	}
	if validator.IsEmpty(req.Password) {
		errs = append(errs, validator.ValidationError{Field: "senha", Message: "senha is required"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := a.authenticator.Login(r.Context(), req)
	if err != nil {
		slog.Error("Login failed", "error", err, "usuario_id", req.UserID)
		response.HandleError(w, err)
		return
	}

	slog.Info("User logged in", "usuario_id", req.UserID, "company_id", result.CompanyID)
	response.SuccessWithMessage(w, "Login successful", result)
}

// Session returns the identity the gateway built from the bearer token.
func (a *AuthHandlerImpl) Session(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session is required")
		return
	}

	resp := sessionResponse{
		SessionID:  s.ID,
		Kind:       s.Kind,
		CompanyID:  s.CompanyID,
		UserID:     s.UserID,
		EmployeeID: s.EmployeeID,
		Name:       s.Name,
	}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt
		resp.ExpiresAt = &exp
	}
	response.Success(w, resp)
}

// Logout tears the session down locally; the token is rejected from now on.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session is required")
		return
	}

	a.sessions.Teardown(s)
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

func NewAuthHandler(authenticator Authenticator, sessions *session.Manager) AuthHandler {
	return &AuthHandlerImpl{
		authenticator: authenticator,
		sessions:      sessions,
	}
}
