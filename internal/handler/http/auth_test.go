package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontoeletronico/ponto-reports/internal/pkg/jwt"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/pontoapi"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
)

type fakeAuthenticator struct {
	calls int
	resp  *pontoapi.LoginResponse
	err   error
}

func (f *fakeAuthenticator) Login(ctx context.Context, req pontoapi.LoginRequest) (*pontoapi.LoginResponse, error) {
	f.calls++
	return f.resp, f.err
}

func newAuthHandlerForTest(auth *fakeAuthenticator) (AuthHandler, *session.Manager) {
	sessions := session.NewManager(jwt.NewJWTService(handlerTestSecret, handlerTestAdminSecret))
	return NewAuthHandler(auth, sessions), sessions
}

func postLogin(h AuthHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	auth := &fakeAuthenticator{resp: &pontoapi.LoginResponse{Token: "tok", CompanyID: "c1", CompanyName: "ACME"}}
	h, _ := newAuthHandlerForTest(auth)

	rec := postLogin(h, `{"usuario_id":"acme","senha":"pw"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Login successful", env.Message)
	var got pontoapi.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "ACME", got.CompanyName)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	auth := &fakeAuthenticator{}
	h, _ := newAuthHandlerForTest(auth)

	rec := postLogin(h, `{"usuario_id":"  "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, auth.calls)
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	auth := &fakeAuthenticator{}
	h, _ := newAuthHandlerForTest(auth)

	rec := postLogin(h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, auth.calls)
}

func TestAuthHandler_Login_UpstreamRejects(t *testing.T) {
	auth := &fakeAuthenticator{err: &pontoapi.APIError{StatusCode: http.StatusUnauthorized, Message: "Credenciais inválidas"}}
	h, _ := newAuthHandlerForTest(auth)

	rec := postLogin(h, `{"usuario_id":"acme","senha":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Credenciais inválidas", env.Error.Message)
}

func TestAuthHandler_Logout_RevokesToken(t *testing.T) {
	h, sessions := newAuthHandlerForTest(&fakeAuthenticator{})

	torn := 0
	sessions.OnTeardown(func(*session.Session) { torn++ })

	s, err := sessions.Init("tok-1", map[string]interface{}{"company_id": "c1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(session.NewContext(req.Context(), s))
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sessions.IsRevoked("tok-1"))
	assert.Equal(t, 1, torn)
}

func TestAuthHandler_Session_WithoutSession(t *testing.T) {
	h, _ := newAuthHandlerForTest(&fakeAuthenticator{})

	rec := httptest.NewRecorder()
	h.Session(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
