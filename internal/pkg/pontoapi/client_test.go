package pontoapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontoeletronico/ponto-reports/internal/domain/summary"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
)

func sessionCtx(token string) context.Context {
	return session.NewContext(context.Background(), &session.Session{ID: "s1", Token: token, CompanyID: "c1"})
}

func TestClient_InjectsBearerFromSession(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	_, err := c.GetCompanyDashboard(sessionCtx("tok-123"), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_MissingToken(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.GetCompanyDashboard(context.Background(), "2025-03-10")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestClient_CompanyDashboardIsPassedThrough(t *testing.T) {
	body := `{"date":"2025-03-10","summaries":[{"employee_id":"e1","worked_hours":"weird"}],"extra":1}`
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	raw, err := New(srv.URL).GetCompanyDashboard(sessionCtx("t"), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/dashboard/company/2025-03-10", gotPath)
	assert.Equal(t, body, string(raw))
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Token inválido"}`))
	}))
	defer srv.Close()

	var hookCalled bool
	c := New(srv.URL, WithSessionExpiredHook(func(ctx context.Context) {
		s, ok := session.FromContext(ctx)
		hookCalled = ok && s.Token == "t"
	}))

	_, err := c.GetCompanyDashboard(sessionCtx("t"), "2025-03-10")
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Contains(t, err.Error(), "Token inválido")
	assert.True(t, hookCalled)
}

func TestClient_APIErrorMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"date_from e date_to são obrigatórios"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListDailySummaries(sessionCtx("t"), summary.ListDailySummariesRequest{DateFrom: "2025-03-01", DateTo: "2025-03-05"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "date_from e date_to são obrigatórios", apiErr.Message)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).GetCompanyDashboard(sessionCtx("t"), "2025-03-10")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestClient_ListDailySummaries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/daily-summary", r.URL.Path)
		assert.Equal(t, "2025-03-01", r.URL.Query().Get("date_from"))
		assert.Equal(t, "2025-03-05", r.URL.Query().Get("date_to"))
		assert.Equal(t, "e1", r.URL.Query().Get("employee_id"))
		_, _ = w.Write([]byte(`{"items":[{"employee_id":"e1","horas_trabalhadas":8},{"employee_id":"e1","horas_trabalhadas":"x"}]}`))
	}))
	defer srv.Close()

	list, err := New(srv.URL).ListDailySummaries(sessionCtx("t"), summary.ListDailySummariesRequest{
		EmployeeID: "e1", DateFrom: "2025-03-01", DateTo: "2025-03-05",
	})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, "2025-03-01", list.DateFrom)
	assert.Equal(t, "8", list.Items[0].WorkedMinutes.String())
	assert.True(t, list.Items[1].WorkedMinutes.IsZero())
}

func TestClient_GetDailySummaryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/daily-summary/e%201/2025-03-10", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Resumo não encontrado"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetDailySummary(sessionCtx("t"), "e 1", "2025-03-10")
	assert.ErrorIs(t, err, summary.ErrDailySummaryNotFound)
}

func TestClient_RecalculateAndRebuild(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		switch r.URL.Path {
		case "/api/v2/recalc/daily":
			assert.Equal(t, "e1", r.URL.Query().Get("employee_id"))
			assert.Equal(t, "2025-03-10", r.URL.Query().Get("date"))
			_, _ = w.Write([]byte(`{"message":"ok","summary":{"employee_id":"e1","worked_minutes":480}}`))
		case "/api/v2/rebuild/daily":
			b, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"employee_id":"e1","date_from":"2025-03-01","date_to":"2025-03-31"}`, string(b))
			_, _ = w.Write([]byte(`{"rebuilt":31}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	item, err := c.RecalculateDaily(sessionCtx("t"), "e1", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "480", item.WorkedMinutes.String())

	res, err := c.RebuildDaily(sessionCtx("t"), summary.RebuildDailyRequest{EmployeeID: "e1", DateFrom: "2025-03-01", DateTo: "2025-03-31"})
	require.NoError(t, err)
	assert.Equal(t, float64(31), res["rebuilt"])
}

func TestClient_MonthlySummaryPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/monthly-summary/e1/2025/03", r.URL.Path)
		_, _ = w.Write([]byte(`{"total_horas_trabalhadas":100,"total_horas_extras":2,"dias_trabalhados":12}`))
	}))
	defer srv.Close()

	m, err := New(srv.URL).GetMonthlySummary(sessionCtx("t"), "e1", 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(12), m.DaysWorked)
}

func TestClient_PaymentStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/companies/c1/payment-status", r.URL.Path)
		if r.Method == http.MethodPost {
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "2025-06", body["monthYear"])
			assert.Equal(t, true, body["isPaid"])
			_, _ = w.Write([]byte(`{"message":"ok"}`))
			return
		}
		_, _ = w.Write([]byte(`{"companyId":"c1","payments":{"2025-05":true,"2025-06":false,"2025-07":"true"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithStaticToken("admin"))
	payments, err := c.GetPaymentStatus(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"2025-05": true, "2025-06": false}, payments)

	require.NoError(t, c.SetPaymentStatus(context.Background(), "c1", "2025-06", true))
}

func TestClient_LoginIsAnonymous(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "/api/login", r.URL.Path)
		var body LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Login ou senha incorretos"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"new-token","company_id":"c1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), LoginRequest{UserID: "demo", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "new-token", resp.Token)

	_, err = c.Login(context.Background(), LoginRequest{UserID: "demo", Password: "wrong"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Login ou senha incorretos", apiErr.Message)
	assert.False(t, errors.Is(err, ErrSessionExpired))
}

func TestClient_ListDailySummariesSkipsMalformedItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"employee_id":"e1","worked_hours":60},42]}`))
	}))
	defer srv.Close()

	list, err := New(srv.URL).ListDailySummaries(sessionCtx("t"), summary.ListDailySummariesRequest{
		DateFrom: "2025-03-01", DateTo: "2025-03-01",
	})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "e1", list.Items[0].EmployeeID)
}
