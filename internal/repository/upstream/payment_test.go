package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/pontoapi"
)

func TestPaymentRepository_RoundTrip(t *testing.T) {
	stored := map[string]bool{"2025-01": true}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		if r.URL.Path == "/api/admin/companies/missing/payment-status" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Empresa não encontrada"})
			return
		}
		require.Equal(t, "/api/admin/companies/c1/payment-status", r.URL.Path)

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"companyId": "c1", "payments": stored})
		case http.MethodPost:
			var body struct {
				MonthYear string `json:"monthYear"`
				IsPaid    bool   `json:"isPaid"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			stored[body.MonthYear] = body.IsPaid
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"success":true}`))
		}
	}))
	defer srv.Close()

	repo := NewPaymentRepository(pontoapi.New(srv.URL, pontoapi.WithStaticToken("admin-token")))
	ctx := context.Background()

	require.NoError(t, repo.SetStatus(ctx, "c1", "2025-02", true, "ignored"))
	payments, err := repo.ListByCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"2025-01": true, "2025-02": true}, payments)

	_, err = repo.ListByCompany(ctx, "missing")
	assert.ErrorIs(t, err, payment.ErrCompanyNotFound)
}
