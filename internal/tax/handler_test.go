package tax

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"income-tax-tracker/internal/auth"
	"income-tax-tracker/internal/entries"
	"income-tax-tracker/internal/models"
)

func summaryRequest(t *testing.T, ledger *entries.Ledger, target string) (int, Summary) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(auth.WithOwner(req.Context(), "alice"))
	w := httptest.NewRecorder()
	SummaryHandler(ledger)(w, req)

	var s Summary
	if w.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(w.Body).Decode(&s))
	}
	return w.Code, s
}

func TestSummaryHandler(t *testing.T) {
	ledger := entries.NewLedger()
	ledger.Add("alice", models.Entry{ID: 1, Category: models.Income, Description: "salary", Amount: 10000000})

	code, s := summaryRequest(t, ledger, "/api/v1/summary")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 9520000.0, s.TaxableIncome)
	require.False(t, s.HasOtherIncome)

	code, s = summaryRequest(t, ledger, "/api/v1/summary?other_income=true")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 10000000.0, s.TaxableIncome)
	require.InDelta(t, 1764000, s.Tax, 1e-6)

	code, _ = summaryRequest(t, ledger, "/api/v1/summary?other_income=maybe")
	require.Equal(t, http.StatusBadRequest, code)
}

func TestSettingsHandler(t *testing.T) {
	ledger := entries.NewLedger()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", bytes.NewBufferString(`{"has_other_income":true}`))
	req = req.WithContext(auth.WithOwner(req.Context(), "alice"))
	w := httptest.NewRecorder()
	SettingsHandler(ledger)(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.True(t, ledger.OtherIncome("alice"))

	_, s := summaryRequest(t, ledger, "/api/v1/summary")
	require.True(t, s.HasOtherIncome)

	req = httptest.NewRequest(http.MethodPut, "/api/v1/settings", bytes.NewBufferString(`{}`))
	req = req.WithContext(auth.WithOwner(req.Context(), "alice"))
	w = httptest.NewRecorder()
	SettingsHandler(ledger)(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
