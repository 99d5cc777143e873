package tax

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"income-tax-tracker/internal/auth"
	"income-tax-tracker/internal/entries"
)

type SettingsRequest struct {
	HasOtherIncome *bool `json:"has_other_income"`
}

// SummaryHandler reports totals and tax for the owner. The other_income query
// parameter overrides the owner's stored setting for this request only.
func SummaryHandler(ledger *entries.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := auth.OwnerFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		hasOtherIncome := ledger.OtherIncome(owner)
		if v := r.URL.Query().Get("other_income"); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "other_income must be true or false", http.StatusBadRequest)
				return
			}
			hasOtherIncome = parsed
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(Summarize(ledger.Entries(owner), hasOtherIncome)); err != nil {
			logrus.Errorf("summary handler: %v", err)
		}
	}
}

func SettingsHandler(ledger *entries.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.HasOtherIncome == nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		owner, ok := auth.OwnerFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ledger.SetOtherIncome(owner, *req.HasOtherIncome)
		w.WriteHeader(http.StatusNoContent)
	}
}
