package entries

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"income-tax-tracker/internal/auth"
)

type CreateEntryRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	// Amount is a JSON number or a string such as "30000*12".
	Amount json.RawMessage `json:"amount"`
}

func (r CreateEntryRequest) amountText() string {
	if len(r.Amount) == 0 || string(r.Amount) == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(r.Amount, &text); err == nil {
		return text
	}
	return string(r.Amount)
}

type ListResponse struct {
	Entries Collection `json:"entries"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("write json response: %v", err)
	}
}

func ListHandler(ledger *Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := auth.OwnerFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, ListResponse{Entries: ledger.Entries(owner)})
	}
}

func CreateHandler(ledger *Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		owner, ok := auth.OwnerFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		e, err := ParseEntry(ledger.NextID(), req.Category, req.Description, req.amountText(), time.Now())
		if err != nil {
			if errors.Is(err, ErrInvalidEntry) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			logrus.Errorf("create entry handler: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		ledger.Add(owner, e)
		logrus.Debugf("owner %s added %s entry %d", owner, e.Category, e.ID)
		writeJSON(w, http.StatusCreated, e)
	}
}

// DeleteHandler answers 204 whether or not the id existed.
func DeleteHandler(ledger *Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := auth.OwnerFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		if ledger.Delete(owner, id) {
			logrus.Debugf("owner %s deleted entry %d", owner, id)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
