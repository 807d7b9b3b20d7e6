package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

// Administrator is the capability-gated surface: fee withdrawal and global
// parameter updates, effective for future calls only.
type Administrator interface {
	Withdraw(to string, amount decimal.Decimal) error
	UpdateBaseFee(fee decimal.Decimal) error
	UpdateFundingCommission(bps int64) error
	UpdateTickSize(size int) error
	FeeBalance() (decimal.Decimal, error)
}

// AdminHandler serves the administrative surface.
type AdminHandler struct {
	Service Administrator
}

func NewAdminHandler(s Administrator) *AdminHandler {
	return &AdminHandler{Service: s}
}

// AdminOnly rejects requests whose X-Admin-Key header does not match the
// configured key. An empty configured key disables the surface entirely.
func AdminOnly(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Admin-Key")
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Withdraw moves accumulated fees out of the vault.
// POST /admin/withdraw
func (h *AdminHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		To     string          `json:"to"`
		Amount decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.Withdraw(requestBody.To, requestBody.Amount); err != nil {
		writeError(w, err)
		return
	}

	balance, err := h.Service.FeeBalance()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"balance": balance})
}

// UpdateBaseFee sets the flat deploy fee / escalator base.
// PUT /admin/params/base-fee
func (h *AdminHandler) UpdateBaseFee(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Fee decimal.Decimal `json:"fee"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.UpdateBaseFee(requestBody.Fee); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateFundingCommission sets the revenue-share commission rate.
// PUT /admin/params/funding-commission
func (h *AdminHandler) UpdateFundingCommission(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		RateBps int64 `json:"rate_bps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.UpdateFundingCommission(requestBody.RateBps); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateTickSize sets the required symbol byte length.
// PUT /admin/params/tick-size
func (h *AdminHandler) UpdateTickSize(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Size int `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.UpdateTickSize(requestBody.Size); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
