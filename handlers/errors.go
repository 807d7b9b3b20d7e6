package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ferreirogomes/tickmint/models"
)

// writeError maps the service error taxonomy onto HTTP statuses. Validation
// and range failures are the caller's fault; conflicts and payments get
// their dedicated statuses; instantiation failures are server-side.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr    *models.ValidationError
		conflictErr      *models.ConflictError
		rangeErr         *models.RangeError
		instantiationErr *models.InstantiationError
	)

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &rangeErr):
		http.Error(w, rangeErr.Error(), http.StatusBadRequest)
	case errors.As(err, &conflictErr):
		http.Error(w, conflictErr.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrInsufficientPayment):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, models.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &instantiationErr):
		http.Error(w, instantiationErr.Error(), http.StatusInternalServerError)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
