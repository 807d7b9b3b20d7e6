package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/tickmint/models"
)

// Registry is the admission and lookup surface the asset handler needs.
type Registry interface {
	Deploy(def models.AssetDefinition, paidFee decimal.Decimal, creator string) (models.AssetRecord, error)
	LookupBySymbol(symbol string) (uint64, error)
	Count() (uint64, error)
	GetByID(id uint64) (models.AssetView, bool, error)
	GetBySymbol(symbol string) (models.AssetView, bool, error)
}

// AssetHandler serves admission and single-asset lookups.
type AssetHandler struct {
	Service Registry
}

func NewAssetHandler(s Registry) *AssetHandler {
	return &AssetHandler{Service: s}
}

// CreateAsset admits a new asset.
// POST /assets
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		models.AssetDefinition
		PaidFee decimal.Decimal `json:"paid_fee"`
		Creator string          `json:"creator"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.Service.Deploy(requestBody.AssetDefinition, requestBody.PaidFee, requestBody.Creator)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// GetAssetByID returns a record joined with its live issuance total.
// GET /assets/{id}
func (h *AssetHandler) GetAssetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		http.Error(w, "asset id must be a positive integer", http.StatusBadRequest)
		return
	}

	view, found, err := h.Service.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "asset not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// GetAssetByTick resolves a symbol, case-insensitively, to its joined view.
// GET /assets/by-tick/{symbol}
func (h *AssetHandler) GetAssetByTick(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	view, found, err := h.Service.GetBySymbol(symbol)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "asset not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// GetIDBySymbol returns the id for a symbol, 0 when absent. Lookups never
// fail on a missing symbol.
// GET /assets/id-by-symbol/{symbol}
func (h *AssetHandler) GetIDBySymbol(w http.ResponseWriter, r *http.Request) {
	id, err := h.Service.LookupBySymbol(chi.URLParam(r, "symbol"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]uint64{"id": id})
}
