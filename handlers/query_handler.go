package handlers

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/tickmint/models"
)

// Querier is the paging and counting surface the query handler needs.
type Querier interface {
	CountByType(typ models.StatusFilter) (uint64, error)
	Page(pageNo, pageSize uint64, typ models.StatusFilter, searchSymbol string) ([]models.AssetView, error)
}

// QueryHandler serves registry-wide counts and pages.
type QueryHandler struct {
	Service Querier
}

func NewQueryHandler(s Querier) *QueryHandler {
	return &QueryHandler{Service: s}
}

// GetCount counts assets, optionally filtered by status.
// GET /assets/count?type=all|in_progress|ended
func (h *QueryHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	typ, ok := models.ParseStatusFilter(r.URL.Query().Get("type"))
	if !ok {
		http.Error(w, "unknown type filter", http.StatusBadRequest)
		return
	}

	count, err := h.Service.CountByType(typ)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]uint64{"count": count})
}

// pageResponse carries parallel record and issued-total arrays, with
// zero-valued entries padding slots past the available result count.
type pageResponse struct {
	Records []models.AssetRecord `json:"records"`
	Issued  []decimal.Decimal    `json:"issued"`
}

// GetPage returns one fixed-size page of the filtered, searched registry.
// GET /assets/page?page=&size=&type=&search=
func (h *QueryHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pageNo, err := strconv.ParseUint(q.Get("page"), 10, 64)
	if err != nil {
		http.Error(w, "page must be a positive integer", http.StatusBadRequest)
		return
	}
	pageSize, err := strconv.ParseUint(q.Get("size"), 10, 64)
	if err != nil {
		http.Error(w, "size must be a positive integer", http.StatusBadRequest)
		return
	}
	typ, ok := models.ParseStatusFilter(q.Get("type"))
	if !ok {
		http.Error(w, "unknown type filter", http.StatusBadRequest)
		return
	}

	views, err := h.Service.Page(pageNo, pageSize, typ, q.Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := pageResponse{
		Records: make([]models.AssetRecord, len(views)),
		Issued:  make([]decimal.Decimal, len(views)),
	}
	for i, v := range views {
		resp.Records[i] = v.Record
		resp.Issued[i] = v.Issued
	}

	writeJSON(w, http.StatusOK, resp)
}
