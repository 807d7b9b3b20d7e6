package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/tickmint/models"
	"github.com/ferreirogomes/tickmint/storage"
)

// QueryService answers listing, counting, and paging over the registry,
// joining each record with the live total reported by its issuance module.
// Results are always in ascending id order (insertion order).
type QueryService struct {
	store   storage.Store
	modules *ModuleDirectory
}

func NewQueryService(store storage.Store, modules *ModuleDirectory) *QueryService {
	return &QueryService{store: store, modules: modules}
}

// ListByStatus returns all assets matching the filter: "ended" means the
// issued total has reached the cap, "in_progress" means it has not.
func (q *QueryService) ListByStatus(typ models.StatusFilter) ([]models.AssetView, error) {
	return q.collect(typ, "")
}

// CountByType counts assets matching the filter.
func (q *QueryService) CountByType(typ models.StatusFilter) (uint64, error) {
	views, err := q.collect(typ, "")
	if err != nil {
		return 0, err
	}
	return uint64(len(views)), nil
}

// MaxPageSize bounds the page allocation; the size comes straight from the
// query string, so without a ceiling a single request could demand an
// arbitrarily large slice.
const MaxPageSize = 1000

// Page slices the filtered (and, if searchSymbol is non-empty, searched)
// result set into fixed-size pages, zero-padding slots past the available
// count. Page bounds are validated against the unfiltered registry count,
// matching the reference behavior: a search can legitimately return a short
// page 1 without a range error.
func (q *QueryService) Page(pageNo, pageSize uint64, typ models.StatusFilter, searchSymbol string) ([]models.AssetView, error) {
	if pageSize == 0 {
		return nil, &models.RangeError{Reason: "page size must be at least 1"}
	}
	if pageSize > MaxPageSize {
		return nil, &models.RangeError{Reason: fmt.Sprintf("page size exceeds maximum of %d", MaxPageSize)}
	}
	if pageNo == 0 {
		return nil, &models.RangeError{Reason: "page numbers start at 1"}
	}

	total, err := q.store.Count()
	if err != nil {
		return nil, err
	}
	pages := (total + pageSize - 1) / pageSize
	if pageNo > pages {
		return nil, &models.RangeError{Reason: fmt.Sprintf("page %d exceeds page count %d", pageNo, pages)}
	}

	views, err := q.collect(typ, searchSymbol)
	if err != nil {
		return nil, err
	}

	out := make([]models.AssetView, pageSize)
	for i := range out {
		out[i] = models.AssetView{Issued: decimal.Zero}
	}
	start := (pageNo - 1) * pageSize
	for i := uint64(0); i < pageSize; i++ {
		idx := start + i
		if idx >= uint64(len(views)) {
			break
		}
		out[i] = views[idx]
	}
	return out, nil
}

// collect scans the registry in id order, joining live issuance totals and
// applying the status filter and the exact canonical-symbol search.
func (q *QueryService) collect(typ models.StatusFilter, searchSymbol string) ([]models.AssetView, error) {
	recs, err := q.store.ListAssets()
	if err != nil {
		return nil, err
	}

	search := ""
	if searchSymbol != "" {
		search = models.CanonicalSymbol(searchSymbol)
	}

	views := make([]models.AssetView, 0, len(recs))
	for _, rec := range recs {
		issued := decimal.Zero
		if mod, ok := q.modules.Get(rec.ModuleAddress); ok {
			issued = mod.TotalIssued()
		}

		ended := issued.GreaterThanOrEqual(rec.Cap)
		switch typ {
		case models.StatusEnded:
			if !ended {
				continue
			}
		case models.StatusInProgress:
			if ended {
				continue
			}
		}
		if search != "" && rec.Symbol != search {
			continue
		}

		views = append(views, models.AssetView{Record: rec, Issued: issued})
	}
	return views, nil
}
