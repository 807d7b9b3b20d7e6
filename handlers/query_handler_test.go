package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ferreirogomes/tickmint/handlers"
	"github.com/ferreirogomes/tickmint/models"
)

type MockQuerier struct {
	mock.Mock
}

func (m *MockQuerier) CountByType(typ models.StatusFilter) (uint64, error) {
	args := m.Called(typ)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockQuerier) Page(pageNo, pageSize uint64, typ models.StatusFilter, searchSymbol string) ([]models.AssetView, error) {
	args := m.Called(pageNo, pageSize, typ, searchSymbol)
	return args.Get(0).([]models.AssetView), args.Error(1)
}

func queryRouter(h *handlers.QueryHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/assets/count", h.GetCount)
	r.Get("/assets/page", h.GetPage)
	return r
}

func TestGetCountFilters(t *testing.T) {
	mockSvc := new(MockQuerier)
	mockSvc.On("CountByType", models.StatusAll).Return(uint64(5), nil)
	mockSvc.On("CountByType", models.StatusEnded).Return(uint64(2), nil)

	router := queryRouter(handlers.NewQueryHandler(mockSvc))

	req := httptest.NewRequest(http.MethodGet, "/assets/count", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]uint64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint64(5), got["count"])

	req = httptest.NewRequest(http.MethodGet, "/assets/count?type=ended", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint64(2), got["count"])

	req = httptest.NewRequest(http.MethodGet, "/assets/count?type=bogus", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPageParallelArrays(t *testing.T) {
	mockSvc := new(MockQuerier)
	views := []models.AssetView{
		{Record: models.AssetRecord{ID: 5, Symbol: "tck5"}, Issued: decimal.NewFromInt(300)},
		{Issued: decimal.Zero}, // zero-padded tail slot
	}
	mockSvc.On("Page", uint64(3), uint64(2), models.StatusAll, "").Return(views, nil)

	req := httptest.NewRequest(http.MethodGet, "/assets/page?page=3&size=2", nil)
	w := httptest.NewRecorder()
	queryRouter(handlers.NewQueryHandler(mockSvc)).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Records []models.AssetRecord `json:"records"`
		Issued  []decimal.Decimal    `json:"issued"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Records, 2)
	require.Len(t, got.Issued, 2)
	assert.Equal(t, uint64(5), got.Records[0].ID)
	assert.Equal(t, uint64(0), got.Records[1].ID)
	assert.True(t, got.Issued[0].Equal(decimal.NewFromInt(300)))
	mockSvc.AssertExpectations(t)
}

func TestGetPageBadInputs(t *testing.T) {
	mockSvc := new(MockQuerier)
	mockSvc.On("Page", uint64(9), uint64(2), models.StatusAll, "").
		Return([]models.AssetView{}, &models.RangeError{Reason: "page 9 is past the last page"})

	router := queryRouter(handlers.NewQueryHandler(mockSvc))

	// Out-of-range page is the service's call.
	req := httptest.NewRequest(http.MethodGet, "/assets/page?page=9&size=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unparseable params never reach the service.
	for _, target := range []string{
		"/assets/page?page=x&size=2",
		"/assets/page?page=1&size=",
		"/assets/page?page=1&size=2&type=bogus",
	} {
		req = httptest.NewRequest(http.MethodGet, target, nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
	mockSvc.AssertNumberOfCalls(t, "Page", 1)
}
