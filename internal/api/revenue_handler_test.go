package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"garagem/internal/db"
	"garagem/internal/entities"
	"garagem/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// revenueStore serves only the revenue query; the lifecycle methods are never
// reached by these tests.
type revenueStore struct {
	amount decimal.Decimal
	err    error
}

func (s *revenueStore) FindActiveByPlate(string) (*db.Vehicle, error) { return nil, nil }

func (s *revenueStore) RegisterEntry(*db.Vehicle, int64) error { return nil }

func (s *revenueStore) RegisterExit(*db.Vehicle) error { return nil }

func (s *revenueStore) RevenueBySectorAndRange(string, time.Time, time.Time) (decimal.Decimal, error) {
	return s.amount, s.err
}

func getRevenue(t *testing.T, store *revenueStore, target string) *httptest.ResponseRecorder {
	t.Helper()
	svc := service.NewParkingService(store, nil, nil, nil, nil)
	handler := NewRevenueHandler(svc)

	rr := httptest.NewRecorder()
	handler.GetRevenue(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestGetRevenue(t *testing.T) {
	store := &revenueStore{amount: decimal.RequireFromString("117.45")}
	rr := getRevenue(t, store, "/revenue?sector=A&date=2025-01-20")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp entities.RevenueResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Amount.Equal(decimal.RequireFromString("117.45")))
	assert.Equal(t, "BRL", resp.Currency)
}

func TestGetRevenueBadDate(t *testing.T) {
	rr := getRevenue(t, &revenueStore{}, "/revenue?sector=A&date=20-01-2025")

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
}

func TestGetRevenueStoreFailure(t *testing.T) {
	rr := getRevenue(t, &revenueStore{err: errors.New("connection refused")}, "/revenue?sector=A&date=2025-01-20")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
}

func TestGetRevenueMissingParams(t *testing.T) {
	rr := getRevenue(t, &revenueStore{}, "/revenue?sector=A")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
