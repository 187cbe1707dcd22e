package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlens-server/src/models"
)

const (
	acc1     = "a1000000-0000-4000-8000-000000000001"
	acc2     = "a1000000-0000-4000-8000-000000000002"
	accOther = "a1000000-0000-4000-8000-000000000003"
)

func forecastStore() *fakeStore {
	return &fakeStore{
		accounts: []models.Account{
			{ID: acc1, UserID: testUserID},
			{ID: acc2, UserID: testUserID},
			{ID: accOther, UserID: "someone-else"},
		},
		transactions: []models.Transaction{
			debitOn("t1", acc1, "groceries", 100, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)),
			debitOn("t2", acc1, "groceries", 200, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
			debitOn("t3", acc1, "groceries", 300, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)),
			debitOn("t4", acc2, "travel", 1000, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)),
			debitOn("t5", accOther, "travel", 9999, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)),
		},
	}
}

func TestGetForecasts(t *testing.T) {
	store := forecastStore()
	cache := newFakeCache()
	h := GetForecasts(store, cache, fixedClock)

	rec := serve(h, http.MethodGet, "/api/forecasts", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.ForecastResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []models.ForecastResult{
		{Category: "travel", PredictedAmount: 500, Confidence: 0.3, Trend: models.TrendUp},
		{Category: "groceries", PredictedAmount: 170, Confidence: 0.8, Trend: models.TrendDown},
	}, got)
	assert.ElementsMatch(t, []string{acc1, acc2}, store.gotAccountIDs)
	assert.Equal(t, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), store.gotSince)

	// second call is served from the cache
	rec = serve(h, http.MethodGet, "/api/forecasts", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, store.txCalls)
}

func TestGetForecasts_AccountFilter(t *testing.T) {
	store := forecastStore()
	h := GetForecasts(store, newFakeCache(), fixedClock)

	rec := serve(h, http.MethodGet, "/api/forecasts?account_id="+acc2+"&months=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{acc2}, store.gotAccountIDs)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), store.gotSince)

	rec = serve(h, http.MethodGet, "/api/forecasts?account_id="+accOther, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, http.MethodGet, "/api/forecasts?account_id=acc-2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetForecasts_Errors(t *testing.T) {
	for _, q := range []string{"months=0", "months=25", "months=six"} {
		rec := serve(GetForecasts(forecastStore(), newFakeCache(), fixedClock), http.MethodGet, "/api/forecasts?"+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	store := forecastStore()
	store.transactionsErr = errors.New("timeout")
	cache := newFakeCache()
	rec := serve(GetForecasts(store, cache, fixedClock), http.MethodGet, "/api/forecasts", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, cache.forecasts)
}

func TestGetForecasts_NoAccounts(t *testing.T) {
	store := &fakeStore{}
	rec := serve(GetForecasts(store, newFakeCache(), fixedClock), http.MethodGet, "/api/forecasts", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Zero(t, store.txCalls)
}
