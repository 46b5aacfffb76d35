package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/daylight"
	"github.com/thurmanmarka/daylight/internal/config"
	"github.com/thurmanmarka/daylight/internal/gazetteer"
)

func newRouterUnderTest(t *testing.T) http.Handler {
	t.Helper()
	return newRouterWithPlaces(t, gazetteer.Builtin())
}

func newRouterWithPlaces(t *testing.T, places gazetteer.Source) http.Handler {
	t.Helper()
	builder := daylight.NewBuilder(daylight.WithCache(0))
	handler := NewHandler(builder, places, daylight.Weekly, nil)
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: ":0"}}
	return NewRouter(cfg, handler).Handler
}

func putPlace(h http.Handler, name, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/places/"+name, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, req)
	return recorder
}

func performRequest(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, req)
	return recorder
}

func decodeErrorBody(t *testing.T, body []byte) map[string]map[string]string {
	t.Helper()
	var payload map[string]map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload
}

func TestRouter_Health(t *testing.T) {
	recorder := performRequest(newRouterUnderTest(t), "/health")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"ok","cachedYears":0}`, recorder.Body.String())
	require.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	recorder := httptest.NewRecorder()
	newRouterUnderTest(t).ServeHTTP(recorder, req)
	require.Equal(t, "abc-123", recorder.Header().Get("X-Request-ID"))
}

func TestRouter_Places(t *testing.T) {
	recorder := performRequest(newRouterUnderTest(t), "/api/v1/places")
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Places []string `json:"places"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Contains(t, got.Places, "Hamburg")
	require.IsIncreasing(t, got.Places)
}

func TestRouter_DayLength(t *testing.T) {
	recorder := performRequest(newRouterUnderTest(t), "/api/v1/daylength?lat=53.55&day=172")
	require.Equal(t, http.StatusOK, recorder.Code)

	var got dayLengthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, 172, got.Day)
	require.Equal(t, "Jun 21", got.Label)
	require.Equal(t, "16h 48m", got.Formatted)
	require.InDelta(t, 23.4, got.Declination, 0.1)
	require.False(t, got.PolarNight)
	require.False(t, got.PolarDay)
}

func TestRouter_DayLengthPolarDay(t *testing.T) {
	recorder := performRequest(newRouterUnderTest(t), "/api/v1/daylength?lat=78.22&day=172")
	require.Equal(t, http.StatusOK, recorder.Code)

	var got dayLengthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, 24.0, got.Hours)
	require.Equal(t, "24h 0m", got.Formatted)
	require.True(t, got.PolarDay)
}

func TestRouter_PutPlaceReadOnly(t *testing.T) {
	recorder := putPlace(newRouterUnderTest(t), "Tromso", `{"latitude":69.65}`)
	require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	require.Equal(t, "read_only", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
}

func TestRouter_PutPlaceSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := gazetteer.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Seed(ctx, gazetteer.Builtin()))

	router := newRouterWithPlaces(t, store)

	recorder := putPlace(router, "Tromso", `{"latitude":69.65}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = performRequest(router, "/api/v1/year?place=tromso")
	require.Equal(t, http.StatusOK, recorder.Code)
	var year daylight.LocationYearData
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &year))
	require.Equal(t, 69.65, year.Latitude)
	require.Equal(t, 0.0, year.Winter.Hours)
	require.Equal(t, 24.0, year.Summer.Hours)

	recorder = performRequest(router, "/api/v1/compare?place=hamburg&place=tromso")
	require.Equal(t, http.StatusOK, recorder.Code)
	var cmp daylight.Comparison
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cmp))
	require.Equal(t, []string{"Hamburg", "Tromso"}, cmp.Columns)

	recorder = putPlace(router, "Nowhere", `{"latitude":120}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "invalid_latitude", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])

	recorder = putPlace(router, "Nowhere", `{}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "invalid_request", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
}

func TestRouter_DayLengthErrors(t *testing.T) {
	router := newRouterUnderTest(t)
	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/api/v1/daylength?lat=53.55", http.StatusBadRequest, "invalid_request"},
		{"/api/v1/daylength?lat=abc&day=1", http.StatusBadRequest, "invalid_request"},
		{"/api/v1/daylength?lat=53.55&day=0", http.StatusBadRequest, "invalid_day"},
		{"/api/v1/daylength?lat=53.55&day=366", http.StatusBadRequest, "invalid_day"},
		{"/api/v1/daylength?lat=-90.5&day=10", http.StatusBadRequest, "invalid_latitude"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			recorder := performRequest(router, tt.target)
			require.Equal(t, tt.status, recorder.Code)
			require.Equal(t, tt.code, decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
		})
	}
}

func TestRouter_YearByPlace(t *testing.T) {
	recorder := performRequest(newRouterUnderTest(t), "/api/v1/year?place=hamburg")
	require.Equal(t, http.StatusOK, recorder.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &raw))
	require.NotContains(t, raw, "daily")

	var got daylight.LocationYearData
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "Hamburg", got.Name)
	require.Len(t, got.Weekly, 48)
	require.Len(t, got.Monthly, 12)
	require.Equal(t, "Dec 22", got.Winter.Label)
	require.Equal(t, "7h 12m", got.Winter.Formatted)
	require.Equal(t, "Jun 22", got.Summer.Label)
}

func TestRouter_YearDaily(t *testing.T) {
	recorder := performRequest(newRouterUnderTest(t), "/api/v1/year?lat=0&daily=true")
	require.Equal(t, http.StatusOK, recorder.Code)

	var got daylight.LocationYearData
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Len(t, got.Daily, daylight.DaysInYear)
	require.Equal(t, 12.0, got.Daily[0].Hours)
	require.Equal(t, "12h 0m", got.Daily[0].Formatted)
}

func TestRouter_YearErrors(t *testing.T) {
	router := newRouterUnderTest(t)
	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/api/v1/year", http.StatusBadRequest, "invalid_request"},
		{"/api/v1/year?lat=91", http.StatusBadRequest, "invalid_latitude"},
		{"/api/v1/year?place=Atlantis", http.StatusNotFound, "unknown_place"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			recorder := performRequest(router, tt.target)
			require.Equal(t, tt.status, recorder.Code)
			require.Equal(t, tt.code, decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
		})
	}
}

func TestRouter_CompareMonthly(t *testing.T) {
	recorder := performRequest(newRouterUnderTest(t),
		"/api/v1/compare?place=Hamburg&place=munich&place=Rome&granularity=monthly")
	require.Equal(t, http.StatusOK, recorder.Code)

	var got daylight.Comparison
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, daylight.Monthly, got.Granularity)
	require.Equal(t, []string{"Hamburg", "Munich", "Rome"}, got.Columns)
	require.Len(t, got.Rows, 12)
	require.Equal(t, "Jan", got.Rows[0].Label)
	require.Equal(t, []float64{7.66, 8.49, 9.22}, got.Rows[0].Values)
	require.Len(t, got.Locations, 3)
	require.Equal(t, "9h 36m", got.Locations[0].DifferenceFormatted)
}

func TestRouter_CompareDefaultsToWeekly(t *testing.T) {
	recorder := performRequest(newRouterUnderTest(t), "/api/v1/compare?place=Hamburg&lat=-33.87")
	require.Equal(t, http.StatusOK, recorder.Code)

	var got daylight.Comparison
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, daylight.Weekly, got.Granularity)
	require.Len(t, got.Rows, 48)
	require.Equal(t, "Jan 1", got.Rows[0].Label)
	require.Len(t, got.Columns, 2)
	require.Equal(t, "Hamburg", got.Columns[0])
}

func TestRouter_CompareErrors(t *testing.T) {
	router := newRouterUnderTest(t)
	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/api/v1/compare", http.StatusBadRequest, "no_locations"},
		{"/api/v1/compare?place=Hamburg&granularity=daily", http.StatusBadRequest, "invalid_granularity"},
		{"/api/v1/compare?place=Hamburg&place=Munich&place=Rome&lat=10", http.StatusBadRequest, "too_many_locations"},
		{"/api/v1/compare?place=Hamburg&lat=100", http.StatusBadRequest, "invalid_latitude"},
		{"/api/v1/compare?place=Nowhere", http.StatusNotFound, "unknown_place"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			recorder := performRequest(router, tt.target)
			require.Equal(t, tt.status, recorder.Code)
			require.Equal(t, tt.code, decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
		})
	}
}

func TestDomainErrorFallsBackToInternal(t *testing.T) {
	err := domainError(http.ErrServerClosed)
	require.Equal(t, http.StatusInternalServerError, err.Status)
	require.Equal(t, "internal_error", err.Code)
}
