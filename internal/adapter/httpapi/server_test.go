package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moriverguide/river-conditions-service/internal/adapter/history"
	"github.com/moriverguide/river-conditions-service/internal/aggregator"
	"github.com/moriverguide/river-conditions-service/internal/domain"
)

type fakeLevels struct {
	data  map[string]aggregator.RiverConditions
	ready bool
}

func (f *fakeLevels) CheckReadiness(_ context.Context) error {
	if !f.ready {
		return errors.New("no successful water-level refresh yet")
	}
	return nil
}

func (f *fakeLevels) WaterLevels(_ context.Context) map[string]aggregator.RiverConditions {
	return f.data
}

func (f *fakeLevels) RiverDetail(_ context.Context, riverID string) (aggregator.RiverConditions, bool) {
	rc, ok := f.data[riverID]
	return rc, ok
}

type fakeHistory struct {
	readings []history.Reading
	err      error
	gotRiver string
	gotSince time.Time
}

func (f *fakeHistory) RiverHistory(_ context.Context, riverID string, since time.Time) ([]history.Reading, error) {
	f.gotRiver = riverID
	f.gotSince = since
	return f.readings, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleConditions() map[string]aggregator.RiverConditions {
	gage := 4.5
	updated := "2026-08-30T10:00:00Z"
	status := domain.StatusResult{
		Status:      domain.StatusOptimal,
		Description: "Optimal (3-7 ft) - Great floating conditions",
		Color:       domain.ColorGreen,
	}
	return map[string]aggregator.RiverConditions{
		"current-river": {
			Name: "Current River",
			Stations: []aggregator.StationReading{
				{
					ID:          "07067000",
					Name:        "Current River at Van Buren",
					GageHeight:  &gage,
					LastUpdated: &updated,
					Status:      &status,
				},
			},
			LastUpdated: &updated,
		},
	}
}

func newTestServer(levels WaterLevelSource, historyReader HistoryReader) *Server {
	return NewServer(":0", levels, historyReader, testLogger())
}

func TestHandleWaterLevels(t *testing.T) {
	srv := newTestServer(&fakeLevels{data: sampleConditions()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/water-levels", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "s-maxage=3600, stale-while-revalidate=86400", rec.Header().Get("Cache-Control"))

	var body map[string]aggregator.RiverConditions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "current-river")
	assert.Equal(t, "Current River", body["current-river"].Name)
}

func TestHandleWaterLevels_AlwaysOKOnDegradedData(t *testing.T) {
	data := sampleConditions()
	rc := data["current-river"]
	rc.Error = "Using simulated data"
	data["current-river"] = rc

	srv := newTestServer(&fakeLevels{data: data}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/water-levels", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Using simulated data")
}

func TestHandleWaterLevels_NullFieldsSerialize(t *testing.T) {
	srv := newTestServer(&fakeLevels{data: map[string]aggregator.RiverConditions{
		"current-river": {
			Name:     "Current River",
			Stations: []aggregator.StationReading{{ID: "07066000", Name: "Doniphan"}},
		},
	}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/water-levels", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	// Missing readings render as JSON null, not omitted.
	assert.Contains(t, rec.Body.String(), `"gageHeight":null`)
	assert.Contains(t, rec.Body.String(), `"status":null`)
	assert.Contains(t, rec.Body.String(), `"lastUpdated":null`)
}

func TestHandleRiverDetail(t *testing.T) {
	t.Run("known river", func(t *testing.T) {
		srv := newTestServer(&fakeLevels{data: sampleConditions()}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/water-levels/current-river", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "s-maxage=3600, stale-while-revalidate=86400", rec.Header().Get("Cache-Control"))

		var rc aggregator.RiverConditions
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rc))
		assert.Equal(t, "Current River", rc.Name)
	})

	t.Run("unknown river", func(t *testing.T) {
		srv := newTestServer(&fakeLevels{data: sampleConditions()}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/water-levels/mississippi-river", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown river")
	})
}

func TestHandleRiverHistory(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		srv := newTestServer(&fakeLevels{data: sampleConditions()}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/water-levels/current-river/history", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "not enabled")
	})

	t.Run("unknown river", func(t *testing.T) {
		srv := newTestServer(&fakeLevels{data: sampleConditions()}, &fakeHistory{})

		req := httptest.NewRequest(http.MethodGet, "/api/water-levels/nowhere-river/history", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("default window", func(t *testing.T) {
		gage := 4.5
		fh := &fakeHistory{readings: []history.Reading{{
			SiteID:     "07067000",
			GageHeight: &gage,
			Status:     string(domain.StatusOptimal),
			ObservedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		}}}
		srv := newTestServer(&fakeLevels{data: sampleConditions()}, fh)

		req := httptest.NewRequest(http.MethodGet, "/api/water-levels/current-river/history", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "current-river", fh.gotRiver)
		assert.WithinDuration(t, time.Now().Add(-72*time.Hour), fh.gotSince, time.Minute)

		var body struct {
			River    string            `json:"river"`
			Hours    int               `json:"hours"`
			Readings []history.Reading `json:"readings"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "current-river", body.River)
		assert.Equal(t, 72, body.Hours)
		require.Len(t, body.Readings, 1)
		assert.Equal(t, "07067000", body.Readings[0].SiteID)
	})

	t.Run("custom hours", func(t *testing.T) {
		fh := &fakeHistory{}
		srv := newTestServer(&fakeLevels{data: sampleConditions()}, fh)

		req := httptest.NewRequest(http.MethodGet, "/api/water-levels/current-river/history?hours=24", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.WithinDuration(t, time.Now().Add(-24*time.Hour), fh.gotSince, time.Minute)
	})

	t.Run("invalid hours", func(t *testing.T) {
		for _, v := range []string{"0", "-5", "999", "week"} {
			req := httptest.NewRequest(http.MethodGet, "/api/water-levels/current-river/history?hours="+v, nil)
			rec := httptest.NewRecorder()
			newTestServer(&fakeLevels{data: sampleConditions()}, &fakeHistory{}).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "hours=%s", v)
		}
	})

	t.Run("empty history is an empty list", func(t *testing.T) {
		srv := newTestServer(&fakeLevels{data: sampleConditions()}, &fakeHistory{})

		req := httptest.NewRequest(http.MethodGet, "/api/water-levels/current-river/history", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"readings":[]`)
	})

	t.Run("query failure", func(t *testing.T) {
		fh := &fakeHistory{err: errors.New("db locked")}
		srv := newTestServer(&fakeLevels{data: sampleConditions()}, fh)

		req := httptest.NewRequest(http.MethodGet, "/api/water-levels/current-river/history", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&fakeLevels{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, rec.Body.String())
}

func TestHandleReady(t *testing.T) {
	t.Run("not ready before first refresh", func(t *testing.T) {
		srv := newTestServer(&fakeLevels{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("ready after refresh", func(t *testing.T) {
		srv := newTestServer(&fakeLevels{ready: true}, nil)

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status": "ready"}`, rec.Body.String())
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&fakeLevels{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&fakeLevels{data: sampleConditions()}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/water-levels", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
