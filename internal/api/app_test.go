package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"strompris/internal/config"
	"strompris/internal/datastore"
	"strompris/internal/query"
	"strompris/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	sheet := testkit.NewGridGenerator(testkit.GridConfig{
		MinYear: 2020, MaxYear: 2021, BasePrice: 85, Seed: 13,
	}).Generate()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, testkit.WriteCSV(sheet, path))

	cfg := config.Default()
	cfg.Data.File = path
	cfg.Data.MinYear = 2020
	cfg.Data.MaxYear = 2021
	cfg.API.AllowedOrigins = []string{"https://renderer.example"}

	store := datastore.New(path, 2020, 2021)
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	return NewApp(cfg, store, query.NewEngine(store))
}

func TestAPIEndpoints(t *testing.T) {
	app := newTestApp(t)
	for _, view := range []string{"monthly", "annual", "seasonal", "comparison", "trend", "overview"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/"+view, nil)
		rec := httptest.NewRecorder()
		app.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "view %s", view)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	}
}

func TestAPICORSHeaders(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/meta", nil)
	req.Header.Set("Origin", "https://renderer.example")
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	assert.Equal(t, "https://renderer.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIInvalidInput(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/comparison?regions=atlantis", nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_INPUT", body.Error.Code)
}

func TestAPISelectionDefaults(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/annual", nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			Year   int    `json:"year"`
			Region string `json:"region"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2*5, "defaults should cover all regions over the full range")
}
