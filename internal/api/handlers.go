package api

import (
	"encoding/json"
	"log"
	"net/http"

	"strompris/domain/pricing"
	apperrors "strompris/internal/errors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound, apperrors.CodeFileError, apperrors.CodeSchemaError, apperrors.CodeValidationError:
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]errorBody{"error": {Code: code, Message: err.Error()}})
}

func (a *App) selection(r *http.Request) (pricing.Selection, error) {
	q := r.URL.Query()
	sel, err := pricing.ParseSelectionArgs(
		q.Get("regions"), q.Get("from"), q.Get("to"),
		a.config.Data.MinYear, a.config.Data.MaxYear,
	)
	if err != nil {
		return pricing.Selection{}, apperrors.InvalidInput(err.Error())
	}
	return sel, nil
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := a.store.Dataset(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleMeta(w http.ResponseWriter, r *http.Request) {
	regions := make([]map[string]string, 0, len(pricing.AllRegions))
	for _, region := range pricing.AllRegions {
		regions = append(regions, map[string]string{
			"code": string(region),
			"name": region.DisplayName(),
		})
	}
	minYear, maxYear := a.config.Data.MinYear, a.config.Data.MaxYear
	if ds, err := a.store.Dataset(); err == nil {
		minYear, maxYear = ds.YearBounds()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"regions":  regions,
		"min_year": minYear,
		"max_year": maxYear,
		"views":    []string{"monthly", "annual", "seasonal", "comparison", "trend", "overview"},
		"unit":     "øre/kWh",
	})
}

// serveQuery runs one view query behind the shared parameter parsing and
// error mapping.
func (a *App) serveQuery(w http.ResponseWriter, r *http.Request, chart pricing.ChartKind, run func(pricing.Selection) (interface{}, error)) {
	sel, err := a.selection(r)
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := run(sel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"chart": chart, "data": data})
}

func (a *App) handleMonthly(w http.ResponseWriter, r *http.Request) {
	a.serveQuery(w, r, pricing.ChartLine, func(sel pricing.Selection) (interface{}, error) {
		return a.queries.Monthly(sel)
	})
}

func (a *App) handleAnnual(w http.ResponseWriter, r *http.Request) {
	a.serveQuery(w, r, pricing.ChartLine, func(sel pricing.Selection) (interface{}, error) {
		return a.queries.Annual(sel)
	})
}

func (a *App) handleSeasonal(w http.ResponseWriter, r *http.Request) {
	a.serveQuery(w, r, pricing.ChartBox, func(sel pricing.Selection) (interface{}, error) {
		return a.queries.Seasonal(sel)
	})
}

func (a *App) handleComparison(w http.ResponseWriter, r *http.Request) {
	a.serveQuery(w, r, pricing.ChartBar, func(sel pricing.Selection) (interface{}, error) {
		return a.queries.RegionalComparison(sel)
	})
}

func (a *App) handleTrend(w http.ResponseWriter, r *http.Request) {
	a.serveQuery(w, r, pricing.ChartBar, func(sel pricing.Selection) (interface{}, error) {
		return a.queries.Trend(sel)
	})
}

func (a *App) handleOverview(w http.ResponseWriter, r *http.Request) {
	sel, err := a.selection(r)
	if err != nil {
		writeError(w, err)
		return
	}
	overview, err := a.queries.Overview(sel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": overview})
}

func (a *App) handleReload(w http.ResponseWriter, r *http.Request) {
	ds, err := a.store.Reload(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "reloaded", "records": ds.Len()})
}
