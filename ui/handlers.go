package ui

import (
	"net/http"

	"strompris/domain/pricing"
	apperrors "strompris/internal/errors"

	"github.com/gin-gonic/gin"
)

// regionOption is one entry of the dashboard's region filter.
type regionOption struct {
	Code pricing.Region `json:"code"`
	Name string         `json:"name"`
}

func regionOptions() []regionOption {
	options := make([]regionOption, 0, len(pricing.AllRegions))
	for _, r := range pricing.AllRegions {
		options = append(options, regionOption{Code: r, Name: r.DisplayName()})
	}
	return options
}

func (s *Server) handleDashboard(c *gin.Context) {
	s.renderTemplate(c, "dashboard.html", gin.H{
		"Title":   "Strømpriser i Norge",
		"Regions": regionOptions(),
		"MinYear": s.config.Data.MinYear,
		"MaxYear": s.config.Data.MaxYear,
		"Panels":  infoPanels(),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	if _, err := s.store.Dataset(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleMeta(c *gin.Context) {
	meta := gin.H{
		"regions":  regionOptions(),
		"min_year": s.config.Data.MinYear,
		"max_year": s.config.Data.MaxYear,
		"views":    []string{"monthly", "annual", "seasonal", "comparison", "trend", "overview"},
		"unit":     "øre/kWh",
	}
	if ds, err := s.store.Dataset(); err == nil {
		min, max := ds.YearBounds()
		meta["min_year"], meta["max_year"] = min, max
	}
	c.JSON(http.StatusOK, meta)
}

// selection parses the interaction's filter parameters, defaulting to all
// regions over the configured year bounds.
func (s *Server) selection(c *gin.Context) (pricing.Selection, bool) {
	sel, err := pricing.ParseSelectionArgs(
		c.Query("regions"), c.Query("from"), c.Query("to"),
		s.config.Data.MinYear, s.config.Data.MaxYear,
	)
	if err != nil {
		s.renderError(c, apperrors.InvalidInput(err.Error()))
		return pricing.Selection{}, false
	}
	return sel, true
}

func (s *Server) handleMonthly(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}
	points, err := s.queries.Monthly(sel)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chart": pricing.ChartLine, "data": points})
}

func (s *Server) handleAnnual(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}
	means, err := s.queries.Annual(sel)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chart": pricing.ChartLine, "data": means})
}

func (s *Server) handleSeasonal(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}
	groups, err := s.queries.Seasonal(sel)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chart": pricing.ChartBox, "data": groups})
}

func (s *Server) handleComparison(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}
	comparison, err := s.queries.RegionalComparison(sel)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chart": pricing.ChartBar, "data": comparison})
}

func (s *Server) handleTrend(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}
	trend, err := s.queries.Trend(sel)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chart": pricing.ChartBar, "data": trend})
}

func (s *Server) handleOverview(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}
	overview, err := s.queries.Overview(sel)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": overview})
}

// handleReload is the explicit cache-clear hook: re-read the file, swap on
// success, keep serving the previous dataset on failure.
func (s *Server) handleReload(c *gin.Context) {
	ds, err := s.store.Reload(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reloaded", "records": ds.Len()})
}

// renderError maps error codes onto HTTP statuses: bad parameters are the
// caller's fault, a missing or rejected dataset is a service condition.
func (s *Server) renderError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound, apperrors.CodeFileError, apperrors.CodeSchemaError, apperrors.CodeValidationError:
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": gin.H{
		"code":       code,
		"message":    err.Error(),
		"request_id": requestID(c),
	}})
}
