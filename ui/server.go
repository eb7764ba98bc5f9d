package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"strompris/internal/config"
	"strompris/ports"

	"github.com/gin-gonic/gin"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Server is the interactive dashboard: an HTML shell plus the /api/v1 JSON
// surface the in-page charts render from. Every interaction is one
// stateless request; the only shared state is the read-only dataset behind
// the store.
type Server struct {
	router    *gin.Engine
	store     ports.DatasetCache
	queries   ports.PriceQueries
	config    *config.Config
	templates *template.Template
	httpSrv   *http.Server
}

// NewServer wires the dashboard server. The store is held as a cache handle
// for the explicit reload endpoint; everything else reads through queries.
func NewServer(cfg *config.Config, store ports.DatasetCache, queries ports.PriceQueries) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.New(),
		store:     store,
		queries:   queries,
		config:    cfg,
		templates: templates,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(RequestID())
	s.router.Use(RequestLogger())
}

func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[Server] static filesystem unavailable: %v", err)
	} else {
		s.router.StaticFS("/static", http.FS(staticFS))
	}

	s.router.GET("/", s.handleDashboard)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api/v1")
	api.GET("/meta", s.handleMeta)
	api.GET("/monthly", s.handleMonthly)
	api.GET("/annual", s.handleAnnual)
	api.GET("/seasonal", s.handleSeasonal)
	api.GET("/comparison", s.handleComparison)
	api.GET("/trend", s.handleTrend)
	api.GET("/overview", s.handleOverview)
	api.POST("/reload", s.handleReload)
}

// Router exposes the underlying handler, mainly for httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.httpSrv = &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Dashboard listening on %s", addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Printf("[Server] Shutting down")
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}
