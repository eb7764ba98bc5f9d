// Package api is the headless JSON surface: the same query operations the
// dashboard uses, served over chi with CORS for external renderers on other
// origins. No HTML, no templates.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"strompris/internal/config"
	"strompris/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// App is the headless API application.
type App struct {
	router  *chi.Mux
	store   ports.DatasetCache
	queries ports.PriceQueries
	config  *config.Config
	httpSrv *http.Server
}

// NewApp wires the API router with logging, recovery, compression, and CORS
// from the configured allowed origins.
func NewApp(cfg *config.Config, store ports.DatasetCache, queries ports.PriceQueries) *App {
	app := &App{
		router:  chi.NewRouter(),
		store:   store,
		queries: queries,
		config:  cfg,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins: a.config.API.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}).Handler)
}

func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/meta", a.handleMeta)
		r.Get("/monthly", a.handleMonthly)
		r.Get("/annual", a.handleAnnual)
		r.Get("/seasonal", a.handleSeasonal)
		r.Get("/comparison", a.handleComparison)
		r.Get("/trend", a.handleTrend)
		r.Get("/overview", a.handleOverview)
		r.Post("/reload", a.handleReload)
	})
}

// Router exposes the handler for httptest.
func (a *App) Router() http.Handler {
	return a.router
}

// Start serves until the context is canceled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", a.config.API.Port)
	a.httpSrv = &http.Server{Addr: addr, Handler: a.router}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[API] Listening on %s", addr)
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Printf("[API] Shutting down")
		return a.httpSrv.Shutdown(shutdownCtx)
	}
}
