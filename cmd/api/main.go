package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"strompris/internal"
	"strompris/internal/api"
	"strompris/internal/config"
	"strompris/internal/datastore"
	apperrors "strompris/internal/errors"
	"strompris/internal/query"

	"github.com/joho/godotenv"
)

// Headless entry point: the JSON query surface without the HTML dashboard,
// for external renderers.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration [%s]: %v", apperrors.GetCode(err), err)
	}

	internal.DefaultLogger = internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))

	store := datastore.New(appConfig.Data.File, appConfig.Data.MinYear, appConfig.Data.MaxYear)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := store.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load price data [%s]: %v", apperrors.GetCode(err), err)
	}
	log.Printf("Price dataset ready: %d records", ds.Len())

	app := api.NewApp(appConfig, store, query.NewEngine(store))
	log.Printf("Starting strompris API on port %d", appConfig.API.Port)
	if err := app.Start(ctx); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
	log.Println("Shutdown complete")
}
