package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"strompris/internal"
	"strompris/internal/config"
	"strompris/internal/datastore"
	apperrors "strompris/internal/errors"
	"strompris/internal/query"
	"strompris/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration [%s]: %v", apperrors.GetCode(err), err)
	}

	internal.DefaultLogger = internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))

	store := datastore.New(appConfig.Data.File, appConfig.Data.MinYear, appConfig.Data.MaxYear)

	// Eager load: a missing file, broken schema, or bad cell aborts startup
	// with a non-zero exit. A load either fully succeeds once or the process
	// does not start.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := store.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load price data [%s]: %v", apperrors.GetCode(err), err)
	}
	minYear, maxYear := ds.YearBounds()
	log.Printf("Price dataset ready: %d records, %d..%d", ds.Len(), minYear, maxYear)

	server, err := ui.NewServer(appConfig, store, query.NewEngine(store))
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("Starting strompris dashboard on port %d", appConfig.Server.Port)
	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("Shutdown complete")
}
