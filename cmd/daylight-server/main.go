package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/thurmanmarka/daylight"
	"github.com/thurmanmarka/daylight/internal/config"
	"github.com/thurmanmarka/daylight/internal/gazetteer"
	"github.com/thurmanmarka/daylight/internal/httpapi"
	"github.com/thurmanmarka/daylight/pkg/logger"
)

func main() {
	log := logger.New("daylight")
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	places, closePlaces, err := openGazetteer(ctx, cfg.Gazetteer)
	if err != nil {
		log.Error("failed to open gazetteer", "err", err)
		os.Exit(1)
	}
	defer closePlaces()

	builder := daylight.NewBuilder(cfg.BuilderOptions()...)
	handler := httpapi.NewHandler(builder, places, cfg.Granularity(), log)
	srv := httpapi.NewRouter(cfg, handler)

	go func() {
		log.Info("server starting", "addr", cfg.HTTP.Address, "max_locations", cfg.Compare.MaxLocations, "cache", cfg.Cache.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "err", err)
	}
	log.Info("server stopped")
}

// openGazetteer merges the optional YAML file over the built-in table. With
// a SQLite path the merged table seeds the database, which then serves lookups.
func openGazetteer(ctx context.Context, cfg config.GazetteerConfig) (gazetteer.Source, func() error, error) {
	table := gazetteer.Builtin()
	if cfg.File != "" {
		extra, err := gazetteer.LoadYAML(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		table = table.Merge(extra)
	}

	if cfg.SQLitePath == "" {
		return table, func() error { return nil }, nil
	}

	store, err := gazetteer.OpenSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Seed(ctx, table); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, store.Close, nil
}
