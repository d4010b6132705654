package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/falc-storefront/internal/cart/render"
	catalogapp "github.com/dwikikusuma/falc-storefront/internal/catalog/app"
	"github.com/dwikikusuma/falc-storefront/internal/catalog/infra/yamlfile"
	checkoutapp "github.com/dwikikusuma/falc-storefront/internal/checkout/app"
	"github.com/dwikikusuma/falc-storefront/internal/web"
	"github.com/dwikikusuma/falc-storefront/pkg/config"
	"github.com/dwikikusuma/falc-storefront/pkg/logger"
	"github.com/dwikikusuma/falc-storefront/pkg/shutdown"
	"github.com/dwikikusuma/falc-storefront/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background(), log)
	defer cancel()

	store, err := storage.Open(ctx, storage.Config{
		Driver:     cfg.StorageDriver,
		SQLitePath: cfg.SQLitePath,
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		log.Error("storage open failed", slog.Any("err", err), slog.String("driver", cfg.StorageDriver))
		os.Exit(1)
	}
	defer store.Close()

	catalogRepo := mustCatalog(log, cfg.CatalogPath)
	catalogSvc := catalogapp.NewService(catalogRepo, cfg.CurrencySymbol)
	checkoutSvc := checkoutapp.NewService(log)

	srv := web.NewServer(web.Deps{
		Storage:    store,
		Catalog:    catalogSvc,
		Checkout:   checkoutSvc,
		Renderer:   render.NewRenderer(cfg.CurrencySymbol),
		Log:        log,
		SessionTTL: cfg.SessionTTL,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr), slog.String("storage", cfg.StorageDriver))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("http server error", slog.Any("err", err))
	}
	log.Info("bye")
}

func mustCatalog(log *slog.Logger, path string) *yamlfile.ProductRepo {
	if path == "" {
		return yamlfile.Default()
	}
	repo, err := yamlfile.Load(path)
	if err != nil {
		log.Error("catalog load failed", slog.Any("err", err), slog.String("path", path))
		os.Exit(1)
	}
	return repo
}
