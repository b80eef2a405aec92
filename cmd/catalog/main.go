package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ProductCatalog/internal/catalog"
	"ProductCatalog/internal/config"
	"ProductCatalog/pkg/kit"
)

func main() {
	service := "catalog"

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := kit.NewLogger(service, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	store := catalog.NewStore()
	if cfg.CatalogFile != "" {
		f, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			log.Fatal("load catalog file failed", zap.Error(err))
		}
		store = f.Store()
		log.Info("catalog file loaded",
			zap.String("path", cfg.CatalogFile),
			zap.Int("products", len(f.Products)),
			zap.Int("rules", len(f.Rules)),
		)
	}

	for _, p := range store.List() {
		log.Info("product",
			zap.Int("id", p.ID),
			zap.String("name", p.Name),
			zap.String("section", p.Section),
			zap.String("subsection", p.Subsection),
			zap.String("coverage", p.Coverage),
			zap.Any("extension", p.Extension),
		)
	}

	s := &catalog.Server{Store: store, Log: log}

	reg := prometheus.NewRegistry()
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})

	if err := kit.RunHTTPServer(context.Background(), ":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
