// Command harvester runs one acquisition-and-validation pass over the
// ChemTel document listing. It takes no arguments; all configuration comes
// from the environment and optional .env files.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/config"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/download"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/listing"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/naming"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability/logger"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability/metrics"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/pipeline"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage/fs"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage/memory"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage/s3"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/validate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "harvester: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// One shared collector set; the metric labels carry the operation, so a
	// per-component instance would only duplicate registrations.
	promMetrics := metrics.New(cfg.ServiceName, nil)

	provider := observability.NewProvider(
		&observability.Config{
			ServiceName: cfg.ServiceName,
			Environment: cfg.Environment,
			LogLevel:    cfg.LogLevel,
		},
		func(obsCfg *observability.Config) observability.Logger {
			return logger.New(obsCfg.LogOutput, obsCfg.LogLevel)
		},
		func(serviceName, component string) observability.Metrics {
			return promMetrics
		},
	)
	defer provider.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		go serveMetrics(ctx, cfg.Metrics.Addr, provider.Logger("metrics"))
	}

	store, err := buildStore(cfg, provider)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	source := listing.NewSource(
		listing.NewChromeFetcher(cfg.Scrape.RenderTimeout),
		cfg.Scrape.CachePath,
		provider.Logger("listing"),
		provider.Metrics("listing"),
	)

	acquirer := download.NewAcquirer(
		download.NewClient(download.ClientConfig{
			Timeout:   cfg.HTTP.Timeout,
			UserAgent: cfg.HTTP.UserAgent,
		}),
		store,
		provider.Logger("download"),
		provider.Metrics("download"),
	)

	checker := validate.NewChecker(
		store,
		validate.NewPDFOpener(),
		provider.Logger("validate"),
		provider.Metrics("validate"),
	)

	normalizer := naming.NewNormalizer(store, provider.Logger("normalize"), provider.Metrics("normalize"))

	p := pipeline.New(
		source,
		acquirer,
		checker,
		normalizer,
		store,
		pipeline.Config{
			ScrapeEnabled: cfg.Scrape.Enabled,
			ListingURL:    cfg.Scrape.ListingURL,
			Extension:     cfg.Storage.Extension,
			MaxWorkers:    cfg.Pipeline.MaxWorkers,
		},
		provider.Logger("pipeline"),
		provider.Metrics("pipeline"),
	)

	report, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("run %s failed: %w", report.RunID, err)
	}
	return nil
}

// buildStore creates the store selected by STORAGE_ADAPTER through the
// adapter registry.
func buildStore(cfg *config.Config, provider observability.Provider) (storage.Store, error) {
	registry := storage.Registry{
		"filesystem": func(log observability.Logger) (storage.Store, error) {
			return fs.New(cfg.Storage.RootOrBucket, log)
		},
		"s3": func(log observability.Logger) (storage.Store, error) {
			return s3.New(&cfg.Storage, log)
		},
		"memory": func(log observability.Logger) (storage.Store, error) {
			return memory.New(), nil
		},
	}
	return registry.Create(cfg.Storage.Adapter, provider.Logger("storage"))
}

// serveMetrics exposes the Prometheus endpoint for the lifetime of the run.
func serveMetrics(ctx context.Context, addr string, log observability.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	log.Info(ctx, "Metrics listener started", observability.Fields{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error(ctx, "Metrics listener failed", err, nil)
	}
}
