// Package pipeline orchestrates a full harvest run: scrape the listing,
// acquire missing documents, validate the stored inventory with a bounded
// worker pool, and normalize surviving filenames.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/download"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/extract"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/inventory"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/naming"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/validate"
)

// ListingSource resolves the rendered listing markup.
type ListingSource interface {
	Markup(ctx context.Context, url string) (string, error)
}

// Acquirer downloads one URL into the store.
type Acquirer interface {
	Acquire(ctx context.Context, rawURL string) download.Outcome
}

// Checker validates one stored document, deleting it when invalid.
type Checker interface {
	Check(ctx context.Context, key string) validate.Verdict
}

// Normalizer lowercases one stored key in place.
type Normalizer interface {
	Normalize(ctx context.Context, key string) naming.NormalizeResult
}

// Config bounds one run.
type Config struct {
	// ScrapeEnabled turns the listing/download phase on. When false the
	// run only validates and normalizes the existing inventory.
	ScrapeEnabled bool

	// ListingURL is the page referencing the documents. Relative hrefs
	// resolve against it.
	ListingURL string

	// Extension filters both extracted links and the stored inventory.
	Extension string

	// MaxWorkers bounds the validation pool. Values below 1 run a single
	// worker.
	MaxWorkers int
}

// Report summarizes one run.
type Report struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration

	LinksFound int
	Downloaded int
	Skipped    int
	Failed     int

	Examined  int
	Valid     int
	Invalid   int
	Renamed   int
	Conflicts int

	// RenamedKeys lists every normalization rename as "old -> new", in
	// verdict-collection order.
	RenamedKeys []string
}

// Pipeline wires the run phases together. All state lives in the store;
// the pipeline itself is stateless across runs.
type Pipeline struct {
	source     ListingSource
	acquirer   Acquirer
	checker    Checker
	normalizer Normalizer
	store      storage.Store
	cfg        Config
	logger     observability.Logger
	metrics    observability.Metrics
}

func New(
	source ListingSource,
	acquirer Acquirer,
	checker Checker,
	normalizer Normalizer,
	store storage.Store,
	cfg Config,
	logger observability.Logger,
	metrics observability.Metrics,
) *Pipeline {
	return &Pipeline{
		source:     source,
		acquirer:   acquirer,
		checker:    checker,
		normalizer: normalizer,
		store:      store,
		cfg:        cfg,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run executes one full harvest. Per-item failures are absorbed into the
// report; only infrastructure errors (the store listing itself failing)
// abort the run.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
	}()

	ctxLogger := p.logger.WithFields(observability.Fields{"run_id": report.RunID})
	ctxLogger.Info(ctx, "Starting harvest run", observability.Fields{
		"scrape_enabled": p.cfg.ScrapeEnabled,
		"max_workers":    p.cfg.MaxWorkers,
	})

	if p.cfg.ScrapeEnabled {
		p.scrape(ctx, ctxLogger, report)
	}

	if err := p.validateAndNormalize(ctx, ctxLogger, report); err != nil {
		return report, err
	}

	ctxLogger.Info(ctx, "Harvest run complete", observability.Fields{
		"links_found":  report.LinksFound,
		"downloaded":   report.Downloaded,
		"skipped":      report.Skipped,
		"failed":       report.Failed,
		"examined":     report.Examined,
		"valid":        report.Valid,
		"invalid":      report.Invalid,
		"renamed":      report.Renamed,
		"renamed_keys": report.RenamedKeys,
		"conflicts":    report.Conflicts,
		"duration":     time.Since(report.StartedAt).String(),
	})
	return report, nil
}

// scrape fetches the listing, extracts matching links and acquires each
// one. A listing that cannot be obtained at all is logged and skipped; the
// run proceeds to validate whatever the store already holds.
func (p *Pipeline) scrape(ctx context.Context, logger observability.Logger, report *Report) {
	markup, err := p.source.Markup(ctx, p.cfg.ListingURL)
	if err != nil {
		logger.Error(ctx, "No listing available, skipping download phase", err, observability.Fields{
			"url": p.cfg.ListingURL,
		})
		return
	}

	links := extract.Links(markup, p.cfg.Extension)
	report.LinksFound = len(links)
	logger.Info(ctx, "Extracted document links", observability.Fields{"count": len(links)})

	for _, link := range links {
		outcome := p.acquirer.Acquire(ctx, extract.Resolve(p.cfg.ListingURL, link))
		switch outcome.Status {
		case download.StatusDownloaded:
			report.Downloaded++
		case download.StatusSkipped:
			report.Skipped++
		case download.StatusFailed:
			report.Failed++
		}
	}
}

// validateAndNormalize fans the stored inventory out to a bounded worker
// pool, collects verdicts in completion order, and lowercases the keys of
// documents that survive.
func (p *Pipeline) validateAndNormalize(ctx context.Context, logger observability.Logger, report *Report) error {
	items, err := inventory.Discover(ctx, p.store, p.cfg.Extension)
	if err != nil {
		logger.Error(ctx, "Cannot list stored documents", err, nil)
		return err
	}
	inventory.SortNewestFirst(items)
	report.Examined = len(items)

	if len(items) == 0 {
		logger.Info(ctx, "No stored documents to validate", nil)
		return nil
	}

	workers := p.cfg.MaxWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan string)
	verdicts := make(chan validate.Verdict)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range jobs {
				verdicts <- p.checker.Check(ctx, key)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, item := range items {
			select {
			case jobs <- item.Key:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(verdicts)
	}()

	for v := range verdicts {
		if v.Status != validate.StatusValid {
			report.Invalid++
			continue
		}
		report.Valid++

		res := p.normalizer.Normalize(ctx, v.Key)
		switch res.Status {
		case naming.StatusRenamed:
			report.Renamed++
			report.RenamedKeys = append(report.RenamedKeys, fmt.Sprintf("%s -> %s", res.Key, res.NewKey))
		case naming.StatusConflict:
			report.Conflicts++
		}
	}
	return ctx.Err()
}
