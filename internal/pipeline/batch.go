package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/stationwatch/stationwatch/internal/config"
	"github.com/stationwatch/stationwatch/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor scans multiple networks concurrently.
// It uses errgroup to manage goroutines and respect the concurrency
// limit.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch behavior to Pipeline because it keeps Pipeline focused on a
// single network's scan and leaves room for batch-level strategies
// (rate limiting, retries) without touching the scan flow.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline for each network, so
	// state never leaks between scans.
	pipelineFactory func(config.Network) *Pipeline

	// concurrency is the maximum number of concurrent scans.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed scan reports in input order.
	// Access is synchronized via mutex.
	results []*model.ScanReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scans.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
// The factory is called once per network to build its pipeline.
func NewBatchProcessor(pipelineFactory func(config.Network) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     config.DefaultBatchSize,
		results:         make([]*model.ScanReport, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch scans the given networks concurrently and returns all
// reports in input order.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because errgroup handles bounded concurrency and context propagation
// directly. A failed network records its error on its own report and
// does not stop the others; the error return signals cancellation.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, networks []config.Network) ([]*model.ScanReport, error) {
	err := bp.ProcessBatchWithCallback(ctx, networks, nil)
	return bp.results, err
}

// ProcessBatchWithCallback scans the given networks concurrently and
// calls the callback for each completed scan, including failed ones
// (the report carries the error). The callback runs on the goroutine
// that finished the scan, so it must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	networks []config.Network,
	callback func(report *model.ScanReport, index int),
) error {
	bp.logger.Info("starting batch scan",
		"networks", len(networks),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	bp.mu.Lock()
	bp.results = make([]*model.ScanReport, len(networks))
	bp.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, network := range networks {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report := model.NewScanReport(network.Name, network.URL)

			p := bp.pipelineFactory(network)
			if err := p.Execute(ctx, report); err != nil {
				// The error is recorded on the report; other networks
				// keep scanning.
				bp.logger.Warn("network scan failed",
					"network", network.Name,
					"error", err,
				)
			}

			bp.mu.Lock()
			bp.results[i] = report
			bp.mu.Unlock()

			if callback != nil {
				callback(report, i)
			}

			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch scan complete",
		"networks", len(networks),
		"elapsed", time.Since(startTime),
	)

	return err
}
