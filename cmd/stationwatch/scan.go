package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/stationwatch/stationwatch/internal/config"
	"github.com/stationwatch/stationwatch/internal/fetch"
	"github.com/stationwatch/stationwatch/internal/log"
	"github.com/stationwatch/stationwatch/internal/model"
	"github.com/stationwatch/stationwatch/internal/pipeline"
	"github.com/stationwatch/stationwatch/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [network...]",
		Short: "Scan bike-share map pages for station changes",
		Long: `Scan fetches each network's public map page, extracts the embedded
station marker payload, and diffs the advertised stations against the
known_active and known_disused baselines from the configuration file.

With no arguments, every configured network is scanned.

Examples:
  # Scan every configured network
  stationwatch scan

  # Scan one network
  stationwatch scan mobi

  # Re-run against a saved page instead of fetching
  stationwatch scan --input saved-page.html mobi

  # Full station dump
  stationwatch scan -v mobi

  # Only print when something changed
  stationwatch scan -q mobi

  # Markdown report to a file
  stationwatch scan -m -o reports/mobi.md mobi

Configuration file (.stationwatch) example:
  networks:
    mobi:
      url: https://www.mobibikes.ca/en#the-map
      known_active: ["0001", "0002", "0004"]
      known_disused: ["0003"]`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Scan behavior flags
	cmd.Flags().StringP("input", "i", "",
		"Read a saved map page from file instead of fetching (single network only)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout for fetching a map page")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of networks scanned concurrently")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with HTTP requests")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .stationwatch in current, XDG config, or home directory)")

	// Report flags
	cmd.Flags().BoolP("verbose", "v", false,
		"Show every station's full detail (mutually exclusive with --quiet)")
	cmd.Flags().BoolP("quiet", "q", false,
		"Only print changed and missing stations (mutually exclusive with --verbose)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewTruncatingLogger(os.Stderr, cfg.Debug)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.InputFile, err = cmd.Flags().GetString("input")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load network definitions from the config file.
	// If user explicitly specified a config file path, error if not found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Networks, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		return nil, errors.New("no configuration file found (run 'stationwatch init' to create one)")
	}

	cfg.Verbose, err = cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	cfg.Quiet, err = cmd.Flags().GetBool("quiet")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Debug, err = cmd.Root().PersistentFlags().GetBool("debug")
	if err != nil {
		return nil, err
	}

	// Get positional arguments (network names)
	cfg.Targets = args

	return cfg, nil
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	networks := cfg.TargetNetworks()

	logger.Info("starting scan",
		"networks", len(networks),
		"batchSize", cfg.BatchSize,
		"inputFile", cfg.InputFile,
	)

	output, cleanup, err := openReportOutput(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Use batch processor for parallel scanning if multiple networks
	if len(networks) > 1 && cfg.BatchSize > 1 {
		return runBatchScan(ctx, cfg, networks, output, logger)
	}

	// Single network or sequential scanning
	return runSequentialScan(ctx, cfg, networks, output, logger)
}

// runSequentialScan scans networks one at a time.
func runSequentialScan(ctx context.Context, cfg *config.Config, networks []config.Network, output io.Writer, logger *slog.Logger) error {
	var failed int

	for _, network := range networks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p := createPipelineForNetwork(cfg, network, logger)
		scanReport := model.NewScanReport(network.Name, scanURL(cfg, network))

		startTime := time.Now()

		// Execute the pipeline
		if err := p.Execute(ctx, scanReport); err != nil {
			logger.Error("scan failed", "network", network.Name, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", network.Name, err)
			failed++
			continue
		}

		logger.Info("scan complete",
			"network", network.Name,
			"advertised", len(scanReport.Advertised),
			"changed", len(scanReport.Changed),
			"missing", len(scanReport.Missing),
			"elapsed", time.Since(startTime).Round(time.Millisecond),
		)

		// Generate and output report
		if err := outputReport(cfg, output, scanReport); err != nil {
			logger.Error("report failed", "network", network.Name, "error", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d network scans failed", failed, len(networks))
	}
	return nil
}

// runBatchScan scans multiple networks concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, cfg *config.Config, networks []config.Network, output io.Writer, logger *slog.Logger) error {
	bp := pipeline.NewBatchProcessor(
		func(network config.Network) *pipeline.Pipeline {
			return createPipelineForNetwork(cfg, network, logger)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Serialize report output; scans complete on arbitrary goroutines.
	var mu sync.Mutex
	var failed int
	err := bp.ProcessBatchWithCallback(ctx, networks, func(scanReport *model.ScanReport, _ int) {
		mu.Lock()
		defer mu.Unlock()

		if scanReport.Error != nil {
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", scanReport.Network, scanReport.Error)
			failed++
			return
		}

		if err := outputReport(cfg, output, scanReport); err != nil {
			logger.Error("report failed", "network", scanReport.Network, "error", err)
			failed++
		}
	})
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d network scans failed", failed, len(networks))
	}
	return nil
}

// scanURL returns the source recorded on the report: the input file path
// for offline runs, the map page URL otherwise.
func scanURL(cfg *config.Config, network config.Network) string {
	if cfg.InputFile != "" {
		return cfg.InputFile
	}
	return network.URL
}

// createPipelineForNetwork builds the fetch/extract/reconcile pipeline
// for one network, honoring its User-Agent override.
func createPipelineForNetwork(cfg *config.Config, network config.Network, logger *slog.Logger) *pipeline.Pipeline {
	userAgent := cfg.UserAgent
	if network.UserAgent != "" {
		userAgent = network.UserAgent
	}

	client := fetch.NewClient(
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithUserAgent(userAgent),
	)

	return pipeline.ForNetwork(network, client, cfg.InputFile, pipeline.WithLogger(logger))
}

// openReportOutput resolves the report destination. When --output is set
// the file is opened once and shared by every network's report, so a
// multi-network run produces one file.
func openReportOutput(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.ReportFile == "" {
		return os.Stdout, func() {}, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return f, func() { _ = f.Close() }, nil //nolint:errcheck // Best effort close
}

// outputReport outputs the scan report in the requested format.
func outputReport(cfg *config.Config, output io.Writer, scanReport *model.ScanReport) error {
	var writer report.Writer

	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output,
			report.WithVerbose(cfg.Verbose),
			report.WithQuiet(cfg.Quiet),
		)
	}

	_, err := writer.Write(scanReport)
	return err
}
