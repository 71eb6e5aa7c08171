package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout is generous for a single page fetch; the map page
	// embeds its entire marker payload inline, so one slow response is
	// the whole cost of a run.
	DefaultTimeout = 30 * time.Second

	// DefaultBatchSize bounds concurrent network scans. The tool rarely
	// watches more than a handful of networks, so a small bound keeps
	// output readable without serializing everything.
	DefaultBatchSize = 4

	// DefaultMaxBodySize limits the response body size to read.
	// Map pages with embedded marker payloads run to a few hundred KB;
	// 5MB leaves ample headroom while preventing memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent identifies stationwatch in HTTP requests so map
	// operators can recognize the traffic in their logs.
	DefaultUserAgent = "stationwatch/1.0 (+https://github.com/stationwatch/stationwatch)"

	// AppName is the application name used for XDG directory paths.
	AppName = "stationwatch"
)

// Config holds all run options for stationwatch.
// It is populated from CLI flags and the configuration file and passed
// through the application via dependency injection rather than global
// state.
type Config struct {
	// Networks holds the network definitions loaded from the config
	// file, keyed by network name.
	Networks *File

	// Targets is the list of network names to scan. Empty means every
	// configured network.
	Targets []string

	// ConfigFilePath is the path to the configuration file. If empty,
	// the tool searches for .stationwatch in the current directory and
	// then in the user's home directory.
	ConfigFilePath string

	// InputFile, when set, is a saved HTML payload to read instead of
	// fetching the map page. Only valid when scanning a single network.
	InputFile string

	// Timeout is the HTTP timeout for fetching a map page.
	Timeout time.Duration

	// BatchSize is the number of networks scanned concurrently.
	BatchSize int

	// MaxBodySize caps the response body size in bytes.
	MaxBodySize int64

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// Verbose dumps every station's full detail in the report.
	// Mutually exclusive with Quiet.
	Verbose bool

	// Quiet suppresses unconditional summary output; changed and missing
	// stations are still shown when present. Mutually exclusive with
	// Verbose.
	Quiet bool

	// JSONReport enables JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile, when set, receives the report instead of stdout.
	ReportFile string

	// Debug enables slog debug logging.
	Debug bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (timeout, batch
// size, body cap). This also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		BatchSize:   DefaultBatchSize,
		MaxBodySize: DefaultMaxBodySize,
		UserAgent:   DefaultUserAgent,
	}
}

// XDGConfigDir returns the XDG config directory for stationwatch.
// On Linux: ~/.config/stationwatch
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It is called once after CLI parsing, before any scanning begins, and
// returns the first problem found.
func (c *Config) Validate() error {
	if c.Networks == nil || len(c.Networks.Networks) == 0 {
		return ErrNoNetwork
	}

	for _, name := range c.Targets {
		if _, ok := c.Networks.Networks[name]; !ok {
			return ErrUnknownNetwork
		}
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	// Presentation flags: verbose dumps everything, quiet suppresses
	// everything unconditional. Both at once is contradictory.
	if c.Verbose && c.Quiet {
		return ErrConflictingOutputModes
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// An input file bypasses fetching, so it can only feed one network.
	if c.InputFile != "" && c.targetCount() != 1 {
		return ErrInputNeedsOneNetwork
	}

	return nil
}

// targetCount returns the number of networks this run will scan.
func (c *Config) targetCount() int {
	if len(c.Targets) > 0 {
		return len(c.Targets)
	}
	if c.Networks == nil {
		return 0
	}
	return len(c.Networks.Networks)
}

// TargetNetworks resolves the run's targets to named network configs,
// sorted by name for deterministic scan order. An empty target list
// means every configured network.
func (c *Config) TargetNetworks() []Network {
	if c.Networks == nil {
		return nil
	}
	if len(c.Targets) == 0 {
		return c.Networks.All()
	}

	networks := make([]Network, 0, len(c.Targets))
	for _, name := range c.Targets {
		if n, ok := c.Networks.Get(name); ok {
			networks = append(networks, n)
		}
	}
	return networks
}
