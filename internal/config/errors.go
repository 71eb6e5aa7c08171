package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoNetwork is returned when the configuration file defines no
	// networks to scan.
	ErrNoNetwork = errors.New("no networks configured: add a networks section to the configuration file")

	// ErrUnknownNetwork is returned when a requested network name has no
	// entry in the configuration file.
	ErrUnknownNetwork = errors.New("unknown network: not present in the configuration file")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingOutputModes is returned when both --verbose and
	// --quiet are specified. Verbose dumps every station while quiet
	// suppresses summaries; only one can apply.
	ErrConflictingOutputModes = errors.New("conflicting output modes: --verbose and --quiet cannot be used together")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a
	// time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInputNeedsOneNetwork is returned when --input is combined with
	// anything other than exactly one target network. A saved payload
	// belongs to one map page.
	ErrInputNeedsOneNetwork = errors.New("--input requires exactly one target network")
)
