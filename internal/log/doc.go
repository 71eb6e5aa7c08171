// Package log provides logging helpers built on top of the standard
// slog package.
//
// Scans drag multi-hundred-kilobyte HTML payloads through the pipeline.
// The TruncateHandler keeps diagnostic logging usable by capping the
// length of attribute values before they reach the underlying handler,
// so a debug log line never embeds an entire map page.
//
// # Usage
//
//	logger := log.NewTruncatingLogger(os.Stderr, true) // debug=true
//	logger.Debug("payload fetched",
//	    "url", url,
//	    "body", string(body), // truncated to the configured cap
//	)
//	slog.SetDefault(logger)
package log
