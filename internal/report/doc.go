// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - MarkdownWriter: GitHub Flavored Markdown for documentation
//   - JSONWriter: Structured JSON output for tool integration
//
// Design decision: We separate report writing from report data
// structures (which are in the model package) so new output formats can
// be added without touching the core. Writers never mutate the report
// they render.
package report
