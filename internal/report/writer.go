package report

import (
	"io"
	"sort"

	"github.com/stationwatch/stationwatch/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Writer defines the interface for report output.
// Implementations render a reconciled scan in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.ScanReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.ScanReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// networkTitle is the caser used for network names in report headings.
// Network names are configuration keys like "mobi"; headings read better
// title-cased.
var networkTitle = cases.Title(language.English)

// headingName formats a network name for display.
func headingName(network string) string {
	if network == "" {
		return "Unknown"
	}
	return networkTitle.String(network)
}

// sortedReferences returns the station references sorted ascending.
// Reference codes are zero-padded fixed width, so lexicographic order is
// numeric order.
func sortedReferences(stations map[string]model.Station) []string {
	refs := make([]string, 0, len(stations))
	for ref := range stations {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}
