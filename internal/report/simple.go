package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/stationwatch/stationwatch/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display and for piping into the
// small shell loops operators tend to wrap around this tool.
//
// Three modes:
//   - default: changed stations in detail, the no-longer-advertised
//     list, counts, and a paste-ready baseline listing
//   - verbose: every station's full detail plus a derived map link
//   - quiet: only the signal, meaning changed and missing stations
type SimpleWriter struct {
	baseWriter

	// verbose dumps every station's full detail.
	verbose bool

	// quiet suppresses unconditional summary output.
	quiet bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables full station detail output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithQuiet suppresses summary output, leaving only changed and missing
// stations.
func WithQuiet(quiet bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.quiet = quiet
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	if !w.quiet {
		w.writeHeader(&sb, report)
	}

	w.writeStations(&sb, report)
	w.writeMissing(&sb, report)

	if !w.quiet {
		w.writeBaselineListing(&sb, report)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the scan summary.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.ScanReport) {
	fmt.Fprintf(sb, "%s (%s)\n", headingName(report.Network), report.URL)
	fmt.Fprintf(sb, "Scanned: %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Known active stations:  %d\n", report.KnownActiveCount)
	fmt.Fprintf(sb, "Known disused stations: %d\n", report.KnownDisusedCount)
	fmt.Fprintf(sb, "Stations advertised:    %d\n", len(report.Advertised))
	sb.WriteString("\n")
}

// writeStations writes station details. In verbose mode every station is
// shown; otherwise only the changed ones.
func (w *SimpleWriter) writeStations(sb *strings.Builder, report *model.ScanReport) {
	changed := make(map[string]bool, len(report.Changed))
	for _, ref := range report.Changed {
		changed[ref] = true
	}

	if !w.verbose && len(changed) == 0 {
		return
	}

	if !w.verbose {
		fmt.Fprintf(sb, "Changed stations (%d):\n", len(report.Changed))
	}

	wrote := false
	for _, ref := range sortedReferences(report.Stations) {
		if w.verbose || changed[ref] {
			w.writeStation(sb, ref, report.Stations[ref])
			wrote = true
		}
	}
	if wrote {
		sb.WriteString("\n")
	}
}

// writeStation writes one station's full detail plus its map link.
func (w *SimpleWriter) writeStation(sb *strings.Builder, ref string, st model.Station) {
	fmt.Fprintf(sb, "%s:\n", ref)
	fmt.Fprintf(sb, "  name=%s\n", st.Name)
	fmt.Fprintf(sb, "  capacity=%s\n", st.Capacity)
	if st.Disused {
		sb.WriteString("  disused\n")
	}
	fmt.Fprintf(sb, "  latitude=%s\n", st.Latitude)
	fmt.Fprintf(sb, "  longitude=%s\n", st.Longitude)
	fmt.Fprintf(sb, "  %s\n", st.OSMLink())
}

// writeMissing writes the no-longer-advertised list.
// This prints even in quiet mode: disappearing stations are signal.
func (w *SimpleWriter) writeMissing(sb *strings.Builder, report *model.ScanReport) {
	if len(report.Missing) == 0 {
		return
	}

	fmt.Fprintf(sb, "No longer advertised (%d):\n", len(report.Missing))
	for _, ref := range report.Missing {
		fmt.Fprintf(sb, "  %s\n", ref)
	}
	sb.WriteString("\n")
}

// writeBaselineListing writes the advertised set as a paste-ready yaml
// flow list, so the operator can update known_active in the
// configuration file after reviewing the changes.
func (w *SimpleWriter) writeBaselineListing(sb *strings.Builder, report *model.ScanReport) {
	refs := make([]string, 0, len(report.Advertised))
	for _, ref := range report.Advertised {
		refs = append(refs, fmt.Sprintf("%q", ref))
	}
	fmt.Fprintf(sb, "known_active: [%s]\n", strings.Join(refs, ", "))
}
