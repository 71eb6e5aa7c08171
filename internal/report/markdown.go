package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/stationwatch/stationwatch/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for sharing scan results in issues and docs.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation: type-safe tables and headings beat hand-joined
// strings once a report has more than one section.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeChanged(md, report)
	w.writeMissing(md, report)
	w.writeStations(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the scan summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	md.H1("Station Report: " + headingName(report.Network))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Map page", report.URL},
			{"Scan date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Known active", strconv.Itoa(report.KnownActiveCount)},
			{"Known disused", strconv.Itoa(report.KnownDisusedCount)},
			{"Advertised", strconv.Itoa(len(report.Advertised))},
			{"Payload digest", "`" + shortDigest(report.PayloadDigest) + "`"},
		},
	})
	md.PlainText("")
}

// writeChanged writes the changed-station table.
func (w *MarkdownWriter) writeChanged(md *markdown.Markdown, report *model.ScanReport) {
	if len(report.Changed) == 0 {
		return
	}

	md.H2("Changed Stations (" + strconv.Itoa(len(report.Changed)) + ")")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Reference", "Name", "Capacity", "Status", "Map"},
		Rows:   stationRows(report, report.Changed),
	})
	md.PlainText("")
}

// writeMissing writes the no-longer-advertised list.
func (w *MarkdownWriter) writeMissing(md *markdown.Markdown, report *model.ScanReport) {
	if len(report.Missing) == 0 {
		return
	}

	md.H2("No Longer Advertised (" + strconv.Itoa(len(report.Missing)) + ")")
	md.PlainText("")
	refs := make([]string, 0, len(report.Missing))
	for _, ref := range report.Missing {
		refs = append(refs, "`"+ref+"`")
	}
	md.PlainText(strings.Join(refs, ", "))
	md.PlainText("")
}

// writeStations writes the full station table.
func (w *MarkdownWriter) writeStations(md *markdown.Markdown, report *model.ScanReport) {
	if len(report.Stations) == 0 {
		return
	}

	md.H2("All Stations (" + strconv.Itoa(len(report.Stations)) + ")")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Reference", "Name", "Capacity", "Status", "Map"},
		Rows:   stationRows(report, sortedReferences(report.Stations)),
	})
}

// stationRows builds table rows for the given references.
func stationRows(report *model.ScanReport, refs []string) [][]string {
	rows := make([][]string, 0, len(refs))
	for _, ref := range refs {
		st, ok := report.Stations[ref]
		if !ok {
			continue
		}
		status := "active"
		if st.Disused {
			status = "disused"
		}
		rows = append(rows, []string{
			"`" + ref + "`",
			st.Name,
			st.Capacity.String(),
			status,
			"[map](" + st.OSMLink() + ")",
		})
	}
	return rows
}

// shortDigest abbreviates a payload digest for table display.
func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	if digest == "" {
		return "n/a"
	}
	return digest
}
