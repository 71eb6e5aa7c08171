package pipeline

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/stationwatch/stationwatch/internal/config"
	"github.com/stationwatch/stationwatch/internal/extract"
	"github.com/stationwatch/stationwatch/internal/fetch"
	"github.com/stationwatch/stationwatch/internal/model"
	"github.com/stationwatch/stationwatch/internal/reconcile"
	"golang.org/x/crypto/sha3"
)

// FetchStep downloads the network's map page and stores the raw payload
// on the report, along with a SHA3-256 fingerprint so successive runs
// can tell whether the page changed at all.
type FetchStep struct {
	// client performs the HTTP fetch.
	client *fetch.Client
}

// NewFetchStep creates a fetch step using the given client.
func NewFetchStep(client *fetch.Client) *FetchStep {
	return &FetchStep{client: client}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do fetches the map page.
func (s *FetchStep) Do(ctx context.Context, report *model.ScanReport) error {
	body, err := s.client.Fetch(ctx, report.URL)
	if err != nil {
		return err
	}

	report.RawPayload = body
	report.PayloadDigest = fingerprint(body)
	return nil
}

// FileStep reads a saved map page from disk instead of fetching it.
// This serves offline runs and regression inspection of old payloads.
type FileStep struct {
	// path is the saved payload file.
	path string
}

// NewFileStep creates a file input step for the given path.
func NewFileStep(path string) *FileStep {
	return &FileStep{path: path}
}

// Name returns the step name.
func (s *FileStep) Name() string {
	return "read_file"
}

// Do reads the payload file.
func (s *FileStep) Do(_ context.Context, report *model.ScanReport) error {
	body, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	report.RawPayload = body
	report.PayloadDigest = fingerprint(body)
	return nil
}

// ExtractStep locates the embedded settings payload in the raw page and
// decodes its marker records onto the report.
type ExtractStep struct{}

// NewExtractStep creates an extract step.
func NewExtractStep() *ExtractStep {
	return &ExtractStep{}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do extracts markers from the raw payload.
func (s *ExtractStep) Do(_ context.Context, report *model.ScanReport) error {
	markers, err := extract.FromHTML(bytes.NewReader(report.RawPayload))
	if err != nil {
		return err
	}

	report.Markers = markers
	return nil
}

// ReconcileStep classifies the extracted markers and diffs the resulting
// working set against the network's baselines.
type ReconcileStep struct {
	// baseline holds the known-active and known-disused reference sets.
	baseline reconcile.Baseline
}

// NewReconcileStep creates a reconcile step for the given baseline.
func NewReconcileStep(baseline reconcile.Baseline) *ReconcileStep {
	return &ReconcileStep{baseline: baseline}
}

// Name returns the step name.
func (s *ReconcileStep) Name() string {
	return "reconcile"
}

// Do reconciles markers against the baseline and snapshots the result.
func (s *ReconcileStep) Do(_ context.Context, report *model.ScanReport) error {
	engine := reconcile.NewEngine(s.baseline)
	engine.IngestMarkers(report.Markers)
	engine.Report(report)
	return nil
}

// ForNetwork assembles the standard pipeline for one network:
// fetch (or file input) → extract → reconcile.
func ForNetwork(n config.Network, client *fetch.Client, inputFile string, opts ...Option) *Pipeline {
	p := New(opts...)

	if inputFile != "" {
		p.AddSteps(NewFileStep(inputFile))
	} else {
		p.AddSteps(NewFetchStep(client))
	}

	p.AddSteps(
		NewExtractStep(),
		NewReconcileStep(reconcile.NewBaseline(n.KnownActive, n.KnownDisused)),
	)

	return p
}

// fingerprint returns the hex-encoded SHA3-256 digest of data.
func fingerprint(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
