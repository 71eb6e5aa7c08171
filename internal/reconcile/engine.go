package reconcile

import (
	"sort"

	"github.com/stationwatch/stationwatch/internal/model"
)

// Baseline holds the previously accepted station references, read-only
// for the run. KnownActive are references last seen operating;
// KnownDisused are references last seen advertised but not operative.
// Both change only when a human updates the configuration between runs.
type Baseline struct {
	knownActive  map[string]bool
	knownDisused map[string]bool
}

// NewBaseline builds a Baseline from the configured reference lists.
func NewBaseline(knownActive, knownDisused []string) Baseline {
	b := Baseline{
		knownActive:  make(map[string]bool, len(knownActive)),
		knownDisused: make(map[string]bool, len(knownDisused)),
	}
	for _, ref := range knownActive {
		b.knownActive[ref] = true
	}
	for _, ref := range knownDisused {
		b.knownDisused[ref] = true
	}
	return b
}

// KnownActiveCount returns the number of known-active references.
func (b Baseline) KnownActiveCount() int {
	return len(b.knownActive)
}

// KnownDisusedCount returns the number of known-disused references.
func (b Baseline) KnownDisusedCount() int {
	return len(b.knownDisused)
}

// Engine accumulates classified stations for one run and diffs them
// against the baseline.
//
// Design decision: The working set lives on an Engine instance rather
// than in package-level state so the engine is testable in isolation and
// safely reusable across repeated runs in the same process. Construct a
// fresh Engine per run.
type Engine struct {
	baseline Baseline

	// stations is the working set, keyed by reference. Duplicate
	// references overwrite earlier entries (last-write-wins; the source
	// payload guarantees no ordering).
	stations map[string]model.Station

	// advertised is the set of non-sentinel references seen this run.
	advertised map[string]bool

	// changed is the set of references whose active/disused status does
	// not match the baselines.
	changed map[string]bool
}

// NewEngine creates an Engine with an empty working set.
func NewEngine(baseline Baseline) *Engine {
	return &Engine{
		baseline:   baseline,
		stations:   make(map[string]model.Station),
		advertised: make(map[string]bool),
		changed:    make(map[string]bool),
	}
}

// Ingest inserts a classified station into the working set.
// Sentinel references are stored (so verbose output can show them) but
// excluded from the advertised set and the change comparison.
func (e *Engine) Ingest(ref string, st model.Station) {
	e.stations[ref] = st

	if model.IsSentinelReference(ref) {
		return
	}
	e.advertised[ref] = true

	// A reference is "changed" when its current status has no backing in
	// the corresponding baseline: newly active, newly disused, or
	// reactivated.
	if st.Disused {
		if !e.baseline.knownDisused[ref] {
			e.changed[ref] = true
		}
	} else {
		if !e.baseline.knownActive[ref] {
			e.changed[ref] = true
		}
	}
}

// IngestMarkers classifies and ingests a sequence of raw markers,
// discarding points of interest.
func (e *Engine) IngestMarkers(markers []model.Marker) {
	for _, m := range markers {
		if ref, st, ok := Classify(m); ok {
			e.Ingest(ref, st)
		}
	}
}

// Stations returns the working set keyed by reference.
// The map is the engine's own; callers must not mutate it.
func (e *Engine) Stations() map[string]model.Station {
	return e.stations
}

// Advertised returns the non-sentinel references seen this run, sorted
// ascending.
func (e *Engine) Advertised() []string {
	return sortedKeys(e.advertised)
}

// Changed returns the references flagged as new or status-changed,
// sorted ascending.
func (e *Engine) Changed() []string {
	return sortedKeys(e.changed)
}

// MissingFromBaseline returns the known-active references that were not
// advertised this run, sorted ascending. A non-empty result signals
// possible retirements, not an error.
func (e *Engine) MissingFromBaseline() []string {
	missing := make([]string, 0)
	for ref := range e.baseline.knownActive {
		if !e.advertised[ref] {
			missing = append(missing, ref)
		}
	}
	sort.Strings(missing)
	return missing
}

// Report snapshots the engine's state into the given scan report.
func (e *Engine) Report(r *model.ScanReport) {
	r.Stations = e.stations
	r.Advertised = e.Advertised()
	r.Changed = e.Changed()
	r.Missing = e.MissingFromBaseline()
	r.KnownActiveCount = e.baseline.KnownActiveCount()
	r.KnownDisusedCount = e.baseline.KnownDisusedCount()
}

// sortedKeys returns a set's members sorted ascending. Reference codes
// are zero-padded fixed-width strings, so lexicographic order is the
// numeric order.
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
