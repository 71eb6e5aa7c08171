package model

import "time"

// ScanReport is the result of reconciling one network's map page against
// its configured baselines. It is built up by the pipeline steps and
// handed to the report writers once reconciliation is complete.
//
// Design decision: Intermediate artifacts (the raw payload and the
// extracted markers) travel on the report between steps but are excluded
// from serialization. This keeps the pipeline's Step interface uniform
// without inventing a second carrier type.
type ScanReport struct {
	// Network is the configured network name (e.g. "mobi").
	Network string `json:"network"`

	// URL is the map page the payload came from, or the input file path
	// for offline runs.
	URL string `json:"url"`

	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// PayloadDigest is the SHA3-256 fingerprint of the raw payload,
	// hex-encoded. Two runs with the same digest saw the same page.
	PayloadDigest string `json:"payload_digest,omitempty"`

	// Stations maps reference code to classified station.
	// Sentinel-referenced records are included here for display.
	Stations map[string]Station `json:"stations"`

	// Advertised is the sorted set of non-sentinel references seen this
	// run.
	Advertised []string `json:"advertised"`

	// Changed is the sorted set of references whose active/disused
	// status does not match the baselines.
	Changed []string `json:"changed,omitempty"`

	// Missing is the sorted set of known-active references that were not
	// advertised this run (possible retirements).
	Missing []string `json:"missing,omitempty"`

	// KnownActiveCount and KnownDisusedCount are the baseline sizes,
	// reported for context.
	KnownActiveCount  int `json:"known_active_count"`
	KnownDisusedCount int `json:"known_disused_count"`

	// Error holds a fatal error encountered during the scan, if any.
	// It is excluded from JSON; ErrorMessage carries the text.
	Error error `json:"-"`

	// ErrorMessage contains the error text if the scan failed.
	ErrorMessage string `json:"error,omitempty"`

	// RawPayload is the fetched page body, carried between pipeline
	// steps. Never serialized.
	RawPayload []byte `json:"-"`

	// Markers are the extracted marker records, carried between pipeline
	// steps. Never serialized.
	Markers []Marker `json:"-"`
}

// NewScanReport creates an empty report for the given network and URL
// with the scan date set to now.
func NewScanReport(network, url string) *ScanReport {
	return &ScanReport{
		Network:     network,
		URL:         url,
		DateScanned: time.Now(),
		Stations:    make(map[string]Station),
	}
}

// HasChanges reports whether the scan found any deltas worth signaling:
// changed stations or known-active stations that disappeared.
func (r *ScanReport) HasChanges() bool {
	return len(r.Changed) > 0 || len(r.Missing) > 0
}
