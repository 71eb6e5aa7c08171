// Package pipeline orchestrates the scan flow for one network:
// fetch the map page, extract the marker payload, reconcile against
// the baselines.
//
// Steps implement a common interface and run in sequence over a shared
// ScanReport. The first failing step aborts the run so a half-parsed
// marker set can never produce a partial report. BatchProcessor runs
// several networks' pipelines concurrently with a bounded limit.
package pipeline
