// Package model defines the core data structures used throughout stationwatch.
//
// This package contains the following main types:
//   - Marker: One raw entry from the map page's embedded settings payload
//   - Station: A classified bike-share station
//   - ScanReport: The result of reconciling one network's map page
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (extract, reconcile, report) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
