// Package main provides the entry point for the stationwatch CLI.
//
// Stationwatch tracks the docking stations a bike-share network
// advertises on its public map page. It extracts the embedded marker
// payload, classifies each station, and reports the differences against
// the station references accepted on previous runs.
//
// Usage:
//
//	stationwatch scan mobi
//	stationwatch scan --input saved-page.html mobi
//
// See --help for all available options.
package main

// main is the entry point for stationwatch.
func main() {
	Execute()
}
