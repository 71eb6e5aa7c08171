package reconcile

import "github.com/stationwatch/stationwatch/internal/model"

// operativeValue is the upstream flag value meaning "station is active".
const operativeValue = "1"

// Classify turns one marker into a (reference, station) pair.
// It returns ok=false for markers flagged as points of interest, which
// are map decorations rather than stations.
//
// Markers whose title cannot be parsed as a coded station are classified
// under the sentinel reference; they are real records (stored for
// display) but never join the advertised set.
func Classify(m model.Marker) (ref string, st model.Station, ok bool) {
	if m.POI.Bool() {
		return "", model.Station{}, false
	}

	ref, name := splitTitle(m.Title)

	st = model.Station{
		Name:      name,
		Capacity:  m.TotalSlots,
		Disused:   m.Operative != operativeValue,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
	}
	return ref, st, true
}

// splitTitle applies the fixed-width title heuristic: a coded station's
// title is "<4-digit code> <name>", so a title whose first byte is not a
// dash and whose byte at index 4 is a space splits into reference and
// name. Anything else falls through to the sentinel reference with the
// full title as the name.
//
// This is a fixed-width parse, not a delimiter search, and it performs
// no numeric validation of the prefix: a title that happens to have a
// space at index 4 is taken as a coded station even if the first four
// characters are not digits. That ambiguity is inherited from the
// upstream format and preserved deliberately; if the format changes,
// this is the only function that needs to follow.
func splitTitle(title string) (ref, name string) {
	ref = model.SentinelReference
	name = title

	// Titles shorter than "XXXX " cannot carry a code. Guarding here
	// keeps 4-character titles from indexing past the end.
	if len(title) < 5 {
		return ref, name
	}

	if title[0] != '-' && title[4] == ' ' {
		ref = title[0:4]
		name = title[5:]
	}
	return ref, name
}
