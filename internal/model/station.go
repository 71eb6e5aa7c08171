package model

import "fmt"

// SentinelReference is the placeholder reference assigned to markers
// whose title cannot be parsed as a coded station (temporary or
// unidentified stations).
const SentinelReference = "0000"

// sentinelReferences holds every reference code the operator has used
// for temporary/unidentified stations over time. Records carrying one
// of these are kept for display but never join the advertised set.
var sentinelReferences = map[string]bool{
	SentinelReference: true,
	"0997":            true,
	"1000":            true,
}

// IsSentinelReference reports whether ref is a temporary/unidentified
// placeholder rather than a real station code.
func IsSentinelReference(ref string) bool {
	return sentinelReferences[ref]
}

// Station is one classified bike-share station derived from a Marker.
// It is owned by the reconciliation engine's working set and keyed there
// by its 4-character reference code.
type Station struct {
	// Name is the display name without the leading reference code.
	Name string `json:"name"`

	// Capacity is the total dock count, passed through from the payload.
	Capacity Scalar `json:"capacity"`

	// Disused is true when the station is advertised but not operative.
	Disused bool `json:"disused"`

	// Latitude and Longitude are the station coordinates.
	Latitude  Scalar `json:"latitude"`
	Longitude Scalar `json:"longitude"`
}

// osmZoomLevel is the zoom used for generated OpenStreetMap links.
const osmZoomLevel = 17

// OSMLink returns an openstreetmap.org link centered on the station,
// with a marker pin at its coordinates.
func (s Station) OSMLink() string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%s&mlon=%s#map=%d/%s/%s",
		s.Latitude, s.Longitude, osmZoomLevel, s.Latitude, s.Longitude)
}
