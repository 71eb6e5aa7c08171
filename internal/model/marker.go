package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Marker is one raw entry from the map page's embedded settings payload.
// A marker may or may not describe a real station: the map also carries
// decorative points of interest, which the classifier discards.
//
// Markers have no identity of their own beyond their position in the
// extracted sequence; they are consumed once during classification.
type Marker struct {
	// Title is the display title. For coded stations it has the shape
	// "<4-digit code> <name>"; temporary stations carry free-form text.
	Title string `json:"title"`

	// POI marks the entry as map decoration rather than a station.
	POI Flag `json:"poi"`

	// TotalSlots is the advertised dock capacity.
	TotalSlots Scalar `json:"total_slots"`

	// Latitude and Longitude are the marker coordinates.
	Latitude  Scalar `json:"latitude"`
	Longitude Scalar `json:"longitude"`

	// Operative is the upstream operational flag; "1" means active.
	Operative Scalar `json:"operative"`
}

// Scalar is a string-backed value that unmarshals from either a JSON
// string or a JSON number, preserving the upstream literal.
//
// Design decision: The map page's serializer is inconsistent about
// quoting numeric fields (capacity and coordinates arrive as strings on
// some deployments and numbers on others). Rather than validating or
// converting, we pass the value through verbatim; downstream code only
// ever compares or displays these values, never computes with them.
type Scalar string

// UnmarshalJSON accepts strings, numbers, booleans, and null.
// Null becomes the empty Scalar; everything else keeps its literal form.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}

	// Numbers and booleans keep their literal representation.
	switch data[0] {
	case '{', '[':
		return fmt.Errorf("cannot unmarshal %s into scalar", data[0:1])
	}
	*s = Scalar(data)
	return nil
}

// String returns the scalar's literal value.
func (s Scalar) String() string {
	return string(s)
}

// Flag is a boolean that unmarshals from JSON booleans, numbers, or the
// strings "0"/"1"/"true"/"false". The map page emits all of these
// depending on which field and deployment produced them.
type Flag bool

// UnmarshalJSON accepts bool, number, and string encodings of a flag.
// Null and empty strings are false. Any nonzero number is true.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}

	switch data[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*f = Flag(b)
		return nil
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		switch str {
		case "", "0", "false":
			*f = false
		default:
			*f = true
		}
		return nil
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("cannot unmarshal %q into flag: %w", data, err)
		}
		*f = n != 0
		return nil
	}
}

// Bool returns the flag as a plain bool.
func (f Flag) Bool() bool {
	return bool(f)
}
