package model

import (
	"encoding/json"
	"testing"
)

// TestScalarUnmarshalJSON tests the tolerant scalar decoding.
func TestScalarUnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("keeps string literal", func(t *testing.T) {
		t.Parallel()

		var s Scalar
		if err := json.Unmarshal([]byte(`"49.28"`), &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != "49.28" {
			t.Errorf("got %q, expected %q", s, "49.28")
		}
	})

	t.Run("keeps number literal", func(t *testing.T) {
		t.Parallel()

		var s Scalar
		if err := json.Unmarshal([]byte(`-123.12`), &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != "-123.12" {
			t.Errorf("got %q, expected %q", s, "-123.12")
		}
	})

	t.Run("keeps integer literal", func(t *testing.T) {
		t.Parallel()

		var s Scalar
		if err := json.Unmarshal([]byte(`15`), &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != "15" {
			t.Errorf("got %q, expected %q", s, "15")
		}
	})

	t.Run("null becomes empty", func(t *testing.T) {
		t.Parallel()

		s := Scalar("stale")
		if err := json.Unmarshal([]byte(`null`), &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != "" {
			t.Errorf("got %q, expected empty scalar", s)
		}
	})

	t.Run("rejects objects", func(t *testing.T) {
		t.Parallel()

		var s Scalar
		if err := json.Unmarshal([]byte(`{"a":1}`), &s); err == nil {
			t.Error("expected error for object value, got nil")
		}
	})

	t.Run("rejects arrays", func(t *testing.T) {
		t.Parallel()

		var s Scalar
		if err := json.Unmarshal([]byte(`[1]`), &s); err == nil {
			t.Error("expected error for array value, got nil")
		}
	})
}

// TestFlagUnmarshalJSON tests the tolerant flag decoding.
func TestFlagUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"bool true", `true`, true},
		{"bool false", `false`, false},
		{"number one", `1`, true},
		{"number zero", `0`, false},
		{"string one", `"1"`, true},
		{"string zero", `"0"`, false},
		{"string true", `"anything"`, true},
		{"string false", `"false"`, false},
		{"empty string", `""`, false},
		{"null", `null`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var f Flag
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Bool() != tt.want {
				t.Errorf("got %v, expected %v", f.Bool(), tt.want)
			}
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		var f Flag
		if err := json.Unmarshal([]byte(`{}`), &f); err == nil {
			t.Error("expected error for object value, got nil")
		}
	})
}

// TestMarkerUnmarshalJSON tests decoding a full marker with mixed
// string/number field encodings.
func TestMarkerUnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("quoted numeric fields", func(t *testing.T) {
		t.Parallel()

		raw := `{"title": "0042 Main St", "poi": false, "total_slots": "15",
			"latitude": "49.28", "longitude": "-123.12", "operative": "1"}`

		var m Marker
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if m.Title != "0042 Main St" {
			t.Errorf("got title %q, expected %q", m.Title, "0042 Main St")
		}
		if m.POI.Bool() {
			t.Error("expected poi to be false")
		}
		if m.TotalSlots != "15" {
			t.Errorf("got total_slots %q, expected %q", m.TotalSlots, "15")
		}
		if m.Operative != "1" {
			t.Errorf("got operative %q, expected %q", m.Operative, "1")
		}
	})

	t.Run("bare numeric fields", func(t *testing.T) {
		t.Parallel()

		raw := `{"title": "0042 Main St", "poi": 0, "total_slots": 15,
			"latitude": 49.28, "longitude": -123.12, "operative": 1}`

		var m Marker
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if m.TotalSlots != "15" {
			t.Errorf("got total_slots %q, expected %q", m.TotalSlots, "15")
		}
		if m.Latitude != "49.28" {
			t.Errorf("got latitude %q, expected %q", m.Latitude, "49.28")
		}
		if m.Operative != "1" {
			t.Errorf("got operative %q, expected %q", m.Operative, "1")
		}
	})
}
