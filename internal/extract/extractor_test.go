package extract

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// samplePayload is a settings assignment as served by the map page.
const samplePayload = `jQuery.extend(Drupal.settings, {"basePath":"/","markers":[
	{"title":"0042 Main St","poi":false,"total_slots":"15","latitude":"49.28","longitude":"-123.12","operative":"1"},
	{"title":"Coming soon","poi":false,"total_slots":"0","latitude":"49.29","longitude":"-123.10","operative":"0"},
	{"title":"Bike shop","poi":true,"total_slots":"0","latitude":"49.30","longitude":"-123.11","operative":"1"}
]});`

// TestPayload tests wrapper stripping and JSON decoding.
func TestPayload(t *testing.T) {
	t.Parallel()

	t.Run("decodes markers from wrapped payload", func(t *testing.T) {
		t.Parallel()

		markers, err := Payload(samplePayload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(markers) != 3 {
			t.Fatalf("got %d markers, expected 3", len(markers))
		}
		if markers[0].Title != "0042 Main St" {
			t.Errorf("got title %q, expected %q", markers[0].Title, "0042 Main St")
		}
		if !markers[2].POI.Bool() {
			t.Error("expected third marker to be a point of interest")
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		first, err := Payload(samplePayload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Payload(samplePayload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("two extractions of the same payload differ")
		}
	})

	t.Run("missing wrapper prefix", func(t *testing.T) {
		t.Parallel()

		_, err := Payload(`var x = {"markers":[]};`)
		if !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("got %v, expected ErrMalformedPayload", err)
		}
	})

	t.Run("invalid JSON remainder", func(t *testing.T) {
		t.Parallel()

		_, err := Payload(`jQuery.extend(Drupal.settings, {"markers":[);`)
		if !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("got %v, expected ErrMalformedPayload", err)
		}
	})

	t.Run("payload without markers key", func(t *testing.T) {
		t.Parallel()

		markers, err := Payload(`jQuery.extend(Drupal.settings, {"basePath":"/"});`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(markers) != 0 {
			t.Errorf("got %d markers, expected 0", len(markers))
		}
	})

	t.Run("tolerates surrounding script code", func(t *testing.T) {
		t.Parallel()

		script := "(function(){\n" + samplePayload + "\n})();"
		markers, err := Payload(script)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(markers) != 3 {
			t.Errorf("got %d markers, expected 3", len(markers))
		}
	})
}

// TestFromHTML tests locating the settings script inside a page.
func TestFromHTML(t *testing.T) {
	t.Parallel()

	t.Run("finds settings script among others", func(t *testing.T) {
		t.Parallel()

		page := `<html><head>
			<script src="/misc/jquery.js"></script>
			<script>var unrelated = 1;</script>
			<script>` + samplePayload + `</script>
			</head><body><div id="map"></div></body></html>`

		markers, err := FromHTML(strings.NewReader(page))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(markers) != 3 {
			t.Errorf("got %d markers, expected 3", len(markers))
		}
	})

	t.Run("no settings script", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><script>var unrelated = 1;</script></head><body></body></html>`
		_, err := FromHTML(strings.NewReader(page))
		if !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("got %v, expected ErrMalformedPayload", err)
		}
	})

	t.Run("malformed HTML still yields markers", func(t *testing.T) {
		t.Parallel()

		// x/net/html repairs unclosed tags; the script body survives.
		page := `<html><body><div><script>` + samplePayload + `</script><p>oops`
		markers, err := FromHTML(strings.NewReader(page))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(markers) != 3 {
			t.Errorf("got %d markers, expected 3", len(markers))
		}
	})
}
