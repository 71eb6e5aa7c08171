package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/stationwatch/stationwatch/internal/model"
	"golang.org/x/net/html"
)

// settingsMarker identifies the inline script carrying the map settings.
const settingsMarker = "Drupal.settings"

// payloadPrefix is the assignment wrapper in front of the JSON document.
const payloadPrefix = "jQuery.extend(Drupal.settings, "

// settings is the subset of the embedded settings document we decode.
type settings struct {
	Markers []model.Marker `json:"markers"`
}

// FromHTML parses an HTML page, finds the inline script containing the
// embedded settings assignment, and returns the marker records found in
// it. It returns ErrMalformedPayload if no such script exists or the
// payload cannot be decoded.
//
// Design decision: We use golang.org/x/net/html rather than a regex
// because it correctly handles the malformed HTML the map page actually
// serves, and script text nodes come out of the DOM walk verbatim.
func FromHTML(content io.Reader) ([]model.Marker, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var script string

	// Walk the DOM tree looking for inline scripts.
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if script != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "script" {
			if text := scriptText(n); strings.Contains(text, settingsMarker) {
				script = text
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if script == "" {
		return nil, fmt.Errorf("%w: no script containing %q", ErrMalformedPayload, settingsMarker)
	}

	return Payload(script)
}

// Payload strips the settings assignment wrapper from a script body and
// decodes the JSON remainder, returning the sequence under the "markers"
// key. It returns ErrMalformedPayload if the wrapper is absent or the
// remainder is not valid JSON.
func Payload(script string) ([]model.Marker, error) {
	idx := strings.Index(script, payloadPrefix)
	if idx < 0 {
		return nil, fmt.Errorf("%w: assignment prefix not found", ErrMalformedPayload)
	}

	text := strings.TrimSpace(script[idx+len(payloadPrefix):])
	text = strings.TrimSuffix(text, ";")
	text = strings.TrimSuffix(strings.TrimSpace(text), ")")

	var s settings
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return s.Markers, nil
}

// scriptText concatenates the text children of a script element.
// Scripts with a src attribute have no inline body and yield "".
func scriptText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
