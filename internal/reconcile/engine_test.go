package reconcile

import (
	"reflect"
	"testing"

	"github.com/stationwatch/stationwatch/internal/model"
)

// mainStMarker is the canonical active coded-station marker.
func mainStMarker() model.Marker {
	return model.Marker{
		Title:      "0042 Main St",
		POI:        false,
		TotalSlots: "15",
		Latitude:   "49.28",
		Longitude:  "-123.12",
		Operative:  "1",
	}
}

// TestEngineIngest tests the working set and change classification.
func TestEngineIngest(t *testing.T) {
	t.Parallel()

	t.Run("known active station is unchanged", func(t *testing.T) {
		t.Parallel()

		e := NewEngine(NewBaseline([]string{"0042"}, nil))
		e.IngestMarkers([]model.Marker{mainStMarker()})

		if st, ok := e.Stations()["0042"]; !ok || st.Disused {
			t.Errorf("expected active station 0042 in working set, got %+v (ok=%v)", st, ok)
		}
		if changed := e.Changed(); len(changed) != 0 {
			t.Errorf("got changed %v, expected none", changed)
		}
		if missing := e.MissingFromBaseline(); len(missing) != 0 {
			t.Errorf("got missing %v, expected none", missing)
		}
	})

	t.Run("status flip to disused is changed", func(t *testing.T) {
		t.Parallel()

		m := mainStMarker()
		m.Operative = "0"

		e := NewEngine(NewBaseline([]string{"0042"}, nil))
		e.IngestMarkers([]model.Marker{m})

		if got := e.Changed(); !reflect.DeepEqual(got, []string{"0042"}) {
			t.Errorf("got changed %v, expected [0042]", got)
		}
		if !e.Stations()["0042"].Disused {
			t.Error("expected station 0042 to be disused")
		}
	})

	t.Run("known disused station stays unchanged", func(t *testing.T) {
		t.Parallel()

		m := mainStMarker()
		m.Operative = "0"

		e := NewEngine(NewBaseline(nil, []string{"0042"}))
		e.IngestMarkers([]model.Marker{m})

		if changed := e.Changed(); len(changed) != 0 {
			t.Errorf("got changed %v, expected none", changed)
		}
	})

	t.Run("reactivated station is changed", func(t *testing.T) {
		t.Parallel()

		// Known disused, advertised active this run.
		e := NewEngine(NewBaseline(nil, []string{"0042"}))
		e.IngestMarkers([]model.Marker{mainStMarker()})

		if got := e.Changed(); !reflect.DeepEqual(got, []string{"0042"}) {
			t.Errorf("got changed %v, expected [0042]", got)
		}
	})

	t.Run("brand new station is changed", func(t *testing.T) {
		t.Parallel()

		e := NewEngine(NewBaseline([]string{"0001"}, nil))
		e.IngestMarkers([]model.Marker{mainStMarker()})

		if got := e.Changed(); !reflect.DeepEqual(got, []string{"0042"}) {
			t.Errorf("got changed %v, expected [0042]", got)
		}
	})

	t.Run("sentinel references never advertised", func(t *testing.T) {
		t.Parallel()

		e := NewEngine(NewBaseline(nil, nil))
		e.IngestMarkers([]model.Marker{
			{Title: "Coming soon", Operative: "0"},
			{Title: "0997 Pop-up dock", Operative: "1"},
			{Title: "1000 Event station", Operative: "1"},
		})

		if got := e.Advertised(); len(got) != 0 {
			t.Errorf("got advertised %v, expected none", got)
		}
		if got := e.Changed(); len(got) != 0 {
			t.Errorf("got changed %v, expected none", got)
		}
		// Still stored for verbose display. The two coded sentinels keep
		// their own keys; the unparsed title lands on "0000".
		for _, ref := range []string{"0000", "0997", "1000"} {
			if _, ok := e.Stations()[ref]; !ok {
				t.Errorf("expected sentinel record %q in working set", ref)
			}
		}
	})

	t.Run("duplicate reference is last write wins", func(t *testing.T) {
		t.Parallel()

		first := mainStMarker()
		second := mainStMarker()
		second.Title = "0042 Main St (relocated)"
		second.TotalSlots = "20"

		e := NewEngine(NewBaseline([]string{"0042"}, nil))
		e.IngestMarkers([]model.Marker{first, second})

		st := e.Stations()["0042"]
		if st.Name != "Main St (relocated)" {
			t.Errorf("got name %q, expected the later marker's name", st.Name)
		}
		if st.Capacity != "20" {
			t.Errorf("got capacity %q, expected %q", st.Capacity, "20")
		}
		if got := e.Advertised(); !reflect.DeepEqual(got, []string{"0042"}) {
			t.Errorf("got advertised %v, expected [0042]", got)
		}
	})

	t.Run("re-ingesting identical marker is a no-op", func(t *testing.T) {
		t.Parallel()

		once := NewEngine(NewBaseline([]string{"0042"}, nil))
		once.IngestMarkers([]model.Marker{mainStMarker()})

		twice := NewEngine(NewBaseline([]string{"0042"}, nil))
		twice.IngestMarkers([]model.Marker{mainStMarker(), mainStMarker()})

		if !reflect.DeepEqual(once.Stations(), twice.Stations()) {
			t.Error("re-ingesting the same marker changed the working set")
		}
		if !reflect.DeepEqual(once.Changed(), twice.Changed()) {
			t.Error("re-ingesting the same marker changed the changed set")
		}
	})
}

// TestEngineMissingFromBaseline tests retirement detection.
func TestEngineMissingFromBaseline(t *testing.T) {
	t.Parallel()

	t.Run("reports known active stations not advertised", func(t *testing.T) {
		t.Parallel()

		e := NewEngine(NewBaseline([]string{"0042", "0099"}, nil))
		e.IngestMarkers([]model.Marker{mainStMarker()})

		if got := e.MissingFromBaseline(); !reflect.DeepEqual(got, []string{"0099"}) {
			t.Errorf("got missing %v, expected [0099]", got)
		}
	})

	t.Run("empty when every known station re-advertised", func(t *testing.T) {
		t.Parallel()

		e := NewEngine(NewBaseline([]string{"0042"}, nil))
		e.IngestMarkers([]model.Marker{mainStMarker()})

		if got := e.MissingFromBaseline(); len(got) != 0 {
			t.Errorf("got missing %v, expected none", got)
		}
	})

	t.Run("sorted ascending", func(t *testing.T) {
		t.Parallel()

		e := NewEngine(NewBaseline([]string{"0173", "0005", "0099"}, nil))

		if got := e.MissingFromBaseline(); !reflect.DeepEqual(got, []string{"0005", "0099", "0173"}) {
			t.Errorf("got missing %v, expected sorted order", got)
		}
	})
}

// TestEngineSortedOutput tests deterministic ordering of reference sets.
func TestEngineSortedOutput(t *testing.T) {
	t.Parallel()

	markers := []model.Marker{
		{Title: "0173 Last", Operative: "1"},
		{Title: "0005 First", Operative: "1"},
		{Title: "0099 Middle", Operative: "1"},
	}

	e := NewEngine(NewBaseline(nil, nil))
	e.IngestMarkers(markers)

	want := []string{"0005", "0099", "0173"}
	if got := e.Advertised(); !reflect.DeepEqual(got, want) {
		t.Errorf("got advertised %v, expected %v", got, want)
	}
	if got := e.Changed(); !reflect.DeepEqual(got, want) {
		t.Errorf("got changed %v, expected %v", got, want)
	}
}

// TestEngineReport tests snapshotting into a scan report.
func TestEngineReport(t *testing.T) {
	t.Parallel()

	e := NewEngine(NewBaseline([]string{"0042", "0099"}, []string{"0007"}))
	e.IngestMarkers([]model.Marker{mainStMarker()})

	r := model.NewScanReport("mobi", "https://example.com")
	e.Report(r)

	if r.KnownActiveCount != 2 {
		t.Errorf("got known active count %d, expected 2", r.KnownActiveCount)
	}
	if r.KnownDisusedCount != 1 {
		t.Errorf("got known disused count %d, expected 1", r.KnownDisusedCount)
	}
	if !reflect.DeepEqual(r.Advertised, []string{"0042"}) {
		t.Errorf("got advertised %v, expected [0042]", r.Advertised)
	}
	if !reflect.DeepEqual(r.Missing, []string{"0099"}) {
		t.Errorf("got missing %v, expected [0099]", r.Missing)
	}
	if len(r.Changed) != 0 {
		t.Errorf("got changed %v, expected none", r.Changed)
	}
	if _, ok := r.Stations["0042"]; !ok {
		t.Error("expected station 0042 in report")
	}
}
