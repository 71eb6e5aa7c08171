package pipeline

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stationwatch/stationwatch/internal/config"
	"github.com/stationwatch/stationwatch/internal/fetch"
	"github.com/stationwatch/stationwatch/internal/model"
)

// fakeStep records whether it ran and optionally fails.
type fakeStep struct {
	name string
	err  error
	ran  bool
}

func (s *fakeStep) Name() string { return s.name }

func (s *fakeStep) Do(_ context.Context, _ *model.ScanReport) error {
	s.ran = true
	return s.err
}

// TestPipelineExecute tests step orchestration.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		first := &fakeStep{name: "first"}
		second := &fakeStep{name: "second"}

		p := New()
		p.AddSteps(first, second)

		report := model.NewScanReport("mobi", "https://example.com")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !first.ran || !second.ran {
			t.Error("expected both steps to run")
		}
	})

	t.Run("aborts on first error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		failing := &fakeStep{name: "failing", err: boom}
		after := &fakeStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		report := model.NewScanReport("mobi", "https://example.com")
		err := p.Execute(context.Background(), report)
		if !errors.Is(err, boom) {
			t.Fatalf("got %v, expected the step error", err)
		}
		if after.ran {
			t.Error("expected later step to be skipped after failure")
		}
		if report.ErrorMessage != "boom" {
			t.Errorf("got error message %q, expected %q", report.ErrorMessage, "boom")
		}
	})

	t.Run("respects cancellation between steps", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &fakeStep{name: "never"}
		p := New()
		p.AddSteps(step)

		report := model.NewScanReport("mobi", "https://example.com")
		if err := p.Execute(ctx, report); !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v, expected context.Canceled", err)
		}
		if step.ran {
			t.Error("expected step to be skipped after cancellation")
		}
	})
}

// TestForNetwork tests standard pipeline assembly.
func TestForNetwork(t *testing.T) {
	t.Parallel()

	network := config.Network{
		Name:        "mobi",
		URL:         "https://example.com",
		KnownActive: []string{"0042"},
	}

	t.Run("fetching pipeline", func(t *testing.T) {
		t.Parallel()

		p := ForNetwork(network, fetch.NewClient(), "")
		want := []string{"fetch", "extract", "reconcile"}
		if got := p.StepNames(); !reflect.DeepEqual(got, want) {
			t.Errorf("got steps %v, expected %v", got, want)
		}
	})

	t.Run("file input pipeline", func(t *testing.T) {
		t.Parallel()

		p := ForNetwork(network, nil, "saved.html")
		want := []string{"read_file", "extract", "reconcile"}
		if got := p.StepNames(); !reflect.DeepEqual(got, want) {
			t.Errorf("got steps %v, expected %v", got, want)
		}
	})
}
