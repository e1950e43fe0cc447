package promo_test

import (
	"errors"
	"math"
	"testing"

	"shopsmith/internal/config"
	"shopsmith/internal/promo"
	"shopsmith/internal/services"
)

func TestBuildTimelineDerivesOffsets(t *testing.T) {
	segments := []config.Segment{
		{Name: "hook", DurationSeconds: 2.0},
		{Name: "setup", DurationSeconds: 3.0},
		{Name: "close", DurationSeconds: 1.5},
	}

	entries, err := promo.BuildTimeline(segments, 0.3)
	if err != nil {
		t.Fatalf("build timeline: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Start != 0 {
		t.Fatalf("expected hook to start at 0, got %v", entries[0].Start)
	}
	if math.Abs(entries[1].Start-2.3) > 1e-9 {
		t.Fatalf("expected setup to start at 2.3, got %v", entries[1].Start)
	}
	if math.Abs(entries[2].Start-5.6) > 1e-9 {
		t.Fatalf("expected close to start at 5.6, got %v", entries[2].Start)
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Start <= entries[i-1].Start {
			t.Fatalf("offsets must be strictly increasing: %v", entries)
		}
	}

	if math.Abs(promo.TotalSeconds(entries)-7.1) > 1e-9 {
		t.Fatalf("unexpected total %v", promo.TotalSeconds(entries))
	}
}

func TestBuildTimelineRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		segments []config.Segment
		gap      float64
	}{
		{name: "no segments", segments: nil, gap: 0.3},
		{name: "zero duration", segments: []config.Segment{{Name: "hook", DurationSeconds: 0}}, gap: 0.3},
		{name: "negative gap", segments: []config.Segment{{Name: "hook", DurationSeconds: 1}}, gap: -0.1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := promo.BuildTimeline(tc.segments, tc.gap); !errors.Is(err, services.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
