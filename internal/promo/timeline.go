package promo

import (
	"fmt"

	"shopsmith/internal/config"
	"shopsmith/internal/services"
)

// TimelineEntry is one audio segment with its derived start offset.
type TimelineEntry struct {
	Name    string
	Start   float64
	End     float64
	Seconds float64
}

// BuildTimeline derives start offsets for a template's segments. Each
// segment starts where the previous one ended plus the fixed inter-segment
// gap; the first segment starts at zero. Offsets are strictly increasing
// because durations are validated positive.
func BuildTimeline(segments []config.Segment, gapSeconds float64) ([]TimelineEntry, error) {
	if len(segments) == 0 {
		return nil, services.Wrap(services.ErrValidation, "promo", "timeline", "template has no segments", nil)
	}
	if gapSeconds < 0 {
		return nil, services.Wrap(services.ErrValidation, "promo", "timeline", "gap must not be negative", nil)
	}

	entries := make([]TimelineEntry, 0, len(segments))
	cursor := 0.0
	for i, segment := range segments {
		if segment.DurationSeconds <= 0 {
			return nil, services.Wrap(services.ErrValidation, "promo", "timeline",
				fmt.Sprintf("segment %q must have a positive duration", segment.Name), nil)
		}
		if i > 0 {
			cursor += gapSeconds
		}
		entries = append(entries, TimelineEntry{
			Name:    segment.Name,
			Start:   cursor,
			End:     cursor + segment.DurationSeconds,
			Seconds: segment.DurationSeconds,
		})
		cursor += segment.DurationSeconds
	}
	return entries, nil
}

// TotalSeconds returns the timeline length including inter-segment gaps.
func TotalSeconds(entries []TimelineEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	return entries[len(entries)-1].End
}
