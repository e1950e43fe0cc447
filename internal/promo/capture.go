package promo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"shopsmith/internal/services"
)

// FramePattern is the printf-style name the encoder reads frames by.
// Five digits of zero padding keeps lexicographic order equal to capture
// order for any plausible clip length.
const FramePattern = "frame_%05d.png"

// Screenshotter captures the current page as PNG bytes.
type Screenshotter interface {
	Screenshot(ctx context.Context) ([]byte, error)
}

// FrameCount returns the exact number of frames a capture produces.
func FrameCount(frameRate int, durationSeconds float64) int {
	return int(math.Round(durationSeconds * float64(frameRate)))
}

// FrameName returns the file name of frame index (zero-based).
func FrameName(index int) string {
	return fmt.Sprintf(FramePattern, index)
}

// CaptureFrames screenshots the page at fixed intervals into framesDir,
// writing exactly frameRate x duration numbered PNG files. The directory is
// cleared first so frames from an earlier failed run never reach the encoder.
// There is no resumability: any error leaves the partial directory behind and
// the next run starts from frame zero.
func CaptureFrames(ctx context.Context, shot Screenshotter, framesDir string, frameRate int, durationSeconds float64) (int, error) {
	if frameRate <= 0 {
		return 0, services.Wrap(services.ErrValidation, "promo", "capture", "frame rate must be positive", nil)
	}
	total := FrameCount(frameRate, durationSeconds)
	if total <= 0 {
		return 0, services.Wrap(services.ErrValidation, "promo", "capture", "duration must be positive", nil)
	}

	if err := os.RemoveAll(framesDir); err != nil {
		return 0, fmt.Errorf("clear frames directory: %w", err)
	}
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return 0, fmt.Errorf("create frames directory: %w", err)
	}

	interval := time.Second / time.Duration(frameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for index := 0; index < total; index++ {
		data, err := shot.Screenshot(ctx)
		if err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return index, services.Wrap(services.ErrTimeout, "promo", "capture",
					fmt.Sprintf("capture exceeded the configured timeout at frame %d of %d", index, total), err)
			}
			return index, err
		}
		path := filepath.Join(framesDir, FrameName(index))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return index, fmt.Errorf("write frame %s: %w", path, err)
		}

		if index == total-1 {
			break
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return index + 1, services.Wrap(services.ErrTimeout, "promo", "capture",
					fmt.Sprintf("capture exceeded the configured timeout at frame %d of %d", index+1, total), ctx.Err())
			}
			return index + 1, ctx.Err()
		case <-ticker.C:
		}
	}
	return total, nil
}
