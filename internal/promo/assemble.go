package promo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"shopsmith/internal/config"
	"shopsmith/internal/fileutil"
	"shopsmith/internal/logging"
	"shopsmith/internal/notifications"
	"shopsmith/internal/services"
	"shopsmith/internal/services/browser"
	"shopsmith/internal/services/ffmpeg"
)

const lockRetryDelay = 500 * time.Millisecond

// SessionFunc opens the capture page. Injected so tests can render without
// a real browser.
type SessionFunc func(ctx context.Context, pageURL string, opts browser.Options) (browser.Capturer, error)

// Result summarizes one completed render.
type Result struct {
	Template  string
	RunID     string
	VideoPath string
	Frames    int
	Elapsed   time.Duration
	Timeline  []TimelineEntry
}

// Option configures the assembler.
type Option func(*Assembler)

// WithSessionFunc replaces the browser session opener.
func WithSessionFunc(open SessionFunc) Option {
	return func(a *Assembler) {
		if open != nil {
			a.open = open
		}
	}
}

// WithRunID fixes the render's run identifier so callers can correlate the
// run history entry with the render logs.
func WithRunID(runID string) Option {
	return func(a *Assembler) {
		a.runID = strings.TrimSpace(runID)
	}
}

// Assembler runs the capture-then-encode pipeline for one template at a time.
type Assembler struct {
	cfg      *config.Config
	logger   *slog.Logger
	encoder  ffmpeg.Encoder
	notifier notifications.Service
	open     SessionFunc
	runID    string
}

// NewAssembler wires a render pipeline from its collaborators.
func NewAssembler(cfg *config.Config, logger *slog.Logger, encoder ffmpeg.Encoder, notifier notifications.Service, opts ...Option) *Assembler {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	assembler := &Assembler{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "promo"),
		encoder:  encoder,
		notifier: notifier,
		open: func(ctx context.Context, pageURL string, opts browser.Options) (browser.Capturer, error) {
			return browser.Open(ctx, pageURL, opts)
		},
	}
	for _, opt := range opts {
		opt(assembler)
	}
	return assembler
}

// Render captures and encodes the named template. A filesystem lock on the
// staging directory serializes concurrent renders; the second caller blocks
// until the first finishes or its context ends. There is no resume: a failed
// render leaves its partial frames behind and the next run recaptures from
// frame zero.
func (a *Assembler) Render(ctx context.Context, name string) (*Result, error) {
	template, ok := a.cfg.Promo.Templates[name]
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "promo", "render",
			fmt.Sprintf("unknown template %q (configured: %s)", name, strings.Join(a.cfg.TemplateNames(), ", ")), nil)
	}

	timeline, err := BuildTimeline(template.Segments, a.cfg.Promo.GapSeconds)
	if err != nil {
		return nil, err
	}

	stagingRoot := filepath.Join(a.cfg.Paths.StagingDir, "promo")
	if err := os.MkdirAll(stagingRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	if err := os.MkdirAll(a.cfg.Paths.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(stagingRoot, "render.lock"))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire render lock: %w", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, "promo", "render",
			"another render holds the staging lock", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	runID := a.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	result := &Result{
		Template: name,
		RunID:    runID,
		Timeline: timeline,
	}
	started := time.Now()

	log := a.logger.With(
		logging.String("template", name),
		logging.String("run_id", result.RunID),
	)
	log.Info("render started",
		logging.Int("frame_rate", template.FrameRate),
		logging.Float64("duration_seconds", template.DurationSeconds),
		logging.Int("segments", len(timeline)),
	)
	if err := a.notifier.NotifyRenderStarted(ctx, name); err != nil {
		log.Warn("start notification failed", logging.Error(err))
	}

	framesDir := filepath.Join(stagingRoot, "frames-"+name)
	frames, err := a.capture(ctx, template, framesDir, log)
	if err != nil {
		a.notifyFailure(ctx, name, err, log)
		return nil, err
	}
	result.Frames = frames

	// Encode into staging first so a failed encode never leaves a partial
	// video in the output directory.
	stagingVideo := filepath.Join(stagingRoot, name+".mp4")
	if err := a.encode(ctx, template, framesDir, stagingVideo, log); err != nil {
		a.notifyFailure(ctx, name, err, log)
		return nil, err
	}

	result.VideoPath = filepath.Join(a.cfg.Paths.OutputDir, name+".mp4")
	if err := fileutil.MoveFile(stagingVideo, result.VideoPath); err != nil {
		return nil, fmt.Errorf("move video to output: %w", err)
	}
	if err := os.RemoveAll(framesDir); err != nil {
		return nil, fmt.Errorf("remove frames directory: %w", err)
	}

	result.Elapsed = time.Since(started)
	log.Info("render complete",
		logging.String("video", result.VideoPath),
		logging.Int("frames", result.Frames),
		logging.Duration("elapsed", result.Elapsed),
	)
	if err := a.notifier.NotifyRenderCompleted(ctx, name, result.VideoPath, result.Elapsed); err != nil {
		log.Warn("completion notification failed", logging.Error(err))
	}
	return result, nil
}

// capture opens the template page and screenshots it for the full clip
// length. The browser session lives only as long as the capture.
func (a *Assembler) capture(ctx context.Context, template config.Template, framesDir string, log *slog.Logger) (int, error) {
	captureCtx := ctx
	if timeout := time.Duration(a.cfg.Promo.CaptureTimeoutSeconds) * time.Second; timeout > 0 {
		var cancel context.CancelFunc
		captureCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	pageURL := browser.PageURL(template.Page)
	session, err := a.open(captureCtx, pageURL, browser.Options{
		Binary: a.cfg.Promo.BrowserBinary,
		Width:  template.Width,
		Height: template.Height,
	})
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.Warn("browser close failed", logging.Error(closeErr))
		}
	}()

	log.Info("capturing frames",
		logging.String("page", pageURL),
		logging.Int("total", FrameCount(template.FrameRate, template.DurationSeconds)),
	)
	return CaptureFrames(captureCtx, session, framesDir, template.FrameRate, template.DurationSeconds)
}

func (a *Assembler) encode(ctx context.Context, template config.Template, framesDir, videoPath string, log *slog.Logger) error {
	req := ffmpeg.EncodeRequest{
		FramePattern: filepath.Join(framesDir, FramePattern),
		FrameRate:    template.FrameRate,
		AudioPath:    template.AudioFile,
		CRF:          a.cfg.Promo.CRF,
		OutputPath:   videoPath,
	}
	log.Info("encoding", logging.String("output", videoPath))
	return a.encoder.Encode(ctx, req, func(update ffmpeg.ProgressUpdate) {
		if update.Frame > 0 {
			log.Debug("encode progress", logging.Int64("frame", update.Frame))
		}
	})
}

func (a *Assembler) notifyFailure(ctx context.Context, name string, cause error, log *slog.Logger) {
	if err := a.notifier.NotifyError(ctx, cause, "promo render "+name); err != nil {
		log.Warn("failure notification failed", logging.Error(err))
	}
}
