package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"shopsmith/internal/services"
)

// ProgressUpdate captures ffmpeg -progress output.
type ProgressUpdate struct {
	Frame   int64
	OutTime time.Duration
	Speed   string
	Done    bool
}

// EncodeRequest describes one frame-sequence encode.
type EncodeRequest struct {
	FramePattern string // e.g. /staging/frames/frame_%05d.png
	FrameRate    int
	AudioPath    string // optional; muxed with -shortest when set
	CRF          int
	OutputPath   string
}

// Encoder defines the behaviour required by the promo assembler.
type Encoder interface {
	Encode(ctx context.Context, req EncodeRequest, progress func(ProgressUpdate)) error
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary        string
	encodeTimeout time.Duration
	exec          Executor
}

// New constructs an ffmpeg client.
func New(binary string, encodeTimeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{
		binary:        binary,
		encodeTimeout: time.Duration(encodeTimeoutSeconds) * time.Second,
		exec:          commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Encode runs ffmpeg over the frame sequence. A non-zero exit surfaces as an
// external-tool error carrying the exit code.
func (c *Client) Encode(ctx context.Context, req EncodeRequest, progress func(ProgressUpdate)) error {
	if strings.TrimSpace(req.FramePattern) == "" {
		return services.Wrap(services.ErrValidation, "encode", "ffmpeg", "frame pattern required", nil)
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return services.Wrap(services.ErrValidation, "encode", "ffmpeg", "output path required", nil)
	}
	if req.FrameRate <= 0 {
		return services.Wrap(services.ErrValidation, "encode", "ffmpeg", "frame rate must be positive", nil)
	}

	encodeCtx := ctx
	if c.encodeTimeout > 0 {
		var cancel context.CancelFunc
		encodeCtx, cancel = context.WithTimeout(ctx, c.encodeTimeout)
		defer cancel()
	}

	args := BuildArgs(req)
	err := c.exec.Run(encodeCtx, c.binary, args, func(line string) {
		if progress == nil {
			return
		}
		if update, ok := parseProgress(line); ok {
			progress(update)
		}
	})
	if err != nil {
		if errors.Is(encodeCtx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "encode", "ffmpeg", "encoder exceeded the configured timeout", err)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return services.Wrap(
				services.ErrExternalTool,
				"encode",
				"ffmpeg",
				fmt.Sprintf("encoder exited with status %d", exitErr.ExitCode()),
				err,
			)
		}
		return services.Wrap(services.ErrExternalTool, "encode", "ffmpeg", "encoder failed", err)
	}

	if _, statErr := os.Stat(req.OutputPath); errors.Is(statErr, os.ErrNotExist) {
		return services.Wrap(services.ErrExternalTool, "encode", "ffmpeg", "encoder produced no output file", nil)
	}
	return nil
}

// BuildArgs assembles the fixed encoder argument list for a request.
func BuildArgs(req EncodeRequest) []string {
	args := []string{
		"-y",
		"-framerate", strconv.Itoa(req.FrameRate),
		"-i", req.FramePattern,
	}
	if strings.TrimSpace(req.AudioPath) != "" {
		args = append(args, "-i", req.AudioPath)
	}
	args = append(args,
		"-c:v", "libx264",
		"-crf", strconv.Itoa(req.CRF),
		"-pix_fmt", "yuv420p",
	)
	if strings.TrimSpace(req.AudioPath) != "" {
		args = append(args, "-c:a", "aac", "-shortest")
	}
	args = append(args, "-progress", "pipe:1", "-loglevel", "error", req.OutputPath)
	return args
}

// parseProgress reads the key=value lines ffmpeg emits with -progress.
func parseProgress(line string) (ProgressUpdate, bool) {
	line = strings.TrimSpace(line)
	key, value, found := strings.Cut(line, "=")
	if !found {
		return ProgressUpdate{}, false
	}
	value = strings.TrimSpace(value)
	switch key {
	case "frame":
		frame, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return ProgressUpdate{}, false
		}
		return ProgressUpdate{Frame: frame}, true
	case "out_time_us":
		us, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return ProgressUpdate{}, false
		}
		return ProgressUpdate{OutTime: time.Duration(us) * time.Microsecond}, true
	case "speed":
		return ProgressUpdate{Speed: value}, true
	case "progress":
		return ProgressUpdate{Done: value == "end"}, true
	default:
		return ProgressUpdate{}, false
	}
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if onLine != nil {
				onLine(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return err
	}
	return nil
}
