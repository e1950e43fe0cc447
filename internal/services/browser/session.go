package browser

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"shopsmith/internal/services"
)

// Options describes how the capture page is opened.
type Options struct {
	Binary string // optional explicit Chromium binary
	Width  int
	Height int
}

// Capturer is the surface the promo assembler depends on.
type Capturer interface {
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// Session owns one headless browser and the single page it captures.
type Session struct {
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
}

// Open launches a headless browser, opens pageURL at the requested viewport,
// and waits for load plus a short settle so fonts and first paint are in.
func Open(ctx context.Context, pageURL string, opts Options) (*Session, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, services.Wrap(services.ErrValidation, "browser", "open", "viewport must be positive", nil)
	}

	l := launcher.New().Headless(true)
	if bin := strings.TrimSpace(opts.Binary); bin != "" {
		l = l.Bin(bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "browser", "launch",
			"could not start a headless browser; install chromium or set promo.browser_binary", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, services.Wrap(services.ErrExternalTool, "browser", "connect", "devtools connection failed", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, services.Wrap(services.ErrExternalTool, "browser", "open page", pageURL, err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, services.Wrap(services.ErrExternalTool, "browser", "set viewport", "", err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, services.Wrap(services.ErrExternalTool, "browser", "wait load", pageURL, err)
	}
	// Fonts and first animation frame need a beat after load.
	time.Sleep(500 * time.Millisecond)

	return &Session{browser: b, page: page, launcher: l}, nil
}

// Screenshot captures the current viewport as PNG bytes.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	data, err := s.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "browser", "screenshot", "", err)
	}
	return data, nil
}

// Close shuts the browser down and cleans up the launcher's temp profile.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	err := s.browser.Close()
	s.launcher.Cleanup()
	return err
}

// PageURL converts a local file path into the file:// URL the browser loads.
func PageURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

var _ Capturer = (*Session)(nil)
