package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"instaquran/internal/card"
	"instaquran/internal/logging"
)

// Config controls the headless browser.
type Config struct {
	Scale       float64 // device pixels per CSS pixel
	ChromeBin   string  // empty lets the launcher find or download a browser
	DebuggerURL string  // connect to a running browser instead of launching one
	Headless    bool
	Timeout     time.Duration // per render
}

// DefaultConfig renders at twice the CSS size in a headless browser.
func DefaultConfig() Config {
	return Config{
		Scale:    2,
		Headless: true,
		Timeout:  30 * time.Second,
	}
}

// BrowserRasterizer screenshots card HTML in headless Chrome. The browser is started
// on the first Render and reused until Close.
type BrowserRasterizer struct {
	cfg Config

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	closed   bool
}

// NewBrowserRasterizer creates a rasterizer. No browser is started yet.
func NewBrowserRasterizer(cfg Config) *BrowserRasterizer {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	return &BrowserRasterizer{cfg: cfg}
}

// start connects to an existing Chrome or launches a new one.
func (r *BrowserRasterizer) start() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}

	// If we already have a browser, verify it's still alive
	if r.browser != nil {
		if _, err := r.browser.Version(); err == nil {
			return r.browser, nil
		}
		logging.Get(logging.CategoryRender).Warn("stale browser connection, reconnecting")
		r.shutdownLocked()
	}

	controlURL := r.cfg.DebuggerURL
	if controlURL == "" {
		l := launcher.New().Headless(r.cfg.Headless)
		if r.cfg.ChromeBin != "" {
			l = l.Bin(r.cfg.ChromeBin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		r.launcher = l
		controlURL = u
	}

	// The browser outlives any single render, so it is not bound to a request context.
	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		r.shutdownLocked()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	logging.Render("browser ready at %s", controlURL)
	r.browser = b
	return b, nil
}

// Render implements Rasterizer.
func (r *BrowserRasterizer) Render(ctx context.Context, c card.Card) (Image, error) {
	fail := func(stage string, err error) (Image, error) {
		return Image{}, &RenderError{Reference: c.Reference, Stage: stage, Err: err}
	}

	doc, err := c.HTML()
	if err != nil {
		return fail("page", err)
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	log := logging.FromContext(ctx, logging.CategoryRender)
	start := time.Now()

	b, err := r.start()
	if err != nil {
		return fail("launch", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fail("page", err)
	}
	defer func() {
		_ = page.Close()
	}()
	page = page.Context(ctx)

	size := c.Options.Size()
	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             size.Width,
		Height:            size.Height,
		DeviceScaleFactor: r.cfg.Scale,
		Mobile:            false,
	}).Call(page); err != nil {
		return fail("page", fmt.Errorf("set viewport: %w", err))
	}

	dataURL := "data:text/html;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(doc))
	if err := page.Navigate(dataURL); err != nil {
		return fail("load", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fail("load", err)
	}
	if _, err := page.Eval(`() => document.fonts.ready.then(() => true)`); err != nil {
		return fail("load", fmt.Errorf("wait for fonts: %w", err))
	}
	if c.Options.Background == card.BackgroundImage {
		// Make sure the photo has decoded before capture.
		if _, err := page.Eval(`(src) => new Promise((resolve) => {
			const img = new Image();
			img.onload = img.onerror = () => resolve(true);
			img.src = src;
		})`, c.Options.PhotoURL()); err != nil {
			return fail("load", fmt.Errorf("wait for background: %w", err))
		}
	}

	el, err := page.Element("#" + card.ElementID)
	if err != nil {
		return fail("capture", err)
	}
	data, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return fail("capture", err)
	}

	img, err := NewImage(data)
	if err != nil {
		return fail("capture", err)
	}
	log.Info("rendered %s %dx%d in %v", c.Reference, img.Width, img.Height, time.Since(start))
	return img, nil
}

// Close shuts the browser down. Later renders fail with ErrClosed.
func (r *BrowserRasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return r.shutdownLocked()
}

func (r *BrowserRasterizer) shutdownLocked() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher.Cleanup()
		r.launcher = nil
	}
	return err
}
