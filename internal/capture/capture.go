// Package capture obtains the HTML of the myTime schedule page, either from a
// saved file or from a live page rendered by headless Chromium.
package capture

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/pfrederiksen/mytime-ics/internal/logger"
)

const (
	// DefaultWaitSelector matches the first day container of the weekly view.
	DefaultWaitSelector = `[id="0"]`
	DefaultTimeoutSec   = 30
)

// Options defines parameters for a Chromium-based page capture.
type Options struct {
	// URL of the weekly schedule view.
	URL string

	// WaitSelector is a CSS selector that must be present before the DOM is
	// read. If empty, DefaultWaitSelector is used.
	WaitSelector string

	// Timeout bounds the entire capture. If zero, DefaultTimeoutSec is used.
	Timeout time.Duration

	// UserDataDir is a Chromium profile directory. Reusing a profile keeps the
	// myTime login between runs.
	UserDataDir string

	// ShowBrowser runs Chromium with a window, e.g. to sign in the first time.
	ShowBrowser bool
}

func (o Options) withDefaults() (Options, error) {
	if o.URL == "" {
		return o, fmt.Errorf("capture: URL is required")
	}
	if o.WaitSelector == "" {
		o.WaitSelector = DefaultWaitSelector
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Duration(DefaultTimeoutSec) * time.Second
	}
	return o, nil
}

// CaptureHTML launches Chromium via chromedp, navigates to opts.URL, waits
// until opts.WaitSelector exists and returns the outer HTML of the document.
func CaptureHTML(parentCtx context.Context, opts Options) (string, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return "", err
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if opts.UserDataDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.UserDataDir))
	}
	if opts.ShowBrowser {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parentCtx, allocOpts...)
	defer allocCancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	started := time.Now()
	var html string
	tasks := chromedp.Tasks{
		chromedp.Navigate(opts.URL),
		chromedp.WaitReady(opts.WaitSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		logger.IncrCounter("capture.errors")
		return "", fmt.Errorf("capture: chromedp run failed: %w", err)
	}

	logger.RecordTiming("capture.duration", time.Since(started))
	logger.Debug("page captured", logger.Fields{
		"url":   opts.URL,
		"bytes": len(html),
	})
	return html, nil
}

// Source produces the current HTML of the schedule page.
type Source interface {
	HTML(ctx context.Context) (string, error)
}

// FileSource reads a saved copy of the page.
type FileSource struct {
	Path string
}

// HTML returns the file contents.
func (f FileSource) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}
	return string(data), nil
}

// BrowserSource captures the live page on every call.
type BrowserSource struct {
	Options Options
}

// HTML captures the page with CaptureHTML.
func (b BrowserSource) HTML(ctx context.Context) (string, error) {
	return CaptureHTML(ctx, b.Options)
}
