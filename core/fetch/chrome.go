package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/gaurav-prasanna/deckpipe/core"
)

// ChromeSession renders pages in a headless Chrome instance so that
// script-populated content is present in the snapshot. The browser
// process is created at session start and lives until Close; the
// session must not be shared between concurrent runs.
type ChromeSession struct {
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	tabCtx      context.Context
	cancelTab   context.CancelFunc
	timeout     time.Duration
}

// NewChrome starts a headless Chrome instance.
func NewChrome(timeout time.Duration, userAgent string) (*ChromeSession, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so a broken Chrome install fails the
	// session constructor instead of the first Load.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("starting chrome: %w", err)
	}

	return &ChromeSession{
		allocCtx:    allocCtx,
		cancelAlloc: cancelAlloc,
		tabCtx:      tabCtx,
		cancelTab:   cancelTab,
		timeout:     timeout,
	}, nil
}

// Load navigates to url, waits for the document body, and returns the
// rendered outer HTML.
func (s *ChromeSession) Load(ctx context.Context, url string) (string, error) {
	runCtx, cancel := context.WithTimeout(s.tabCtx, s.timeout)
	defer cancel()

	// Honor cancellation of the caller's context as well.
	done := ctx.Done()
	if done != nil {
		go func() {
			select {
			case <-done:
				cancel()
			case <-runCtx.Done():
			}
		}()
	}

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("%w: rendering %s: %v", core.ErrFetchFailed, url, err)
	}
	return html, nil
}

// Close tears down the tab and the browser process. Leaking the process
// is the failure mode this guards against; Close is safe to call twice.
func (s *ChromeSession) Close() error {
	s.cancelTab()
	s.cancelAlloc()
	return nil
}
