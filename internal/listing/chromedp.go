package listing

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeFetcher implements Fetcher with a headless Chrome session. Each
// Render spins up a fresh browser context so a wedged page cannot poison
// later fetches.
type ChromeFetcher struct {
	timeout time.Duration
}

func NewChromeFetcher(timeout time.Duration) *ChromeFetcher {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &ChromeFetcher{timeout: timeout}
}

// Render navigates to url, waits for the document body to be ready, and
// returns the serialized DOM including script-generated content.
func (f *ChromeFetcher) Render(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var markup string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &markup),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", url, err)
	}
	return markup, nil
}
