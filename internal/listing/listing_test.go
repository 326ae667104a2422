package listing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability/mocks"
)

type stubFetcher struct {
	markup string
	err    error
	calls  int
}

func (f *stubFetcher) Render(ctx context.Context, url string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.markup, nil
}

func newSource(f Fetcher, cachePath string) *Source {
	return NewSource(f, cachePath, mocks.NoopLogger{}, mocks.NewCountingMetrics())
}

func TestMarkupRefreshesCacheOnSuccess(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "listing.html")
	fetcher := &stubFetcher{markup: "<html><a href='a.pdf'>a</a></html>"}

	markup, err := newSource(fetcher, cache).Markup(context.Background(), "https://example.com/docs")
	require.NoError(t, err)
	assert.Equal(t, fetcher.markup, markup)

	cached, err := os.ReadFile(cache)
	require.NoError(t, err)
	assert.Equal(t, fetcher.markup, string(cached))
}

func TestMarkupFallsBackToCache(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "listing.html")
	require.NoError(t, os.WriteFile(cache, []byte("<html>stale</html>"), 0o644))

	fetcher := &stubFetcher{err: errors.New("net::ERR_CONNECTION_REFUSED")}

	markup, err := newSource(fetcher, cache).Markup(context.Background(), "https://example.com/docs")
	require.NoError(t, err)
	assert.Equal(t, "<html>stale</html>", markup)
	assert.Equal(t, 1, fetcher.calls)
}

func TestMarkupFailsWithoutCache(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "missing.html")
	fetcher := &stubFetcher{err: errors.New("timeout")}

	_, err := newSource(fetcher, cache).Markup(context.Background(), "https://example.com/docs")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoListing)
}

func TestMarkupNoCachePathConfigured(t *testing.T) {
	fetcher := &stubFetcher{markup: "<html></html>"}

	markup, err := newSource(fetcher, "").Markup(context.Background(), "https://example.com/docs")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", markup)
}

func TestMarkupCreatesCacheDirectory(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "nested", "dir", "listing.html")
	fetcher := &stubFetcher{markup: "<html>fresh</html>"}

	_, err := newSource(fetcher, cache).Markup(context.Background(), "https://example.com/docs")
	require.NoError(t, err)

	cached, err := os.ReadFile(cache)
	require.NoError(t, err)
	assert.Equal(t, "<html>fresh</html>", string(cached))
}
