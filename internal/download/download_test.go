package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability/mocks"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage/memory"
)

// countingClient serves fixed content and counts fetches.
type countingClient struct {
	fetches int64
	content string
	err     error
}

func (c *countingClient) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	atomic.AddInt64(&c.fetches, 1)
	if c.err != nil {
		return nil, c.err
	}
	return io.NopCloser(strings.NewReader(c.content)), nil
}

func newAcquirer(client HTTPClient, store *memory.Store) *Acquirer {
	return NewAcquirer(client, store, mocks.NoopLogger{}, mocks.NewCountingMetrics())
}

func TestAcquireDownloads(t *testing.T) {
	store := memory.New()
	client := &countingClient{content: "pdf bytes"}
	a := newAcquirer(client, store)

	outcome := a.Acquire(context.Background(), "https://example.com/docs/Report%20A.PDF")

	assert.Equal(t, StatusDownloaded, outcome.Status)
	assert.Equal(t, "report-a.pdf", outcome.Filename)

	rc, err := store.Get(context.Background(), "report-a.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "pdf bytes", string(data))
}

func TestAcquireIsIdempotent(t *testing.T) {
	store := memory.New()
	client := &countingClient{content: "original"}
	a := newAcquirer(client, store)
	ctx := context.Background()

	first := a.Acquire(ctx, "https://example.com/report.pdf")
	assert.Equal(t, StatusDownloaded, first.Status)

	client.content = "changed upstream"
	second := a.Acquire(ctx, "https://example.com/report.pdf")
	assert.Equal(t, StatusSkipped, second.Status)

	// Exactly one network fetch across both runs, and the stored content
	// is the first download, unchanged.
	assert.Equal(t, int64(1), atomic.LoadInt64(&client.fetches))

	rc, err := store.Get(ctx, "report.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "original", string(data))
}

func TestAcquireCollidingNamesNeverOverwrite(t *testing.T) {
	store := memory.New()
	client := &countingClient{content: "first"}
	a := newAcquirer(client, store)
	ctx := context.Background()

	first := a.Acquire(ctx, "https://one.example.com/path/Sheet.pdf")
	assert.Equal(t, StatusDownloaded, first.Status)

	// A different source URL deriving the same canonical name is treated
	// as already satisfied.
	client.content = "second"
	second := a.Acquire(ctx, "https://two.example.com/other/SHEET.PDF")
	assert.Equal(t, StatusSkipped, second.Status)
	assert.Equal(t, "sheet.pdf", second.Filename)

	rc, err := store.Get(ctx, "sheet.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "first", string(data))
}

func TestAcquireTransportFailureLeavesNothing(t *testing.T) {
	store := memory.New()
	client := &countingClient{err: errors.New("connection refused")}
	a := newAcquirer(client, store)

	outcome := a.Acquire(context.Background(), "https://example.com/broken.pdf")

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Contains(t, outcome.Reason, "connection refused")

	exists, err := store.Exists(context.Background(), "broken.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAcquireRejectsNonHTTPSchemes(t *testing.T) {
	a := newAcquirer(&countingClient{}, memory.New())

	outcome := a.Acquire(context.Background(), "ftp://example.com/file.pdf")
	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Contains(t, outcome.Reason, "scheme")
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline exceeded", context.DeadlineExceeded, "timeout"},
		{"wrapped deadline", fmt.Errorf("Get \"https://x\": %w", context.DeadlineExceeded), "timeout"},
		{"net op error", &net.OpError{Op: "dial", Err: errors.New("refused")}, "connection"},
		{"url error around op error", &url.Error{Op: "Get", URL: "https://x", Err: &net.OpError{Op: "dial", Err: errors.New("refused")}}, "connection"},
		{"status 404", errors.New("unexpected status code: 404"), "not_found"},
		{"status 403", errors.New("unexpected status code: 403"), "forbidden"},
		{"status 500", errors.New("unexpected status code: 500"), "server_error"},
		{"anything else", errors.New("tls handshake broke"), "transport"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categorizeError(tt.err))
		})
	}
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.pdf":
			w.Write([]byte("%PDF-1.4"))
		case "/missing.pdf":
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{Timeout: 5 * time.Second})
	ctx := context.Background()

	body, err := client.Fetch(ctx, srv.URL+"/ok.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(body)
	body.Close()
	assert.Equal(t, "%PDF-1.4", string(data))

	_, err = client.Fetch(ctx, srv.URL+"/missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = client.Fetch(ctx, srv.URL+"/boom.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
