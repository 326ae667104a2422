package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability/mocks"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir, mocks.NoopLogger{})
	require.NoError(t, err)
	return s, dir
}

func TestPutGetRoundtrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "docs/report.pdf", strings.NewReader("content")))

	rc, err := s.Get(ctx, "docs/report.pdf")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestPutFailureLeavesNoPartialObject(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	err := s.Put(ctx, "broken.pdf", failingReader{})
	require.Error(t, err)

	exists, err := s.Exists(ctx, "broken.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	// The temp file must be cleaned up too.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExistsAndDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	exists, err := s.Exists(ctx, "a.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Put(ctx, "a.pdf", strings.NewReader("x")))

	exists, err = s.Exists(ctx, "a.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Delete(ctx, "a.pdf"))

	exists, err = s.Exists(ctx, "a.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, s.Delete(ctx, "a.pdf"), storage.ErrNotFound)
}

func TestRenameRefusesToOverwrite(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "Upper.pdf", strings.NewReader("upper")))
	require.NoError(t, s.Put(ctx, "upper.pdf", strings.NewReader("lower")))

	err := s.Rename(ctx, "Upper.pdf", "upper.pdf")
	assert.ErrorIs(t, err, storage.ErrTargetExists)

	// Both objects must be untouched.
	rc, err := s.Get(ctx, "upper.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "lower", string(data))

	exists, err := s.Exists(ctx, "Upper.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRename(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "Report.pdf", strings.NewReader("x")))
	require.NoError(t, s.Rename(ctx, "Report.pdf", "report.pdf"))

	exists, err := s.Exists(ctx, "Report.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = s.Exists(ctx, "report.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.ErrorIs(t, s.Rename(ctx, "gone.pdf", "also-gone.pdf"), storage.ErrNotFound)
}

func TestListSkipsDirectoriesAndTempFiles(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.pdf", strings.NewReader("a")))
	require.NoError(t, s.Put(ctx, "nested/b.pdf", strings.NewReader("bb")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inflight.pdf.part"), []byte("x"), 0o644))

	objects, err := s.List(ctx)
	require.NoError(t, err)

	keys := make([]string, 0, len(objects))
	for _, o := range objects {
		keys = append(keys, o.Key)
	}
	assert.ElementsMatch(t, []string{"a.pdf", "nested/b.pdf"}, keys)
}

func TestListMissingRootIsEmpty(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.RemoveAll(dir))

	objects, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestKeySanitization(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "../escape.pdf", strings.NewReader("x")))

	// The object must land inside the root, not beside it.
	_, err := os.Stat(filepath.Join(dir, "escape.pdf"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.pdf"))
	assert.True(t, os.IsNotExist(err))
}
