package validate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability/mocks"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage/memory"
)

// fakeOpener judges by content instead of parsing real documents.
type fakeOpener struct{}

type fakeDocument struct {
	pages int
}

func (d *fakeDocument) PageCount() int { return d.pages }

func (o *fakeOpener) Open(data []byte) (Document, error) {
	switch string(data) {
	case "valid":
		return &fakeDocument{pages: 3}, nil
	case "empty":
		return &fakeDocument{pages: 0}, nil
	default:
		return nil, errors.New("not a document")
	}
}

func newChecker(store *memory.Store) *Checker {
	return NewChecker(store, &fakeOpener{}, mocks.NoopLogger{}, mocks.NewCountingMetrics())
}

func TestCheckValidDocumentSurvives(t *testing.T) {
	store := memory.New()
	store.Seed("good.pdf", []byte("valid"), time.Now())

	v := newChecker(store).Check(context.Background(), "good.pdf")

	assert.Equal(t, StatusValid, v.Status)
	assert.False(t, v.Deleted)

	exists, err := store.Exists(context.Background(), "good.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCheckCorruptDocumentIsDeleted(t *testing.T) {
	store := memory.New()
	store.Seed("broken.pdf", []byte("garbage"), time.Now())

	v := newChecker(store).Check(context.Background(), "broken.pdf")

	assert.Equal(t, StatusInvalid, v.Status)
	assert.Contains(t, v.Reason, "not a document")
	assert.True(t, v.Deleted)

	exists, err := store.Exists(context.Background(), "broken.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCheckZeroPagesIsInvalid(t *testing.T) {
	store := memory.New()
	store.Seed("hollow.pdf", []byte("empty"), time.Now())

	v := newChecker(store).Check(context.Background(), "hollow.pdf")

	assert.Equal(t, StatusInvalid, v.Status)
	assert.Equal(t, "no pages", v.Reason)

	exists, _ := store.Exists(context.Background(), "hollow.pdf")
	assert.False(t, exists)
}

func TestCheckMissingObject(t *testing.T) {
	v := newChecker(memory.New()).Check(context.Background(), "gone.pdf")

	assert.Equal(t, StatusInvalid, v.Status)
	assert.True(t, v.Deleted)
}

func TestPDFOpenerRejectsGarbage(t *testing.T) {
	_, err := NewPDFOpener().Open([]byte("definitely not a pdf"))
	require.Error(t, err)
}
