package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recrawl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recrawl/internal/checksum"
	"github.com/custodia-labs/recrawl/internal/core/domain"
)

// --- Mock implementations for detector testing ---

// mockSource implements driving.SourceScanner for testing.
type mockSource struct {
	root string
	docs []domain.Document
	errs []error
}

func (m *mockSource) Root() string { return m.root }

func (m *mockSource) Documents(ctx context.Context) (<-chan domain.Document, <-chan error) {
	docs := make(chan domain.Document)
	errs := make(chan error, len(m.errs)+1)

	go func() {
		defer close(docs)
		defer close(errs)

		for _, err := range m.errs {
			errs <- err
		}
		for _, doc := range m.docs {
			select {
			case <-ctx.Done():
				return
			case docs <- doc:
			}
		}
	}()

	return docs, errs
}

// brokenContent fails every Open.
type brokenContent struct{}

func (brokenContent) Open() (io.ReadCloser, error) {
	return nil, errors.New("cannot open")
}

func newDetector(cfg checksum.Config) (*ChangeDetector, *memory.ChecksumStore) {
	store := memory.NewChecksumStore()
	return NewChangeDetector(checksum.New(cfg), store), store
}

func bodyDoc(ref, body string) domain.Document {
	return domain.Document{
		Reference: ref,
		Metadata:  domain.NewMetadata(),
		Body:      domain.BytesContent(body),
	}
}

// --- Detect ---

func TestDetect_FirstPassIsCreated(t *testing.T) {
	detector, store := newDetector(checksum.Config{})
	ctx := context.Background()

	doc := bodyDoc("file:///a.txt", "hello")
	result, err := detector.Detect(ctx, &doc)
	require.NoError(t, err)

	assert.Equal(t, domain.ChangeCreated, result.Type)
	assert.NotEmpty(t, result.Checksum)
	assert.Empty(t, result.Previous)

	entry, err := store.Get(ctx, "file:///a.txt")
	require.NoError(t, err)
	assert.Equal(t, result.Checksum, entry.Checksum)
	assert.Equal(t, "md5", entry.Algorithm)
}

func TestDetect_SameContentIsUnmodified(t *testing.T) {
	detector, _ := newDetector(checksum.Config{})
	ctx := context.Background()

	doc := bodyDoc("file:///a.txt", "hello")
	_, err := detector.Detect(ctx, &doc)
	require.NoError(t, err)

	again := bodyDoc("file:///a.txt", "hello")
	result, err := detector.Detect(ctx, &again)
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeUnmodified, result.Type)
	assert.Equal(t, result.Checksum, result.Previous)
}

func TestDetect_ChangedContentIsModified(t *testing.T) {
	detector, _ := newDetector(checksum.Config{})
	ctx := context.Background()

	doc := bodyDoc("file:///a.txt", "hello")
	first, err := detector.Detect(ctx, &doc)
	require.NoError(t, err)

	changed := bodyDoc("file:///a.txt", "hello again")
	result, err := detector.Detect(ctx, &changed)
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeModified, result.Type)
	assert.Equal(t, first.Checksum, result.Previous)
	assert.NotEqual(t, result.Previous, result.Checksum)
}

func TestDetect_DisabledIsSkippedAndKeepsStoredValue(t *testing.T) {
	detector, store := newDetector(checksum.Config{})
	ctx := context.Background()

	doc := bodyDoc("file:///a.txt", "hello")
	first, err := detector.Detect(ctx, &doc)
	require.NoError(t, err)

	detector.checksummer.SetDisabled(true)
	again := bodyDoc("file:///a.txt", "changed")
	result, err := detector.Detect(ctx, &again)
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeSkipped, result.Type)
	assert.Empty(t, result.Checksum)

	entry, err := store.Get(ctx, "file:///a.txt")
	require.NoError(t, err)
	assert.Equal(t, first.Checksum, entry.Checksum)
}

func TestDetect_FieldModeUsesMetadata(t *testing.T) {
	detector, _ := newDetector(checksum.Config{SourceFields: []string{"title"}})
	ctx := context.Background()

	doc := domain.Document{
		Reference: "doc-1",
		Metadata:  domain.Metadata{"title": {"Hello"}},
	}
	first, err := detector.Detect(ctx, &doc)
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeCreated, first.Type)

	// Same title, different body would not matter in field mode.
	same := domain.Document{
		Reference: "doc-1",
		Metadata:  domain.Metadata{"title": {"Hello"}},
		Body:      domain.BytesContent("totally different"),
	}
	result, err := detector.Detect(ctx, &same)
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeUnmodified, result.Type)
}

func TestDetect_ChecksumErrorPropagates(t *testing.T) {
	detector, _ := newDetector(checksum.Config{})

	doc := domain.Document{Reference: "doc-1", Body: brokenContent{}}
	_, err := detector.Detect(context.Background(), &doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doc-1")
}

// --- Scan ---

func TestScan_ClassifiesAcrossPasses(t *testing.T) {
	detector, _ := newDetector(checksum.Config{})
	ctx := context.Background()

	first := &mockSource{root: "/data", docs: []domain.Document{
		bodyDoc("file:///a.txt", "aaa"),
		bodyDoc("file:///b.txt", "bbb"),
	}}
	report, err := detector.Scan(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Run.Created)
	assert.Len(t, report.Results, 2)
	assert.NotEmpty(t, report.Run.ID)

	second := &mockSource{root: "/data", docs: []domain.Document{
		bodyDoc("file:///a.txt", "aaa"),
		bodyDoc("file:///b.txt", "changed"),
		bodyDoc("file:///c.txt", "new"),
	}}
	report, err = detector.Scan(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Run.Created)
	assert.Equal(t, 1, report.Run.Modified)
	assert.Equal(t, 1, report.Run.Unmodified)
	assert.Equal(t, 0, report.Run.ErrorCount)
}

func TestScan_CountsPerDocumentErrors(t *testing.T) {
	detector, _ := newDetector(checksum.Config{})

	source := &mockSource{
		root: "/data",
		docs: []domain.Document{
			bodyDoc("file:///ok.txt", "fine"),
			{Reference: "file:///broken.txt", Body: brokenContent{}},
		},
		errs: []error{errors.New("walk: permission denied")},
	}
	report, err := detector.Scan(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Run.Created)
	assert.Equal(t, 2, report.Run.ErrorCount)
	assert.Len(t, report.Results, 1)
}

func TestScan_RecordsRun(t *testing.T) {
	detector, store := newDetector(checksum.Config{})
	ctx := context.Background()

	source := &mockSource{root: "/data", docs: []domain.Document{bodyDoc("r", "x")}}
	report, err := detector.Scan(ctx, source)
	require.NoError(t, err)

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, report.Run.ID, runs[0].ID)
	assert.Equal(t, "/data", runs[0].Root)
	assert.False(t, runs[0].FinishedAt.Before(runs[0].StartedAt))

	entry, err := store.Get(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, report.Run.ID, entry.RunID)
}

func TestScan_ContextCancelled(t *testing.T) {
	detector, _ := newDetector(checksum.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &mockSource{root: "/data", docs: []domain.Document{bodyDoc("r", "x")}}
	_, err := detector.Scan(ctx, source)
	assert.ErrorIs(t, err, context.Canceled)
}

// --- Status / Forget ---

func TestStatus_ReturnsEntriesAndRuns(t *testing.T) {
	detector, _ := newDetector(checksum.Config{})
	ctx := context.Background()

	source := &mockSource{root: "/data", docs: []domain.Document{
		bodyDoc("a", "1"),
		bodyDoc("b", "2"),
	}}
	_, err := detector.Scan(ctx, source)
	require.NoError(t, err)

	entries, runs, err := detector.Status(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Len(t, runs, 1)
}

func TestForget_ForcesCreatedOnNextPass(t *testing.T) {
	detector, _ := newDetector(checksum.Config{})
	ctx := context.Background()

	doc := bodyDoc("file:///a.txt", "hello")
	_, err := detector.Detect(ctx, &doc)
	require.NoError(t, err)

	require.NoError(t, detector.Forget(ctx, "file:///a.txt"))

	again := bodyDoc("file:///a.txt", "hello")
	result, err := detector.Detect(ctx, &again)
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeCreated, result.Type)
}
