package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/recrawl/internal/core/domain"
	"github.com/custodia-labs/recrawl/internal/core/ports/driving"
)

// fakeDetector is a canned driving.ChangeDetectionService for command
// tests.
type fakeDetector struct {
	detectResult domain.ChangeResult
	detectErr    error
	detectedRefs []string

	scanReport *driving.ScanReport
	scanErr    error
	scannedOn  string

	entries []domain.ChecksumEntry
	runs    []domain.CrawlRun

	forgotten []string
}

var _ driving.ChangeDetectionService = (*fakeDetector)(nil)

func (f *fakeDetector) Detect(_ context.Context, doc *domain.Document) (domain.ChangeResult, error) {
	f.detectedRefs = append(f.detectedRefs, doc.Reference)
	if f.detectErr != nil {
		return domain.ChangeResult{}, f.detectErr
	}
	res := f.detectResult
	if res.Reference == "" {
		res.Reference = doc.Reference
	}
	return res, nil
}

func (f *fakeDetector) Scan(_ context.Context, source driving.SourceScanner) (*driving.ScanReport, error) {
	f.scannedOn = source.Root()
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	if f.scanReport != nil {
		return f.scanReport, nil
	}
	return &driving.ScanReport{}, nil
}

func (f *fakeDetector) Status(_ context.Context) ([]domain.ChecksumEntry, []domain.CrawlRun, error) {
	return f.entries, f.runs, nil
}

func (f *fakeDetector) Forget(_ context.Context, reference string) error {
	f.forgotten = append(f.forgotten, reference)
	return nil
}

// execute runs the root command with a fake service injected and
// returns the captured output.
func execute(t *testing.T, fake *fakeDetector, args ...string) (string, error) {
	t.Helper()

	originalService := detectorService
	detectorService = fake
	t.Cleanup(func() { detectorService = originalService })

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	// Flag variables keep their values between executions
	t.Cleanup(func() {
		scanFields, scanAlgorithm, scanAll = nil, "", false
		checkFields, checkAlgorithm = nil, ""
		watchFields, watchAlgorithm = nil, ""
		statusEntries, statusJSON = 10, false
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
