package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/recrawl/internal/core/domain"
	"github.com/custodia-labs/recrawl/internal/core/ports/driven"
	"github.com/custodia-labs/recrawl/internal/logger"
)

// Metadata fields populated for every emitted document.
const (
	FieldName      = "file.name"
	FieldExtension = "file.extension"
	FieldSize      = "file.size"
	FieldModified  = "file.modified"
)

// Ensure Connector implements the interface.
var _ driven.DocumentSource = (*Connector)(nil)

// Connector is a filesystem implementation of driven.DocumentSource.
// It walks a root directory and emits one document per regular file.
type Connector struct {
	mu      sync.Mutex
	root    string
	limiter *rate.Limiter
	closed  bool
}

// Option configures a Connector.
type Option func(*Connector)

// WithThrottle limits emission to docsPerSecond with the given burst.
// A non-positive rate leaves the connector unthrottled.
func WithThrottle(docsPerSecond, burst int) Option {
	return func(c *Connector) {
		if docsPerSecond <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(docsPerSecond), burst)
	}
}

// New creates a connector rooted at the given directory.
func New(root string, opts ...Option) (*Connector, error) {
	if root == "" {
		return nil, fmt.Errorf("creating filesystem source: empty root: %w", domain.ErrInvalidInput)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}

	c := &Connector{root: abs}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Root returns the absolute directory this connector crawls.
func (c *Connector) Root() string {
	return c.root
}

// Validate checks the root exists and is a directory.
func (c *Connector) Validate(_ context.Context) error {
	info, err := os.Stat(c.root)
	if err != nil {
		return fmt.Errorf("checking root %s: %w", c.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory: %w", c.root, domain.ErrInvalidInput)
	}
	return nil
}

// Documents walks the root and emits every regular file as a document.
// Both channels are closed when the walk finishes. Per-file failures go
// to the error channel without stopping the walk.
func (c *Connector) Documents(ctx context.Context) (<-chan domain.Document, <-chan error) {
	docs := make(chan domain.Document)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			errs <- domain.ErrSourceClosed
			return
		}
		c.mu.Unlock()

		walkErr := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				select {
				case errs <- fmt.Errorf("walking %s: %w", path, err):
				case <-ctx.Done():
					return ctx.Err()
				}
				return nil
			}

			if d.IsDir() {
				if path != c.root && hidden(d.Name()) {
					return fs.SkipDir
				}
				return nil
			}
			if hidden(d.Name()) || !d.Type().IsRegular() {
				return nil
			}

			if c.limiter != nil {
				if err := c.limiter.Wait(ctx); err != nil {
					return err
				}
			}

			info, err := d.Info()
			if err != nil {
				select {
				case errs <- fmt.Errorf("reading file info for %s: %w", path, err):
				case <-ctx.Done():
					return ctx.Err()
				}
				return nil
			}

			select {
			case docs <- newDocument(path, info):
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})

		if walkErr != nil && !errors.Is(walkErr, context.Canceled) && !errors.Is(walkErr, context.DeadlineExceeded) {
			select {
			case errs <- fmt.Errorf("walking %s: %w", c.root, walkErr):
			case <-ctx.Done():
			}
		}
	}()

	return docs, errs
}

// Watch emits documents as files under the root are created or written,
// until ctx is cancelled. New subdirectories are picked up as they
// appear; fsnotify itself does not recurse.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.Document, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, domain.ErrSourceClosed
	}
	c.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	addErr := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != c.root && hidden(d.Name()) {
			return fs.SkipDir
		}
		return watcher.Add(path)
	})
	if addErr != nil {
		watcher.Close() //nolint:errcheck
		return nil, fmt.Errorf("watching %s: %w", c.root, addErr)
	}

	docs := make(chan domain.Document)

	go func() {
		defer close(docs)
		defer watcher.Close() //nolint:errcheck

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if hidden(filepath.Base(event.Name)) {
					continue
				}

				info, err := os.Stat(event.Name)
				if err != nil {
					// File may be gone already
					continue
				}
				if info.IsDir() {
					if event.Has(fsnotify.Create) {
						if err := watcher.Add(event.Name); err != nil {
							logger.Warn("watching new directory %s: %v", event.Name, err)
						}
					}
					continue
				}
				if !info.Mode().IsRegular() {
					continue
				}

				if c.limiter != nil {
					if err := c.limiter.Wait(ctx); err != nil {
						return
					}
				}

				select {
				case docs <- newDocument(event.Name, info):
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error under %s: %v", c.root, err)
			}
		}
	}()

	return docs, nil
}

// Close marks the connector closed. Subsequent walks fail with
// ErrSourceClosed.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// NewDocument builds the document for a single file outside a walk,
// with the same reference and metadata a walk would produce.
func NewDocument(path string) (domain.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return domain.Document{}, fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return domain.Document{}, fmt.Errorf("%s is not a regular file: %w", path, domain.ErrInvalidInput)
	}

	return newDocument(abs, info), nil
}

// newDocument builds the document emitted for a regular file.
func newDocument(path string, info fs.FileInfo) domain.Document {
	meta := domain.NewMetadata()
	meta.Set(FieldName, info.Name())
	if ext := strings.TrimPrefix(filepath.Ext(info.Name()), "."); ext != "" {
		meta.Set(FieldExtension, ext)
	}
	meta.Set(FieldSize, strconv.FormatInt(info.Size(), 10))
	meta.Set(FieldModified, info.ModTime().UTC().Format(time.RFC3339))

	return domain.Document{
		Reference: Reference(path),
		Metadata:  meta,
		Body:      domain.FileContent{Path: path},
	}
}

// hidden reports whether a file or directory name is dot-prefixed.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
