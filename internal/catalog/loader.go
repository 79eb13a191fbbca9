package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/edunari/marketplace-api/internal/csvdata"
	"golang.org/x/sync/errgroup"
)

// Data file names inside the data directory.
const (
	ProductsFile   = "productos.csv"
	ServicesFile   = "servicios.csv"
	BusinessesFile = "emprendimientos.csv"
)

// Loader reads the three catalog CSV files and keeps the built snapshot
// cached for a freshness window, so repeated requests do not re-read and
// re-parse the files. A reload replaces the snapshot wholesale; callers may
// keep using a snapshot they already hold.
type Loader struct {
	dir    string
	ttl    time.Duration
	parser *csvdata.Parser
	log    *slog.Logger

	mu     sync.RWMutex
	cached *Catalog
}

// NewLoader creates a loader for the given data directory and cache TTL.
func NewLoader(dir string, ttl time.Duration, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		dir:    dir,
		ttl:    ttl,
		parser: csvdata.NewParser(log),
		log:    log,
	}
}

// Load returns the current catalog snapshot, rebuilding it when the cached
// one is older than the TTL. The three files are read concurrently and must
// all be read before enrichment starts. A file that fails to read surfaces
// an error; a file that parses to nothing contributes no listings.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	l.mu.RLock()
	if c := l.cached; c != nil && time.Since(c.LoadedAt) < l.ttl {
		l.mu.RUnlock()
		return c, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another request may have reloaded while we waited for the lock.
	if c := l.cached; c != nil && time.Since(c.LoadedAt) < l.ttl {
		return c, nil
	}

	var products, services, businesses *csvdata.Table

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = l.loadFile(ProductsFile)
		return err
	})
	g.Go(func() (err error) {
		services, err = l.loadFile(ServicesFile)
		return err
	})
	g.Go(func() (err error) {
		businesses, err = l.loadFile(BusinessesFile)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := Build(products, services, businesses)
	l.cached = c

	l.log.Info("catalog loaded",
		"listings", len(c.Listings),
		"businesses", len(c.Businesses),
	)

	return c, nil
}

// loadFile reads and parses a single CSV file. Read failures are surfaced to
// the caller; a malformed file degrades to a nil table with a warning so the
// other files still load.
func (l *Loader) loadFile(name string) (*csvdata.Table, error) {
	path := filepath.Join(l.dir, name)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	table, err := l.parser.Parse(string(raw))
	if err != nil {
		if errors.Is(err, csvdata.ErrFormat) {
			l.log.Warn("catalog file is malformed, treating as empty", "file", name)
			return nil, nil
		}
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	return table, nil
}
