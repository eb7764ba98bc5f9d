// Package datastore owns the process-wide tidy dataset cache. The cache is
// an explicitly constructed object passed by handle into the query engine
// and the servers, not a module-level variable: a single writer publishes at
// first load or explicit reload, every reader shares the immutable dataset
// without locking afterwards.
package datastore

import (
	"context"
	stderrors "errors"
	"os"
	"sync"
	"time"

	"strompris/adapters/excel"
	"strompris/domain/pricing"
	"strompris/internal"
	apperrors "strompris/internal/errors"

	"golang.org/x/sync/singleflight"
)

// fileIdentity keys the cache: same path, mtime, and size means the cached
// dataset is still the file's content.
type fileIdentity struct {
	path    string
	modTime time.Time
	size    int64
}

// Store caches one tidy dataset for the process lifetime. Invalidation is
// explicit (Invalidate/Reload) or by process restart; there is no
// file-watching.
type Store struct {
	path    string
	minYear int
	maxYear int
	logger  *internal.Logger

	group singleflight.Group

	mu       sync.RWMutex
	dataset  *pricing.Dataset
	identity fileIdentity
}

// New creates a store for the given spreadsheet path and schema year bounds.
// Nothing is read until Load.
func New(path string, minYear, maxYear int) *Store {
	return &Store{path: path, minYear: minYear, maxYear: maxYear, logger: internal.DefaultLogger}
}

// Load returns the cached dataset, reading and transforming the file on the
// first call. Concurrent cold loads collapse into a single read. A changed
// file under a warm cache only logs a warning; the cached dataset stays
// authoritative until an explicit Reload.
func (s *Store) Load(ctx context.Context) (*pricing.Dataset, error) {
	s.mu.RLock()
	cached := s.dataset
	identity := s.identity
	s.mu.RUnlock()

	if cached != nil {
		if current, err := statIdentity(s.path); err == nil && current != identity {
			s.logger.Warn("[DataStore] %s changed on disk since load; serving cached dataset (POST /api/v1/reload to pick it up)", s.path)
		}
		return cached, nil
	}

	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		// Re-check: another caller may have published while we queued.
		s.mu.RLock()
		existing := s.dataset
		s.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}
		ds, id, err := s.read(ctx)
		if err != nil {
			return nil, err
		}
		s.publish(ds, id)
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pricing.Dataset), nil
}

// Dataset returns the published dataset without triggering a load.
func (s *Store) Dataset() (*pricing.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, apperrors.NotFound("price dataset")
	}
	return s.dataset, nil
}

// Invalidate drops the cache; the next Load re-reads the file.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.dataset = nil
	s.identity = fileIdentity{}
	s.mu.Unlock()
	s.logger.Info("[DataStore] Cache invalidated for %s", s.path)
}

// Reload reads the file fresh and swaps the published dataset only on
// success. On failure the previous dataset stays published, so a corrupt
// replacement file never takes a running dashboard down.
func (s *Store) Reload(ctx context.Context) (*pricing.Dataset, error) {
	ds, id, err := s.read(ctx)
	if err != nil {
		s.logger.Error("[DataStore] Reload failed, keeping previous dataset: %v", err)
		return nil, err
	}
	s.publish(ds, id)
	return ds, nil
}

// read performs one full load: file, schema validation, tidy transformation.
func (s *Store) read(ctx context.Context) (*pricing.Dataset, fileIdentity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fileIdentity{}, apperrors.Wrap(err, "load canceled")
	}

	startTime := time.Now()
	reader := excel.NewDataReaderWithBounds(s.path, s.minYear, s.maxYear)
	raw, err := reader.ReadSheet()
	if err != nil {
		return nil, fileIdentity{}, err
	}

	ds, err := pricing.ToTidy(raw)
	if err != nil {
		return nil, fileIdentity{}, codeForDomainError(err)
	}

	id, err := statIdentity(s.path)
	if err != nil {
		return nil, fileIdentity{}, apperrors.FileError("failed to stat price file after load", err)
	}

	s.logger.Info("[DataStore] Loaded %d records (%d..%d) from %s in %.2fms",
		ds.Len(), raw.MinYear, raw.MaxYear, s.path, float64(time.Since(startTime).Nanoseconds())/1e6)
	return ds, id, nil
}

func (s *Store) publish(ds *pricing.Dataset, id fileIdentity) {
	s.mu.Lock()
	s.dataset = ds
	s.identity = id
	s.mu.Unlock()
}

func statIdentity(path string) (fileIdentity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileIdentity{}, err
	}
	return fileIdentity{path: path, modTime: info.ModTime(), size: info.Size()}, nil
}

// codeForDomainError maps transformer sentinels onto coded errors.
func codeForDomainError(err error) error {
	switch {
	case stderrors.Is(err, pricing.ErrValidation):
		return apperrors.WithCode(apperrors.CodeValidationError, err)
	case stderrors.Is(err, pricing.ErrSchema):
		return apperrors.WithCode(apperrors.CodeSchemaError, err)
	default:
		return apperrors.Wrap(err, "tidy transformation failed")
	}
}
