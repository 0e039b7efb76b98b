// Package browse serves read queries against the currently published
// catalog snapshot and replaces that snapshot on reload.
package browse

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/heartmarshall/cherokee-verbs/internal/catalog"
	"github.com/heartmarshall/cherokee-verbs/internal/config"
	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

type catalogLoader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

type searchKey struct {
	query      string
	linkedOnly bool
}

// snapshot pairs a catalog with the search cache that belongs to it, so a
// swap can never serve results computed from an older catalog.
type snapshot struct {
	cat      *catalog.Catalog
	cache    *lru.Cache[searchKey, []catalog.Hit]
	version  uint64
	loadedAt time.Time
}

// Status describes the published snapshot and the most recent reload.
type Status struct {
	Loaded    bool          `json:"loaded"`
	Version   uint64        `json:"version"`
	LoadedAt  time.Time     `json:"loaded_at,omitzero"`
	Stats     catalog.Stats `json:"stats"`
	LastError string        `json:"last_error,omitempty"`
}

// Service implements the catalog query interface over an atomically
// swapped snapshot. Readers never block on a reload.
type Service struct {
	log    *slog.Logger
	loader catalogLoader
	cfg    config.SearchConfig

	current atomic.Pointer[snapshot]

	reloadMu sync.Mutex // one load at a time
	lastErr  atomic.Pointer[string]
}

// NewService creates a browse service with no snapshot published.
func NewService(logger *slog.Logger, loader catalogLoader, cfg config.SearchConfig) *Service {
	return &Service{
		log:    logger.With("service", "browse"),
		loader: loader,
		cfg:    cfg,
	}
}

// Reload runs a full load and publishes the result. On failure the
// previous snapshot, if any, stays published and the error is returned.
func (s *Service) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	cat, err := s.loader.Load(ctx)
	if err != nil {
		msg := err.Error()
		s.lastErr.Store(&msg)
		s.log.ErrorContext(ctx, "catalog reload failed",
			slog.String("error", msg),
			slog.Bool("serving_previous", s.current.Load() != nil),
		)
		return err
	}

	var version uint64 = 1
	if prev := s.current.Load(); prev != nil {
		version = prev.version + 1
	}

	snap := &snapshot{
		cat:      cat,
		cache:    s.newCache(),
		version:  version,
		loadedAt: time.Now(),
	}
	s.current.Store(snap)
	s.lastErr.Store(nil)

	s.log.InfoContext(ctx, "catalog published",
		slog.Uint64("version", version),
		slog.Int("rows", cat.Len()),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (s *Service) newCache() *lru.Cache[searchKey, []catalog.Hit] {
	if s.cfg.CacheSize <= 0 {
		return nil
	}
	cache, err := lru.New[searchKey, []catalog.Hit](s.cfg.CacheSize)
	if err != nil {
		s.log.Warn("search cache disabled", slog.String("error", err.Error()))
		return nil
	}
	return cache
}

// Ready reports whether a snapshot has been published.
func (s *Service) Ready() bool {
	return s.current.Load() != nil
}

// Status returns the state of the published snapshot.
func (s *Service) Status() Status {
	var st Status
	if snap := s.current.Load(); snap != nil {
		st.Loaded = true
		st.Version = snap.version
		st.LoadedAt = snap.loadedAt
		st.Stats = snap.cat.Stats()
	}
	if msg := s.lastErr.Load(); msg != nil {
		st.LastError = *msg
	}
	return st
}

func (s *Service) snapshot() (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrNotLoaded
	}
	return snap, nil
}
