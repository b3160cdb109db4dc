// Package catalogsync keeps the canonical listing set in step with the
// agency API, falling back to the local snapshot and the bundled seed.
package catalogsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/evcraddock/realty-site/internal/property"
	"github.com/evcraddock/realty-site/internal/validation"
)

// ErrSuperseded is returned by a reload whose response arrived after a
// newer reload had already started. Its result is discarded.
var ErrSuperseded = errors.New("catalog reload superseded by a newer request")

// ErrStale marks a write that reached the API but whose follow-up reload
// failed. The write itself succeeded; the local catalog is out of date.
var ErrStale = errors.New("catalog not refreshed")

// Remote is the listing side of the API client.
type Remote interface {
	ListProperties(ctx context.Context) ([]property.Record, error)
	CreateProperty(ctx context.Context, rec property.Record) (*property.Record, error)
	UpdateProperty(ctx context.Context, id int64, upd property.Update) (*property.Record, error)
	DeleteProperty(ctx context.Context, id int64) error
}

// Snapshot persists the last good catalog locally.
type Snapshot interface {
	ReplaceAll(records []property.Record) error
	List() ([]property.Record, error)
}

// Source says where the current canonical set came from.
type Source string

const (
	SourceNone     Source = ""
	SourceRemote   Source = "remote"
	SourceSnapshot Source = "snapshot"
	SourceSeed     Source = "seed"
)

// Syncer owns the canonical listing set shared by every catalog view.
// Each successful load bumps Version so views know to re-initialize.
type Syncer struct {
	remote   Remote
	snapshot Snapshot

	mu      sync.RWMutex
	seq     uint64
	records []property.Record
	version uint64
	source  Source
}

// New creates a syncer. snapshot may be nil to disable local persistence.
func New(remote Remote, snapshot Snapshot) *Syncer {
	return &Syncer{remote: remote, snapshot: snapshot}
}

// Records returns a copy of the canonical set and its version.
func (s *Syncer) Records() ([]property.Record, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]property.Record, len(s.records))
	copy(out, s.records)
	return out, s.version
}

// Version returns the current catalog version. Zero means nothing loaded.
func (s *Syncer) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Source returns where the current set was loaded from.
func (s *Syncer) Source() Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Reload fetches the full catalog from the API. Only the most recently
// started reload may install its result; older ones get ErrSuperseded.
func (s *Syncer) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	ticket := s.seq
	s.mu.Unlock()

	records, err := s.remote.ListProperties(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.seq {
		slog.Debug("discarding stale catalog response", "ticket", ticket, "latest", s.seq)
		return ErrSuperseded
	}
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	s.install(records, SourceRemote)

	if s.snapshot != nil {
		if err := s.snapshot.ReplaceAll(records); err != nil {
			slog.Warn("saving catalog snapshot", "err", err)
		}
	}

	slog.Info("catalog loaded", "source", SourceRemote, "count", len(records), "version", s.version)
	return nil
}

// Bootstrap loads the initial catalog: the API first, then the local
// snapshot, then the bundled seed listings.
func (s *Syncer) Bootstrap(ctx context.Context) (Source, error) {
	err := s.Reload(ctx)
	if err == nil || errors.Is(err, ErrSuperseded) {
		return s.Source(), nil
	}
	slog.Warn("catalog API unavailable, using local data", "err", err)

	if s.snapshot != nil {
		records, serr := s.snapshot.List()
		if serr != nil {
			slog.Warn("reading catalog snapshot", "err", serr)
		} else if len(records) > 0 {
			if s.installIfEmpty(records, SourceSnapshot) {
				slog.Info("catalog loaded", "source", SourceSnapshot, "count", len(records))
			}
			return s.Source(), nil
		}
	}

	records, err := property.Seed()
	if err != nil {
		return SourceNone, fmt.Errorf("loading seed listings: %w", err)
	}
	if s.installIfEmpty(records, SourceSeed) {
		slog.Info("catalog loaded", "source", SourceSeed, "count", len(records))
	}
	return s.Source(), nil
}

// Create adds a listing through the API, then reloads the catalog.
func (s *Syncer) Create(ctx context.Context, rec property.Record) (*property.Record, error) {
	if err := validation.Struct(rec); err != nil {
		return nil, err
	}
	created, err := s.remote.CreateProperty(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("creating listing: %w", err)
	}
	return created, s.reloadAfterWrite(ctx, "create")
}

// Update changes a listing through the API, then reloads the catalog.
func (s *Syncer) Update(ctx context.Context, id int64, upd property.Update) (*property.Record, error) {
	if upd.Empty() {
		return nil, fmt.Errorf("no fields to update")
	}
	if err := validation.Struct(upd); err != nil {
		return nil, err
	}
	updated, err := s.remote.UpdateProperty(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("updating listing %d: %w", id, err)
	}
	return updated, s.reloadAfterWrite(ctx, "update")
}

// Delete removes a listing through the API, then reloads the catalog.
func (s *Syncer) Delete(ctx context.Context, id int64) error {
	if err := s.remote.DeleteProperty(ctx, id); err != nil {
		return fmt.Errorf("deleting listing %d: %w", id, err)
	}
	return s.reloadAfterWrite(ctx, "delete")
}

// reloadAfterWrite refreshes the catalog after a successful write. A
// superseded reload is fine: the newer one will see the write too.
func (s *Syncer) reloadAfterWrite(ctx context.Context, op string) error {
	err := s.Reload(ctx)
	if err == nil || errors.Is(err, ErrSuperseded) {
		return nil
	}
	return fmt.Errorf("%w after %s: %w", ErrStale, op, err)
}

// install must be called with mu held.
func (s *Syncer) install(records []property.Record, src Source) {
	s.records = make([]property.Record, len(records))
	copy(s.records, records)
	s.version++
	s.source = src
}

// installIfEmpty installs a fallback set unless a remote load landed
// in the meantime.
func (s *Syncer) installIfEmpty(records []property.Record, src Source) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == SourceRemote {
		return false
	}
	s.install(records, src)
	return true
}
