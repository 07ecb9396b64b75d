// Package store provides an in-process property state container: a
// read-through cache over the property repository with typed change
// observers and a coalescing write queue for partial updates.
package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dealflow/dealflow-backend/internal/domain"
)

const (
	// DefaultCoalesceWindow is how long the store holds a partial update
	// open for further patches before writing it through
	DefaultCoalesceWindow = 250 * time.Millisecond

	flushTimeout = 5 * time.Second
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("store is closed")

// EventType classifies a property change event
type EventType string

const (
	EventCreated EventType = "CREATED"
	EventUpdated EventType = "UPDATED"
	EventDeleted EventType = "DELETED"
)

// Event describes a single property change. Property is a snapshot taken at
// notification time; observers may keep it without copying
type Event struct {
	Type     EventType
	Property *domain.Property
}

// Observer receives property change notifications
type Observer interface {
	NotifyPropertyChanged(Event)
}

// Pending is the handle for a queued write. Wait blocks until the write is
// flushed (or the context expires) and reports the flush result, so callers
// that need durability are not left with a fire-and-forget
type Pending struct {
	done chan struct{}
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Wait blocks until the write has been flushed or ctx expires
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns a channel closed once the write has been flushed
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

type pendingWrite struct {
	patch  domain.PropertyPatch
	timer  *time.Timer
	result *Pending
}

// Store is the property state container. All methods are safe for
// concurrent use
type Store struct {
	repo   domain.PropertyRepository
	window time.Duration

	mu        sync.Mutex
	cache     map[uuid.UUID]*domain.Property
	pending   map[uuid.UUID]*pendingWrite
	observers []Observer
	closed    bool
}

// New creates a Store over the given repository. A non-positive window
// falls back to DefaultCoalesceWindow
func New(repo domain.PropertyRepository, window time.Duration) *Store {
	if window <= 0 {
		window = DefaultCoalesceWindow
	}
	return &Store{
		repo:    repo,
		window:  window,
		cache:   make(map[uuid.UUID]*domain.Property),
		pending: make(map[uuid.UUID]*pendingWrite),
	}
}

// Subscribe registers an observer for property change events
func (s *Store) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Create writes a new property through to the repository and caches it
func (s *Store) Create(ctx context.Context, p *domain.Property) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.mu.Unlock()

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	cp := *p
	s.mu.Lock()
	s.cache[p.ID] = &cp
	s.mu.Unlock()

	s.notify(Event{Type: EventCreated, Property: snapshot(&cp)})
	return nil
}

// Get returns the current state of a property, consulting the cache first.
// Queued (not yet flushed) updates are visible
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	s.mu.Lock()
	if p, ok := s.cache[id]; ok {
		defer s.mu.Unlock()
		return snapshot(p), nil
	}
	s.mu.Unlock()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[id] = p
	defer s.mu.Unlock()
	return snapshot(p), nil
}

// List returns properties from the repository, with queued local updates
// taking precedence over the persisted rows
func (s *Store) List(ctx context.Context, statusFilter domain.PropertyStatus) ([]*domain.Property, error) {
	props, err := s.repo.List(ctx, statusFilter)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Property, 0, len(props))
	for _, p := range props {
		if _, dirty := s.pending[p.ID]; dirty {
			if cached, ok := s.cache[p.ID]; ok {
				out = append(out, snapshot(cached))
				continue
			}
		}
		s.cache[p.ID] = p
		out = append(out, snapshot(p))
	}
	return out, nil
}

// Apply validates a partial update, applies it to the cached state
// immediately, and queues a coalesced repository write: further patches for
// the same property arriving within the window merge into a single Update.
// Returns the updated snapshot and the pending write handle
func (s *Store) Apply(ctx context.Context, id uuid.UUID, patch domain.PropertyPatch) (*domain.Property, *Pending, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, nil, ErrClosed
	}
	current, ok := s.cache[id]
	s.mu.Unlock()

	if !ok {
		loaded, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		s.mu.Lock()
		// Another Apply may have cached it while we loaded
		if cached, ok := s.cache[id]; ok {
			current = cached
		} else {
			s.cache[id] = loaded
			current = loaded
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, nil, ErrClosed
	}

	// Validate against the patched copy before touching the cache
	patched := *current
	patch.ApplyTo(&patched)
	patched.UpdatedAt = time.Now()
	if err := patched.Validate(); err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}

	*current = patched

	pw, ok := s.pending[id]
	if ok {
		pw.patch = pw.patch.Merge(patch)
	} else {
		pw = &pendingWrite{patch: patch, result: newPending()}
		pw.timer = time.AfterFunc(s.window, func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			defer cancel()
			s.flush(flushCtx, id)
		})
		s.pending[id] = pw
	}

	snap := snapshot(current)
	result := pw.result
	s.mu.Unlock()

	s.notify(Event{Type: EventUpdated, Property: snap})
	return snap, result, nil
}

// Delete removes a property. Any queued write for it is dropped: there is
// nothing left to flush, so its pending handle resolves without error
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if pw, ok := s.pending[id]; ok {
		delete(s.pending, id)
		pw.timer.Stop()
		close(pw.result.done)
	}
	removed := s.cache[id]
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()

	if removed == nil {
		removed = &domain.Property{ID: id}
	}
	s.notify(Event{Type: EventDeleted, Property: snapshot(removed)})
	return nil
}

// Flush forces all queued writes through immediately
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	ids := make([]uuid.UUID, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := s.flush(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close flushes queued writes and rejects further mutations
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	return s.Flush(ctx)
}

// flush writes the current cached state of one property through to the
// repository and resolves its pending handle. The pending patch has already
// been applied to the cache, so a full-state Update carries it
func (s *Store) flush(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	pw, ok := s.pending[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.pending, id)
	pw.timer.Stop()

	var snap *domain.Property
	if p, ok := s.cache[id]; ok {
		snap = snapshot(p)
	}
	s.mu.Unlock()

	var err error
	if snap != nil {
		err = s.repo.Update(ctx, snap)
		if err != nil {
			log.Printf("store: flush of property %s failed: %v", id, err)
		}
	}

	pw.result.err = err
	close(pw.result.done)
	return err
}

// notify fans an event out to all observers, outside the store lock
func (s *Store) notify(e Event) {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.NotifyPropertyChanged(e)
	}
}

func snapshot(p *domain.Property) *domain.Property {
	cp := *p
	return &cp
}
