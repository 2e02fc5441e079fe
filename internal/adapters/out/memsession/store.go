// Package memsession keeps live checkout sessions in process memory.
//
// A session is working state for one buyer's in-progress purchase; there is
// nothing to share across instances because a buyer's requests are routed to
// the instance that owns the session, and after a payment redirect the
// session is rebuilt from its durable draft anyway. Entries idle past their
// TTL are dropped lazily on access and swept on Add.
package memsession

import (
	"context"
	"sync"
	"time"

	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/ports"
	"shiplabel/internal/pkg/errs"
)

// DefaultTTL is how long an untouched session survives. Long enough to cover
// a slow payment redirect round trip.
const DefaultTTL = 2 * time.Hour

type entry struct {
	session  *checkout.Session
	lastSeen time.Time
}

type Store struct {
	mu      sync.Mutex
	entries map[kernel.UUID]*entry
	ttl     time.Duration
	now     func() time.Time
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[kernel.UUID]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store) Add(_ context.Context, session *checkout.Session) error {
	if session == nil {
		return errs.NewValueIsRequiredError("session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	if _, exists := s.entries[session.ID()]; exists {
		return errs.NewValueIsInvalidError("session id already exists")
	}
	s.entries[session.ID()] = &entry{session: session, lastSeen: s.now()}
	return nil
}

// Get returns the stored instance itself, never a copy: the session's
// in-flight and issuance latches only work when every request sees the same
// instance. Touches the entry's TTL.
func (s *Store) Get(_ context.Context, id kernel.UUID) (*checkout.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || s.expiredLocked(e) {
		delete(s.entries, id)
		return nil, errs.NewObjectNotFoundError("session", id)
	}
	e.lastSeen = s.now()
	return e.session, nil
}

func (s *Store) Remove(_ context.Context, id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

func (s *Store) expiredLocked(e *entry) bool {
	return s.now().Sub(e.lastSeen) > s.ttl
}

func (s *Store) sweepLocked() {
	for id, e := range s.entries {
		if s.expiredLocked(e) {
			delete(s.entries, id)
		}
	}
}
