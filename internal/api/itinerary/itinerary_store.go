package itinerary

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

var _ SessionStore = (*MemorySessionStore)(nil)

// SessionStore keeps generated itineraries between edits.
type SessionStore interface {
	Save(ctx context.Context, session types.ItinerarySession) error
	Get(ctx context.Context, id uuid.UUID) (types.ItinerarySession, error)
	// Update replaces the stored itinerary with the result of fn. fn receives a copy.
	Update(ctx context.Context, id uuid.UUID, fn func(types.Itinerary) (types.Itinerary, error)) (types.ItinerarySession, error)
}

// MemorySessionStore expires sessions after the configured TTL. Nothing is persisted.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions *cache.Cache
	now      func() time.Time
}

func NewMemorySessionStore(ttl, cleanupInterval time.Duration) *MemorySessionStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &MemorySessionStore{
		sessions: cache.New(ttl, cleanupInterval),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Save(_ context.Context, session types.ItinerarySession) error {
	if session.ID == uuid.Nil {
		return types.ErrInvalidItineraryID
	}
	session.Itinerary = session.Itinerary.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.SetDefault(session.ID.String(), session)
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id uuid.UUID) (types.ItinerarySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id)
}

func (s *MemorySessionStore) Update(_ context.Context, id uuid.UUID, fn func(types.Itinerary) (types.Itinerary, error)) (types.ItinerarySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.get(id)
	if err != nil {
		return types.ItinerarySession{}, err
	}
	updated, err := fn(session.Itinerary)
	if err != nil {
		return types.ItinerarySession{}, err
	}
	updated.Normalize()
	session.Itinerary = updated
	session.UpdatedAt = s.now().UTC()
	s.sessions.SetDefault(id.String(), session)

	session.Itinerary = session.Itinerary.Clone()
	return session, nil
}

func (s *MemorySessionStore) get(id uuid.UUID) (types.ItinerarySession, error) {
	v, found := s.sessions.Get(id.String())
	if !found {
		return types.ItinerarySession{}, fmt.Errorf("%w: %s", types.ErrItineraryNotFound, id)
	}
	session, ok := v.(types.ItinerarySession)
	if !ok {
		return types.ItinerarySession{}, fmt.Errorf("%w: %s", types.ErrItineraryNotFound, id)
	}
	session.Itinerary = session.Itinerary.Clone()
	return session, nil
}
