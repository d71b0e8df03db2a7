package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMaxSessions = 1024

type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session
}

type sessionRepository struct {
	cache *lru.Cache[string, *sessionEntry]
	now   func() time.Time
}

// NewSessionRepository returns an in-process store keeping at most
// maxSessions sessions; the least recently used one is evicted beyond that.
func NewSessionRepository(maxSessions int) (repository.SessionRepository, error) {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	cache, err := lru.New[string, *sessionEntry](maxSessions)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	return &sessionRepository{cache: cache, now: time.Now}, nil
}

func (r *sessionRepository) Create(_ context.Context) (*domain.Session, error) {
	now := r.now()
	s := &domain.Session{
		ID:        uuid.NewString(),
		Wardrobe:  domain.DemoWardrobe(),
		Screens:   domain.ScreenState{Current: domain.ScreenWelcome},
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.cache.Add(s.ID, &sessionEntry{session: s})
	return s.Clone(), nil
}

func (r *sessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	e, ok := r.cache.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone(), nil
}

func (r *sessionRepository) SetProfile(ctx context.Context, id string, profile *domain.UserProfile) (*domain.Session, error) {
	return r.Update(ctx, id, func(s *domain.Session) error {
		s.Profile = profile.Clone()
		return nil
	})
}

// UpdateProfile merges update into the existing profile. Without a profile
// it changes nothing and still succeeds.
func (r *sessionRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Session, error) {
	return r.Update(ctx, id, func(s *domain.Session) error {
		if s.Profile == nil {
			return nil
		}
		update.Apply(s.Profile)
		return nil
	})
}

// AddWardrobeItem prepends item. ID uniqueness is the caller's job.
func (r *sessionRepository) AddWardrobeItem(ctx context.Context, id string, item domain.WardrobeItem) (*domain.Session, error) {
	return r.Update(ctx, id, func(s *domain.Session) error {
		wardrobe := make([]domain.WardrobeItem, 0, len(s.Wardrobe)+1)
		wardrobe = append(wardrobe, item.Clone())
		s.Wardrobe = append(wardrobe, s.Wardrobe...)
		return nil
	})
}

// Update runs fn against a copy of the session under its lock. The copy
// replaces the session only if fn succeeds.
func (r *sessionRepository) Update(_ context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	e, ok := r.cache.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	draft := e.session.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	draft.UpdatedAt = r.now()
	e.session = draft
	return draft.Clone(), nil
}
