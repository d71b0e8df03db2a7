package repository

import (
	"context"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
)

// SessionRepository is the single source of truth for one client's profile,
// wardrobe and screen state. Every mutation returns the resulting session.
type SessionRepository interface {
	Create(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	SetProfile(ctx context.Context, id string, profile *domain.UserProfile) (*domain.Session, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Session, error)
	AddWardrobeItem(ctx context.Context, id string, item domain.WardrobeItem) (*domain.Session, error)
	Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error)
}
