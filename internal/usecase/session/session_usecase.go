package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "mirrorfit"

// OpenResult is a freshly created session and the token that addresses it.
type OpenResult struct {
	Token     string          `json:"token"`
	ExpiresAt int64           `json:"expires_at"`
	Session   *domain.Session `json:"-"`
}

// SessionUseCase issues and verifies the signed tokens that bind a client
// to its in-memory session.
type SessionUseCase struct {
	sessions repository.SessionRepository
	flow     *flow.FlowUseCase
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionUseCase(sessions repository.SessionRepository, flowUseCase *flow.FlowUseCase, secret string, ttl time.Duration) *SessionUseCase {
	return &SessionUseCase{
		sessions: sessions,
		flow:     flowUseCase,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Open creates a session with no profile and the demo wardrobe.
func (uc *SessionUseCase) Open(ctx context.Context) (*OpenResult, error) {
	s, err := uc.sessions.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	now := uc.now()
	expiresAt := now.Add(uc.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   s.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	tokenString, err := token.SignedString(uc.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &OpenResult{
		Token:     tokenString,
		ExpiresAt: expiresAt.Unix(),
		Session:   s,
	}, nil
}

// VerifyToken checks the token signature and that its session is still held
// in memory, returning the session ID.
func (uc *SessionUseCase) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return uc.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(uc.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}

	if _, err := uc.sessions.Get(ctx, claims.Subject); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return "", domain.ErrSessionNotFound
		}
		return "", err
	}

	return claims.Subject, nil
}

// Get returns the current snapshot of a session.
func (uc *SessionUseCase) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return uc.sessions.Get(ctx, sessionID)
}

// Reset drops the profile wholesale and returns to the welcome screen. The
// wardrobe is kept.
func (uc *SessionUseCase) Reset(ctx context.Context, sessionID string) (*domain.Session, error) {
	if _, err := uc.sessions.SetProfile(ctx, sessionID, nil); err != nil {
		return nil, err
	}
	return uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		s.MeasurementsCommitted = false
		s.Screens = domain.ScreenState{Visit: s.Screens.Visit + 1}
		uc.flow.Move(s, domain.ScreenWelcome)
		return nil
	})
}
