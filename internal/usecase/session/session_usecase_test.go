package session

import (
	"context"
	"testing"
	"time"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository/memory"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setup(t *testing.T) (*SessionUseCase, repository.SessionRepository) {
	t.Helper()
	repo, err := memory.NewSessionRepository(8)
	require.NoError(t, err)
	return NewSessionUseCase(repo, flow.NewFlowUseCase(repo, nil), testSecret, time.Hour), repo
}

func TestOpenAndVerify(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	res, err := uc.Open(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Nil(t, res.Session.Profile)
	assert.Len(t, res.Session.Wardrobe, 3)
	assert.Equal(t, domain.ScreenWelcome, res.Session.Screens.Current)

	id, err := uc.VerifyToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Session.ID, id)
}

func TestVerifyToken_Rejects(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	res, err := uc.Open(ctx)
	require.NoError(t, err)

	_, err = uc.VerifyToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	other := NewSessionUseCase(nil, nil, "ffffffffffffffffffffffffffffffff", time.Hour)
	_, err = other.VerifyToken(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "foreign signature")

	uc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = uc.VerifyToken(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "expired")
}

func TestVerifyToken_UnknownSession(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "evicted",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = uc.VerifyToken(ctx, signed)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestReset(t *testing.T) {
	uc, repo := setup(t)
	ctx := context.Background()
	res, err := uc.Open(ctx)
	require.NoError(t, err)
	id := res.Session.ID

	_, err = repo.SetProfile(ctx, id, &domain.UserProfile{PhotoBase64: domain.Ptr("data:image/jpeg;base64,/9j/4A==")})
	require.NoError(t, err)
	_, err = repo.AddWardrobeItem(ctx, id, domain.WardrobeItem{ID: "mine", Tags: []string{}})
	require.NoError(t, err)

	s, err := uc.Reset(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, s.Profile)
	assert.False(t, s.MeasurementsCommitted)
	assert.Equal(t, domain.ScreenWelcome, s.Screens.Current)
	assert.Len(t, s.Wardrobe, 4)
}
