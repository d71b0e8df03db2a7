package flow

import (
	"context"
	"testing"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhoto = "data:image/jpeg;base64,/9j/4A=="

func setup(t *testing.T) (*FlowUseCase, repository.SessionRepository, string) {
	t.Helper()
	repo, err := memory.NewSessionRepository(8)
	require.NoError(t, err)
	s, err := repo.Create(context.Background())
	require.NoError(t, err)
	return NewFlowUseCase(repo, nil), repo, s.ID
}

func withPhoto(t *testing.T, repo repository.SessionRepository, id string) {
	t.Helper()
	_, err := repo.SetProfile(context.Background(), id, &domain.UserProfile{PhotoBase64: domain.Ptr(testPhoto)})
	require.NoError(t, err)
}

func TestNavigate_MainScreensRequirePhoto(t *testing.T) {
	uc, repo, id := setup(t)
	ctx := context.Background()

	for _, screen := range domain.MainScreens {
		s, redirected, err := uc.Navigate(ctx, id, screen)
		require.NoError(t, err)
		assert.True(t, redirected, screen)
		assert.Equal(t, domain.ScreenWelcome, s.Screens.Current, screen)
	}

	withPhoto(t, repo, id)
	s, redirected, err := uc.Navigate(ctx, id, domain.ScreenTryOn)
	require.NoError(t, err)
	assert.False(t, redirected)
	assert.Equal(t, domain.ScreenTryOn, s.Screens.Current)
	assert.Equal(t, domain.TryOnStepUpload, s.Screens.TryOn.Step)
}

func TestNavigate_ProfileWithoutPhotoIsGated(t *testing.T) {
	uc, repo, id := setup(t)
	ctx := context.Background()
	_, err := repo.SetProfile(ctx, id, &domain.UserProfile{Name: domain.Ptr("Ann")})
	require.NoError(t, err)

	s, redirected, err := uc.Navigate(ctx, id, domain.ScreenWardrobe)
	require.NoError(t, err)
	assert.True(t, redirected)
	assert.Equal(t, domain.ScreenWelcome, s.Screens.Current)
}

func TestNavigate_OnboardingOrder(t *testing.T) {
	uc, repo, id := setup(t)
	ctx := context.Background()

	s, redirected, err := uc.Navigate(ctx, id, domain.ScreenStylePreferences)
	require.NoError(t, err)
	assert.True(t, redirected)
	assert.Equal(t, domain.ScreenPhotoUpload, s.Screens.Current)

	withPhoto(t, repo, id)
	s, redirected, err = uc.Navigate(ctx, id, domain.ScreenStylePreferences)
	require.NoError(t, err)
	assert.True(t, redirected)
	assert.Equal(t, domain.ScreenMeasurements, s.Screens.Current)

	_, err = repo.Update(ctx, id, func(s *domain.Session) error {
		s.MeasurementsCommitted = true
		return nil
	})
	require.NoError(t, err)
	s, redirected, err = uc.Navigate(ctx, id, domain.ScreenStylePreferences)
	require.NoError(t, err)
	assert.False(t, redirected)
	assert.Equal(t, domain.ScreenStylePreferences, s.Screens.Current)
}

func TestBack(t *testing.T) {
	uc, repo, id := setup(t)
	ctx := context.Background()
	withPhoto(t, repo, id)

	_, _, err := uc.Navigate(ctx, id, domain.ScreenMeasurements)
	require.NoError(t, err)

	s, err := uc.Back(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ScreenPhotoUpload, s.Screens.Current)
	assert.Equal(t, testPhoto, s.Screens.Photo.Preview)

	s, err = uc.Back(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ScreenWelcome, s.Screens.Current)

	_, err = uc.Back(ctx, id)
	assert.ErrorIs(t, err, domain.ErrActionDisabled)
}

func TestMove_DiscardsLeftScreenState(t *testing.T) {
	uc, repo, id := setup(t)
	ctx := context.Background()
	withPhoto(t, repo, id)

	s, _, err := uc.Navigate(ctx, id, domain.ScreenTryOn)
	require.NoError(t, err)
	visit := s.Screens.Visit

	_, err = repo.Update(ctx, id, func(s *domain.Session) error {
		s.Screens.TryOn.GarmentImage = testPhoto
		return nil
	})
	require.NoError(t, err)

	// Staying on the same screen keeps state and visit.
	s, _, err = uc.Navigate(ctx, id, domain.ScreenTryOn)
	require.NoError(t, err)
	assert.Equal(t, visit, s.Screens.Visit)
	assert.Equal(t, testPhoto, s.Screens.TryOn.GarmentImage)

	_, _, err = uc.Navigate(ctx, id, domain.ScreenDashboard)
	require.NoError(t, err)
	s, _, err = uc.Navigate(ctx, id, domain.ScreenTryOn)
	require.NoError(t, err)
	assert.Greater(t, s.Screens.Visit, visit)
	assert.Empty(t, s.Screens.TryOn.GarmentImage)
}

type countingOpener struct {
	calls int
}

func (o *countingOpener) NewConversation() domain.Conversation {
	o.calls++
	return domain.Conversation{Persona: "You are a capsule wardrobe stylist."}
}

func TestNavigate_StylistOpensConversationOnce(t *testing.T) {
	repo, err := memory.NewSessionRepository(8)
	require.NoError(t, err)
	ctx := context.Background()
	created, err := repo.Create(ctx)
	require.NoError(t, err)
	withPhoto(t, repo, created.ID)

	opener := &countingOpener{}
	uc := NewFlowUseCase(repo, opener)

	s, _, err := uc.Navigate(ctx, created.ID, domain.ScreenStylist)
	require.NoError(t, err)
	assert.Equal(t, 1, opener.calls)
	assert.Equal(t, "You are a capsule wardrobe stylist.", s.Screens.Chat.Persona)
	require.Len(t, s.Screens.Chat.Messages, 1)
	assert.Equal(t, domain.StylistGreeting, s.Screens.Chat.Messages[0].Text)

	_, _, err = uc.Navigate(ctx, created.ID, domain.ScreenStylist)
	require.NoError(t, err)
	assert.Equal(t, 1, opener.calls, "staying on the screen keeps the conversation")

	_, _, err = uc.Navigate(ctx, created.ID, domain.ScreenDashboard)
	require.NoError(t, err)
	_, _, err = uc.Navigate(ctx, created.ID, domain.ScreenStylist)
	require.NoError(t, err)
	assert.Equal(t, 2, opener.calls, "leaving the screen discards the conversation")
}

func TestEnter_Errors(t *testing.T) {
	uc, _, _ := setup(t)
	s := &domain.Session{}

	assert.ErrorIs(t, uc.Enter(s, domain.ScreenStylist), domain.ErrNoProfile)
	assert.ErrorIs(t, uc.Enter(s, domain.ScreenMeasurements), domain.ErrActionDisabled)
	assert.NoError(t, uc.Enter(s, domain.ScreenPhotoUpload))
	assert.Equal(t, domain.ScreenPhotoUpload, s.Screens.Current)
}

func TestNavItems(t *testing.T) {
	uc, _, _ := setup(t)
	items := uc.NavItems()
	require.Len(t, items, 4)
	assert.Equal(t, domain.ScreenDashboard, items[0].Screen)
	assert.Equal(t, "Stylist", items[3].Label)
}
