package view

import (
	"testing"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	v, err := Render(&domain.Session{}, nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, domain.ScreenWelcome, v.Screen)
	require.NotNil(t, v.Welcome)
	assert.Nil(t, v.Back)
	assert.Empty(t, v.Nav)
}

func TestRender_Redirect(t *testing.T) {
	v, err := Render(&domain.Session{}, nil, Options{Requested: domain.ScreenTryOn, Redirected: true})
	require.NoError(t, err)
	assert.True(t, v.Redirected)
	assert.Equal(t, domain.ScreenTryOn, v.Requested)

	v, err = Render(&domain.Session{}, nil, Options{Requested: domain.ScreenWelcome})
	require.NoError(t, err)
	assert.Empty(t, v.Requested)
}

func TestRender_StylistHidesTypingPlaceholder(t *testing.T) {
	s := &domain.Session{
		Profile: &domain.UserProfile{PhotoBase64: domain.Ptr("data:image/jpeg;base64,/9j/4A==")},
		Screens: domain.ScreenState{
			Current: domain.ScreenStylist,
			Chat: domain.Conversation{Messages: []domain.ChatMessage{
				{Role: domain.RoleModel, Text: domain.StylistGreeting},
				{Role: domain.RoleUser, Text: "Hi"},
				{Role: domain.RoleModel, IsTyping: true},
			}},
		},
	}

	v, err := Render(s, nil, Options{})
	require.NoError(t, err)
	require.NotNil(t, v.Stylist)
	assert.True(t, v.Stylist.IsTyping)
	assert.Len(t, v.Stylist.Messages, 2)
}

func TestRender_StyleChoices(t *testing.T) {
	s := &domain.Session{Screens: domain.ScreenState{
		Current: domain.ScreenStylePreferences,
		Styles:  domain.StylePreferencesState{Selected: []string{"vintage"}},
	}}

	v, err := Render(s, nil, Options{})
	require.NoError(t, err)
	require.NotNil(t, v.Styles)
	assert.True(t, v.Styles.CanFinish)
	require.Len(t, v.Styles.Options, 6)
	for _, o := range v.Styles.Options {
		assert.Equal(t, o.ID == "vintage", o.Selected, o.ID)
	}
	require.NotNil(t, v.Back)
	assert.Equal(t, domain.ScreenMeasurements, *v.Back)
}

func TestRender_DashboardGreeting(t *testing.T) {
	s := &domain.Session{
		Profile: &domain.UserProfile{Name: domain.Ptr("Fashionista"), Styles: []string{"chic"}},
		Screens: domain.ScreenState{Current: domain.ScreenDashboard},
	}

	v, err := Render(s, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Fashionista", v.Dashboard.Greeting)
	assert.Equal(t, []string{"chic"}, v.Dashboard.Styles)
	assert.Len(t, v.Dashboard.Trending, 4)
}

func TestRender_UnknownWardrobeTab(t *testing.T) {
	s := &domain.Session{Screens: domain.ScreenState{Current: domain.ScreenWardrobe}, Wardrobe: domain.DemoWardrobe()}

	_, err := Render(s, nil, Options{WardrobeTab: "Hats"})
	assert.ErrorIs(t, err, domain.ErrActionDisabled)
}
