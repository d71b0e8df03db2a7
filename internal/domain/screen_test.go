package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScreen(t *testing.T) {
	tests := []struct {
		path string
		want Screen
	}{
		{"", ScreenWelcome},
		{"/", ScreenWelcome},
		{"try-on", ScreenTryOn},
		{"/onboarding/style/", ScreenStylePreferences},
		{" /home ", ScreenDashboard},
	}
	for _, tt := range tests {
		got, err := ParseScreen(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := ParseScreen("/settings")
	assert.ErrorIs(t, err, ErrScreenNotFound)
}

func TestScreen_Previous(t *testing.T) {
	prev, ok := ScreenPhotoUpload.Previous()
	assert.True(t, ok)
	assert.Equal(t, ScreenWelcome, prev)

	prev, ok = ScreenStylePreferences.Previous()
	assert.True(t, ok)
	assert.Equal(t, ScreenMeasurements, prev)

	for _, s := range append([]Screen{ScreenWelcome}, MainScreens...) {
		_, ok := s.Previous()
		assert.False(t, ok, s)
	}
}

func TestScreen_Classification(t *testing.T) {
	assert.True(t, ScreenWardrobe.IsMain())
	assert.False(t, ScreenWardrobe.IsOnboarding())
	assert.True(t, ScreenMeasurements.IsOnboarding())
	assert.Equal(t, 1, ScreenMeasurements.OnboardingStep())
	assert.False(t, ScreenWelcome.IsMain())
	assert.False(t, ScreenWelcome.IsOnboarding())
}
