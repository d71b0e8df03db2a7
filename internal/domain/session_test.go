package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenState_EnterMeasurementsSeedsFromProfile(t *testing.T) {
	var st ScreenState
	st.Enter(ScreenMeasurements, nil, time.Now(), nil, nil)
	assert.Equal(t, DefaultHeightCm, st.Measurements.HeightCm)
	assert.Equal(t, BodyTypeAverage, st.Measurements.BodyType)
	assert.Nil(t, st.Measurements.WeightKg)

	st = ScreenState{}
	profile := &UserProfile{HeightCm: Ptr(182), WeightKg: Ptr(77), BodyType: Ptr(BodyTypeSlim)}
	st.Enter(ScreenMeasurements, profile, time.Now(), nil, nil)
	assert.Equal(t, 182, st.Measurements.HeightCm)
	assert.Equal(t, 77, *st.Measurements.WeightKg)
	assert.Equal(t, BodyTypeSlim, st.Measurements.BodyType)

	// Re-entering keeps edits made on screen.
	st.Measurements.HeightCm = 150
	st.Enter(ScreenMeasurements, profile, time.Now(), nil, nil)
	assert.Equal(t, 150, st.Measurements.HeightCm)
}

func TestScreenState_EnterStylistSeedsGreeting(t *testing.T) {
	var st ScreenState
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st.Enter(ScreenStylist, nil, now, func() string { return "m1" }, nil)

	require.Len(t, st.Chat.Messages, 1)
	msg := st.Chat.Messages[0]
	assert.Equal(t, RoleModel, msg.Role)
	assert.Equal(t, StylistGreeting, msg.Text)
	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, now, msg.CreatedAt)
	assert.Equal(t, StylistPersona, st.Chat.Persona)
}

func TestScreenState_EnterStylistUsesOpener(t *testing.T) {
	var st ScreenState
	opened := 0
	open := func() Conversation {
		opened++
		return Conversation{Persona: "You are a minimalist stylist."}
	}

	st.Enter(ScreenStylist, nil, time.Now(), func() string { return "m1" }, open)
	st.Enter(ScreenStylist, nil, time.Now(), func() string { return "m2" }, open)

	assert.Equal(t, 1, opened, "an existing conversation is kept")
	assert.Equal(t, "You are a minimalist stylist.", st.Chat.Persona)
	require.Len(t, st.Chat.Messages, 1)
	assert.Equal(t, StylistGreeting, st.Chat.Messages[0].Text)
}

func TestScreenState_Discard(t *testing.T) {
	st := ScreenState{
		Photo:  PhotoUploadState{Preview: "x", Error: "blurry"},
		Styles: StylePreferencesState{Selected: []string{"chic"}},
		TryOn:  TryOnState{Step: TryOnStepResult, ResultImage: "r"},
	}

	st.Discard(ScreenPhotoUpload)
	st.Discard(ScreenTryOn)

	assert.Zero(t, st.Photo)
	assert.Zero(t, st.TryOn)
	assert.Equal(t, []string{"chic"}, st.Styles.Selected)
}

func TestTryOnState_EnterStage(t *testing.T) {
	tests := []struct {
		stage    TryOnStage
		progress int
	}{
		{StageInitializing, 10},
		{StageSynthesizing, 30},
		{StageAnalyzingFit, 70},
		{StageComplete, 100},
		{StageFailed, 100},
	}
	for _, tt := range tests {
		var st TryOnState
		st.EnterStage(tt.stage)
		assert.Equal(t, tt.progress, st.Progress, tt.stage)
		assert.NotEmpty(t, st.StatusText, tt.stage)
	}
}

func TestSession_CloneIsDeep(t *testing.T) {
	s := &Session{
		ID:       "s1",
		Profile:  &UserProfile{Styles: []string{"boho"}},
		Wardrobe: DemoWardrobe(),
	}
	c := s.Clone()
	c.Profile.Styles[0] = "formal"
	c.Wardrobe[0].Tags[0] = "changed"

	assert.Equal(t, "boho", s.Profile.Styles[0])
	assert.NotEqual(t, "changed", s.Wardrobe[0].Tags[0])
}
