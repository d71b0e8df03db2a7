package domain

import "strings"

// Screen identifies one navigable screen by its path.
type Screen string

const (
	ScreenWelcome          Screen = "/"
	ScreenPhotoUpload      Screen = "/onboarding/upload"
	ScreenMeasurements     Screen = "/onboarding/measurements"
	ScreenStylePreferences Screen = "/onboarding/style"
	ScreenDashboard        Screen = "/home"
	ScreenTryOn            Screen = "/try-on"
	ScreenWardrobe         Screen = "/wardrobe"
	ScreenStylist          Screen = "/stylist"
)

// OnboardingScreens is the strictly ordered onboarding pipeline.
var OnboardingScreens = []Screen{ScreenPhotoUpload, ScreenMeasurements, ScreenStylePreferences}

// MainScreens are freely navigable once onboarding produced a profile.
var MainScreens = []Screen{ScreenDashboard, ScreenTryOn, ScreenWardrobe, ScreenStylist}

// ParseScreen maps a request path onto a known screen.
func ParseScreen(path string) (Screen, error) {
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	s := Screen(path)
	if s == ScreenWelcome || s.IsOnboarding() || s.IsMain() {
		return s, nil
	}
	return "", ErrScreenNotFound
}

func (s Screen) IsMain() bool {
	for _, m := range MainScreens {
		if s == m {
			return true
		}
	}
	return false
}

func (s Screen) IsOnboarding() bool {
	return s.OnboardingStep() >= 0
}

// OnboardingStep returns the zero-based position in the onboarding pipeline,
// or -1 for screens outside it.
func (s Screen) OnboardingStep() int {
	for i, o := range OnboardingScreens {
		if s == o {
			return i
		}
	}
	return -1
}

// Previous returns the screen back-navigation leads to. Welcome precedes
// PhotoUpload; main screens and Welcome have no predecessor.
func (s Screen) Previous() (Screen, bool) {
	switch step := s.OnboardingStep(); {
	case step == 0:
		return ScreenWelcome, true
	case step > 0:
		return OnboardingScreens[step-1], true
	default:
		return "", false
	}
}
