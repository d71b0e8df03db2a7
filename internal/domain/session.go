package domain

import (
	"slices"
	"time"
)

const (
	DefaultHeightCm = 170
	MinHeightCm     = 140
	MaxHeightCm     = 210
	MinWeightKg     = 30
	MaxWeightKg     = 250
)

// Session is everything one client owns for the lifetime of the process:
// the store-owned profile and wardrobe plus transient per-screen state.
type Session struct {
	ID       string         `json:"id"`
	Profile  *UserProfile   `json:"profile"`
	Wardrobe []WardrobeItem `json:"wardrobe"`
	// MeasurementsCommitted gates the style step of onboarding.
	MeasurementsCommitted bool        `json:"measurements_committed"`
	Screens               ScreenState `json:"-"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Profile = s.Profile.Clone()
	c.Wardrobe = make([]WardrobeItem, len(s.Wardrobe))
	for i, item := range s.Wardrobe {
		c.Wardrobe[i] = item.Clone()
	}
	c.Screens = s.Screens.Clone()
	return &c
}

// ScreenState holds the uncommitted UI state of each screen.
type ScreenState struct {
	Current Screen `json:"current"`
	// Visit changes every time the client moves to a different screen. Work
	// that outlives its screen compares it before touching screen state.
	Visit        uint64                `json:"visit"`
	Photo        PhotoUploadState      `json:"photo"`
	Measurements MeasurementsState     `json:"measurements"`
	Styles       StylePreferencesState `json:"styles"`
	TryOn        TryOnState            `json:"try_on"`
	Chat         Conversation          `json:"chat"`
}

func (s ScreenState) Clone() ScreenState {
	c := s
	c.Measurements.WeightKg = clonePtr(s.Measurements.WeightKg)
	c.Styles.Selected = slices.Clone(s.Styles.Selected)
	c.TryOn.Fit = clonePtr(s.TryOn.Fit)
	c.Chat = s.Chat.Clone()
	return c
}

// Discard drops the transient state owned by screen.
func (s *ScreenState) Discard(screen Screen) {
	switch screen {
	case ScreenPhotoUpload:
		s.Photo = PhotoUploadState{}
	case ScreenMeasurements:
		s.Measurements = MeasurementsState{}
	case ScreenStylePreferences:
		s.Styles = StylePreferencesState{}
	case ScreenTryOn:
		s.TryOn = TryOnState{}
	case ScreenStylist:
		s.Chat = Conversation{}
	}
}

// Enter seeds the state of screen from committed profile values so that
// revisiting a screen shows what was already recorded. openChat starts the
// stylist conversation; nil falls back to a bare persona.
func (s *ScreenState) Enter(screen Screen, profile *UserProfile, now time.Time, newID func() string, openChat func() Conversation) {
	s.Current = screen
	switch screen {
	case ScreenPhotoUpload:
		if s.Photo.Preview == "" && profile.HasPhoto() {
			s.Photo.Preview = *profile.PhotoBase64
		}
	case ScreenMeasurements:
		if s.Measurements.initialized {
			return
		}
		s.Measurements = MeasurementsState{HeightCm: DefaultHeightCm, BodyType: BodyTypeAverage, initialized: true}
		if profile != nil {
			if profile.HeightCm != nil {
				s.Measurements.HeightCm = *profile.HeightCm
			}
			s.Measurements.WeightKg = clonePtr(profile.WeightKg)
			if profile.BodyType != nil {
				s.Measurements.BodyType = *profile.BodyType
			}
		}
	case ScreenStylePreferences:
		if s.Styles.Selected == nil && profile != nil {
			s.Styles.Selected = slices.Clone(profile.Styles)
		}
	case ScreenTryOn:
		if s.TryOn.Step == "" {
			s.TryOn = TryOnState{Step: TryOnStepUpload}
		}
	case ScreenStylist:
		if len(s.Chat.Messages) == 0 {
			conv := Conversation{Persona: StylistPersona}
			if openChat != nil {
				conv = openChat()
			}
			conv.Messages = append(conv.Messages, ChatMessage{
				ID:        newID(),
				Role:      RoleModel,
				Text:      StylistGreeting,
				CreatedAt: now,
			})
			s.Chat = conv
		}
	}
}

type PhotoUploadState struct {
	Preview   string `json:"preview,omitempty"`
	Analyzing bool   `json:"analyzing"`
	Error     string `json:"error,omitempty"`
	Feedback  string `json:"feedback,omitempty"`
}

type MeasurementsState struct {
	HeightCm    int      `json:"height_cm"`
	WeightKg    *int     `json:"weight_kg,omitempty"`
	BodyType    BodyType `json:"body_type"`
	initialized bool
}

type StylePreferencesState struct {
	Selected   []string `json:"selected"`
	Generating bool     `json:"generating"`
}

type TryOnStep string

const (
	TryOnStepUpload     TryOnStep = "upload"
	TryOnStepProcessing TryOnStep = "processing"
	TryOnStepResult     TryOnStep = "result"
)

// TryOnStage is a named milestone of the try-on pipeline.
type TryOnStage string

const (
	StageInitializing TryOnStage = "initializing"
	StageSynthesizing TryOnStage = "synthesizing"
	StageAnalyzingFit TryOnStage = "analyzing_fit"
	StageComplete     TryOnStage = "complete"
	StageFailed       TryOnStage = "failed"
)

// Progress is the indicator value shown while the stage is active.
func (s TryOnStage) Progress() int {
	switch s {
	case StageInitializing:
		return 10
	case StageSynthesizing:
		return 30
	case StageAnalyzingFit:
		return 70
	case StageComplete, StageFailed:
		return 100
	default:
		return 0
	}
}

// StatusText is the human readable caption of the stage.
func (s TryOnStage) StatusText() string {
	switch s {
	case StageInitializing:
		return "Initializing Gemini 3 Pipeline..."
	case StageSynthesizing:
		return "Analyzing fabric physics & lighting..."
	case StageAnalyzingFit:
		return "Refining photorealism with Gemini Pro Image..."
	case StageComplete:
		return "Done"
	case StageFailed:
		return "Showing fallback"
	default:
		return ""
	}
}

const TryOnFailureNotice = "Try-On generation failed. Please check API Key. Showing fallback."

type TryOnState struct {
	Step         TryOnStep    `json:"step"`
	GarmentImage string       `json:"garment_image,omitempty"`
	ResultImage  string       `json:"result_image,omitempty"`
	Fit          *FitAnalysis `json:"fit,omitempty"`
	Stage        TryOnStage   `json:"stage,omitempty"`
	Progress     int          `json:"progress"`
	StatusText   string       `json:"status_text,omitempty"`
	Notice       string       `json:"notice,omitempty"`
}

// EnterStage moves the wizard to stage and projects progress and caption from it.
func (t *TryOnState) EnterStage(stage TryOnStage) {
	t.Stage = stage
	t.Progress = stage.Progress()
	t.StatusText = stage.StatusText()
}
