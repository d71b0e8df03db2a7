package onboarding

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"go.uber.org/zap"
)

// DefaultDisplayName is given to profiles that finish onboarding unnamed.
const DefaultDisplayName = "Fashionista"

// PhotoAssessor judges whether an uploaded photo is usable for try-on.
type PhotoAssessor interface {
	AssessPhotoQuality(ctx context.Context, img domain.Image) domain.PhotoQuality
}

// StyleOption is one selectable style tag.
type StyleOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

var StyleOptions = []StyleOption{
	{ID: "casual", Label: "Casual", Emoji: "👟"},
	{ID: "chic", Label: "Chic", Emoji: "✨"},
	{ID: "streetwear", Label: "Street", Emoji: "🧢"},
	{ID: "formal", Label: "Formal", Emoji: "👔"},
	{ID: "boho", Label: "Boho", Emoji: "🌿"},
	{ID: "vintage", Label: "Vintage", Emoji: "📻"},
}

func isStyleOption(id string) bool {
	return slices.ContainsFunc(StyleOptions, func(o StyleOption) bool { return o.ID == id })
}

// MeasurementsInput carries slider and selection values. Nil fields keep the
// value currently on screen.
type MeasurementsInput struct {
	HeightCm *int             `json:"height_cm" binding:"omitempty,min=140,max=210"`
	WeightKg *int             `json:"weight_kg" binding:"omitempty,min=30,max=250"`
	BodyType *domain.BodyType `json:"body_type" binding:"omitempty,bodytype"`
}

type OnboardingUseCase struct {
	sessions    repository.SessionRepository
	flow        *flow.FlowUseCase
	assessor    PhotoAssessor
	avatarDelay time.Duration
	logger      *zap.Logger
}

func NewOnboardingUseCase(
	sessions repository.SessionRepository,
	flowUseCase *flow.FlowUseCase,
	assessor PhotoAssessor,
	avatarDelay time.Duration,
	logger *zap.Logger,
) *OnboardingUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OnboardingUseCase{
		sessions:    sessions,
		flow:        flowUseCase,
		assessor:    assessor,
		avatarDelay: avatarDelay,
		logger:      logger.Named("onboarding"),
	}
}

// Start leaves the welcome screen for the photo upload.
func (uc *OnboardingUseCase) Start(ctx context.Context, sessionID string) (*domain.Session, error) {
	return uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		return uc.flow.Enter(s, domain.ScreenPhotoUpload)
	})
}

// UploadPhoto previews the photo, runs the quality check and, when the photo
// passes, stores it on the profile (creating the profile on first write).
func (uc *OnboardingUseCase) UploadPhoto(ctx context.Context, sessionID string, dataURL string) (*domain.Session, error) {
	img, err := domain.ParseDataURL(dataURL)
	if err != nil {
		return nil, err
	}

	var visit uint64
	_, err = uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if err := uc.flow.Enter(s, domain.ScreenPhotoUpload); err != nil {
			return err
		}
		if s.Screens.Photo.Analyzing {
			return domain.ErrActionDisabled
		}
		s.Screens.Photo = domain.PhotoUploadState{Preview: dataURL, Analyzing: true}
		visit = s.Screens.Visit
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A client going away does not abort the analysis.
	quality := uc.assessor.AssessPhotoQuality(context.WithoutCancel(ctx), img)

	return uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if quality.Valid {
			if s.Profile == nil {
				s.Profile = &domain.UserProfile{}
			}
			domain.ProfileUpdate{PhotoBase64: &dataURL}.Apply(s.Profile)
		}
		if s.Screens.Visit != visit {
			uc.logger.Debug("photo analysis finished after leaving the screen", zap.String("session_id", s.ID))
			return nil
		}
		s.Screens.Photo.Analyzing = false
		s.Screens.Photo.Feedback = quality.Feedback
		if !quality.Valid {
			s.Screens.Photo.Error = quality.Feedback
		}
		return nil
	})
}

// CanLeavePhotoUpload reports whether the photo step may advance.
func CanLeavePhotoUpload(s *domain.Session) bool {
	p := s.Screens.Photo
	return p.Preview != "" && p.Error == "" && !p.Analyzing && s.Profile.HasPhoto()
}

// PhotoNext advances to measurements once a photo has been accepted.
func (uc *OnboardingUseCase) PhotoNext(ctx context.Context, sessionID string) (*domain.Session, error) {
	return uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if err := uc.flow.Enter(s, domain.ScreenPhotoUpload); err != nil {
			return err
		}
		if !CanLeavePhotoUpload(s) {
			return domain.ErrActionDisabled
		}
		uc.flow.Move(s, domain.ScreenMeasurements)
		return nil
	})
}

// EditMeasurements changes the on-screen values without committing them.
func (uc *OnboardingUseCase) EditMeasurements(ctx context.Context, sessionID string, in MeasurementsInput) (*domain.Session, error) {
	return uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if err := uc.flow.Enter(s, domain.ScreenMeasurements); err != nil {
			return err
		}
		return applyMeasurements(&s.Screens.Measurements, in)
	})
}

// MeasurementsNext records the current values on the profile and moves on to
// style preferences. It is never disabled once the screen is reachable.
func (uc *OnboardingUseCase) MeasurementsNext(ctx context.Context, sessionID string, in MeasurementsInput) (*domain.Session, error) {
	return uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if err := uc.flow.Enter(s, domain.ScreenMeasurements); err != nil {
			return err
		}
		m := &s.Screens.Measurements
		if err := applyMeasurements(m, in); err != nil {
			return err
		}

		height, bodyType := m.HeightCm, m.BodyType
		domain.ProfileUpdate{
			HeightCm: &height,
			WeightKg: m.WeightKg,
			BodyType: &bodyType,
		}.Apply(s.Profile)
		s.MeasurementsCommitted = true

		uc.flow.Move(s, domain.ScreenStylePreferences)
		return nil
	})
}

func applyMeasurements(m *domain.MeasurementsState, in MeasurementsInput) error {
	if in.HeightCm != nil {
		if *in.HeightCm < domain.MinHeightCm || *in.HeightCm > domain.MaxHeightCm {
			return fmt.Errorf("%w: height %d cm", domain.ErrActionDisabled, *in.HeightCm)
		}
		m.HeightCm = *in.HeightCm
	}
	if in.WeightKg != nil {
		if *in.WeightKg < domain.MinWeightKg || *in.WeightKg > domain.MaxWeightKg {
			return fmt.Errorf("%w: weight %d kg", domain.ErrActionDisabled, *in.WeightKg)
		}
		w := *in.WeightKg
		m.WeightKg = &w
	}
	if in.BodyType != nil {
		if !in.BodyType.Valid() {
			return fmt.Errorf("%w: body type %q", domain.ErrActionDisabled, *in.BodyType)
		}
		m.BodyType = *in.BodyType
	}
	return nil
}

// ToggleStyle selects or deselects one style tag, keeping selection order.
func (uc *OnboardingUseCase) ToggleStyle(ctx context.Context, sessionID, styleID string) (*domain.Session, error) {
	if !isStyleOption(styleID) {
		return nil, fmt.Errorf("%w: unknown style %q", domain.ErrActionDisabled, styleID)
	}
	return uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if err := uc.flow.Enter(s, domain.ScreenStylePreferences); err != nil {
			return err
		}
		st := &s.Screens.Styles
		if st.Generating {
			return domain.ErrActionDisabled
		}
		if i := slices.Index(st.Selected, styleID); i >= 0 {
			st.Selected = slices.Delete(st.Selected, i, i+1)
		} else {
			st.Selected = append(st.Selected, styleID)
		}
		return nil
	})
}

// FinishStyles commits the selected styles, shows the generating state for
// the avatar delay and then lands on the dashboard. If the profile lost its
// photo meanwhile the session lands wherever the gates send it; if the client
// left the screen the result is dropped.
func (uc *OnboardingUseCase) FinishStyles(ctx context.Context, sessionID string) (*domain.Session, error) {
	var visit uint64
	_, err := uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if err := uc.flow.Enter(s, domain.ScreenStylePreferences); err != nil {
			return err
		}
		st := &s.Screens.Styles
		if len(st.Selected) == 0 || st.Generating {
			return domain.ErrActionDisabled
		}

		styles := slices.Clone(st.Selected)
		update := domain.ProfileUpdate{Styles: &styles}
		if s.Profile.Name == nil {
			update.Name = domain.Ptr(DefaultDisplayName)
		}
		update.Apply(s.Profile)
		st.Generating = true
		visit = s.Screens.Visit
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.avatarDelay > 0 {
		time.Sleep(uc.avatarDelay)
	}

	return uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if s.Screens.Visit != visit || !s.Screens.Styles.Generating {
			uc.logger.Debug("avatar generation finished after leaving the screen", zap.String("session_id", s.ID))
			return nil
		}
		s.Screens.Styles.Generating = false
		target, _ := uc.flow.Resolve(s, domain.ScreenDashboard)
		uc.flow.Move(s, target)
		return nil
	})
}
