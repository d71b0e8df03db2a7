package tryon

import (
	"context"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"go.uber.org/zap"
)

// Engine is the AI capability the wizard orchestrates.
type Engine interface {
	SynthesizeTryOn(ctx context.Context, person, garment domain.Image) (domain.Image, error)
	AnalyzeFit(ctx context.Context, original, generated domain.Image) domain.FitAnalysis
}

// TryOnUseCase drives the Upload -> Processing -> Result wizard.
type TryOnUseCase struct {
	sessions repository.SessionRepository
	flow     *flow.FlowUseCase
	engine   Engine
	logger   *zap.Logger
}

func NewTryOnUseCase(
	sessions repository.SessionRepository,
	flowUseCase *flow.FlowUseCase,
	engine Engine,
	logger *zap.Logger,
) *TryOnUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TryOnUseCase{
		sessions: sessions,
		flow:     flowUseCase,
		engine:   engine,
		logger:   logger.Named("tryon"),
	}
}

// SelectGarment sets the garment to try on.
func (uc *TryOnUseCase) SelectGarment(ctx context.Context, sessionID, dataURL string) (*domain.Session, error) {
	if _, err := domain.ParseDataURL(dataURL); err != nil {
		return nil, err
	}
	return uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if err := uc.flow.Enter(s, domain.ScreenTryOn); err != nil {
			return err
		}
		if s.Screens.TryOn.Step != domain.TryOnStepUpload {
			return domain.ErrActionDisabled
		}
		s.Screens.TryOn.GarmentImage = dataURL
		return nil
	})
}

// CanGenerate reports whether the upload step has everything it needs.
func CanGenerate(s *domain.Session) bool {
	t := s.Screens.TryOn
	return t.Step == domain.TryOnStepUpload && t.GarmentImage != "" && s.Profile.HasPhoto()
}

// Generate runs synthesis and, when it succeeds, fit analysis. Progress is
// published per stage as the calls start and finish. A synthesis failure
// shows the user's own photo with a notice; the wizard always ends in Result.
func (uc *TryOnUseCase) Generate(ctx context.Context, sessionID string) (*domain.Session, error) {
	var (
		visit   uint64
		person  domain.Image
		garment domain.Image
		photo   string
	)
	_, err := uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if err := uc.flow.Enter(s, domain.ScreenTryOn); err != nil {
			return err
		}
		if !CanGenerate(s) {
			return domain.ErrActionDisabled
		}
		var err error
		photo = *s.Profile.PhotoBase64
		if person, err = domain.ParseDataURL(photo); err != nil {
			return err
		}
		if garment, err = domain.ParseDataURL(s.Screens.TryOn.GarmentImage); err != nil {
			return err
		}

		t := &s.Screens.TryOn
		t.Step = domain.TryOnStepProcessing
		t.ResultImage, t.Fit, t.Notice = "", nil, ""
		t.EnterStage(domain.StageInitializing)
		visit = s.Screens.Visit
		return nil
	})
	if err != nil {
		return nil, err
	}

	// In-flight calls are not cancelled when the client goes away.
	callCtx := context.WithoutCancel(ctx)

	uc.stage(ctx, sessionID, visit, func(t *domain.TryOnState) { t.EnterStage(domain.StageSynthesizing) })
	generated, err := uc.engine.SynthesizeTryOn(callCtx, person, garment)
	if err != nil {
		uc.logger.Warn("try-on synthesis failed, showing fallback", zap.String("session_id", sessionID), zap.Error(err))
		return uc.stage(ctx, sessionID, visit, func(t *domain.TryOnState) {
			t.ResultImage = photo
			t.Notice = domain.TryOnFailureNotice
			t.EnterStage(domain.StageFailed)
			t.Step = domain.TryOnStepResult
		})
	}

	uc.stage(ctx, sessionID, visit, func(t *domain.TryOnState) { t.EnterStage(domain.StageAnalyzingFit) })
	fit := uc.engine.AnalyzeFit(callCtx, person, generated)

	return uc.stage(ctx, sessionID, visit, func(t *domain.TryOnState) {
		t.ResultImage = generated.DataURL()
		t.Fit = &fit
		t.EnterStage(domain.StageComplete)
		t.Step = domain.TryOnStepResult
	})
}

// stage applies fn to the wizard if it is still the run started at visit.
// Results for a wizard the client has left are dropped.
func (uc *TryOnUseCase) stage(ctx context.Context, sessionID string, visit uint64, fn func(t *domain.TryOnState)) (*domain.Session, error) {
	s, err := uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if s.Screens.Visit != visit || s.Screens.TryOn.Step != domain.TryOnStepProcessing {
			return nil
		}
		fn(&s.Screens.TryOn)
		return nil
	})
	if err != nil {
		uc.logger.Warn("failed to publish try-on stage", zap.String("session_id", sessionID), zap.Error(err))
	}
	return s, err
}

// Reset returns to the upload step with the garment cleared. The profile
// photo is untouched.
func (uc *TryOnUseCase) Reset(ctx context.Context, sessionID string) (*domain.Session, error) {
	return uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if err := uc.flow.Enter(s, domain.ScreenTryOn); err != nil {
			return err
		}
		if s.Screens.TryOn.Step == domain.TryOnStepProcessing {
			return domain.ErrActionDisabled
		}
		s.Screens.TryOn = domain.TryOnState{Step: domain.TryOnStepUpload}
		return nil
	})
}
