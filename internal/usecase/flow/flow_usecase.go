package flow

import (
	"context"
	"time"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository"
	"github.com/google/uuid"
)

// NavItem is one entry of the persistent navigation bar on main screens.
type NavItem struct {
	Label  string        `json:"label"`
	Icon   string        `json:"icon"`
	Screen domain.Screen `json:"path"`
}

var navItems = []NavItem{
	{Label: "Home", Icon: "fa-home", Screen: domain.ScreenDashboard},
	{Label: "Try-On", Icon: "fa-tshirt", Screen: domain.ScreenTryOn},
	{Label: "Wardrobe", Icon: "fa-layer-group", Screen: domain.ScreenWardrobe},
	{Label: "Stylist", Icon: "fa-wand-magic-sparkles", Screen: domain.ScreenStylist},
}

// ConversationOpener starts the stylist conversation shown on first entry.
type ConversationOpener interface {
	NewConversation() domain.Conversation
}

// FlowUseCase enforces the onboarding pipeline and the gated main area.
type FlowUseCase struct {
	sessions      repository.SessionRepository
	conversations ConversationOpener
	now           func() time.Time
}

func NewFlowUseCase(sessions repository.SessionRepository, conversations ConversationOpener) *FlowUseCase {
	return &FlowUseCase{
		sessions:      sessions,
		conversations: conversations,
		now:           time.Now,
	}
}

// NavItems returns the navigation control shown on every main screen.
func (uc *FlowUseCase) NavItems() []NavItem {
	out := make([]NavItem, len(navItems))
	copy(out, navItems)
	return out
}

// Resolve applies the gates to requested and returns the screen actually
// shown, reporting whether a redirect happened.
func (uc *FlowUseCase) Resolve(s *domain.Session, requested domain.Screen) (domain.Screen, bool) {
	resolved := uc.resolve(s, requested)
	return resolved, resolved != requested
}

func (uc *FlowUseCase) resolve(s *domain.Session, requested domain.Screen) domain.Screen {
	hasPhoto := s.Profile.HasPhoto()

	switch {
	case requested.IsMain():
		if !hasPhoto {
			return domain.ScreenWelcome
		}
		return requested
	case requested == domain.ScreenMeasurements:
		if !hasPhoto {
			return domain.ScreenPhotoUpload
		}
		return requested
	case requested == domain.ScreenStylePreferences:
		if !hasPhoto {
			return domain.ScreenPhotoUpload
		}
		if !s.MeasurementsCommitted {
			return domain.ScreenMeasurements
		}
		return requested
	default:
		return requested
	}
}

// Navigate moves the session to requested (or wherever the gates send it).
func (uc *FlowUseCase) Navigate(ctx context.Context, sessionID string, requested domain.Screen) (*domain.Session, bool, error) {
	var redirected bool
	s, err := uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		var target domain.Screen
		target, redirected = uc.Resolve(s, requested)
		uc.Move(s, target)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return s, redirected, nil
}

// Back returns an onboarding screen to its predecessor. Committed values are
// kept; only the current screen's uncommitted edits are dropped.
func (uc *FlowUseCase) Back(ctx context.Context, sessionID string) (*domain.Session, error) {
	return uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		prev, ok := s.Screens.Current.Previous()
		if !ok {
			return domain.ErrActionDisabled
		}
		uc.Move(s, prev)
		return nil
	})
}

// Enter makes screen current for an action on it. Actions on a gated screen
// fail with ErrNoProfile (main area) or ErrActionDisabled (onboarding).
func (uc *FlowUseCase) Enter(s *domain.Session, screen domain.Screen) error {
	if target, redirected := uc.Resolve(s, screen); redirected {
		if screen.IsMain() && target == domain.ScreenWelcome {
			return domain.ErrNoProfile
		}
		return domain.ErrActionDisabled
	}
	uc.Move(s, screen)
	return nil
}

// Move switches the session to screen without checking gates. Leaving a
// screen discards its transient state.
func (uc *FlowUseCase) Move(s *domain.Session, screen domain.Screen) {
	if s.Screens.Current != screen {
		s.Screens.Discard(s.Screens.Current)
		s.Screens.Visit++
	}
	var openChat func() domain.Conversation
	if uc.conversations != nil {
		openChat = uc.conversations.NewConversation
	}
	s.Screens.Enter(screen, s.Profile, uc.now(), NewMessageID, openChat)
}

// NewMessageID returns a unique, time-ordered identifier.
func NewMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
