package stylist

import (
	"context"
	"strings"
	"time"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"go.uber.org/zap"
)

// Chat answers one stylist turn given the conversation so far.
type Chat interface {
	SendTurn(ctx context.Context, conv domain.Conversation, text string) (string, error)
}

type StylistUseCase struct {
	sessions repository.SessionRepository
	flow     *flow.FlowUseCase
	chat     Chat
	logger   *zap.Logger
	now      func() time.Time
}

func NewStylistUseCase(
	sessions repository.SessionRepository,
	flowUseCase *flow.FlowUseCase,
	chat Chat,
	logger *zap.Logger,
) *StylistUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StylistUseCase{
		sessions: sessions,
		flow:     flowUseCase,
		chat:     chat,
		logger:   logger.Named("stylist"),
		now:      time.Now,
	}
}

// Send appends the user's message, then exactly one model message: the reply
// or, when the turn fails, the fixed apology. The conversation stays usable.
func (uc *StylistUseCase) Send(ctx context.Context, sessionID, text string) (*domain.Session, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrActionDisabled
	}

	var (
		visit    uint64
		conv     domain.Conversation
		typingID string
	)
	_, err := uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if err := uc.flow.Enter(s, domain.ScreenStylist); err != nil {
			return err
		}
		chat := &s.Screens.Chat
		if isComposing(*chat) {
			return domain.ErrActionDisabled
		}
		conv = chat.Clone()

		now := uc.now()
		typingID = flow.NewMessageID()
		chat.Messages = append(chat.Messages,
			domain.ChatMessage{ID: flow.NewMessageID(), Role: domain.RoleUser, Text: text, CreatedAt: now},
			domain.ChatMessage{ID: typingID, Role: domain.RoleModel, IsTyping: true, CreatedAt: now},
		)
		visit = s.Screens.Visit
		return nil
	})
	if err != nil {
		return nil, err
	}

	reply, err := uc.chat.SendTurn(context.WithoutCancel(ctx), conv, text)
	msg := domain.ChatMessage{Role: domain.RoleModel, Text: reply}
	if err != nil {
		uc.logger.Warn("stylist reply failed", zap.String("session_id", sessionID), zap.Error(err))
		msg.Text = domain.StylistApology
		msg.Fallback = true
	}

	return uc.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if s.Screens.Visit != visit {
			return nil
		}
		chat := &s.Screens.Chat
		for i := range chat.Messages {
			if chat.Messages[i].ID == typingID {
				msg.ID = typingID
				msg.CreatedAt = uc.now()
				chat.Messages[i] = msg
				return nil
			}
		}
		return nil
	})
}

func isComposing(c domain.Conversation) bool {
	for _, m := range c.Messages {
		if m.IsTyping {
			return true
		}
	}
	return false
}
