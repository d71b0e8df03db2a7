package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gdugdh24/mirrorfit-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/mirrorfit-backend/internal/delivery/http/view"
	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error    string        `json:"error"`
	Redirect domain.Screen `json:"redirect,omitempty"`
}

func sessionID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.SessionIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return "", false
	}
	return v.(string), true
}

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session expired"})
	case errors.Is(err, domain.ErrNoProfile):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "profile required", Redirect: domain.ScreenWelcome})
	case errors.Is(err, domain.ErrActionDisabled):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "action disabled"})
	case errors.Is(err, domain.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image"})
	case errors.Is(err, domain.ErrScreenNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "screen not found"})
	case errors.Is(err, domain.ErrAIUnavailable),
		errors.Is(err, domain.ErrMalformedAIResponse),
		errors.Is(err, domain.ErrNoImageGenerated):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "ai service unavailable"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// respondScreen renders the session's current screen.
func respondScreen(c *gin.Context, fl *flow.FlowUseCase, s *domain.Session, opts view.Options) {
	v, err := view.Render(s, fl.NavItems(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// runAction applies a screen action that needs only the session and renders
// the result.
func runAction(c *gin.Context, fl *flow.FlowUseCase, action func(ctx context.Context, sessionID string) (*domain.Session, error)) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	s, err := action(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondScreen(c, fl, s, view.Options{})
}
