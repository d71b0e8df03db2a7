package handler

import (
	"net/http"

	"github.com/gdugdh24/mirrorfit-backend/internal/delivery/http/view"
	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/session"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionUseCase *session.SessionUseCase
	flowUseCase    *flow.FlowUseCase
	cookieName     string
	secureCookie   bool
}

func NewSessionHandler(sessionUseCase *session.SessionUseCase, flowUseCase *flow.FlowUseCase, cookieName string, secureCookie bool) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		flowUseCase:    flowUseCase,
		cookieName:     cookieName,
		secureCookie:   secureCookie,
	}
}

// OpenSessionResponse is returned when a visitor first arrives.
type OpenSessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
	View      *view.Screen `json:"view"`
}

// ProfileResponse wraps the session profile; Profile is null before the
// first accepted photo.
type ProfileResponse struct {
	Profile               *domain.UserProfile `json:"profile"`
	MeasurementsCommitted bool                `json:"measurements_committed"`
}

// Open handles POST /session
// @Summary Open session
// @Description Create an empty session with the demo wardrobe, starting on the welcome screen
// @Tags session
// @Produce json
// @Success 201 {object} OpenSessionResponse
// @Failure 500 {object} ErrorResponse
// @Router /session [post]
func (h *SessionHandler) Open(c *gin.Context) {
	result, err := h.sessionUseCase.Open(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	v, err := view.Render(result.Session, h.flowUseCase.NavItems(), view.Options{})
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(result.ExpiresAt - result.Session.CreatedAt.Unix())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, result.Token, maxAge, "/", "", h.secureCookie, true)

	c.JSON(http.StatusCreated, OpenSessionResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		View:      v,
	})
}

// GetProfile handles GET /profile
// @Summary Get profile
// @Tags session
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Router /profile [get]
func (h *SessionHandler) GetProfile(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	s, err := h.sessionUseCase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Profile:               s.Profile,
		MeasurementsCommitted: s.MeasurementsCommitted,
	})
}

// Reset handles POST /session/reset
// @Summary Reset profile
// @Description Drop the profile and return to the welcome screen
// @Tags session
// @Security BearerAuth
// @Produce json
// @Success 200 {object} view.Screen
// @Failure 401 {object} ErrorResponse
// @Router /session/reset [post]
func (h *SessionHandler) Reset(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	s, err := h.sessionUseCase.Reset(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondScreen(c, h.flowUseCase, s, view.Options{})
}
