package handler

import (
	"github.com/gdugdh24/mirrorfit-backend/internal/delivery/http/view"
	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/wardrobe"
	"github.com/gin-gonic/gin"
)

type ScreenHandler struct {
	flowUseCase *flow.FlowUseCase
}

func NewScreenHandler(flowUseCase *flow.FlowUseCase) *ScreenHandler {
	return &ScreenHandler{
		flowUseCase: flowUseCase,
	}
}

// Show handles GET /screens/*path
// @Summary Navigate to a screen
// @Description Resolve the requested path against the onboarding gates and render the screen actually shown
// @Tags screens
// @Security BearerAuth
// @Produce json
// @Param path path string true "Screen path, e.g. /try-on"
// @Param tab query string false "Wardrobe category tab"
// @Success 200 {object} view.Screen
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /screens/{path} [get]
func (h *ScreenHandler) Show(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	requested, err := domain.ParseScreen(c.Param("path"))
	if err != nil {
		respondError(c, err)
		return
	}
	tab := c.Query("tab")
	if requested == domain.ScreenWardrobe {
		if _, err := wardrobe.LookupTab(tab); err != nil {
			respondError(c, err)
			return
		}
	}

	s, redirected, err := h.flowUseCase.Navigate(c.Request.Context(), id, requested)
	if err != nil {
		respondError(c, err)
		return
	}

	respondScreen(c, h.flowUseCase, s, view.Options{
		Requested:   requested,
		Redirected:  redirected,
		WardrobeTab: tab,
	})
}

// Back handles POST /screens/back
// @Summary Go back one onboarding step
// @Tags screens
// @Security BearerAuth
// @Produce json
// @Success 200 {object} view.Screen
// @Failure 409 {object} ErrorResponse
// @Router /screens/back [post]
func (h *ScreenHandler) Back(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	s, err := h.flowUseCase.Back(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondScreen(c, h.flowUseCase, s, view.Options{})
}
