package handler

import (
	"github.com/gdugdh24/mirrorfit-backend/internal/delivery/http/view"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/tryon"
	"github.com/gin-gonic/gin"
)

type TryOnHandler struct {
	tryOnUseCase *tryon.TryOnUseCase
	flowUseCase  *flow.FlowUseCase
}

func NewTryOnHandler(tryOnUseCase *tryon.TryOnUseCase, flowUseCase *flow.FlowUseCase) *TryOnHandler {
	return &TryOnHandler{
		tryOnUseCase: tryOnUseCase,
		flowUseCase:  flowUseCase,
	}
}

// SelectGarment handles POST /try-on/garment
// @Summary Select garment
// @Tags try-on
// @Security BearerAuth
// @Accept json,mpfd
// @Produce json
// @Param request body ImageRequest false "Garment as data URL"
// @Success 200 {object} view.Screen
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /try-on/garment [post]
func (h *TryOnHandler) SelectGarment(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	dataURL, err := readImage(c, "garment")
	if err != nil {
		respondError(c, err)
		return
	}

	s, err := h.tryOnUseCase.SelectGarment(c.Request.Context(), id, dataURL)
	if err != nil {
		respondError(c, err)
		return
	}

	respondScreen(c, h.flowUseCase, s, view.Options{})
}

// Generate handles POST /try-on/generate
// @Summary Generate try-on
// @Description Synthesize the try-on image and analyze fit. Always ends on the result step.
// @Tags try-on
// @Security BearerAuth
// @Produce json
// @Success 200 {object} view.Screen
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /try-on/generate [post]
func (h *TryOnHandler) Generate(c *gin.Context) {
	runAction(c, h.flowUseCase, h.tryOnUseCase.Generate)
}

// Reset handles POST /try-on/reset
// @Summary Try another item
// @Tags try-on
// @Security BearerAuth
// @Produce json
// @Success 200 {object} view.Screen
// @Router /try-on/reset [post]
func (h *TryOnHandler) Reset(c *gin.Context) {
	runAction(c, h.flowUseCase, h.tryOnUseCase.Reset)
}
