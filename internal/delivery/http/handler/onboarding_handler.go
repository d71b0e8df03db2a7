package handler

import (
	"context"
	"net/http"

	"github.com/gdugdh24/mirrorfit-backend/internal/delivery/http/view"
	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/onboarding"
	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingUseCase *onboarding.OnboardingUseCase
	flowUseCase       *flow.FlowUseCase
}

func NewOnboardingHandler(onboardingUseCase *onboarding.OnboardingUseCase, flowUseCase *flow.FlowUseCase) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingUseCase: onboardingUseCase,
		flowUseCase:       flowUseCase,
	}
}

// ToggleStyleRequest names one style tag.
type ToggleStyleRequest struct {
	StyleID string `json:"style_id" binding:"required"`
}

// Start handles POST /welcome/start
// @Summary Start onboarding
// @Tags onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} view.Screen
// @Router /welcome/start [post]
func (h *OnboardingHandler) Start(c *gin.Context) {
	runAction(c, h.flowUseCase, h.onboardingUseCase.Start)
}

// UploadPhoto handles POST /onboarding/photo
// @Summary Upload profile photo
// @Description Accepts a multipart "photo" file or a JSON data URL and runs the quality check
// @Tags onboarding
// @Security BearerAuth
// @Accept json,mpfd
// @Produce json
// @Param request body ImageRequest false "Photo as data URL"
// @Success 200 {object} view.Screen
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /onboarding/photo [post]
func (h *OnboardingHandler) UploadPhoto(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	dataURL, err := readImage(c, "photo")
	if err != nil {
		respondError(c, err)
		return
	}

	s, err := h.onboardingUseCase.UploadPhoto(c.Request.Context(), id, dataURL)
	if err != nil {
		respondError(c, err)
		return
	}

	respondScreen(c, h.flowUseCase, s, view.Options{})
}

// PhotoNext handles POST /onboarding/photo/next
// @Summary Continue to measurements
// @Tags onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} view.Screen
// @Failure 409 {object} ErrorResponse
// @Router /onboarding/photo/next [post]
func (h *OnboardingHandler) PhotoNext(c *gin.Context) {
	runAction(c, h.flowUseCase, h.onboardingUseCase.PhotoNext)
}

// EditMeasurements handles PATCH /onboarding/measurements
// @Summary Edit measurements
// @Description Change the on-screen values without committing them to the profile
// @Tags onboarding
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body onboarding.MeasurementsInput true "Measurement values"
// @Success 200 {object} view.Screen
// @Failure 400 {object} ErrorResponse
// @Router /onboarding/measurements [patch]
func (h *OnboardingHandler) EditMeasurements(c *gin.Context) {
	h.measurements(c, h.onboardingUseCase.EditMeasurements)
}

// CommitMeasurements handles POST /onboarding/measurements
// @Summary Save measurements and continue
// @Tags onboarding
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body onboarding.MeasurementsInput false "Final measurement values"
// @Success 200 {object} view.Screen
// @Failure 400 {object} ErrorResponse
// @Router /onboarding/measurements [post]
func (h *OnboardingHandler) CommitMeasurements(c *gin.Context) {
	h.measurements(c, h.onboardingUseCase.MeasurementsNext)
}

// ToggleStyle handles POST /onboarding/styles/toggle
// @Summary Toggle a style tag
// @Tags onboarding
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ToggleStyleRequest true "Style to toggle"
// @Success 200 {object} view.Screen
// @Failure 409 {object} ErrorResponse
// @Router /onboarding/styles/toggle [post]
func (h *OnboardingHandler) ToggleStyle(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req ToggleStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	s, err := h.onboardingUseCase.ToggleStyle(c.Request.Context(), id, req.StyleID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondScreen(c, h.flowUseCase, s, view.Options{})
}

// FinishStyles handles POST /onboarding/styles/finish
// @Summary Finish onboarding
// @Description Commit the selected styles, generate the avatar and land on the dashboard
// @Tags onboarding
// @Security BearerAuth
// @Produce json
// @Success 200 {object} view.Screen
// @Failure 409 {object} ErrorResponse
// @Router /onboarding/styles/finish [post]
func (h *OnboardingHandler) FinishStyles(c *gin.Context) {
	runAction(c, h.flowUseCase, h.onboardingUseCase.FinishStyles)
}

func (h *OnboardingHandler) measurements(c *gin.Context, apply func(ctx context.Context, sessionID string, in onboarding.MeasurementsInput) (*domain.Session, error)) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var in onboarding.MeasurementsInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "invalid measurements",
			})
			return
		}
	}

	s, err := apply(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	respondScreen(c, h.flowUseCase, s, view.Options{})
}
