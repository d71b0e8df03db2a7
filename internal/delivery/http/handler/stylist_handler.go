package handler

import (
	"net/http"

	"github.com/gdugdh24/mirrorfit-backend/internal/delivery/http/view"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/stylist"
	"github.com/gin-gonic/gin"
)

type StylistHandler struct {
	stylistUseCase *stylist.StylistUseCase
	flowUseCase    *flow.FlowUseCase
}

func NewStylistHandler(stylistUseCase *stylist.StylistUseCase, flowUseCase *flow.FlowUseCase) *StylistHandler {
	return &StylistHandler{
		stylistUseCase: stylistUseCase,
		flowUseCase:    flowUseCase,
	}
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required,max=4000"`
}

// SendMessage handles POST /stylist/messages
// @Summary Send a message to the stylist
// @Tags stylist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SendMessageRequest true "Message text"
// @Success 200 {object} view.Screen
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /stylist/messages [post]
func (h *StylistHandler) SendMessage(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	s, err := h.stylistUseCase.Send(c.Request.Context(), id, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	respondScreen(c, h.flowUseCase, s, view.Options{})
}
