package handler

import (
	"net/http"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/wardrobe"
	"github.com/gin-gonic/gin"
)

type WardrobeHandler struct {
	wardrobeUseCase *wardrobe.WardrobeUseCase
}

func NewWardrobeHandler(wardrobeUseCase *wardrobe.WardrobeUseCase) *WardrobeHandler {
	return &WardrobeHandler{
		wardrobeUseCase: wardrobeUseCase,
	}
}

type WardrobeResponse struct {
	Items []domain.WardrobeItem `json:"items"`
}

// ListItems handles GET /wardrobe/items
// @Summary List wardrobe items
// @Tags wardrobe
// @Security BearerAuth
// @Produce json
// @Param tab query string false "Category tab (All, Tops, Bottoms, Dresses, Shoes)"
// @Success 200 {object} WardrobeResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /wardrobe/items [get]
func (h *WardrobeHandler) ListItems(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	items, err := h.wardrobeUseCase.List(c.Request.Context(), id, c.Query("tab"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, WardrobeResponse{Items: items})
}

// AddItem handles POST /wardrobe/items
// @Summary Add a wardrobe item
// @Description Prepends an item. With auto_tag the image is tagged by the AI service.
// @Tags wardrobe
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body wardrobe.AddItemRequest true "Item"
// @Success 201 {object} WardrobeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /wardrobe/items [post]
func (h *WardrobeHandler) AddItem(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req wardrobe.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	s, err := h.wardrobeUseCase.Add(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, WardrobeResponse{Items: s.Wardrobe})
}
