package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veselicnik/srecke-backend/internal/services"
)

// DrawHandler handles draw-related HTTP requests
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{drawService: drawService}
}

// GetDraws handles GET /draws, newest first, with an optional ?eventId= filter
func (h *DrawHandler) GetDraws(c *gin.Context) {
	draws, err := h.drawService.ListDraws(c.Request.Context(), c.Query("eventId"))
	if err != nil {
		respondError(c, err, "Draw", "retrieve draws")
		return
	}
	c.JSON(http.StatusOK, draws)
}

// GetDrawByID handles GET /draws/:id
func (h *DrawHandler) GetDrawByID(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	draw, err := h.drawService.GetDraw(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Draw", "retrieve draw")
		return
	}
	c.JSON(http.StatusOK, draw)
}

// CreateDraw handles POST /draws/:eventId
func (h *DrawHandler) CreateDraw(c *gin.Context) {
	draw, err := h.drawService.CreateDraw(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondError(c, err, "Draw", "create draw")
		return
	}
	c.JSON(http.StatusCreated, draw)
}

// GetWinners handles GET /draws/:id/winners
func (h *DrawHandler) GetWinners(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	winners, err := h.drawService.GetWinners(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Draw", "retrieve winners")
		return
	}
	c.JSON(http.StatusOK, winners)
}

// DeleteDraw handles DELETE /draws/:id
func (h *DrawHandler) DeleteDraw(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.drawService.DeleteDraw(c.Request.Context(), id); err != nil {
		respondError(c, err, "Draw", "delete draw")
		return
	}
	c.Status(http.StatusNoContent)
}
