package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veselicnik/srecke-backend/internal/models"
	"github.com/veselicnik/srecke-backend/internal/services"
)

// PrizeHandler handles prize-related HTTP requests
type PrizeHandler struct {
	prizeService services.PrizeService
}

// NewPrizeHandler creates a new PrizeHandler
func NewPrizeHandler(prizeService services.PrizeService) *PrizeHandler {
	return &PrizeHandler{prizeService: prizeService}
}

// GetPrizes handles GET /prizes with an optional ?eventId= filter
func (h *PrizeHandler) GetPrizes(c *gin.Context) {
	h.listPrizes(c, c.Query("eventId"))
}

// GetPrizesByEvent handles GET /prizes/:eventId
func (h *PrizeHandler) GetPrizesByEvent(c *gin.Context) {
	h.listPrizes(c, c.Param("eventId"))
}

func (h *PrizeHandler) listPrizes(c *gin.Context, eventID string) {
	prizes, err := h.prizeService.ListPrizes(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err, "Prize", "retrieve prizes")
		return
	}
	c.JSON(http.StatusOK, prizes)
}

// CreatePrize handles POST /prizes
func (h *PrizeHandler) CreatePrize(c *gin.Context) {
	var req models.CreatePrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prize, err := h.prizeService.CreatePrize(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Prize", "create prize")
		return
	}
	c.JSON(http.StatusCreated, prize)
}

// UpdatePrize handles PUT /prizes/:id
func (h *PrizeHandler) UpdatePrize(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req models.UpdatePrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prize, err := h.prizeService.UpdatePrize(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Prize", "update prize")
		return
	}
	c.JSON(http.StatusOK, prize)
}

// DeletePrize handles DELETE /prizes/:id
func (h *PrizeHandler) DeletePrize(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.prizeService.DeletePrize(c.Request.Context(), id); err != nil {
		respondError(c, err, "Prize", "delete prize")
		return
	}
	c.Status(http.StatusNoContent)
}
