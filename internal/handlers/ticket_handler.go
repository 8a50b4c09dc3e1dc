package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veselicnik/srecke-backend/internal/middleware"
	"github.com/veselicnik/srecke-backend/internal/models"
	"github.com/veselicnik/srecke-backend/internal/services"
)

// TicketHandler handles ticket-related HTTP requests.
// Every route runs behind middleware.AuthMiddleware.
type TicketHandler struct {
	ticketService services.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var req models.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ticket, err := h.ticketService.CreateTicket(c.Request.Context(), identity.UserID, req.EventID)
	if err != nil {
		respondError(c, err, "Ticket", "create ticket")
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// CreateTicketAndMusicRequest handles POST /ticketsAndMusicRequest
func (h *TicketHandler) CreateTicketAndMusicRequest(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var req models.TicketAndMusicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.ticketService.CreateTicketAndMusicRequest(c.Request.Context(), identity.UserID, middleware.BearerToken(c), &req)
	if err != nil {
		respondError(c, err, "Ticket", "create ticket")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetTickets handles GET /tickets with an optional ?eventId= filter
func (h *TicketHandler) GetTickets(c *gin.Context) {
	tickets, err := h.ticketService.ListTickets(c.Request.Context(), c.Query("eventId"))
	if err != nil {
		respondError(c, err, "Ticket", "retrieve tickets")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// UpdateTicket handles PUT /tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ticket, err := h.ticketService.UpdateTicket(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Ticket", "update ticket")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// DeleteTicket handles DELETE /tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.ticketService.DeleteTicket(c.Request.Context(), id); err != nil {
		respondError(c, err, "Ticket", "delete ticket")
		return
	}
	c.Status(http.StatusNoContent)
}
