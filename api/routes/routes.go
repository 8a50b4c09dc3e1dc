package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veselicnik/srecke-backend/internal/auth"
	"github.com/veselicnik/srecke-backend/internal/config"
	"github.com/veselicnik/srecke-backend/internal/handlers"
	"github.com/veselicnik/srecke-backend/internal/middleware"
)

// HandlerDependencies holds the handlers and the token verifier the router is built from
type HandlerDependencies struct {
	PrizeHandler  *handlers.PrizeHandler
	TicketHandler *handlers.TicketHandler
	DrawHandler   *handlers.DrawHandler
	Verifier      auth.Verifier
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))

	authenticated := middleware.AuthMiddleware(deps.Verifier)
	admin := middleware.RequireAdmin()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Prize routes
	prizes := router.Group("/prizes")
	{
		prizes.GET("", deps.PrizeHandler.GetPrizes)
		prizes.GET("/:eventId", deps.PrizeHandler.GetPrizesByEvent)
		prizes.POST("", authenticated, admin, deps.PrizeHandler.CreatePrize)
		prizes.PUT("/:id", authenticated, admin, deps.PrizeHandler.UpdatePrize)
		prizes.DELETE("/:id", authenticated, admin, deps.PrizeHandler.DeletePrize)
	}

	// Ticket routes
	router.POST("/ticketsAndMusicRequest", authenticated, deps.TicketHandler.CreateTicketAndMusicRequest)
	tickets := router.Group("/tickets", authenticated)
	{
		tickets.POST("", deps.TicketHandler.CreateTicket)
		tickets.GET("", deps.TicketHandler.GetTickets)
		tickets.PUT("/:id", deps.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id", deps.TicketHandler.DeleteTicket)
	}

	// Draw routes
	draws := router.Group("/draws")
	{
		draws.GET("", deps.DrawHandler.GetDraws)
		draws.GET("/:id", deps.DrawHandler.GetDrawByID)
		draws.GET("/:id/winners", authenticated, deps.DrawHandler.GetWinners)
		draws.POST("/:eventId", authenticated, admin, deps.DrawHandler.CreateDraw)
		draws.DELETE("/:id", authenticated, admin, deps.DrawHandler.DeleteDraw)
	}

	return router
}
