package services

import (
	"context"
	"errors"

	"github.com/veselicnik/srecke-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrValidation marks malformed or out-of-range input
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an unknown prize, ticket or draw id
	ErrNotFound = errors.New("not found")
	// ErrDrawInProgress is returned when another draw of the same event holds the lock
	ErrDrawInProgress = errors.New("draw already in progress for event")
)

// PrizeService defines the prize registry operations
type PrizeService interface {
	// ListPrizes returns all prizes, or those of eventID when it is not empty
	ListPrizes(ctx context.Context, eventID string) ([]*models.Prize, error)
	CreatePrize(ctx context.Context, req *models.CreatePrizeRequest) (*models.Prize, error)
	UpdatePrize(ctx context.Context, id primitive.ObjectID, req *models.UpdatePrizeRequest) (*models.Prize, error)
	DeletePrize(ctx context.Context, id primitive.ObjectID) error
}

// TicketService defines the ticket pool operations
type TicketService interface {
	CreateTicket(ctx context.Context, userID, eventID string) (*models.Ticket, error)
	// CreateTicketAndMusicRequest creates a ticket and then forwards a music request on the
	// caller's behalf. A failed forward does not roll the ticket back.
	CreateTicketAndMusicRequest(ctx context.Context, userID, bearerToken string, req *models.TicketAndMusicRequest) (*models.TicketWithMusicRequest, error)
	ListTickets(ctx context.Context, eventID string) ([]*models.Ticket, error)
	UpdateTicket(ctx context.Context, id primitive.ObjectID, req *models.UpdateTicketRequest) (*models.Ticket, error)
	DeleteTicket(ctx context.Context, id primitive.ObjectID) error
}

// DrawService defines the draw lifecycle operations
type DrawService interface {
	CreateDraw(ctx context.Context, eventID string) (*models.Draw, error)
	ListDraws(ctx context.Context, eventID string) ([]*models.Draw, error)
	GetDraw(ctx context.Context, id primitive.ObjectID) (*models.Draw, error)
	GetWinners(ctx context.Context, id primitive.ObjectID) ([]models.ResolvedWinner, error)
	DeleteDraw(ctx context.Context, id primitive.ObjectID) error
}

// MusicRequester forwards music requests to the music service
type MusicRequester interface {
	CreateRequest(ctx context.Context, bearerToken string, req *models.MusicRequest) (interface{}, error)
}
