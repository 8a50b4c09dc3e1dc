package repositories

import (
	"context"
	"errors"

	"github.com/veselicnik/srecke-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when no document matches the requested id
var ErrNotFound = errors.New("record not found")

// PrizeRepository defines the interface for prize data operations
type PrizeRepository interface {
	Create(ctx context.Context, prize *models.Prize) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Prize, error)
	// FindAll and FindByEventID return prizes in insertion order
	FindAll(ctx context.Context) ([]*models.Prize, error)
	FindByEventID(ctx context.Context, eventID string) ([]*models.Prize, error)
	Update(ctx context.Context, prize *models.Prize) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TicketRepository defines the interface for ticket data operations
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Ticket, error)
	FindAll(ctx context.Context) ([]*models.Ticket, error)
	FindByEventID(ctx context.Context, eventID string) ([]*models.Ticket, error)
	Update(ctx context.Context, ticket *models.Ticket) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// DrawRepository defines the interface for draw data operations.
// Draws are never updated in place.
type DrawRepository interface {
	Create(ctx context.Context, draw *models.Draw) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error)
	// FindAll and FindByEventID return the newest draw first
	FindAll(ctx context.Context) ([]*models.Draw, error)
	FindByEventID(ctx context.Context, eventID string) ([]*models.Draw, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
