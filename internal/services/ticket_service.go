package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/veselicnik/srecke-backend/internal/models"
	"github.com/veselicnik/srecke-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure TicketServiceImpl implements TicketService
var _ TicketService = (*TicketServiceImpl)(nil)

// TicketServiceImpl implements TicketService
type TicketServiceImpl struct {
	ticketRepo repositories.TicketRepository
	music      MusicRequester
}

// NewTicketService creates a new TicketServiceImpl.
// music may be nil, in which case combined requests report a forwarding error.
func NewTicketService(ticketRepo repositories.TicketRepository, music MusicRequester) *TicketServiceImpl {
	return &TicketServiceImpl{ticketRepo: ticketRepo, music: music}
}

// CreateTicket binds a new ticket to userID and eventID
func (s *TicketServiceImpl) CreateTicket(ctx context.Context, userID, eventID string) (*models.Ticket, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: eventId is required", ErrValidation)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	ticket := &models.Ticket{UserID: userID, EventID: eventID}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		slog.Error("Failed to create ticket", "error", err, "eventId", eventID, "userId", userID)
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	slog.Info("Ticket created", "ticketId", ticket.ID.Hex(), "eventId", eventID, "userId", userID)
	return ticket, nil
}

// CreateTicketAndMusicRequest creates the ticket first and then forwards the song request
func (s *TicketServiceImpl) CreateTicketAndMusicRequest(ctx context.Context, userID, bearerToken string, req *models.TicketAndMusicRequest) (*models.TicketWithMusicRequest, error) {
	if strings.TrimSpace(req.SongName) == "" {
		return nil, fmt.Errorf("%w: songName is required", ErrValidation)
	}
	ticket, err := s.CreateTicket(ctx, userID, req.EventID)
	if err != nil {
		return nil, err
	}

	result := &models.TicketWithMusicRequest{Ticket: ticket}
	if s.music == nil {
		result.MusicRequestError = "music service is not configured"
		return result, nil
	}

	resp, err := s.music.CreateRequest(ctx, bearerToken, &models.MusicRequest{
		SongName:   strings.TrimSpace(req.SongName),
		Artist:     strings.TrimSpace(req.Artist),
		VeselicaID: ticket.EventID,
	})
	if err != nil {
		// The ticket stays; the caller learns about the failed forward from the response.
		slog.Warn("Music request failed after ticket creation", "error", err, "ticketId", ticket.ID.Hex(), "eventId", ticket.EventID)
		result.MusicRequestError = err.Error()
		return result, nil
	}
	result.MusicRequestResponse = resp
	return result, nil
}

func (s *TicketServiceImpl) ListTickets(ctx context.Context, eventID string) ([]*models.Ticket, error) {
	var (
		tickets []*models.Ticket
		err     error
	)
	if eventID == "" {
		tickets, err = s.ticketRepo.FindAll(ctx)
	} else {
		tickets, err = s.ticketRepo.FindByEventID(ctx, eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

// UpdateTicket reassigns a ticket to another user
func (s *TicketServiceImpl) UpdateTicket(ctx context.Context, id primitive.ObjectID, req *models.UpdateTicketRequest) (*models.Ticket, error) {
	if req.UserID == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	userID := strings.TrimSpace(*req.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId must not be empty", ErrValidation)
	}

	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ticket %s", ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	ticket.UserID = userID

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ticket %s", ErrNotFound, id.Hex())
		}
		slog.Error("Failed to update ticket", "error", err, "ticketId", id.Hex())
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	return ticket, nil
}

func (s *TicketServiceImpl) DeleteTicket(ctx context.Context, id primitive.ObjectID) error {
	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: ticket %s", ErrNotFound, id.Hex())
		}
		slog.Error("Failed to delete ticket", "error", err, "ticketId", id.Hex())
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	return nil
}
