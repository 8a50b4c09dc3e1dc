package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/veselicnik/srecke-backend/internal/locks"
	"github.com/veselicnik/srecke-backend/internal/models"
	"github.com/veselicnik/srecke-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl runs draws and serves their records
type DrawServiceImpl struct {
	drawRepo   repositories.DrawRepository
	ticketRepo repositories.TicketRepository
	prizeRepo  repositories.PrizeRepository
	locker     locks.EventLocker
	rng        RandomSource
	now        func() time.Time
}

// NewDrawService creates a new DrawServiceImpl.
// A nil locker disables per-event serialization; a nil rng uses a clock-seeded source.
func NewDrawService(
	drawRepo repositories.DrawRepository,
	ticketRepo repositories.TicketRepository,
	prizeRepo repositories.PrizeRepository,
	locker locks.EventLocker,
	rng RandomSource,
) *DrawServiceImpl {
	if locker == nil {
		locker = locks.NoopLocker{}
	}
	if rng == nil {
		rng = NewRandomSource(time.Now().UnixNano())
	}
	return &DrawServiceImpl{
		drawRepo:   drawRepo,
		ticketRepo: ticketRepo,
		prizeRepo:  prizeRepo,
		locker:     locker,
		rng:        rng,
		now:        time.Now,
	}
}

// CreateDraw allocates the event's prizes over its tickets and records the result
// as one draw document. Nothing is recorded if any step fails.
func (s *DrawServiceImpl) CreateDraw(ctx context.Context, eventID string) (*models.Draw, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: eventId is required", ErrValidation)
	}

	unlock, err := s.locker.Lock(ctx, eventID)
	if err != nil {
		if errors.Is(err, locks.ErrLocked) {
			slog.Warn("Draw rejected, event is locked", "eventId", eventID)
			return nil, ErrDrawInProgress
		}
		return nil, fmt.Errorf("failed to lock event %s: %w", eventID, err)
	}
	defer unlock()

	tickets, err := s.ticketRepo.FindByEventID(ctx, eventID)
	if err != nil {
		slog.Error("CreateDraw: Failed to load tickets", "error", err, "eventId", eventID)
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}
	prizes, err := s.prizeRepo.FindByEventID(ctx, eventID)
	if err != nil {
		slog.Error("CreateDraw: Failed to load prizes", "error", err, "eventId", eventID)
		return nil, fmt.Errorf("failed to load prizes: %w", err)
	}

	now := s.now()
	draw := &models.Draw{
		EventID:   eventID,
		Date:      now,
		Winners:   Allocate(tickets, prizes, s.rng),
		CreatedAt: now,
	}
	if err := s.drawRepo.Create(ctx, draw); err != nil {
		slog.Error("CreateDraw: Failed to store draw", "error", err, "eventId", eventID)
		return nil, fmt.Errorf("failed to store draw: %w", err)
	}

	slog.Info("Draw created", "drawId", draw.ID.Hex(), "eventId", eventID,
		"tickets", len(tickets), "prizes", len(prizes), "winners", len(draw.Winners))
	return draw, nil
}

// ListDraws returns draws newest first, optionally limited to one event
func (s *DrawServiceImpl) ListDraws(ctx context.Context, eventID string) ([]*models.Draw, error) {
	var (
		draws []*models.Draw
		err   error
	)
	if eventID == "" {
		draws, err = s.drawRepo.FindAll(ctx)
	} else {
		draws, err = s.drawRepo.FindByEventID(ctx, eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list draws: %w", err)
	}
	return draws, nil
}

func (s *DrawServiceImpl) GetDraw(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	draw, err := s.drawRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: draw %s", ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("failed to find draw: %w", err)
	}
	return draw, nil
}

// GetWinners resolves the winners of a draw against the current tickets and prizes.
// A ticket or prize deleted after the draw leaves the matching field nil; the raw ids are kept.
func (s *DrawServiceImpl) GetWinners(ctx context.Context, id primitive.ObjectID) ([]models.ResolvedWinner, error) {
	draw, err := s.GetDraw(ctx, id)
	if err != nil {
		return nil, err
	}

	ticketIDs := make([]primitive.ObjectID, 0, len(draw.Winners))
	prizeIDs := make([]primitive.ObjectID, 0, len(draw.Winners))
	for _, w := range draw.Winners {
		ticketIDs = append(ticketIDs, w.TicketID)
		prizeIDs = append(prizeIDs, w.PrizeID)
	}

	tickets := map[primitive.ObjectID]*models.Ticket{}
	if found, err := s.ticketRepo.FindByIDs(ctx, ticketIDs); err != nil {
		slog.Warn("GetWinners: ticket lookup failed, returning raw ids", "error", err, "drawId", id.Hex())
	} else {
		for _, t := range found {
			tickets[t.ID] = t
		}
	}
	prizes := map[primitive.ObjectID]*models.Prize{}
	if found, err := s.prizeRepo.FindByIDs(ctx, prizeIDs); err != nil {
		slog.Warn("GetWinners: prize lookup failed, returning raw ids", "error", err, "drawId", id.Hex())
	} else {
		for _, p := range found {
			prizes[p.ID] = p
		}
	}

	resolved := make([]models.ResolvedWinner, 0, len(draw.Winners))
	for _, w := range draw.Winners {
		rw := models.ResolvedWinner{Winner: w, Ticket: tickets[w.TicketID], Prize: prizes[w.PrizeID]}
		if rw.Prize != nil && rw.PrizeName == "" {
			rw.PrizeName = rw.Prize.Name
		}
		resolved = append(resolved, rw)
	}
	return resolved, nil
}

func (s *DrawServiceImpl) DeleteDraw(ctx context.Context, id primitive.ObjectID) error {
	if err := s.drawRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: draw %s", ErrNotFound, id.Hex())
		}
		slog.Error("Failed to delete draw", "error", err, "drawId", id.Hex())
		return fmt.Errorf("failed to delete draw: %w", err)
	}
	slog.Info("Draw deleted", "drawId", id.Hex())
	return nil
}
