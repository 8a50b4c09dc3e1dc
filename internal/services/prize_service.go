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

// Compile-time check to ensure PrizeServiceImpl implements PrizeService
var _ PrizeService = (*PrizeServiceImpl)(nil)

// PrizeServiceImpl implements PrizeService
type PrizeServiceImpl struct {
	prizeRepo repositories.PrizeRepository
}

// NewPrizeService creates a new PrizeServiceImpl
func NewPrizeService(prizeRepo repositories.PrizeRepository) *PrizeServiceImpl {
	return &PrizeServiceImpl{prizeRepo: prizeRepo}
}

// ListPrizes returns prizes in the order they were created
func (s *PrizeServiceImpl) ListPrizes(ctx context.Context, eventID string) ([]*models.Prize, error) {
	var (
		prizes []*models.Prize
		err    error
	)
	if eventID == "" {
		prizes, err = s.prizeRepo.FindAll(ctx)
	} else {
		prizes, err = s.prizeRepo.FindByEventID(ctx, eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list prizes: %w", err)
	}
	return prizes, nil
}

// CreatePrize validates and stores a new prize
func (s *PrizeServiceImpl) CreatePrize(ctx context.Context, req *models.CreatePrizeRequest) (*models.Prize, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	eventID := strings.TrimSpace(req.EventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: eventId is required", ErrValidation)
	}
	if err := validateProbability(req.Probability); err != nil {
		return nil, err
	}

	prize := &models.Prize{
		Name:        name,
		EventID:     eventID,
		Probability: req.Probability,
	}
	if err := s.prizeRepo.Create(ctx, prize); err != nil {
		slog.Error("Failed to create prize", "error", err, "eventId", eventID)
		return nil, fmt.Errorf("failed to create prize: %w", err)
	}
	slog.Info("Prize created", "prizeId", prize.ID.Hex(), "eventId", eventID, "name", name)
	return prize, nil
}

// UpdatePrize changes name and/or probability. The event binding is fixed at creation.
func (s *PrizeServiceImpl) UpdatePrize(ctx context.Context, id primitive.ObjectID, req *models.UpdatePrizeRequest) (*models.Prize, error) {
	if req.EventID != nil {
		return nil, fmt.Errorf("%w: eventId cannot be changed", ErrValidation)
	}
	if req.Name == nil && req.Probability == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	prize, err := s.prizeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: prize %s", ErrNotFound, id.Hex())
		}
		return nil, fmt.Errorf("failed to find prize: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		prize.Name = name
	}
	if req.Probability != nil {
		if err := validateProbability(*req.Probability); err != nil {
			return nil, err
		}
		prize.Probability = *req.Probability
	}

	if err := s.prizeRepo.Update(ctx, prize); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: prize %s", ErrNotFound, id.Hex())
		}
		slog.Error("Failed to update prize", "error", err, "prizeId", id.Hex())
		return nil, fmt.Errorf("failed to update prize: %w", err)
	}
	slog.Info("Prize updated", "prizeId", id.Hex())
	return prize, nil
}

// DeletePrize removes a prize. Draws that already awarded it keep the snapshotted name.
func (s *PrizeServiceImpl) DeletePrize(ctx context.Context, id primitive.ObjectID) error {
	if err := s.prizeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: prize %s", ErrNotFound, id.Hex())
		}
		slog.Error("Failed to delete prize", "error", err, "prizeId", id.Hex())
		return fmt.Errorf("failed to delete prize: %w", err)
	}
	slog.Info("Prize deleted", "prizeId", id.Hex())
	return nil
}

func validateProbability(p float64) error {
	// NaN fails both comparisons
	if !(p > 0 && p <= 1) {
		return fmt.Errorf("%w: probability must be in (0, 1]", ErrValidation)
	}
	return nil
}
