package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/veselicnik/srecke-backend/internal/models"
	"github.com/veselicnik/srecke-backend/internal/repositories/memory"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestPrizeService_CreatePrize(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreatePrizeRequest
		wantErr error
	}{
		{"valid", models.CreatePrizeRequest{Name: "Kolo", Probability: 0.1, EventID: "ev1"}, nil},
		{"probability of one", models.CreatePrizeRequest{Name: "Torta", Probability: 1, EventID: "ev1"}, nil},
		{"zero probability", models.CreatePrizeRequest{Name: "Kolo", Probability: 0, EventID: "ev1"}, ErrValidation},
		{"negative probability", models.CreatePrizeRequest{Name: "Kolo", Probability: -0.2, EventID: "ev1"}, ErrValidation},
		{"probability above one", models.CreatePrizeRequest{Name: "Kolo", Probability: 1.5, EventID: "ev1"}, ErrValidation},
		{"NaN probability", models.CreatePrizeRequest{Name: "Kolo", Probability: math.NaN(), EventID: "ev1"}, ErrValidation},
		{"blank name", models.CreatePrizeRequest{Name: "   ", Probability: 0.5, EventID: "ev1"}, ErrValidation},
		{"missing event", models.CreatePrizeRequest{Name: "Kolo", Probability: 0.5}, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPrizeService(memory.NewPrizeRepository())
			prize, err := svc.CreatePrize(context.Background(), &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if prize.ID.IsZero() {
				t.Error("Expected an id to be assigned")
			}
		})
	}
}

func TestPrizeService_CreatePrizeTrimsName(t *testing.T) {
	svc := NewPrizeService(memory.NewPrizeRepository())
	prize, err := svc.CreatePrize(context.Background(), &models.CreatePrizeRequest{Name: "  Kolo ", Probability: 0.3, EventID: "ev1"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if prize.Name != "Kolo" {
		t.Errorf("Expected trimmed name, got %q", prize.Name)
	}
}

func TestPrizeService_UpdatePrize(t *testing.T) {
	ctx := context.Background()
	svc := NewPrizeService(memory.NewPrizeRepository())
	prize, err := svc.CreatePrize(ctx, &models.CreatePrizeRequest{Name: "Kolo", Probability: 0.3, EventID: "ev1"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	t.Run("updates name and probability", func(t *testing.T) {
		got, err := svc.UpdatePrize(ctx, prize.ID, &models.UpdatePrizeRequest{Name: strPtr("Skiro"), Probability: floatPtr(0.9)})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Name != "Skiro" || got.Probability != 0.9 || got.EventID != "ev1" {
			t.Errorf("Unexpected prize after update: %+v", got)
		}
	})

	t.Run("rejects event change", func(t *testing.T) {
		_, err := svc.UpdatePrize(ctx, prize.ID, &models.UpdatePrizeRequest{EventID: strPtr("ev2")})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("Expected ErrValidation, got %v", err)
		}
	})

	t.Run("rejects invalid probability", func(t *testing.T) {
		_, err := svc.UpdatePrize(ctx, prize.ID, &models.UpdatePrizeRequest{Probability: floatPtr(0)})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("Expected ErrValidation, got %v", err)
		}
	})

	t.Run("rejects empty payload", func(t *testing.T) {
		_, err := svc.UpdatePrize(ctx, prize.ID, &models.UpdatePrizeRequest{})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("Expected ErrValidation, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdatePrize(ctx, primitive.NewObjectID(), &models.UpdatePrizeRequest{Name: strPtr("x")})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestPrizeService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewPrizeService(memory.NewPrizeRepository())
	for _, req := range []models.CreatePrizeRequest{
		{Name: "A", Probability: 0.1, EventID: "ev1"},
		{Name: "B", Probability: 0.2, EventID: "ev2"},
		{Name: "C", Probability: 0.3, EventID: "ev1"},
	} {
		req := req
		if _, err := svc.CreatePrize(ctx, &req); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	all, err := svc.ListPrizes(ctx, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("Expected 3 prizes, got %d (err %v)", len(all), err)
	}
	ev1, _ := svc.ListPrizes(ctx, "ev1")
	if len(ev1) != 2 || ev1[0].Name != "A" || ev1[1].Name != "C" {
		t.Fatalf("Expected [A C] for ev1, got %+v", ev1)
	}

	if err := svc.DeletePrize(ctx, ev1[0].ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := svc.DeletePrize(ctx, ev1[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on second delete, got %v", err)
	}
}
