// Package auth verifies bearer tokens against the Veseličnik user service.
package auth

import (
	"context"
	"errors"

	"github.com/veselicnik/srecke-backend/internal/models"
)

var (
	// ErrInvalidToken means the token was checked and rejected
	ErrInvalidToken = errors.New("invalid token")
	// ErrGateUnavailable means the token could not be checked at all
	ErrGateUnavailable = errors.New("authentication service unavailable")
)

// Verifier turns a bearer token into the identity it was issued to
type Verifier interface {
	Verify(ctx context.Context, token string) (*models.Identity, error)
}
