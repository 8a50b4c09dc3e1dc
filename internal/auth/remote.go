package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/veselicnik/srecke-backend/internal/models"
)

// RemoteVerifier posts the token to the user service's verify-token endpoint
type RemoteVerifier struct {
	URL    string
	client *http.Client
}

var _ Verifier = (*RemoteVerifier)(nil)

// NewRemoteVerifier creates a RemoteVerifier. A zero timeout means 5 seconds.
func NewRemoteVerifier(url string, timeout time.Duration) *RemoteVerifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteVerifier{
		URL:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Verify asks the user service about token. Transport errors and non-2xx
// statuses wrap ErrGateUnavailable; a response with valid != true wraps ErrInvalidToken.
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*models.Identity, error) {
	body, err := json.Marshal(models.VerifyTokenRequest{Token: token})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: verify-token returned %d", ErrGateUnavailable, resp.StatusCode)
	}

	var out models.VerifyTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode verify-token response: %v", ErrGateUnavailable, err)
	}
	if !out.Valid {
		if out.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidToken, out.Error)
		}
		return nil, ErrInvalidToken
	}

	return &models.Identity{
		UserID:    out.UserID,
		Username:  out.Username,
		Email:     out.Email,
		UserType:  out.UserType,
		ExpiresAt: unverifiedExpiry(token),
	}, nil
}

// unverifiedExpiry reads exp from a token the user service has already accepted.
// Opaque or exp-less tokens yield the zero time.
func unverifiedExpiry(token string) time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
