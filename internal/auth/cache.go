package auth

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/veselicnik/srecke-backend/internal/models"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/slog"
)

const cacheKeyPrefix = "srecke:auth:"

// CachingVerifier remembers successful verifications in Redis for a short TTL.
// Only accepted tokens are cached, and tokens are stored as BLAKE2b digests.
// An entry never outlives the token's exp when the identity carries one.
// Redis failures fall through to the wrapped Verifier.
type CachingVerifier struct {
	next   Verifier
	client *redis.Client
	ttl    time.Duration
}

var _ Verifier = (*CachingVerifier)(nil)

// NewCachingVerifier wraps next with a Redis-backed cache
func NewCachingVerifier(next Verifier, client *redis.Client, ttl time.Duration) *CachingVerifier {
	return &CachingVerifier{next: next, client: client, ttl: ttl}
}

func (v *CachingVerifier) Verify(ctx context.Context, token string) (*models.Identity, error) {
	key := cacheKey(token)

	cached, err := v.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var identity models.Identity
		if jsonErr := json.Unmarshal(cached, &identity); jsonErr == nil && !expired(&identity, time.Now()) {
			return &identity, nil
		}
	case !errors.Is(err, redis.Nil):
		slog.Warn("Auth cache read failed", "error", err)
	}

	identity, err := v.next.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	ttl := v.ttlFor(identity, time.Now())
	if ttl <= 0 {
		return identity, nil
	}
	if data, err := json.Marshal(identity); err == nil {
		if err := v.client.Set(ctx, key, data, ttl).Err(); err != nil {
			slog.Warn("Auth cache write failed", "error", err)
		}
	}
	return identity, nil
}

// ttlFor caps the configured TTL at the token's remaining lifetime
func (v *CachingVerifier) ttlFor(identity *models.Identity, now time.Time) time.Duration {
	if identity.ExpiresAt.IsZero() {
		return v.ttl
	}
	if remaining := identity.ExpiresAt.Sub(now); remaining < v.ttl {
		return remaining
	}
	return v.ttl
}

func expired(identity *models.Identity, now time.Time) bool {
	return !identity.ExpiresAt.IsZero() && !now.Before(identity.ExpiresAt)
}

func cacheKey(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
