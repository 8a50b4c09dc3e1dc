package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/veselicnik/srecke-backend/internal/models"
)

const accessTokenType = "access"

// accessClaims mirrors the access tokens minted by the user service
type accessClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// JWTVerifier checks HS256 access tokens locally with the secret shared with the user service
type JWTVerifier struct {
	secret []byte
	opts   []jwt.ParserOption
}

var _ Verifier = (*JWTVerifier)(nil)

// NewJWTVerifier creates a JWTVerifier. issuer and audience are only enforced when non-empty.
func NewJWTVerifier(secret, issuer, audience string) *JWTVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &JWTVerifier{secret: []byte(secret), opts: opts}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*models.Identity, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token has expired", ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != accessTokenType {
		return nil, fmt.Errorf("%w: not an access token", ErrInvalidToken)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &models.Identity{
		UserID:    claims.Subject,
		Username:  claims.Username,
		Email:     claims.Email,
		UserType:  claims.UserType,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
