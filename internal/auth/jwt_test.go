package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func accessClaimsFor(userType string, exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":       "665f1c2e9b1e8a0012345678",
		"username":  "spela",
		"email":     "spela@example.com",
		"user_type": userType,
		"type":      "access",
		"iss":       "veselicnik",
		"aud":       "veselicnik-users",
		"exp":       exp.Unix(),
	}
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier(testSecret, "veselicnik", "veselicnik-users")
	future := time.Now().Add(time.Hour)

	refresh := accessClaimsFor("normal", future)
	refresh["type"] = "refresh"

	wrongIssuer := accessClaimsFor("normal", future)
	wrongIssuer["iss"] = "someone-else"

	noExp := accessClaimsFor("normal", future)
	delete(noExp, "exp")

	tests := []struct {
		name      string
		token     string
		wantErr   bool
		wantAdmin bool
	}{
		{"valid admin", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), accessClaimsFor("admin", future)), false, true},
		{"valid normal user", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), accessClaimsFor("normal", future)), false, false},
		{"expired", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), accessClaimsFor("admin", time.Now().Add(-time.Minute))), true, false},
		{"wrong secret", signToken(t, jwt.SigningMethodHS256, []byte("other"), accessClaimsFor("admin", future)), true, false},
		{"wrong algorithm", signToken(t, jwt.SigningMethodHS384, []byte(testSecret), accessClaimsFor("admin", future)), true, false},
		{"refresh token", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), refresh), true, false},
		{"wrong issuer", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer), true, false},
		{"missing expiry", signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExp), true, false},
		{"garbage", "not.a.token", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := v.Verify(context.Background(), tt.token)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidToken) {
					t.Fatalf("Expected ErrInvalidToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if identity.UserID != "665f1c2e9b1e8a0012345678" || identity.Username != "spela" {
				t.Errorf("Unexpected identity: %+v", identity)
			}
			if identity.IsAdmin() != tt.wantAdmin {
				t.Errorf("Expected admin=%v, got %v", tt.wantAdmin, identity.IsAdmin())
			}
			if identity.ExpiresAt.Unix() != future.Unix() {
				t.Errorf("Expected expiry %v, got %v", future.Unix(), identity.ExpiresAt.Unix())
			}
		})
	}
}
