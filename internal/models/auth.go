package models

import "time"

// UserTypeAdmin is the user_type the user service assigns to administrators
const UserTypeAdmin = "admin"

// Identity is the verified caller, as reported by the Access Gate
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	// ExpiresAt is the token's exp claim when known; zero means unknown
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsAdmin reports whether the identity holds admin privilege
func (i *Identity) IsAdmin() bool {
	return i != nil && i.UserType == UserTypeAdmin
}

// VerifyTokenRequest is the body sent to the user service's verify-token endpoint
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// VerifyTokenResponse is the verify-token answer of the user service
type VerifyTokenResponse struct {
	Valid    bool   `json:"valid"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	Error    string `json:"error,omitempty"`
}
