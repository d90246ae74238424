package auth

import (
	"github.com/menna-app/menna-backend/internal/users"
)

// RegisterRequest captures the signup payload.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token to exchange for a fresh pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RequestOTPRequest asks for a verification code to be sent to a phone.
type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

// VerifyOTPRequest submits a code for the phone being verified.
type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// ResetPasswordRequest replaces the credential for a known email.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// AuthResponse contains the token pair and user produced by a successful
// login, registration, or refresh.
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// VerifyOTPResponse reports whether the submitted code was accepted.
type VerifyOTPResponse struct {
	Verified bool `json:"verified"`
}

// ResetPasswordResponse reports whether a credential was replaced.
type ResetPasswordResponse struct {
	Reset bool `json:"reset"`
}
