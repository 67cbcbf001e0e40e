package http

import "time"

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"Thông tin đăng nhập không chính xác."`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message" example:"Đăng ký thành công."`
}

// RegisterRequest carries the registration fields.
type RegisterRequest struct {
	FirstName   string    `json:"firstName" example:"An"`
	LastName    string    `json:"lastName" example:"Nguyen"`
	DateOfBirth time.Time `json:"dateOfBirth" example:"1998-04-21T00:00:00Z"`
	Email       string    `json:"email" example:"user@example.com"`
	Password    string    `json:"password" example:"StrongPass!23"`
}

// LoginRequest carries email login fields.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"StrongPass!23"`
}

// TokenResponse is returned by the login endpoint.
type TokenResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string `json:"expires_at" example:"2024-01-02T09:30:00Z"`
}

// ForgotPasswordRequest captures the payload for requesting a reset token.
type ForgotPasswordRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

// ResetPasswordRequest captures the payload for redeeming a reset token.
type ResetPasswordRequest struct {
	Token       string `json:"token" example:"6a4f2f1e-1c7b-4a5e-a938-f1ed9b1fad10"`
	NewPassword string `json:"newPassword" example:"NewPass!45"`
}

// UpdateCustomerRequest captures the payload for profile updates.
type UpdateCustomerRequest struct {
	FirstName   string    `json:"firstName" example:"An"`
	LastName    string    `json:"lastName" example:"Nguyen"`
	DateOfBirth time.Time `json:"dateOfBirth" example:"1998-04-21T00:00:00Z"`
}
