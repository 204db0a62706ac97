package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked, please try again later")
	ErrNoSession          = errors.New("no session")
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type SwitchBranchRequest struct {
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
}

// Session is the server-side record behind a bearer token: who is logged
// in, their permission menu, and the branch their requests are scoped to.
type Session struct {
	Token     string    `json:"token"`
	User      *User     `json:"user"`
	Menu      Menu      `json:"menu"`
	BranchID  uuid.UUID `json:"branch_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResponse is what a successful credential exchange returns.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
	Menu        Menu      `json:"menu"`
	BranchID    uuid.UUID `json:"branch_id"`
}
