// Package dto contains Data Transfer Objects for API request and response structures
package dto

import (
	"time"
)

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"publisher@example.com"`
	Password string `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
}

// LoginResponse represents the successful login response
type LoginResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Login successful"`
	Data    struct {
		AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
		RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
		TokenType    string    `json:"token_type" example:"Bearer"`
		ExpiresIn    int       `json:"expires_in" example:"3600"`
		User         UserInfo  `json:"user"`
		ExpiresAt    time.Time `json:"expires_at" example:"2026-01-15T16:30:00Z"`
	} `json:"data"`
}

// UserInfo represents user information returned in login response
type UserInfo struct {
	ID          uint   `json:"id" example:"123"`
	Email       string `json:"email" example:"publisher@example.com"`
	UserType    string `json:"user_type" example:"publisher"`
	DisplayName string `json:"display_name" example:"Tech Review Blog"`
	Status      string `json:"status" example:"active"`
	CreatedAt   string `json:"created_at" example:"2026-01-15T10:30:00Z"`
}

// Common error codes for login operations
const (
	ErrorUserNotFound      = "USER_NOT_FOUND"
	ErrorIncorrectPassword = "INCORRECT_PASSWORD"
	ErrorAccountInactive   = "ACCOUNT_INACTIVE"
)

func (dto *LoginResponse) SetUserInfo(userID uint, email, userType, displayName, status string, createdAt time.Time) {
	dto.Data.User = UserInfo{
		ID:          userID,
		Email:       email,
		UserType:    userType,
		DisplayName: displayName,
		Status:      status,
		CreatedAt:   createdAt.Format(time.RFC3339),
	}
}
