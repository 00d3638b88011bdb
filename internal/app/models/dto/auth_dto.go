package dto

import (
	"github.com/google/uuid"
	"github.com/yigit/lms/internal/app/models"
)

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Name     string      `json:"name" binding:"required" example:"Alice Teacher"`
	Email    string      `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string      `json:"password" binding:"required" example:"Passw0rd!"`
	Role     models.Role `json:"role" binding:"required,oneof=Student Teacher" example:"Teacher" enums:"Student,Teacher"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"Passw0rd!"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name" example:"Alice Teacher"`
	Email string      `json:"email" example:"alice@example.com"`
	Role  models.Role `json:"role" example:"Teacher"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse builds the public view of a user.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
