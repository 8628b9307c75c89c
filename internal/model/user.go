package model

import (
	"time"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
)

// User represents a platform account: a tutor (pet owner), a veterinarian
// (clinic owner) or an admin.
type User struct {
	Base
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         authz.Role `json:"role" db:"role"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`

	// Company fields, veterinarians only.
	CompanyName        *string `json:"company_name,omitempty" db:"company_name"`
	CompanyDocument    *string `json:"company_document,omitempty" db:"company_document"`
	CompanyType        *string `json:"company_type,omitempty" db:"company_type"`
	CompanyDescription *string `json:"company_description,omitempty" db:"company_description"`

	IsEmailVerified bool       `json:"is_email_verified" db:"is_email_verified"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	IsBlocked       bool       `json:"is_blocked" db:"is_blocked"`
	BlockReason     *string    `json:"block_reason,omitempty" db:"block_reason"`
	LastSignedIn    *time.Time `json:"last_signed_in,omitempty" db:"last_signed_in"`
}

// RegisterRequest creates a new tutor or veterinarian account. The Admin role
// is not assignable through the API.
type RegisterRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=255"`
	Email           string  `json:"email" binding:"required,email,max=320"`
	Password        string  `json:"password" binding:"required,min=8,max=128"`
	Role            int     `json:"role" binding:"oneof=0 1"`
	Phone           *string `json:"phone" binding:"omitempty,max=20"`
	CompanyName     *string `json:"company_name" binding:"omitempty,max=255"`
	CompanyDocument *string `json:"company_document" binding:"omitempty,max=18"`
	CompanyType     *string `json:"company_type" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
