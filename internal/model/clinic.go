package model

import (
	"github.com/google/uuid"
)

type Clinic struct {
	Base
	OwnerID       uuid.UUID `json:"owner_id" db:"owner_id"`
	Name          string    `json:"name" db:"name"`
	Address       *string   `json:"address,omitempty" db:"address"`
	City          *string   `json:"city,omitempty" db:"city"`
	State         *string   `json:"state,omitempty" db:"state"`
	ZipCode       *string   `json:"zip_code,omitempty" db:"zip_code"`
	Phone         *string   `json:"phone,omitempty" db:"phone"`
	Email         *string   `json:"email,omitempty" db:"email"`
	BusinessHours *string   `json:"business_hours,omitempty" db:"business_hours"`
	Description   *string   `json:"description,omitempty" db:"description"`
	PhotoURL      *string   `json:"photo_url,omitempty" db:"photo_url"`
	AverageRating *float64  `json:"average_rating,omitempty" db:"average_rating"`
	TotalReviews  int       `json:"total_reviews" db:"total_reviews"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	IsVerified    bool      `json:"is_verified" db:"is_verified"`
}

// CreateClinicRequest is shared by create and full update.
type CreateClinicRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	State         *string `json:"state" binding:"omitempty,max=2"`
	ZipCode       *string `json:"zip_code" binding:"omitempty,max=20"`
	Phone         *string `json:"phone" binding:"omitempty,max=20"`
	Email         *string `json:"email" binding:"omitempty,email,max=320"`
	BusinessHours *string `json:"business_hours" binding:"omitempty,max=500"`
	Description   *string `json:"description" binding:"omitempty,max=2000"`
	PhotoURL      *string `json:"photo_url" binding:"omitempty,max=500"`
}
