package model

import (
	"github.com/google/uuid"
)

// Service is a bookable offering belonging to a clinic. Services are never
// hard-deleted; IsActive=false retires them while preserving historical
// appointment references.
type Service struct {
	Base
	ClinicID    uuid.UUID `json:"clinic_id" db:"clinic_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Duration    *int      `json:"duration,omitempty" db:"duration"` // minutes
	IsActive    bool      `json:"is_active" db:"is_active"`
}

// CreateServiceRequest is shared by create and full update.
type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required,min=3,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Price       float64 `json:"price" binding:"required,gt=0,lte=100000"`
	Duration    *int    `json:"duration" binding:"omitempty,gte=5,lte=480"`
}
