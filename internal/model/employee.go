package model

import (
	"time"

	"github.com/google/uuid"
)

// Employee links a user to a clinic as staff (receptionist, groomer, ...).
type Employee struct {
	Base
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	ClinicID    uuid.UUID  `json:"clinic_id" db:"clinic_id"`
	Position    string     `json:"position" db:"position"`
	Description *string    `json:"description,omitempty" db:"description"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	HiredAt     time.Time  `json:"hired_at" db:"hired_at"`
	FiredAt     *time.Time `json:"fired_at,omitempty" db:"fired_at"`
}

type CreateEmployeeRequest struct {
	UserID      uuid.UUID `json:"user_id" binding:"required"`
	Position    string    `json:"position" binding:"required,max=100"`
	Description *string   `json:"description" binding:"omitempty,max=500"`
}

type UpdateEmployeeRequest struct {
	Position    *string `json:"position" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}
