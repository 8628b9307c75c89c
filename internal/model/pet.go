package model

import (
	"time"

	"github.com/google/uuid"
)

type Pet struct {
	Base
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Species     string    `json:"species" db:"species"`
	Breed       string    `json:"breed" db:"breed"`
	Weight      float64   `json:"weight" db:"weight"`
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
}

// CreatePetRequest is shared by create and full update.
type CreatePetRequest struct {
	Name        string    `json:"name" binding:"required,min=2,max=255"`
	Species     string    `json:"species" binding:"required,max=100"`
	Breed       string    `json:"breed" binding:"required,max=100"`
	Weight      float64   `json:"weight" binding:"required,gt=0,lte=500"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required"`
	Notes       *string   `json:"notes" binding:"omitempty,max=1000"`
}
