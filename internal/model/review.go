package model

import (
	"github.com/google/uuid"
)

// Review is a tutor's rating of a clinic, optionally tied to a single
// appointment.
type Review struct {
	Base
	TutorID         uuid.UUID  `json:"tutor_id" db:"tutor_id"`
	ClinicID        uuid.UUID  `json:"clinic_id" db:"clinic_id"`
	AppointmentID   *uuid.UUID `json:"appointment_id,omitempty" db:"appointment_id"`
	Rating          int        `json:"rating" db:"rating"`
	Title           *string    `json:"title,omitempty" db:"title"`
	Comment         *string    `json:"comment,omitempty" db:"comment"`
	IsVerified      bool       `json:"is_verified" db:"is_verified"`
	IsApproved      bool       `json:"is_approved" db:"is_approved"`
	RejectionReason *string    `json:"rejection_reason,omitempty" db:"rejection_reason"`
}

type CreateReviewRequest struct {
	ClinicID      uuid.UUID  `json:"clinic_id" binding:"required"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
	Rating        int        `json:"rating" binding:"required,min=1,max=5"`
	Title         *string    `json:"title" binding:"omitempty,max=200"`
	Comment       *string    `json:"comment" binding:"omitempty,max=2000"`
}

type ModerateReviewRequest struct {
	Approve         bool    `json:"approve"`
	RejectionReason *string `json:"rejection_reason" binding:"omitempty,max=500"`
}
