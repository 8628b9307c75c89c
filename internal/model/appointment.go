package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus values match the wire representation: the status-update
// endpoint accepts the numeric form.
type AppointmentStatus int

const (
	AppointmentScheduled AppointmentStatus = 0
	AppointmentCompleted AppointmentStatus = 1
	AppointmentCancelled AppointmentStatus = 2
)

func (s AppointmentStatus) String() string {
	switch s {
	case AppointmentScheduled:
		return "Scheduled"
	case AppointmentCompleted:
		return "Completed"
	case AppointmentCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("AppointmentStatus(%d)", int(s))
	}
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

// CanTransitionTo encodes the lifecycle: Scheduled may move to Completed or
// Cancelled; Completed and Cancelled are terminal. Same-state updates are
// not transitions.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if !next.Valid() {
		return false
	}
	return s == AppointmentScheduled && next != AppointmentScheduled
}

// Appointment links a pet, a service and a clinic at a scheduled time.
type Appointment struct {
	Base
	PetID         uuid.UUID         `json:"pet_id" db:"pet_id"`
	ServiceID     uuid.UUID         `json:"service_id" db:"service_id"`
	ClinicID      uuid.UUID         `json:"clinic_id" db:"clinic_id"`
	ScheduledDate time.Time         `json:"scheduled_date" db:"scheduled_date"`
	CompletedDate *time.Time        `json:"completed_date,omitempty" db:"completed_date"`
	Status        AppointmentStatus `json:"status" db:"status"`
	Result        *string           `json:"result,omitempty" db:"result"`
	Notes         *string           `json:"notes,omitempty" db:"notes"`
	PriceCharged  *float64          `json:"price_charged,omitempty" db:"price_charged"`
}

type CreateAppointmentRequest struct {
	PetID         uuid.UUID `json:"pet_id" binding:"required"`
	ServiceID     uuid.UUID `json:"service_id" binding:"required"`
	ClinicID      uuid.UUID `json:"clinic_id" binding:"required"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
	Notes         *string   `json:"notes" binding:"omitempty,max=1000"`
}

type UpdateAppointmentStatusRequest struct {
	Status       int      `json:"status" binding:"oneof=0 1 2"`
	Result       *string  `json:"result" binding:"omitempty,max=2000"`
	PriceCharged *float64 `json:"price_charged" binding:"omitempty,gt=0,lte=100000"`
}

// AppointmentFilters narrows list queries; zero values mean no filtering.
type AppointmentFilters struct {
	PetID    uuid.UUID
	ClinicID uuid.UUID
	Status   *AppointmentStatus
	From     time.Time
	To       time.Time
}
