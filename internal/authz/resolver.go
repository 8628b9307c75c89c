package authz

import (
	"context"

	"github.com/google/uuid"
)

// Resource names the resource kinds the ownership resolver understands.
type Resource string

const (
	ResourcePet         Resource = "pet"
	ResourceClinic      Resource = "clinic"
	ResourceAppointment Resource = "appointment"
)

// Resolver answers whether a user is the owner of, or legitimately related
// to, a resource. Existence of the resource is checked by callers before
// ownership is evaluated, so a missing row simply resolves to false here.
type Resolver interface {
	// Direct ownership.
	OwnsPet(ctx context.Context, userID, petID uuid.UUID) (bool, error)
	OwnsClinic(ctx context.Context, userID, clinicID uuid.UUID) (bool, error)

	// Appointment visibility: the tutor owning the appointment's pet, or
	// the veterinarian owning the appointment's clinic.
	TutorSeesAppointment(ctx context.Context, tutorID, appointmentID uuid.UUID) (bool, error)
	VeterinarianSeesAppointment(ctx context.Context, vetID, appointmentID uuid.UUID) (bool, error)

	// Cross-role visibility: a tutor sees clinics where one of their pets
	// has an appointment; a veterinarian sees pets booked at their clinics.
	TutorBookedClinic(ctx context.Context, tutorID, clinicID uuid.UUID) (bool, error)
	VeterinarianServedPet(ctx context.Context, vetID, petID uuid.UUID) (bool, error)
}
