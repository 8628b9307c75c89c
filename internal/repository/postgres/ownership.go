package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Ownership checks back the authorization gate. Each is a single EXISTS
// query; a missing resource resolves to false, never an error.

func (r *ownershipResolver) OwnsPet(ctx context.Context, userID, petID uuid.UUID) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM pets WHERE id = $1 AND owner_id = $2)`,
		petID, userID)
}

func (r *ownershipResolver) OwnsClinic(ctx context.Context, userID, clinicID uuid.UUID) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM clinics WHERE id = $1 AND owner_id = $2)`,
		clinicID, userID)
}

func (r *ownershipResolver) TutorSeesAppointment(ctx context.Context, tutorID, appointmentID uuid.UUID) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments a
			JOIN pets p ON p.id = a.pet_id
			WHERE a.id = $1 AND p.owner_id = $2
		)`,
		appointmentID, tutorID)
}

func (r *ownershipResolver) VeterinarianSeesAppointment(ctx context.Context, vetID, appointmentID uuid.UUID) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments a
			JOIN clinics c ON c.id = a.clinic_id
			WHERE a.id = $1 AND c.owner_id = $2
		)`,
		appointmentID, vetID)
}

func (r *ownershipResolver) TutorBookedClinic(ctx context.Context, tutorID, clinicID uuid.UUID) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments a
			JOIN pets p ON p.id = a.pet_id
			WHERE a.clinic_id = $1 AND p.owner_id = $2
		)`,
		clinicID, tutorID)
}

func (r *ownershipResolver) VeterinarianServedPet(ctx context.Context, vetID, petID uuid.UUID) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments a
			JOIN clinics c ON c.id = a.clinic_id
			WHERE a.pet_id = $1 AND c.owner_id = $2
		)`,
		petID, vetID)
}

func (r *ownershipResolver) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, args...); err != nil {
		return false, fmt.Errorf("failed to check ownership: %w", err)
	}
	return ok, nil
}
