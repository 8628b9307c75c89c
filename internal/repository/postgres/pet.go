package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/model"
)

const petColumns = `
	id, owner_id, name, species, breed, weight, date_of_birth, notes,
	created_at, updated_at
`

func (r *petRepository) Create(ctx context.Context, pet *model.Pet) error {
	query := `
		INSERT INTO pets (
			id, owner_id, name, species, breed, weight, date_of_birth, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		pet.ID,
		pet.OwnerID,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.Weight,
		pet.DateOfBirth,
		pet.Notes,
		pet.CreatedAt,
		pet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

func (r *petRepository) Get(ctx context.Context, id uuid.UUID) (*model.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE id = $1`

	var pet model.Pet
	if err := r.db.GetContext(ctx, &pet, query, id); err != nil {
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}
	return &pet, nil
}

func (r *petRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE owner_id = $1 ORDER BY name ASC`

	var pets []*model.Pet
	if err := r.db.SelectContext(ctx, &pets, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return pets, nil
}

// ListByClinicAppointments returns the pets a veterinarian may see: those
// with at least one appointment at one of their clinics.
func (r *petRepository) ListByClinicAppointments(ctx context.Context, clinicOwnerID uuid.UUID) ([]*model.Pet, error) {
	query := `
		SELECT DISTINCT p.id, p.owner_id, p.name, p.species, p.breed, p.weight,
			   p.date_of_birth, p.notes, p.created_at, p.updated_at
		FROM pets p
		JOIN appointments a ON a.pet_id = p.id
		JOIN clinics c ON c.id = a.clinic_id
		WHERE c.owner_id = $1
		ORDER BY p.name ASC
	`
	var pets []*model.Pet
	if err := r.db.SelectContext(ctx, &pets, query, clinicOwnerID); err != nil {
		return nil, fmt.Errorf("failed to list clinic pets: %w", err)
	}
	return pets, nil
}

func (r *petRepository) Update(ctx context.Context, pet *model.Pet) error {
	query := `
		UPDATE pets
		SET name = $1, species = $2, breed = $3, weight = $4,
			date_of_birth = $5, notes = $6, updated_at = $7
		WHERE id = $8
	`
	pet.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.Weight,
		pet.DateOfBirth,
		pet.Notes,
		pet.UpdatedAt,
		pet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("pet not found")
	}
	return nil
}

func (r *petRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("pet not found")
	}
	return nil
}
