package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/model"
)

const clinicColumns = `
	id, owner_id, name, address, city, state, zip_code, phone, email,
	business_hours, description, photo_url, average_rating, total_reviews,
	is_active, is_verified, created_at, updated_at
`

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) error {
	query := `
		INSERT INTO clinics (
			id, owner_id, name, address, city, state, zip_code, phone, email,
			business_hours, description, photo_url, total_reviews,
			is_active, is_verified, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.db.ExecContext(ctx, query,
		clinic.ID,
		clinic.OwnerID,
		clinic.Name,
		clinic.Address,
		clinic.City,
		clinic.State,
		clinic.ZipCode,
		clinic.Phone,
		clinic.Email,
		clinic.BusinessHours,
		clinic.Description,
		clinic.PhotoURL,
		clinic.TotalReviews,
		clinic.IsActive,
		clinic.IsVerified,
		clinic.CreatedAt,
		clinic.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clinic: %w", err)
	}
	return nil
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := `SELECT ` + clinicColumns + ` FROM clinics WHERE id = $1`

	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return &clinic, nil
}

func (r *clinicRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Clinic, error) {
	query := `SELECT ` + clinicColumns + ` FROM clinics WHERE owner_id = $1 ORDER BY name ASC`

	var clinics []*model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

// ListVisibleToTutor returns active, verified clinics plus any clinic where
// one of the tutor's pets has an appointment, verified or not.
func (r *clinicRepository) ListVisibleToTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.Clinic, error) {
	query := `
		SELECT ` + clinicColumns + `
		FROM clinics
		WHERE (is_active AND is_verified)
		   OR id IN (
				SELECT a.clinic_id
				FROM appointments a
				JOIN pets p ON p.id = a.pet_id
				WHERE p.owner_id = $1
		   )
		ORDER BY name ASC
	`
	var clinics []*model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query, tutorID); err != nil {
		return nil, fmt.Errorf("failed to list clinics for tutor: %w", err)
	}
	return clinics, nil
}

func (r *clinicRepository) ListAll(ctx context.Context) ([]*model.Clinic, error) {
	query := `SELECT ` + clinicColumns + ` FROM clinics ORDER BY name ASC`

	var clinics []*model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	query := `
		UPDATE clinics
		SET name = $1, address = $2, city = $3, state = $4, zip_code = $5,
			phone = $6, email = $7, business_hours = $8, description = $9,
			photo_url = $10, is_active = $11, is_verified = $12, updated_at = $13
		WHERE id = $14
	`
	clinic.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		clinic.Name,
		clinic.Address,
		clinic.City,
		clinic.State,
		clinic.ZipCode,
		clinic.Phone,
		clinic.Email,
		clinic.BusinessHours,
		clinic.Description,
		clinic.PhotoURL,
		clinic.IsActive,
		clinic.IsVerified,
		clinic.UpdatedAt,
		clinic.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clinic: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("clinic not found")
	}
	return nil
}

func (r *clinicRepository) UpdateRating(ctx context.Context, id uuid.UUID, average float64, total int) error {
	query := `UPDATE clinics SET average_rating = $1, total_reviews = $2, updated_at = $3 WHERE id = $4`
	if _, err := r.db.ExecContext(ctx, query, average, total, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("failed to update clinic rating: %w", err)
	}
	return nil
}

func (r *clinicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clinics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("clinic not found")
	}
	return nil
}
