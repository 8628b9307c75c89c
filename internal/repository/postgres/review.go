package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/model"
)

const reviewColumns = `
	id, tutor_id, clinic_id, appointment_id, rating, title, comment,
	is_verified, is_approved, rejection_reason, created_at, updated_at
`

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (
			id, tutor_id, clinic_id, appointment_id, rating, title, comment,
			is_verified, is_approved, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.TutorID,
		review.ClinicID,
		review.AppointmentID,
		review.Rating,
		review.Title,
		review.Comment,
		review.IsVerified,
		review.IsApproved,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	var review model.Review
	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE appointment_id = $1`

	var review model.Review
	if err := r.db.GetContext(ctx, &review, query, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to get review by appointment: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID, approvedOnly bool) ([]*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE clinic_id = $1`
	if approvedOnly {
		query += ` AND is_approved`
	}
	query += ` ORDER BY created_at DESC`

	var reviews []*model.Review
	if err := r.db.SelectContext(ctx, &reviews, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	query := `
		UPDATE reviews
		SET rating = $1, title = $2, comment = $3, is_approved = $4,
			rejection_reason = $5, updated_at = $6
		WHERE id = $7
	`
	review.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		review.Rating,
		review.Title,
		review.Comment,
		review.IsApproved,
		review.RejectionReason,
		review.UpdatedAt,
		review.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}

// ClinicRating aggregates approved reviews only.
func (r *reviewRepository) ClinicRating(ctx context.Context, clinicID uuid.UUID) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE clinic_id = $1 AND is_approved
	`
	var (
		average float64
		total   int
	)
	if err := r.db.QueryRowxContext(ctx, query, clinicID).Scan(&average, &total); err != nil {
		return 0, 0, fmt.Errorf("failed to compute clinic rating: %w", err)
	}
	return average, total, nil
}
