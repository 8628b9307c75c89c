package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/model"
)

const appointmentColumns = `
	id, pet_id, service_id, clinic_id, scheduled_date, completed_date,
	status, result, notes, price_charged, created_at, updated_at
`

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, pet_id, service_id, clinic_id, scheduled_date, status,
			notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.PetID,
		apt.ServiceID,
		apt.ClinicID,
		apt.ScheduledDate,
		apt.Status,
		apt.Notes,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) ListForTutor(ctx context.Context, tutorID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT a.id, a.pet_id, a.service_id, a.clinic_id, a.scheduled_date,
			   a.completed_date, a.status, a.result, a.notes, a.price_charged,
			   a.created_at, a.updated_at
		FROM appointments a
		JOIN pets p ON p.id = a.pet_id
		WHERE p.owner_id = $1
	`
	args := []interface{}{tutorID}
	query, args = appendAppointmentFilters(query, args, filters, "a")

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tutor appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForVeterinarian(ctx context.Context, vetID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT a.id, a.pet_id, a.service_id, a.clinic_id, a.scheduled_date,
			   a.completed_date, a.status, a.result, a.notes, a.price_charged,
			   a.created_at, a.updated_at
		FROM appointments a
		JOIN clinics c ON c.id = a.clinic_id
		WHERE c.owner_id = $1
	`
	args := []interface{}{vetID}
	query, args = appendAppointmentFilters(query, args, filters, "a")

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list clinic appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListAll(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE TRUE`
	var args []interface{}
	query, args = appendAppointmentFilters(query, args, filters, "appointments")

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func appendAppointmentFilters(query string, args []interface{}, filters *model.AppointmentFilters, alias string) (string, []interface{}) {
	if filters != nil {
		if filters.PetID != uuid.Nil {
			args = append(args, filters.PetID)
			query += fmt.Sprintf(" AND %s.pet_id = $%d", alias, len(args))
		}
		if filters.ClinicID != uuid.Nil {
			args = append(args, filters.ClinicID)
			query += fmt.Sprintf(" AND %s.clinic_id = $%d", alias, len(args))
		}
		if filters.Status != nil {
			args = append(args, *filters.Status)
			query += fmt.Sprintf(" AND %s.status = $%d", alias, len(args))
		}
		if !filters.From.IsZero() {
			args = append(args, filters.From)
			query += fmt.Sprintf(" AND %s.scheduled_date >= $%d", alias, len(args))
		}
		if !filters.To.IsZero() {
			args = append(args, filters.To)
			query += fmt.Sprintf(" AND %s.scheduled_date <= $%d", alias, len(args))
		}
	}
	query += fmt.Sprintf(" ORDER BY %s.scheduled_date ASC", alias)
	return query, args
}

// UpdateStatus persists a lifecycle transition. Validity of the transition
// is the service's responsibility; this is a plain last-writer-wins write.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $1, result = $2, price_charged = $3, completed_date = $4,
			updated_at = $5
		WHERE id = $6
	`
	apt.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		apt.Status,
		apt.Result,
		apt.PriceCharged,
		apt.CompletedDate,
		apt.UpdatedAt,
		apt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}
