package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/model"
)

const employeeColumns = `
	id, user_id, clinic_id, position, description, is_active,
	hired_at, fired_at, created_at, updated_at
`

func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	query := `
		INSERT INTO employees (
			id, user_id, clinic_id, position, description, is_active,
			hired_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		employee.ID,
		employee.UserID,
		employee.ClinicID,
		employee.Position,
		employee.Description,
		employee.IsActive,
		employee.HiredAt,
		employee.CreatedAt,
		employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *employeeRepository) Get(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	var employee model.Employee
	if err := r.db.GetContext(ctx, &employee, query, id); err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &employee, nil
}

func (r *employeeRepository) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE clinic_id = $1 ORDER BY hired_at ASC`

	var employees []*model.Employee
	if err := r.db.SelectContext(ctx, &employees, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	query := `
		UPDATE employees
		SET position = $1, description = $2, is_active = $3, fired_at = $4,
			updated_at = $5
		WHERE id = $6
	`
	employee.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		employee.Position,
		employee.Description,
		employee.IsActive,
		employee.FiredAt,
		employee.UpdatedAt,
		employee.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("employee not found")
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("employee not found")
	}
	return nil
}
