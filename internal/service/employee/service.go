package employee

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/internal/repository"
	"github.com/cuidarpet/cuidarpet-api/pkg/errors"
)

// Service manages clinic staff. Every operation is gated on ownership of
// the clinic the employee belongs to.
type Service struct {
	repo       repository.EmployeeRepository
	clinicRepo repository.ClinicRepository
	userRepo   repository.UserRepository
	gate       *authz.Gate
}

func NewService(repo repository.EmployeeRepository, clinicRepo repository.ClinicRepository, userRepo repository.UserRepository, gate *authz.Gate) *Service {
	return &Service{repo: repo, clinicRepo: clinicRepo, userRepo: userRepo, gate: gate}
}

// Create hires a user into a clinic.
func (s *Service) Create(ctx context.Context, claims *authz.Claims, clinicID uuid.UUID, req *model.CreateEmployeeRequest) (*model.Employee, error) {
	clinic, err := s.loadClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeClinicWrite(claims, clinic.OwnerID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.Get(ctx, req.UserID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.Validation("user not found")
		}
		return nil, errors.Internal(err)
	}

	now := time.Now().UTC()
	employee := &model.Employee{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      req.UserID,
		ClinicID:    clinicID,
		Position:    req.Position,
		Description: req.Description,
		IsActive:    true,
		HiredAt:     now,
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, errors.Internal(err)
	}
	return employee, nil
}

// ListByClinic returns a clinic's staff roster.
func (s *Service) ListByClinic(ctx context.Context, claims *authz.Claims, clinicID uuid.UUID) ([]*model.Employee, error) {
	clinic, err := s.loadClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeClinicWrite(claims, clinic.OwnerID); err != nil {
		return nil, err
	}

	employees, err := s.repo.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return employees, nil
}

// Update edits an employee's position, description or active flag.
// Deactivating stamps FiredAt; reactivating clears it.
func (s *Service) Update(ctx context.Context, claims *authz.Claims, id uuid.UUID, req *model.UpdateEmployeeRequest) (*model.Employee, error) {
	employee, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	clinic, err := s.loadClinic(ctx, employee.ClinicID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeClinicWrite(claims, clinic.OwnerID); err != nil {
		return nil, err
	}

	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.Description != nil {
		employee.Description = req.Description
	}
	if req.IsActive != nil && *req.IsActive != employee.IsActive {
		employee.IsActive = *req.IsActive
		if employee.IsActive {
			employee.FiredAt = nil
		} else {
			now := time.Now().UTC()
			employee.FiredAt = &now
		}
	}
	employee.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, errors.Internal(err)
	}
	return employee, nil
}

// Delete removes an employee record.
func (s *Service) Delete(ctx context.Context, claims *authz.Claims, id uuid.UUID) error {
	employee, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	clinic, err := s.loadClinic(ctx, employee.ClinicID)
	if err != nil {
		return err
	}
	if err := s.gate.AuthorizeClinicWrite(claims, clinic.OwnerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Internal(err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	employee, err := s.repo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("employee")
		}
		return nil, errors.Internal(err)
	}
	return employee, nil
}

func (s *Service) loadClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	clinic, err := s.clinicRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("clinic")
		}
		return nil, errors.Internal(err)
	}
	return clinic, nil
}
