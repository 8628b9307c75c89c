package clinic

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/pkg/errors"
)

// Service catalog operations. Services belong to exactly one clinic and are
// retired via the is_active flag so historical appointments keep their
// references.

func (s *Service) CreateService(ctx context.Context, claims *authz.Claims, clinicID uuid.UUID, req *model.CreateServiceRequest) (*model.Service, error) {
	clinic, err := s.load(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeClinicWrite(claims, clinic.OwnerID); err != nil {
		return nil, err
	}
	if req.Price <= 0 {
		return nil, errors.Validation("price must be greater than zero")
	}

	now := time.Now().UTC()
	svc := &model.Service{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ClinicID:    clinicID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		IsActive:    true,
	}

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, errors.Internal(err)
	}
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return s.loadService(ctx, id)
}

// ListServices returns a clinic's catalog. The clinic owner and Admin see
// retired services too; everyone else only active ones.
func (s *Service) ListServices(ctx context.Context, claims *authz.Claims, clinicID uuid.UUID) ([]*model.Service, error) {
	clinic, err := s.load(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	activeOnly := true
	if claims.Role == authz.RoleAdmin ||
		(claims.Role == authz.RoleVeterinarian && clinic.OwnerID == claims.UserID) {
		activeOnly = false
	}

	services, err := s.serviceRepo.ListByClinic(ctx, clinicID, activeOnly)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return services, nil
}

func (s *Service) UpdateService(ctx context.Context, claims *authz.Claims, id uuid.UUID, req *model.CreateServiceRequest) (*model.Service, error) {
	svc, err := s.loadService(ctx, id)
	if err != nil {
		return nil, err
	}
	clinic, err := s.load(ctx, svc.ClinicID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeClinicWrite(claims, clinic.OwnerID); err != nil {
		return nil, err
	}
	if req.Price <= 0 {
		return nil, errors.Validation("price must be greater than zero")
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Price = req.Price
	svc.Duration = req.Duration

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, errors.Internal(err)
	}
	return svc, nil
}

// DeleteService soft-deletes: the row stays, is_active flips off.
func (s *Service) DeleteService(ctx context.Context, claims *authz.Claims, id uuid.UUID) error {
	svc, err := s.loadService(ctx, id)
	if err != nil {
		return err
	}
	clinic, err := s.load(ctx, svc.ClinicID)
	if err != nil {
		return err
	}
	if err := s.gate.AuthorizeClinicWrite(claims, clinic.OwnerID); err != nil {
		return err
	}

	if err := s.serviceRepo.Deactivate(ctx, id); err != nil {
		return errors.Internal(err)
	}
	return nil
}

func (s *Service) loadService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.serviceRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("service")
		}
		return nil, errors.Internal(err)
	}
	return svc, nil
}
