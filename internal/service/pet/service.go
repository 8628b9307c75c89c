package pet

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

type Service struct {
	repo repository.PetRepository
	gate *authz.Gate
}

func NewService(repo repository.PetRepository, gate *authz.Gate) *Service {
	return &Service{repo: repo, gate: gate}
}

func validatePet(req *model.CreatePetRequest) error {
	if req.Weight <= 0 {
		return errors.Validation("weight must be greater than zero")
	}
	if req.Weight > 500 {
		return errors.Validation("weight must be at most 500 kg")
	}
	if req.DateOfBirth.After(time.Now()) {
		return errors.Validation("date of birth cannot be in the future")
	}
	return nil
}

// Create registers a pet owned by the calling tutor.
func (s *Service) Create(ctx context.Context, claims *authz.Claims, req *model.CreatePetRequest) (*model.Pet, error) {
	if err := s.gate.RequireRole(claims, authz.RoleTutor); err != nil {
		return nil, err
	}
	if err := validatePet(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	pet := &model.Pet{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:     claims.UserID,
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		Weight:      req.Weight,
		DateOfBirth: req.DateOfBirth,
		Notes:       req.Notes,
	}

	if err := s.repo.Create(ctx, pet); err != nil {
		return nil, errors.Internal(err)
	}
	return pet, nil
}

// Get loads a pet after checking the caller may see it: the owning tutor, a
// veterinarian whose clinic has served the pet, or Admin.
func (s *Service) Get(ctx context.Context, claims *authz.Claims, id uuid.UUID) (*model.Pet, error) {
	pet, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeView(ctx, claims, authz.ResourcePet, id); err != nil {
		return nil, err
	}
	return pet, nil
}

// List returns the pets visible to the caller: own pets for a tutor, pets
// booked at owned clinics for a veterinarian, nothing for Admin without an
// owner filter (Admins use the per-user endpoints).
func (s *Service) List(ctx context.Context, claims *authz.Claims) ([]*model.Pet, error) {
	switch claims.Role {
	case authz.RoleTutor:
		pets, err := s.repo.ListByOwner(ctx, claims.UserID)
		if err != nil {
			return nil, errors.Internal(err)
		}
		return pets, nil
	case authz.RoleVeterinarian:
		pets, err := s.repo.ListByClinicAppointments(ctx, claims.UserID)
		if err != nil {
			return nil, errors.Internal(err)
		}
		return pets, nil
	case authz.RoleAdmin:
		return []*model.Pet{}, nil
	default:
		return nil, errors.Forbidden("")
	}
}

func (s *Service) Update(ctx context.Context, claims *authz.Claims, id uuid.UUID, req *model.CreatePetRequest) (*model.Pet, error) {
	pet, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizePetWrite(claims, pet.OwnerID); err != nil {
		return nil, err
	}
	if err := validatePet(req); err != nil {
		return nil, err
	}

	pet.Name = req.Name
	pet.Species = req.Species
	pet.Breed = req.Breed
	pet.Weight = req.Weight
	pet.DateOfBirth = req.DateOfBirth
	pet.Notes = req.Notes

	if err := s.repo.Update(ctx, pet); err != nil {
		return nil, errors.Internal(err)
	}
	return pet, nil
}

func (s *Service) Delete(ctx context.Context, claims *authz.Claims, id uuid.UUID) error {
	pet, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gate.AuthorizePetWrite(claims, pet.OwnerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Internal(err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*model.Pet, error) {
	pet, err := s.repo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("pet")
		}
		return nil, errors.Internal(err)
	}
	return pet, nil
}
