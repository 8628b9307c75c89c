package clinic

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/internal/repository"
	"github.com/cuidarpet/cuidarpet-api/pkg/errors"
)

// Rating aggregates are written by the review service straight through the
// repository, so a cached clinic can show the previous average_rating and
// total_reviews until the TTL lapses.
const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Service manages clinics and their service catalogs.
type Service struct {
	clinicRepo  repository.ClinicRepository
	serviceRepo repository.ServiceRepository
	gate        *authz.Gate
	cache       *gocache.Cache
}

func NewService(clinicRepo repository.ClinicRepository, serviceRepo repository.ServiceRepository, gate *authz.Gate) *Service {
	return &Service{
		clinicRepo:  clinicRepo,
		serviceRepo: serviceRepo,
		gate:        gate,
		cache:       gocache.New(cacheTTL, cacheCleanup),
	}
}

// Create registers a clinic owned by the calling veterinarian. New clinics
// start unverified; an admin flips the flag.
func (s *Service) Create(ctx context.Context, claims *authz.Claims, req *model.CreateClinicRequest) (*model.Clinic, error) {
	if err := s.gate.RequireRole(claims, authz.RoleVeterinarian); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	clinic := &model.Clinic{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:       claims.UserID,
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Phone:         req.Phone,
		Email:         req.Email,
		BusinessHours: req.BusinessHours,
		Description:   req.Description,
		PhotoURL:      req.PhotoURL,
		IsActive:      true,
	}

	if err := s.clinicRepo.Create(ctx, clinic); err != nil {
		return nil, errors.Internal(err)
	}
	return clinic, nil
}

// Get loads a clinic; visibility follows the ownership resolver, except that
// clinic profiles that are active and verified are public to any
// authenticated user (tutors browse them before booking).
func (s *Service) Get(ctx context.Context, claims *authz.Claims, id uuid.UUID) (*model.Clinic, error) {
	clinic, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if clinic.IsActive && clinic.IsVerified {
		return clinic, nil
	}
	if err := s.gate.AuthorizeView(ctx, claims, authz.ResourceClinic, id); err != nil {
		return nil, err
	}
	return clinic, nil
}

// List returns clinics visible to the caller.
func (s *Service) List(ctx context.Context, claims *authz.Claims) ([]*model.Clinic, error) {
	switch claims.Role {
	case authz.RoleVeterinarian:
		clinics, err := s.clinicRepo.ListByOwner(ctx, claims.UserID)
		if err != nil {
			return nil, errors.Internal(err)
		}
		return clinics, nil
	case authz.RoleTutor:
		clinics, err := s.clinicRepo.ListVisibleToTutor(ctx, claims.UserID)
		if err != nil {
			return nil, errors.Internal(err)
		}
		return clinics, nil
	case authz.RoleAdmin:
		clinics, err := s.clinicRepo.ListAll(ctx)
		if err != nil {
			return nil, errors.Internal(err)
		}
		return clinics, nil
	default:
		return nil, errors.Forbidden("")
	}
}

func (s *Service) Update(ctx context.Context, claims *authz.Claims, id uuid.UUID, req *model.CreateClinicRequest) (*model.Clinic, error) {
	clinic, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeClinicWrite(claims, clinic.OwnerID); err != nil {
		return nil, err
	}

	// load may return the cached pointer; mutate a copy so a failed write
	// never leaks unpersisted state to concurrent readers.
	updated := *clinic
	updated.Name = req.Name
	updated.Address = req.Address
	updated.City = req.City
	updated.State = req.State
	updated.ZipCode = req.ZipCode
	updated.Phone = req.Phone
	updated.Email = req.Email
	updated.BusinessHours = req.BusinessHours
	updated.Description = req.Description
	updated.PhotoURL = req.PhotoURL

	if err := s.clinicRepo.Update(ctx, &updated); err != nil {
		return nil, errors.Internal(err)
	}
	s.cache.Delete(cacheKey(id))
	return &updated, nil
}

// SetVerified marks a clinic verified or not. Admin only.
func (s *Service) SetVerified(ctx context.Context, claims *authz.Claims, id uuid.UUID, verified bool) (*model.Clinic, error) {
	if err := s.gate.RequireRole(claims, authz.RoleAdmin); err != nil {
		return nil, err
	}
	clinic, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *clinic
	updated.IsVerified = verified
	if err := s.clinicRepo.Update(ctx, &updated); err != nil {
		return nil, errors.Internal(err)
	}
	s.cache.Delete(cacheKey(id))
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, claims *authz.Claims, id uuid.UUID) error {
	clinic, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gate.AuthorizeClinicWrite(claims, clinic.OwnerID); err != nil {
		return err
	}

	if err := s.clinicRepo.Delete(ctx, id); err != nil {
		return errors.Internal(err)
	}
	s.cache.Delete(cacheKey(id))
	return nil
}

// load fetches a clinic, serving repeat reads from the in-process cache.
func (s *Service) load(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	if v, ok := s.cache.Get(cacheKey(id)); ok {
		if clinic, ok := v.(*model.Clinic); ok {
			return clinic, nil
		}
	}

	clinic, err := s.clinicRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("clinic")
		}
		return nil, errors.Internal(err)
	}

	s.cache.Set(cacheKey(id), clinic, gocache.DefaultExpiration)
	return clinic, nil
}

func cacheKey(id uuid.UUID) string {
	return "clinic:" + id.String()
}
