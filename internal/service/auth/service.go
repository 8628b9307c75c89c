package auth

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/internal/repository"
	"github.com/cuidarpet/cuidarpet-api/pkg/auth"
	"github.com/cuidarpet/cuidarpet-api/pkg/errors"
	"github.com/cuidarpet/cuidarpet-api/pkg/security"
)

type Service struct {
	userRepo repository.UserRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
	}
}

// Register creates a tutor or veterinarian account and returns a signed
// token alongside the user. Admin accounts are provisioned out of band.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	role := authz.Role(req.Role)
	if role != authz.RoleTutor && role != authz.RoleVeterinarian {
		return nil, errors.Validation("role must be Tutor or Veterinarian")
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if exists {
		return nil, errors.Conflict("email already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if stderrors.Is(err, security.ErrPasswordLength) {
			return nil, errors.Validation("password too short")
		}
		return nil, errors.Internal(err)
	}

	now := time.Now().UTC()
	user := &model.User{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Phone:        req.Phone,
		IsActive:     true,
	}
	if role == authz.RoleVeterinarian {
		user.CompanyName = req.CompanyName
		user.CompanyDocument = req.CompanyDocument
		user.CompanyType = req.CompanyType
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal(err)
	}

	token, err := s.jwtSvc.GenerateToken(user)
	if err != nil {
		return nil, errors.Internal(err)
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a signed token. Failures are
// deliberately indistinguishable between unknown email and wrong password.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.Unauthenticated("invalid credentials")
		}
		return nil, errors.Internal(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, errors.Unauthenticated("invalid credentials")
	}

	if user.IsBlocked {
		return nil, errors.Forbidden("account is blocked")
	}
	if !user.IsActive {
		return nil, errors.Forbidden("account is deactivated")
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastSignedIn(ctx, user.ID, now); err != nil {
		return nil, errors.Internal(err)
	}
	user.LastSignedIn = &now

	token, err := s.jwtSvc.GenerateToken(user)
	if err != nil {
		return nil, errors.Internal(err)
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}
