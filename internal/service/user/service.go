package user

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/internal/repository"
	"github.com/cuidarpet/cuidarpet-api/pkg/errors"
)

type Service struct {
	repo repository.UserRepository
	gate *authz.Gate
}

func NewService(repo repository.UserRepository, gate *authz.Gate) *Service {
	return &Service{repo: repo, gate: gate}
}

// List returns all user accounts. Admin only.
func (s *Service) List(ctx context.Context, claims *authz.Claims) ([]*model.User, error) {
	if err := s.gate.RequireRole(claims, authz.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return users, nil
}

// Get returns a single account: the caller's own, or any for Admin.
func (s *Service) Get(ctx context.Context, claims *authz.Claims, id uuid.UUID) (*model.User, error) {
	if claims.Role != authz.RoleAdmin && claims.UserID != id {
		return nil, errors.Forbidden("")
	}
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("user")
		}
		return nil, errors.Internal(err)
	}
	return user, nil
}

// SetBlocked blocks or unblocks an account. Admin only.
func (s *Service) SetBlocked(ctx context.Context, claims *authz.Claims, id uuid.UUID, blocked bool, reason *string) (*model.User, error) {
	if err := s.gate.RequireRole(claims, authz.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("user")
		}
		return nil, errors.Internal(err)
	}

	user.IsBlocked = blocked
	if blocked {
		user.BlockReason = reason
	} else {
		user.BlockReason = nil
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, errors.Internal(err)
	}
	return user, nil
}
