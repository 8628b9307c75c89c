package authz

import (
	"context"

	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/pkg/errors"
)

// Gate combines per-endpoint role requirements with the ownership resolver
// into a single allow/deny decision. All role checks switch exhaustively
// over the closed Role enum.
type Gate struct {
	resolver Resolver
}

func NewGate(resolver Resolver) *Gate {
	return &Gate{resolver: resolver}
}

// RequireRole fails with Forbidden unless the caller holds one of the given
// roles. Admin is never implied; list it explicitly where it applies.
func (g *Gate) RequireRole(claims *Claims, roles ...Role) error {
	if claims == nil {
		return errors.Unauthenticated("")
	}
	for _, r := range roles {
		if claims.Role == r {
			return nil
		}
	}
	return errors.Forbidden("")
}

// CanView decides read access to a resource the caller does not necessarily
// own. Admin short-circuits to allow for every resource kind.
func (g *Gate) CanView(ctx context.Context, claims *Claims, res Resource, id uuid.UUID) (bool, error) {
	if claims == nil {
		return false, errors.Unauthenticated("")
	}
	switch claims.Role {
	case RoleAdmin:
		return true, nil
	case RoleTutor:
		switch res {
		case ResourcePet:
			return g.resolver.OwnsPet(ctx, claims.UserID, id)
		case ResourceClinic:
			return g.resolver.TutorBookedClinic(ctx, claims.UserID, id)
		case ResourceAppointment:
			return g.resolver.TutorSeesAppointment(ctx, claims.UserID, id)
		}
	case RoleVeterinarian:
		switch res {
		case ResourcePet:
			return g.resolver.VeterinarianServedPet(ctx, claims.UserID, id)
		case ResourceClinic:
			return g.resolver.OwnsClinic(ctx, claims.UserID, id)
		case ResourceAppointment:
			return g.resolver.VeterinarianSeesAppointment(ctx, claims.UserID, id)
		}
	}
	return false, nil
}

// AuthorizeView is CanView expressed as an error: Forbidden on deny.
func (g *Gate) AuthorizeView(ctx context.Context, claims *Claims, res Resource, id uuid.UUID) error {
	ok, err := g.CanView(ctx, claims, res, id)
	if err != nil {
		return errors.Internal(err)
	}
	if !ok {
		return errors.Forbidden("")
	}
	return nil
}

// AuthorizePetWrite gates update/delete of a pet: the owning tutor or Admin.
func (g *Gate) AuthorizePetWrite(claims *Claims, ownerID uuid.UUID) error {
	if claims == nil {
		return errors.Unauthenticated("")
	}
	switch claims.Role {
	case RoleAdmin:
		return nil
	case RoleTutor:
		if claims.UserID == ownerID {
			return nil
		}
		return errors.Forbidden("pet does not belong to you")
	case RoleVeterinarian:
		return errors.Forbidden("")
	default:
		return errors.Forbidden("")
	}
}

// AuthorizeClinicWrite gates update/delete of a clinic and of resources
// scoped under it (services, employees): the owning veterinarian or Admin.
func (g *Gate) AuthorizeClinicWrite(claims *Claims, ownerID uuid.UUID) error {
	if claims == nil {
		return errors.Unauthenticated("")
	}
	switch claims.Role {
	case RoleAdmin:
		return nil
	case RoleVeterinarian:
		if claims.UserID == ownerID {
			return nil
		}
		return errors.Forbidden("clinic does not belong to you")
	case RoleTutor:
		return errors.Forbidden("")
	default:
		return errors.Forbidden("")
	}
}
