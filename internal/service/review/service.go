package review

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
	"github.com/cuidarpet/cuidarpet-api/pkg/logger"
)

// Service handles clinic reviews and Admin moderation. Ratings are
// denormalized onto the clinic row and recomputed after every change.
type Service struct {
	repo       repository.ReviewRepository
	clinicRepo repository.ClinicRepository
	aptRepo    repository.AppointmentRepository
	petRepo    repository.PetRepository
	gate       *authz.Gate
	log        *logger.Logger
}

func NewService(
	repo repository.ReviewRepository,
	clinicRepo repository.ClinicRepository,
	aptRepo repository.AppointmentRepository,
	petRepo repository.PetRepository,
	gate *authz.Gate,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:       repo,
		clinicRepo: clinicRepo,
		aptRepo:    aptRepo,
		petRepo:    petRepo,
		gate:       gate,
		log:        log,
	}
}

// Create records a tutor's review of a clinic. When an appointment is
// referenced it must be the tutor's own, completed, at that clinic, and not
// already reviewed; such reviews are marked verified.
func (s *Service) Create(ctx context.Context, claims *authz.Claims, req *model.CreateReviewRequest) (*model.Review, error) {
	if err := s.gate.RequireRole(claims, authz.RoleTutor); err != nil {
		return nil, err
	}

	if _, err := s.clinicRepo.Get(ctx, req.ClinicID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("clinic")
		}
		return nil, errors.Internal(err)
	}

	verified := false
	if req.AppointmentID != nil {
		apt, err := s.aptRepo.Get(ctx, *req.AppointmentID)
		if err != nil {
			if stderrors.Is(err, sql.ErrNoRows) {
				return nil, errors.Validation("appointment not found")
			}
			return nil, errors.Internal(err)
		}
		pet, err := s.petRepo.Get(ctx, apt.PetID)
		if err != nil {
			return nil, errors.Internal(err)
		}
		if pet.OwnerID != claims.UserID {
			return nil, errors.Forbidden("appointment does not belong to you")
		}
		if apt.ClinicID != req.ClinicID {
			return nil, errors.Validation("appointment is not at this clinic")
		}
		if apt.Status != model.AppointmentCompleted {
			return nil, errors.Validation("only completed appointments can be reviewed")
		}
		if _, err := s.repo.GetByAppointment(ctx, *req.AppointmentID); err == nil {
			return nil, errors.Conflict("appointment already reviewed")
		} else if !stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.Internal(err)
		}
		verified = true
	}

	now := time.Now().UTC()
	review := &model.Review{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TutorID:       claims.UserID,
		ClinicID:      req.ClinicID,
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		Title:         req.Title,
		Comment:       req.Comment,
		IsVerified:    verified,
		IsApproved:    true,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, errors.Internal(err)
	}

	s.refreshRating(ctx, req.ClinicID)
	return review, nil
}

// ListByClinic returns a clinic's reviews. Unapproved reviews are visible
// only to the clinic's owner and Admin.
func (s *Service) ListByClinic(ctx context.Context, claims *authz.Claims, clinicID uuid.UUID) ([]*model.Review, error) {
	approvedOnly := true
	if claims != nil {
		if claims.Role == authz.RoleAdmin {
			approvedOnly = false
		} else if claims.Role == authz.RoleVeterinarian {
			clinic, err := s.clinicRepo.Get(ctx, clinicID)
			if err == nil && clinic.OwnerID == claims.UserID {
				approvedOnly = false
			}
		}
	}

	reviews, err := s.repo.ListByClinic(ctx, clinicID, approvedOnly)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return reviews, nil
}

// Moderate approves or rejects a review. Admin only.
func (s *Service) Moderate(ctx context.Context, claims *authz.Claims, id uuid.UUID, req *model.ModerateReviewRequest) (*model.Review, error) {
	if err := s.gate.RequireRole(claims, authz.RoleAdmin); err != nil {
		return nil, err
	}

	review, err := s.repo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("review")
		}
		return nil, errors.Internal(err)
	}

	review.IsApproved = req.Approve
	if req.Approve {
		review.RejectionReason = nil
	} else {
		review.RejectionReason = req.RejectionReason
	}
	review.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, errors.Internal(err)
	}

	s.refreshRating(ctx, review.ClinicID)
	return review, nil
}

// refreshRating recomputes the clinic's denormalized average from approved
// reviews. Failures are logged, not surfaced.
func (s *Service) refreshRating(ctx context.Context, clinicID uuid.UUID) {
	average, total, err := s.repo.ClinicRating(ctx, clinicID)
	if err != nil {
		s.log.Error(err, "failed to compute clinic rating", "clinic_id", clinicID)
		return
	}
	if err := s.clinicRepo.UpdateRating(ctx, clinicID, average, total); err != nil {
		s.log.Error(err, "failed to update clinic rating", "clinic_id", clinicID)
	}
}
