package appointment

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/email"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/internal/repository"
	"github.com/cuidarpet/cuidarpet-api/pkg/errors"
	"github.com/cuidarpet/cuidarpet-api/pkg/logger"
)

// Service owns the appointment lifecycle: creation, the status state
// machine, and deletion. Status updates are last-writer-wins; there is no
// conflict detection between concurrent writers.
type Service struct {
	repo        repository.AppointmentRepository
	petRepo     repository.PetRepository
	serviceRepo repository.ServiceRepository
	clinicRepo  repository.ClinicRepository
	userRepo    repository.UserRepository
	outboxRepo  repository.OutboxRepository
	gate        *authz.Gate
	notifier    email.Notifier
	log         *logger.Logger
}

func NewService(
	repo repository.AppointmentRepository,
	petRepo repository.PetRepository,
	serviceRepo repository.ServiceRepository,
	clinicRepo repository.ClinicRepository,
	userRepo repository.UserRepository,
	outboxRepo repository.OutboxRepository,
	gate *authz.Gate,
	notifier email.Notifier,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:        repo,
		petRepo:     petRepo,
		serviceRepo: serviceRepo,
		clinicRepo:  clinicRepo,
		userRepo:    userRepo,
		outboxRepo:  outboxRepo,
		gate:        gate,
		notifier:    notifier,
		log:         log,
	}
}

// Create books an appointment for one of the calling tutor's pets. The
// service must belong to the stated clinic and the date must not be in the
// past; both are rejected before anything is persisted.
func (s *Service) Create(ctx context.Context, claims *authz.Claims, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := s.gate.RequireRole(claims, authz.RoleTutor, authz.RoleAdmin); err != nil {
		return nil, err
	}

	pet, err := s.petRepo.Get(ctx, req.PetID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.Validation("pet not found")
		}
		return nil, errors.Internal(err)
	}
	if claims.Role != authz.RoleAdmin && pet.OwnerID != claims.UserID {
		return nil, errors.Forbidden("pet does not belong to you")
	}

	svc, err := s.serviceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.Validation("service not found")
		}
		return nil, errors.Internal(err)
	}

	clinic, err := s.clinicRepo.Get(ctx, req.ClinicID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.Validation("clinic not found")
		}
		return nil, errors.Internal(err)
	}

	if svc.ClinicID != clinic.ID {
		return nil, errors.Validation("service does not belong to the selected clinic")
	}
	if !svc.IsActive {
		return nil, errors.Validation("service is no longer offered")
	}
	if req.ScheduledDate.Before(time.Now()) {
		return nil, errors.Validation("scheduled date cannot be in the past")
	}

	now := time.Now().UTC()
	apt := &model.Appointment{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PetID:         req.PetID,
		ServiceID:     req.ServiceID,
		ClinicID:      req.ClinicID,
		ScheduledDate: req.ScheduledDate,
		Status:        model.AppointmentScheduled,
		Notes:         req.Notes,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, errors.Internal(err)
	}

	s.emitEvent(ctx, model.EventAppointmentCreated, apt)
	s.notify(ctx, apt, pet, clinic)

	return apt, nil
}

// Get loads an appointment visible to the caller.
func (s *Service) Get(ctx context.Context, claims *authz.Claims, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeView(ctx, claims, authz.ResourceAppointment, id); err != nil {
		return nil, err
	}
	return apt, nil
}

// List returns the appointments visible to the caller, ordered by scheduled
// date ascending.
func (s *Service) List(ctx context.Context, claims *authz.Claims, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	switch claims.Role {
	case authz.RoleTutor:
		appointments, err := s.repo.ListForTutor(ctx, claims.UserID, filters)
		if err != nil {
			return nil, errors.Internal(err)
		}
		return appointments, nil
	case authz.RoleVeterinarian:
		appointments, err := s.repo.ListForVeterinarian(ctx, claims.UserID, filters)
		if err != nil {
			return nil, errors.Internal(err)
		}
		return appointments, nil
	case authz.RoleAdmin:
		appointments, err := s.repo.ListAll(ctx, filters)
		if err != nil {
			return nil, errors.Internal(err)
		}
		return appointments, nil
	default:
		return nil, errors.Forbidden("")
	}
}

// UpdateStatus applies a lifecycle transition. Only the clinic's owning
// veterinarian (or Admin) may call it. Transitions out of a terminal state,
// and same-state updates, are rejected.
func (s *Service) UpdateStatus(ctx context.Context, claims *authz.Claims, id uuid.UUID, req *model.UpdateAppointmentStatusRequest) (*model.Appointment, error) {
	if err := s.gate.RequireRole(claims, authz.RoleVeterinarian, authz.RoleAdmin); err != nil {
		return nil, err
	}

	apt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	clinic, err := s.clinicRepo.Get(ctx, apt.ClinicID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if err := s.gate.AuthorizeClinicWrite(claims, clinic.OwnerID); err != nil {
		return nil, err
	}

	next := model.AppointmentStatus(req.Status)
	if !next.Valid() {
		return nil, errors.Validation("invalid status")
	}
	if !apt.Status.CanTransitionTo(next) {
		return nil, errors.InvalidTransition(apt.Status.String(), next.String())
	}
	if req.PriceCharged != nil && *req.PriceCharged <= 0 {
		return nil, errors.Validation("price charged must be greater than zero")
	}

	apt.Status = next
	apt.Result = req.Result
	apt.PriceCharged = req.PriceCharged
	if next == model.AppointmentCompleted {
		now := time.Now().UTC()
		apt.CompletedDate = &now
	}

	if err := s.repo.UpdateStatus(ctx, apt); err != nil {
		return nil, errors.Internal(err)
	}

	switch next {
	case model.AppointmentCompleted:
		s.emitEvent(ctx, model.EventAppointmentCompleted, apt)
	case model.AppointmentCancelled:
		s.emitEvent(ctx, model.EventAppointmentCancelled, apt)
	}
	s.notifyStatus(ctx, apt, clinic)

	return apt, nil
}

// Delete removes an appointment. A tutor may delete their own appointment
// only while it is still Scheduled; a Completed appointment is off limits.
// Admin may delete anything.
func (s *Service) Delete(ctx context.Context, claims *authz.Claims, id uuid.UUID) error {
	if err := s.gate.RequireRole(claims, authz.RoleTutor, authz.RoleAdmin); err != nil {
		return err
	}

	apt, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if claims.Role == authz.RoleTutor {
		pet, err := s.petRepo.Get(ctx, apt.PetID)
		if err != nil {
			return errors.Internal(err)
		}
		if pet.OwnerID != claims.UserID {
			return errors.Forbidden("appointment does not belong to you")
		}
		if apt.Status == model.AppointmentCompleted {
			return errors.Forbidden("completed appointments cannot be deleted")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Internal(err)
	}

	if apt.Status == model.AppointmentScheduled {
		apt.Status = model.AppointmentCancelled
		s.emitEvent(ctx, model.EventAppointmentCancelled, apt)
	}
	return nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("appointment")
		}
		return nil, errors.Internal(err)
	}
	return apt, nil
}

// emitEvent records an outbox row for the worker to publish. Event loss is
// logged, never surfaced to the caller.
func (s *Service) emitEvent(ctx context.Context, eventType string, apt *model.Appointment) {
	payload, err := json.Marshal(model.AppointmentEventPayload{
		AppointmentID: apt.ID,
		PetID:         apt.PetID,
		ServiceID:     apt.ServiceID,
		ClinicID:      apt.ClinicID,
		Status:        apt.Status,
		ScheduledDate: apt.ScheduledDate,
	})
	if err != nil {
		s.log.Error(err, "failed to marshal appointment event")
		return
	}

	now := time.Now().UTC()
	event := &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		Status:    model.OutboxStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		s.log.Error(err, "failed to record outbox event", "event_type", eventType)
	}
}

func (s *Service) notify(ctx context.Context, apt *model.Appointment, pet *model.Pet, clinic *model.Clinic) {
	owner, err := s.userRepo.Get(ctx, pet.OwnerID)
	if err != nil {
		s.log.Error(err, "failed to load pet owner for notification")
		return
	}
	if err := s.notifier.AppointmentScheduled(ctx, owner.Email, pet.Name, clinic.Name, apt.ScheduledDate); err != nil {
		s.log.Error(err, "failed to send appointment email", "appointment_id", apt.ID)
	}
}

func (s *Service) notifyStatus(ctx context.Context, apt *model.Appointment, clinic *model.Clinic) {
	pet, err := s.petRepo.Get(ctx, apt.PetID)
	if err != nil {
		s.log.Error(err, "failed to load pet for notification")
		return
	}
	owner, err := s.userRepo.Get(ctx, pet.OwnerID)
	if err != nil {
		s.log.Error(err, "failed to load pet owner for notification")
		return
	}

	switch apt.Status {
	case model.AppointmentCompleted:
		err = s.notifier.AppointmentCompleted(ctx, owner.Email, pet.Name, clinic.Name)
	case model.AppointmentCancelled:
		err = s.notifier.AppointmentCancelled(ctx, owner.Email, pet.Name, clinic.Name)
	default:
		return
	}
	if err != nil {
		s.log.Error(err, "failed to send status email", "appointment_id", apt.ID)
	}
}
