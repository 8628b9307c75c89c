package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateLastSignedIn(ctx context.Context, id uuid.UUID, at time.Time) error
}

type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	Get(ctx context.Context, id uuid.UUID) (*model.Pet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Pet, error)
	ListByClinicAppointments(ctx context.Context, clinicOwnerID uuid.UUID) ([]*model.Pet, error)
	Update(ctx context.Context, pet *model.Pet) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClinicRepository interface {
	Create(ctx context.Context, clinic *model.Clinic) error
	Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Clinic, error)
	ListVisibleToTutor(ctx context.Context, tutorID uuid.UUID) ([]*model.Clinic, error)
	ListAll(ctx context.Context) ([]*model.Clinic, error)
	Update(ctx context.Context, clinic *model.Clinic) error
	UpdateRating(ctx context.Context, id uuid.UUID, average float64, total int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	ListByClinic(ctx context.Context, clinicID uuid.UUID, activeOnly bool) ([]*model.Service, error)
	Update(ctx context.Context, service *model.Service) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListForTutor(ctx context.Context, tutorID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	ListForVeterinarian(ctx context.Context, vetID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	ListAll(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	UpdateStatus(ctx context.Context, apt *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Get(ctx context.Context, id uuid.UUID) (*model.Review, error)
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Review, error)
	ListByClinic(ctx context.Context, clinicID uuid.UUID, approvedOnly bool) ([]*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	ClinicRating(ctx context.Context, clinicID uuid.UUID) (average float64, total int, err error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	Get(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}
