package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/email"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/pkg/errors"
	"github.com/cuidarpet/cuidarpet-api/pkg/logger"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	r.appointments[apt.ID] = apt
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *apt
	return &cp, nil
}

func (r *fakeAppointmentRepo) ListForTutor(_ context.Context, _ uuid.UUID, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) ListForVeterinarian(_ context.Context, _ uuid.UUID, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) ListAll(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	out := make([]*model.Appointment, 0, len(r.appointments))
	for _, apt := range r.appointments {
		out = append(out, apt)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, apt *model.Appointment) error {
	if _, ok := r.appointments[apt.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *apt
	r.appointments[apt.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.appointments[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.appointments, id)
	return nil
}

type fakePetRepo struct {
	pets map[uuid.UUID]*model.Pet
}

func (r *fakePetRepo) Create(_ context.Context, pet *model.Pet) error {
	r.pets[pet.ID] = pet
	return nil
}

func (r *fakePetRepo) Get(_ context.Context, id uuid.UUID) (*model.Pet, error) {
	pet, ok := r.pets[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return pet, nil
}

func (r *fakePetRepo) ListByOwner(_ context.Context, _ uuid.UUID) ([]*model.Pet, error) {
	return nil, nil
}

func (r *fakePetRepo) ListByClinicAppointments(_ context.Context, _ uuid.UUID) ([]*model.Pet, error) {
	return nil, nil
}

func (r *fakePetRepo) Update(_ context.Context, pet *model.Pet) error {
	r.pets[pet.ID] = pet
	return nil
}

func (r *fakePetRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.pets, id)
	return nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func (r *fakeServiceRepo) Create(_ context.Context, svc *model.Service) error {
	r.services[svc.ID] = svc
	return nil
}

func (r *fakeServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return svc, nil
}

func (r *fakeServiceRepo) ListByClinic(_ context.Context, _ uuid.UUID, _ bool) ([]*model.Service, error) {
	return nil, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, svc *model.Service) error {
	r.services[svc.ID] = svc
	return nil
}

func (r *fakeServiceRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if svc, ok := r.services[id]; ok {
		svc.IsActive = false
	}
	return nil
}

type fakeClinicRepo struct {
	clinics map[uuid.UUID]*model.Clinic
}

func (r *fakeClinicRepo) Create(_ context.Context, clinic *model.Clinic) error {
	r.clinics[clinic.ID] = clinic
	return nil
}

func (r *fakeClinicRepo) Get(_ context.Context, id uuid.UUID) (*model.Clinic, error) {
	clinic, ok := r.clinics[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return clinic, nil
}

func (r *fakeClinicRepo) ListByOwner(_ context.Context, _ uuid.UUID) ([]*model.Clinic, error) {
	return nil, nil
}

func (r *fakeClinicRepo) ListVisibleToTutor(_ context.Context, _ uuid.UUID) ([]*model.Clinic, error) {
	return nil, nil
}

func (r *fakeClinicRepo) ListAll(_ context.Context) ([]*model.Clinic, error) {
	return nil, nil
}

func (r *fakeClinicRepo) Update(_ context.Context, clinic *model.Clinic) error {
	r.clinics[clinic.ID] = clinic
	return nil
}

func (r *fakeClinicRepo) UpdateRating(_ context.Context, _ uuid.UUID, _ float64, _ int) error {
	return nil
}

func (r *fakeClinicRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clinics, id)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateLastSignedIn(_ context.Context, id uuid.UUID, at time.Time) error {
	if user, ok := r.users[id]; ok {
		user.LastSignedIn = &at
	}
	return nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, event *model.OutboxEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *fakeOutboxRepo) GetPendingEvents(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return r.events, nil
}

func (r *fakeOutboxRepo) MarkProcessed(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeOutboxRepo) MarkFailed(_ context.Context, _ uuid.UUID, _ string) error { return nil }

// testResolver answers ownership from the fake stores.
type testResolver struct {
	pets    *fakePetRepo
	clinics *fakeClinicRepo
	apts    *fakeAppointmentRepo
}

func (r *testResolver) OwnsPet(_ context.Context, userID, petID uuid.UUID) (bool, error) {
	pet, ok := r.pets.pets[petID]
	return ok && pet.OwnerID == userID, nil
}

func (r *testResolver) OwnsClinic(_ context.Context, userID, clinicID uuid.UUID) (bool, error) {
	clinic, ok := r.clinics.clinics[clinicID]
	return ok && clinic.OwnerID == userID, nil
}

func (r *testResolver) TutorSeesAppointment(_ context.Context, tutorID, aptID uuid.UUID) (bool, error) {
	apt, ok := r.apts.appointments[aptID]
	if !ok {
		return false, nil
	}
	return r.OwnsPet(context.Background(), tutorID, apt.PetID)
}

func (r *testResolver) VeterinarianSeesAppointment(_ context.Context, vetID, aptID uuid.UUID) (bool, error) {
	apt, ok := r.apts.appointments[aptID]
	if !ok {
		return false, nil
	}
	return r.OwnsClinic(context.Background(), vetID, apt.ClinicID)
}

func (r *testResolver) TutorBookedClinic(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (r *testResolver) VeterinarianServedPet(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

type fixture struct {
	svc     *Service
	apts    *fakeAppointmentRepo
	outbox  *fakeOutboxRepo
	tutor   *authz.Claims
	vet     *authz.Claims
	admin   *authz.Claims
	pet     *model.Pet
	clinic  *model.Clinic
	catalog *model.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tutorID := uuid.New()
	vetID := uuid.New()

	pet := &model.Pet{
		Base:    model.Base{ID: uuid.New()},
		OwnerID: tutorID,
		Name:    "Rex",
		Species: "dog",
		Breed:   "labrador",
		Weight:  30,
	}
	clinic := &model.Clinic{
		Base:       model.Base{ID: uuid.New()},
		OwnerID:    vetID,
		Name:       "Clinica Boa Vida",
		IsActive:   true,
		IsVerified: true,
	}
	catalog := &model.Service{
		Base:     model.Base{ID: uuid.New()},
		ClinicID: clinic.ID,
		Name:     "Consulta geral",
		Price:    120,
		IsActive: true,
	}
	tutorUser := &model.User{
		Base:  model.Base{ID: tutorID},
		Name:  "Ana",
		Email: "ana@example.com",
		Role:  authz.RoleTutor,
	}

	pets := &fakePetRepo{pets: map[uuid.UUID]*model.Pet{pet.ID: pet}}
	clinics := &fakeClinicRepo{clinics: map[uuid.UUID]*model.Clinic{clinic.ID: clinic}}
	services := &fakeServiceRepo{services: map[uuid.UUID]*model.Service{catalog.ID: catalog}}
	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{tutorID: tutorUser}}
	apts := &fakeAppointmentRepo{appointments: map[uuid.UUID]*model.Appointment{}}
	outbox := &fakeOutboxRepo{}

	gate := authz.NewGate(&testResolver{pets: pets, clinics: clinics, apts: apts})

	svc := NewService(apts, pets, services, clinics, users, outbox, gate, email.NewNoopNotifier(), logger.NewLogger(nil))

	return &fixture{
		svc:     svc,
		apts:    apts,
		outbox:  outbox,
		tutor:   &authz.Claims{UserID: tutorID, Email: "ana@example.com", Name: "Ana", Role: authz.RoleTutor},
		vet:     &authz.Claims{UserID: vetID, Email: "vet@example.com", Name: "Dr. Souza", Role: authz.RoleVeterinarian},
		admin:   &authz.Claims{UserID: uuid.New(), Email: "admin@example.com", Name: "Admin", Role: authz.RoleAdmin},
		pet:     pet,
		clinic:  clinic,
		catalog: catalog,
	}
}

func (f *fixture) createRequest() *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		PetID:         f.pet.ID,
		ServiceID:     f.catalog.ID,
		ClinicID:      f.clinic.ID,
		ScheduledDate: time.Now().Add(48 * time.Hour),
	}
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Create(ctx, f.tutor, f.createRequest())
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentScheduled, apt.Status)
	assert.Equal(t, f.pet.ID, apt.PetID)
	assert.Nil(t, apt.CompletedDate)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, model.EventAppointmentCreated, f.outbox.events[0].EventType)
}

func TestCreateAppointmentRejectsPastDate(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest()
	req.ScheduledDate = time.Now().Add(-time.Hour)

	_, err := f.svc.Create(context.Background(), f.tutor, req)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidation))
}

func TestCreateAppointmentRejectsForeignPet(t *testing.T) {
	f := newFixture(t)

	otherTutor := &authz.Claims{UserID: uuid.New(), Role: authz.RoleTutor}
	_, err := f.svc.Create(context.Background(), otherTutor, f.createRequest())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestCreateAppointmentRejectsServiceClinicMismatch(t *testing.T) {
	f := newFixture(t)

	otherClinic := &model.Clinic{
		Base:       model.Base{ID: uuid.New()},
		OwnerID:    uuid.New(),
		Name:       "Outra Clinica",
		IsActive:   true,
		IsVerified: true,
	}
	require.NoError(t, f.svc.clinicRepo.Create(context.Background(), otherClinic))

	req := f.createRequest()
	req.ClinicID = otherClinic.ID

	_, err := f.svc.Create(context.Background(), f.tutor, req)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidation))
}

func TestCreateAppointmentRejectsVeterinarian(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.vet, f.createRequest())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestUpdateStatusCompletesAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Create(ctx, f.tutor, f.createRequest())
	require.NoError(t, err)

	result := "healthy"
	price := 150.0
	updated, err := f.svc.UpdateStatus(ctx, f.vet, apt.ID, &model.UpdateAppointmentStatusRequest{
		Status:       int(model.AppointmentCompleted),
		Result:       &result,
		PriceCharged: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentCompleted, updated.Status)
	require.NotNil(t, updated.CompletedDate)
	assert.Equal(t, &result, updated.Result)
	assert.Equal(t, &price, updated.PriceCharged)

	require.Len(t, f.outbox.events, 2)
	assert.Equal(t, model.EventAppointmentCompleted, f.outbox.events[1].EventType)
}

func TestUpdateStatusRejectsTerminalTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Create(ctx, f.tutor, f.createRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, f.vet, apt.ID, &model.UpdateAppointmentStatusRequest{
		Status: int(model.AppointmentCancelled),
	})
	require.NoError(t, err)

	// Cancelled is terminal: no way back to Scheduled or on to Completed.
	for _, next := range []model.AppointmentStatus{model.AppointmentScheduled, model.AppointmentCompleted, model.AppointmentCancelled} {
		_, err = f.svc.UpdateStatus(ctx, f.vet, apt.ID, &model.UpdateAppointmentStatusRequest{
			Status: int(next),
		})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeInvalidTransition))
	}
}

func TestUpdateStatusRejectsForeignClinic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Create(ctx, f.tutor, f.createRequest())
	require.NoError(t, err)

	otherVet := &authz.Claims{UserID: uuid.New(), Role: authz.RoleVeterinarian}
	_, err = f.svc.UpdateStatus(ctx, otherVet, apt.ID, &model.UpdateAppointmentStatusRequest{
		Status: int(model.AppointmentCompleted),
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestUpdateStatusRejectsTutor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Create(ctx, f.tutor, f.createRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, f.tutor, apt.ID, &model.UpdateAppointmentStatusRequest{
		Status: int(model.AppointmentCompleted),
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestUpdateStatusAdminBypassesOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Create(ctx, f.tutor, f.createRequest())
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, f.admin, apt.ID, &model.UpdateAppointmentStatusRequest{
		Status: int(model.AppointmentCancelled),
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentCancelled, updated.Status)
}

func TestDeleteScheduledAppointmentByTutor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Create(ctx, f.tutor, f.createRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.tutor, apt.ID))

	_, err = f.svc.Get(ctx, f.admin, apt.ID)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))

	// Deleting a scheduled appointment emits a cancellation event.
	require.Len(t, f.outbox.events, 2)
	assert.Equal(t, model.EventAppointmentCancelled, f.outbox.events[1].EventType)
}

func TestDeleteCompletedAppointmentForbiddenForTutor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Create(ctx, f.tutor, f.createRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, f.vet, apt.ID, &model.UpdateAppointmentStatusRequest{
		Status: int(model.AppointmentCompleted),
	})
	require.NoError(t, err)

	err = f.svc.Delete(ctx, f.tutor, apt.ID)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))

	// Admin can still remove it.
	assert.NoError(t, f.svc.Delete(ctx, f.admin, apt.ID))
}

func TestDeleteForeignAppointmentForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Create(ctx, f.tutor, f.createRequest())
	require.NoError(t, err)

	otherTutor := &authz.Claims{UserID: uuid.New(), Role: authz.RoleTutor}
	err = f.svc.Delete(ctx, otherTutor, apt.ID)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestGetAppointmentVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt, err := f.svc.Create(ctx, f.tutor, f.createRequest())
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, f.tutor, apt.ID)
	assert.NoError(t, err)

	_, err = f.svc.Get(ctx, f.vet, apt.ID)
	assert.NoError(t, err)

	otherTutor := &authz.Claims{UserID: uuid.New(), Role: authz.RoleTutor}
	_, err = f.svc.Get(ctx, otherTutor, apt.ID)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}
