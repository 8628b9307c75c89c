package clinic

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/pkg/errors"
)

type fakeClinicRepo struct {
	clinics    map[uuid.UUID]*model.Clinic
	failUpdate bool
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

func (r *fakeClinicRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*model.Clinic, error) {
	var out []*model.Clinic
	for _, clinic := range r.clinics {
		if clinic.OwnerID == ownerID {
			out = append(out, clinic)
		}
	}
	return out, nil
}

func (r *fakeClinicRepo) ListVisibleToTutor(_ context.Context, _ uuid.UUID) ([]*model.Clinic, error) {
	return nil, nil
}

func (r *fakeClinicRepo) ListAll(_ context.Context) ([]*model.Clinic, error) {
	var out []*model.Clinic
	for _, clinic := range r.clinics {
		out = append(out, clinic)
	}
	return out, nil
}

func (r *fakeClinicRepo) Update(_ context.Context, clinic *model.Clinic) error {
	if r.failUpdate {
		return sql.ErrConnDone
	}
	r.clinics[clinic.ID] = clinic
	return nil
}

func (r *fakeClinicRepo) UpdateRating(_ context.Context, id uuid.UUID, average float64, total int) error {
	clinic, ok := r.clinics[id]
	if !ok {
		return sql.ErrNoRows
	}
	clinic.AverageRating = &average
	clinic.TotalReviews = total
	return nil
}

func (r *fakeClinicRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clinics, id)
	return nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func (r *fakeServiceRepo) Create(_ context.Context, service *model.Service) error {
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	service, ok := r.services[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return service, nil
}

func (r *fakeServiceRepo) ListByClinic(_ context.Context, clinicID uuid.UUID, activeOnly bool) ([]*model.Service, error) {
	var out []*model.Service
	for _, service := range r.services {
		if service.ClinicID != clinicID {
			continue
		}
		if activeOnly && !service.IsActive {
			continue
		}
		out = append(out, service)
	}
	return out, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, service *model.Service) error {
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	service, ok := r.services[id]
	if !ok {
		return sql.ErrNoRows
	}
	service.IsActive = false
	return nil
}

type denyResolver struct{}

func (denyResolver) OwnsPet(context.Context, uuid.UUID, uuid.UUID) (bool, error)    { return false, nil }
func (denyResolver) OwnsClinic(context.Context, uuid.UUID, uuid.UUID) (bool, error) { return false, nil }
func (denyResolver) TutorSeesAppointment(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
func (denyResolver) VeterinarianSeesAppointment(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
func (denyResolver) TutorBookedClinic(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
func (denyResolver) VeterinarianServedPet(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

type fixture struct {
	svc    *Service
	repo   *fakeClinicRepo
	tutor  *authz.Claims
	vet    *authz.Claims
	admin  *authz.Claims
	clinic *model.Clinic
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	vetID := uuid.New()
	clinic := &model.Clinic{
		Base:       model.Base{ID: uuid.New()},
		OwnerID:    vetID,
		Name:       "Clinica Boa Vida",
		IsActive:   true,
		IsVerified: true,
	}

	repo := &fakeClinicRepo{clinics: map[uuid.UUID]*model.Clinic{clinic.ID: clinic}}
	services := &fakeServiceRepo{services: map[uuid.UUID]*model.Service{}}

	return &fixture{
		svc:    NewService(repo, services, authz.NewGate(denyResolver{})),
		repo:   repo,
		tutor:  &authz.Claims{UserID: uuid.New(), Role: authz.RoleTutor},
		vet:    &authz.Claims{UserID: vetID, Role: authz.RoleVeterinarian},
		admin:  &authz.Claims{UserID: uuid.New(), Role: authz.RoleAdmin},
		clinic: clinic,
	}
}

func updateRequest(name string) *model.CreateClinicRequest {
	return &model.CreateClinicRequest{Name: name}
}

func TestCreateClinic(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), f.vet, updateRequest("Clinica Central"))
	require.NoError(t, err)
	assert.Equal(t, f.vet.UserID, created.OwnerID)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsVerified)

	_, err = f.svc.Create(context.Background(), f.tutor, updateRequest("Clinica do Tutor"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestGetServesCachedClinic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Get(ctx, f.tutor, f.clinic.ID)
	require.NoError(t, err)
	require.Equal(t, "Clinica Boa Vida", first.Name)

	// Replace the row behind the service's back; the cached copy wins until
	// the next invalidating write.
	renamed := *f.clinic
	renamed.Name = "Renamed Elsewhere"
	f.repo.clinics[f.clinic.ID] = &renamed

	second, err := f.svc.Get(ctx, f.tutor, f.clinic.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clinica Boa Vida", second.Name)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, f.tutor, f.clinic.ID)
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, f.vet, f.clinic.ID, updateRequest("Clinica Atualizada"))
	require.NoError(t, err)
	assert.Equal(t, "Clinica Atualizada", updated.Name)

	got, err := f.svc.Get(ctx, f.tutor, f.clinic.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clinica Atualizada", got.Name)
	assert.Equal(t, "Clinica Atualizada", f.repo.clinics[f.clinic.ID].Name)
}

func TestFailedUpdateDoesNotLeakIntoCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, f.tutor, f.clinic.ID)
	require.NoError(t, err)

	f.repo.failUpdate = true
	_, err = f.svc.Update(ctx, f.vet, f.clinic.ID, updateRequest("Never Persisted"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInternal))

	// Reads after the failed write must keep serving the persisted state,
	// not the mutated request.
	got, err := f.svc.Get(ctx, f.tutor, f.clinic.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clinica Boa Vida", got.Name)
	assert.Equal(t, "Clinica Boa Vida", f.repo.clinics[f.clinic.ID].Name)
}

func TestUpdateRejectsForeignVeterinarian(t *testing.T) {
	f := newFixture(t)

	stranger := &authz.Claims{UserID: uuid.New(), Role: authz.RoleVeterinarian}
	_, err := f.svc.Update(context.Background(), stranger, f.clinic.ID, updateRequest("Hijacked"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
	assert.Equal(t, "Clinica Boa Vida", f.repo.clinics[f.clinic.ID].Name)
}

func TestSetVerified(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SetVerified(ctx, f.vet, f.clinic.ID, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))

	updated, err := f.svc.SetVerified(ctx, f.admin, f.clinic.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsVerified)
	assert.False(t, f.repo.clinics[f.clinic.ID].IsVerified)
}

func TestSetVerifiedFailedWriteKeepsCachedState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, f.tutor, f.clinic.ID)
	require.NoError(t, err)

	f.repo.failUpdate = true
	_, err = f.svc.SetVerified(ctx, f.admin, f.clinic.ID, false)
	require.Error(t, err)

	got, err := f.svc.Get(ctx, f.tutor, f.clinic.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
}
