package pet

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuidarpet/cuidarpet-api/internal/authz"
	"github.com/cuidarpet/cuidarpet-api/internal/model"
	"github.com/cuidarpet/cuidarpet-api/pkg/errors"
)

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
	cp := *pet
	return &cp, nil
}

func (r *fakePetRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*model.Pet, error) {
	var out []*model.Pet
	for _, pet := range r.pets {
		if pet.OwnerID == ownerID {
			out = append(out, pet)
		}
	}
	return out, nil
}

func (r *fakePetRepo) ListByClinicAppointments(_ context.Context, _ uuid.UUID) ([]*model.Pet, error) {
	return nil, nil
}

func (r *fakePetRepo) Update(_ context.Context, pet *model.Pet) error {
	if _, ok := r.pets[pet.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *pet
	r.pets[pet.ID] = &cp
	return nil
}

func (r *fakePetRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.pets[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.pets, id)
	return nil
}

// petResolver grants view access through pet ownership only.
type petResolver struct {
	repo *fakePetRepo
}

func (r *petResolver) OwnsPet(_ context.Context, userID, petID uuid.UUID) (bool, error) {
	pet, ok := r.repo.pets[petID]
	return ok && pet.OwnerID == userID, nil
}

func (r *petResolver) OwnsClinic(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (r *petResolver) TutorSeesAppointment(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (r *petResolver) VeterinarianSeesAppointment(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (r *petResolver) TutorBookedClinic(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (r *petResolver) VeterinarianServedPet(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func newTestService() (*Service, *fakePetRepo) {
	repo := &fakePetRepo{pets: map[uuid.UUID]*model.Pet{}}
	return NewService(repo, authz.NewGate(&petResolver{repo: repo})), repo
}

func tutorClaims() *authz.Claims {
	return &authz.Claims{UserID: uuid.New(), Email: "tutor@example.com", Name: "Tutor", Role: authz.RoleTutor}
}

func validRequest() *model.CreatePetRequest {
	return &model.CreatePetRequest{
		Name:        "Rex",
		Species:     "dog",
		Breed:       "labrador",
		Weight:      30,
		DateOfBirth: time.Now().AddDate(-3, 0, 0),
	}
}

func TestCreatePetStampsOwner(t *testing.T) {
	svc, _ := newTestService()
	tutor := tutorClaims()

	pet, err := svc.Create(context.Background(), tutor, validRequest())
	require.NoError(t, err)
	assert.Equal(t, tutor.UserID, pet.OwnerID)
	assert.NotEqual(t, uuid.Nil, pet.ID)
}

func TestCreatePetRejectsNonTutor(t *testing.T) {
	svc, _ := newTestService()

	vet := &authz.Claims{UserID: uuid.New(), Role: authz.RoleVeterinarian}
	_, err := svc.Create(context.Background(), vet, validRequest())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestCreatePetValidation(t *testing.T) {
	svc, _ := newTestService()
	tutor := tutorClaims()

	cases := []struct {
		name   string
		mutate func(*model.CreatePetRequest)
	}{
		{"zero weight", func(r *model.CreatePetRequest) { r.Weight = 0 }},
		{"negative weight", func(r *model.CreatePetRequest) { r.Weight = -1 }},
		{"excessive weight", func(r *model.CreatePetRequest) { r.Weight = 501 }},
		{"future date of birth", func(r *model.CreatePetRequest) { r.DateOfBirth = time.Now().Add(24 * time.Hour) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			_, err := svc.Create(context.Background(), tutor, req)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeValidation))
		})
	}
}

func TestGetPetCrossTenantDenied(t *testing.T) {
	svc, _ := newTestService()
	owner := tutorClaims()

	pet, err := svc.Create(context.Background(), owner, validRequest())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), owner, pet.ID)
	assert.NoError(t, err)

	stranger := tutorClaims()
	_, err = svc.Get(context.Background(), stranger, pet.ID)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestGetPetNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), tutorClaims(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestUpdatePetOwnershipEnforced(t *testing.T) {
	svc, _ := newTestService()
	owner := tutorClaims()

	pet, err := svc.Create(context.Background(), owner, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Name = "Bolt"

	updated, err := svc.Update(context.Background(), owner, pet.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Bolt", updated.Name)

	stranger := tutorClaims()
	_, err = svc.Update(context.Background(), stranger, pet.ID, req)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestDeletePetAdminOverride(t *testing.T) {
	svc, repo := newTestService()
	owner := tutorClaims()

	pet, err := svc.Create(context.Background(), owner, validRequest())
	require.NoError(t, err)

	admin := &authz.Claims{UserID: uuid.New(), Role: authz.RoleAdmin}
	require.NoError(t, svc.Delete(context.Background(), admin, pet.ID))
	assert.Empty(t, repo.pets)
}

func TestListPetsByRole(t *testing.T) {
	svc, _ := newTestService()
	owner := tutorClaims()

	_, err := svc.Create(context.Background(), owner, validRequest())
	require.NoError(t, err)

	pets, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, pets, 1)

	other := tutorClaims()
	pets, err = svc.List(context.Background(), other)
	require.NoError(t, err)
	assert.Empty(t, pets)
}
