package animal_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawmatch/pawmatch/internal/animal"
	"github.com/pawmatch/pawmatch/internal/api/models"
)

func newTestService() *animal.Service {
	return animal.NewService(
		animal.NewInMemoryRepository(),
		animal.NewInMemoryProfileRepository(),
	)
}

func validCreateRequest() *models.AnimalCreateRequest {
	return &models.AnimalCreateRequest{
		Name:       "Rex",
		Type:       "DOG",
		Breed:      "Labrador",
		AgeYears:   3,
		Gender:     "MALE",
		WeightKg:   28,
		Vaccinated: true,
		Sterilized: true,
	}
}

func fieldNames(err error) []string {
	var verr *animal.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	names := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		names = append(names, fe.Field)
	}
	return names
}

func TestService_Create(t *testing.T) {
	svc := newTestService()

	a, err := svc.Create(context.Background(), "usr_shelter", validCreateRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a.ID, "anm_"))
	assert.Equal(t, "Rex", a.Name)
	assert.Equal(t, "DOG", a.Type)
	assert.Equal(t, "AVAILABLE", a.Status)
	assert.True(t, a.AvailableForAdoption)
	assert.Equal(t, "usr_shelter", a.ShelterID)
}

func TestService_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.AnimalCreateRequest)
		field  string
	}{
		{"missing name", func(r *models.AnimalCreateRequest) { r.Name = "" }, "name"},
		{"unknown type", func(r *models.AnimalCreateRequest) { r.Type = "DRAGON" }, "type"},
		{"unknown gender", func(r *models.AnimalCreateRequest) { r.Gender = "UNKNOWN" }, "gender"},
		{"negative age", func(r *models.AnimalCreateRequest) { r.AgeYears = -1 }, "ageYears"},
		{"zero weight", func(r *models.AnimalCreateRequest) { r.WeightKg = 0 }, "weightKg"},
		{"name too long", func(r *models.AnimalCreateRequest) { r.Name = strings.Repeat("x", 81) }, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), "usr_shelter", req)
			require.Error(t, err)
			assert.Contains(t, fieldNames(err), tt.field)
		})
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), "anm_missing")
	assert.ErrorIs(t, err, animal.ErrAnimalNotFound)
}

func TestService_List_AdoptableOnly(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a1, err := svc.Create(ctx, "usr_shelter", validCreateRequest())
	require.NoError(t, err)
	a2, err := svc.Create(ctx, "usr_shelter", validCreateRequest())
	require.NoError(t, err)

	adopted := "ADOPTED"
	_, err = svc.Update(ctx, a2.ID, &models.AnimalUpdateRequest{Status: &adopted})
	require.NoError(t, err)

	list, err := svc.List(ctx, true, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, a1.ID, list.Items[0].ID)

	all, err := svc.List(ctx, false, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestService_Update_Partial(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "usr_shelter", validCreateRequest())
	require.NoError(t, err)

	name := "Buddy"
	weight := 30.5
	updated, err := svc.Update(ctx, created.ID, &models.AnimalUpdateRequest{
		Name:     &name,
		WeightKg: &weight,
	})
	require.NoError(t, err)

	assert.Equal(t, "Buddy", updated.Name)
	assert.InDelta(t, 30.5, updated.WeightKg, 0.001)
	// Untouched fields keep their values.
	assert.Equal(t, "Labrador", updated.Breed)
	assert.Equal(t, "AVAILABLE", updated.Status)
}

func TestService_Update_InvalidStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "usr_shelter", validCreateRequest())
	require.NoError(t, err)

	bad := "LOST"
	_, err = svc.Update(ctx, created.ID, &models.AnimalUpdateRequest{Status: &bad})
	require.Error(t, err)
	assert.Contains(t, fieldNames(err), "status")
}

func TestService_Update_NotFound(t *testing.T) {
	svc := newTestService()

	name := "Buddy"
	_, err := svc.Update(context.Background(), "anm_missing", &models.AnimalUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, animal.ErrAnimalNotFound)
}

func TestService_Delete_RemovesAnimalAndProfile(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "usr_shelter", validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpsertProfile(ctx, created.ID, validProfileRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, animal.ErrAnimalNotFound)
	_, err = svc.GetProfile(ctx, created.ID)
	assert.ErrorIs(t, err, animal.ErrAnimalNotFound)
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := newTestService()

	err := svc.Delete(context.Background(), "anm_missing")
	assert.ErrorIs(t, err, animal.ErrAnimalNotFound)
}

func validProfileRequest() *models.AnimalProfileRequest {
	return &models.AnimalProfileRequest{
		EnergyLevel:   "MODERATE",
		TrainingLevel: "BASIC",
		CareLevel:     "MODERATE",
		HouseTrained:  true,
	}
}

func TestService_UpsertProfile_Defaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "usr_shelter", validCreateRequest())
	require.NoError(t, err)

	p, err := svc.UpsertProfile(ctx, created.ID, validProfileRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p.ID, "prf_"))
	assert.Equal(t, created.ID, p.AnimalID)

	// Unstated behavioral attributes stay null, not false.
	assert.Nil(t, p.GoodWithKids)
	assert.Nil(t, p.GoodWithOtherPets)
	assert.Nil(t, p.LeashTrained)

	// Environment-fit flags default to true when absent.
	assert.True(t, p.ApartmentSuitable)
	assert.True(t, p.BeginnerFriendly)
	assert.True(t, p.FamilyFriendly)
}

func TestService_UpsertProfile_ExplicitValues(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "usr_shelter", validCreateRequest())
	require.NoError(t, err)

	goodWithKids := true
	goodWithPets := false
	apartment := false
	req := validProfileRequest()
	req.GoodWithKids = &goodWithKids
	req.GoodWithOtherPets = &goodWithPets
	req.ApartmentSuitable = &apartment

	p, err := svc.UpsertProfile(ctx, created.ID, req)
	require.NoError(t, err)

	require.NotNil(t, p.GoodWithKids)
	assert.True(t, *p.GoodWithKids)
	require.NotNil(t, p.GoodWithOtherPets)
	assert.False(t, *p.GoodWithOtherPets)
	assert.False(t, p.ApartmentSuitable)
}

func TestService_UpsertProfile_ReplaceKeepsIdentity(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "usr_shelter", validCreateRequest())
	require.NoError(t, err)

	first, err := svc.UpsertProfile(ctx, created.ID, validProfileRequest())
	require.NoError(t, err)

	req := validProfileRequest()
	req.EnergyLevel = "HIGH"
	second, err := svc.UpsertProfile(ctx, created.ID, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "HIGH", second.EnergyLevel)
}

func TestService_UpsertProfile_ValidationErrors(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "usr_shelter", validCreateRequest())
	require.NoError(t, err)

	req := validProfileRequest()
	req.EnergyLevel = "TURBO"
	req.CareLevel = "NONE"

	_, err = svc.UpsertProfile(ctx, created.ID, req)
	require.Error(t, err)

	var verr *animal.ValidationError
	require.ErrorAs(t, err, &verr)
	names := fieldNames(err)
	assert.Contains(t, names, "energyLevel")
	assert.Contains(t, names, "careLevel")
}

func TestService_GetProfile_NotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "usr_shelter", validCreateRequest())
	require.NoError(t, err)

	_, err = svc.GetProfile(ctx, created.ID)
	assert.ErrorIs(t, err, animal.ErrProfileNotFound)
}
