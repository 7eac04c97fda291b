package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContact_NormalizesEmail(t *testing.T) {
	f := newFixture(t)

	c, err := f.vault.CreateContact(f.ctx, f.user, ContactInput{
		Name:         "  Sarah ",
		Email:        " SARAH@EX.COM ",
		Relationship: ptr("  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Sarah", c.Name)
	assert.Equal(t, "sarah@ex.com", c.Email)
	assert.Nil(t, c.Relationship)
	assert.Equal(t, f.user, c.UserID)
}

func TestCreateContact_Validation(t *testing.T) {
	f := newFixture(t)

	cases := map[string]ContactInput{
		"blank name":    {Name: "  ", Email: "a@ex.com"},
		"blank email":   {Name: "A", Email: " "},
		"invalid email": {Name: "A", Email: "not-an-email"},
		"too many words": {
			Name: "A", Email: "a@ex.com",
			PersonalizedMessage: ptr(strings.Repeat("word ", models.MaxMessageWords+1)),
		},
		"too many chars": {
			Name: "A", Email: "a@ex.com",
			PersonalizedMessage: ptr(strings.Repeat("x", models.MaxMessageChars+1)),
		},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.vault.CreateContact(f.ctx, f.user, in)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}

	rows, err := f.vault.ListContacts(f.ctx, f.user)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCreateContact_MessageAtLimit(t *testing.T) {
	f := newFixture(t)
	msg := strings.TrimSpace(strings.Repeat("word ", models.MaxMessageWords))

	c, err := f.vault.CreateContact(f.ctx, f.user, ContactInput{Name: "A", Email: "a@ex.com", PersonalizedMessage: &msg})
	require.NoError(t, err)
	require.NotNil(t, c.PersonalizedMessage)
}

func TestCreateAsset_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.vault.CreateAsset(f.ctx, f.user, AssetInput{Name: "Photos", Type: "video"})
	assert.True(t, IsValidation(err))

	_, err = f.vault.CreateAsset(f.ctx, f.user, AssetInput{Name: " ", Type: "photo"})
	assert.True(t, IsValidation(err))

	_, err = f.vault.CreateAsset(f.ctx, f.user, AssetInput{Name: "Photos", Type: "photo", CollectionID: ptr(uuid.New())})
	assert.True(t, IsValidation(err))
}

func TestAssets_ScopedToOwner(t *testing.T) {
	f := newFixture(t)
	a := f.asset(t, "Family Photos", models.AssetPhoto)

	_, err := f.vault.GetAsset(f.ctx, uuid.New(), a.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = f.vault.DeleteAsset(f.ctx, uuid.New(), a.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUpdateAsset(t *testing.T) {
	f := newFixture(t)
	col, err := f.vault.CreateCollection(f.ctx, f.user, "Trips")
	require.NoError(t, err)
	a := f.asset(t, "Rome", models.AssetPhoto)

	updated, err := f.vault.UpdateAsset(f.ctx, f.user, a.ID, AssetPatch{
		Name:         ptr("Rome 2019"),
		Type:         ptr("journal"),
		Notes:        ptr("Google Photos album"),
		CollectionID: &col.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rome 2019", updated.Name)
	assert.Equal(t, models.AssetJournal, updated.Type)
	require.NotNil(t, updated.CollectionID)
	assert.Equal(t, col.ID, *updated.CollectionID)

	updated, err = f.vault.UpdateAsset(f.ctx, f.user, a.ID, AssetPatch{ClearCollection: true})
	require.NoError(t, err)
	assert.Nil(t, updated.CollectionID)
	assert.Equal(t, "Rome 2019", updated.Name)

	_, err = f.vault.UpdateAsset(f.ctx, f.user, a.ID, AssetPatch{Type: ptr("bogus")})
	assert.True(t, IsValidation(err))
}

func TestDeleteAsset_PurgesAssignments(t *testing.T) {
	f := newFixture(t)
	a := f.asset(t, "Photos", models.AssetPhoto)
	other := f.asset(t, "Letters", models.AssetMessage)
	c1, c2 := f.contact(t, "sarah"), f.contact(t, "tom")

	for _, c := range []models.TrustedContact{c1, c2} {
		_, err := f.assignments.Toggle(f.ctx, f.user, a.ID, c.ID, true)
		require.NoError(t, err)
	}
	_, err := f.assignments.Toggle(f.ctx, f.user, other.ID, c1.ID, true)
	require.NoError(t, err)

	_, err = f.vault.DeleteAsset(f.ctx, f.user, a.ID)
	require.NoError(t, err)

	rows, err := f.assignments.List(f.ctx, f.user)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, other.ID, rows[0].AssetID)
}

func TestDeleteContact_PurgesAssignmentsAndExecutor(t *testing.T) {
	f := newFixture(t)
	a := f.asset(t, "Photos", models.AssetPhoto)
	c := f.contact(t, "sarah")
	keep := f.contact(t, "tom")

	_, err := f.assignments.Toggle(f.ctx, f.user, a.ID, c.ID, true)
	require.NoError(t, err)
	_, err = f.assignments.Toggle(f.ctx, f.user, a.ID, keep.ID, true)
	require.NoError(t, err)
	_, err = f.profiles.Update(f.ctx, f.user, ProfileInput{ExecutorContactID: &c.ID})
	require.NoError(t, err)

	require.NoError(t, f.vault.DeleteContact(f.ctx, f.user, c.ID))

	rows, err := f.assignments.List(f.ctx, f.user)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, keep.ID, rows[0].ContactID)

	prof, err := f.profiles.Get(f.ctx, f.user)
	require.NoError(t, err)
	assert.Nil(t, prof.ExecutorContactID)

	assert.ErrorIs(t, f.vault.DeleteContact(f.ctx, f.user, c.ID), repositories.ErrNotFound)
}

func TestDeleteCollection_KeepsMemberAssets(t *testing.T) {
	f := newFixture(t)
	col, err := f.vault.CreateCollection(f.ctx, f.user, "Trips")
	require.NoError(t, err)

	a, err := f.vault.CreateAsset(f.ctx, f.user, AssetInput{Name: "Rome", Type: "photo", CollectionID: &col.ID})
	require.NoError(t, err)
	require.NotNil(t, a.CollectionID)

	require.NoError(t, f.vault.DeleteCollection(f.ctx, f.user, col.ID))

	got, err := f.vault.GetAsset(f.ctx, f.user, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CollectionID)

	cols, err := f.vault.ListCollections(f.ctx, f.user)
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestVault_PersistenceDisabled(t *testing.T) {
	v := NewVault(nil)
	user := uuid.New()

	_, err := v.CreateContact(t.Context(), user, ContactInput{Name: "A", Email: "a@ex.com"})
	assert.ErrorIs(t, err, ErrPersistenceDisabled)
	_, err = v.ListAssets(t.Context(), user)
	assert.ErrorIs(t, err, ErrPersistenceDisabled)
	assert.ErrorIs(t, v.DeleteCollection(t.Context(), user, uuid.New()), ErrPersistenceDisabled)
}
