package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle_FirstAttachUsesDefaultIntent(t *testing.T) {
	f := newFixture(t)
	a := f.asset(t, "Photos", models.AssetPhoto)
	contacts := []models.TrustedContact{f.contact(t, "sarah"), f.contact(t, "tom"), f.contact(t, "ana")}

	for _, c := range contacts {
		_, err := f.assignments.Toggle(f.ctx, f.user, a.ID, c.ID, true)
		require.NoError(t, err)
	}

	got, err := f.assignments.ContactsForAsset(f.ctx, f.user, a.ID)
	require.NoError(t, err)
	require.Len(t, got, len(contacts))
	for i, ci := range got {
		assert.Equal(t, contacts[i].ID, ci.Contact.ID)
		require.NotNil(t, ci.Intent)
		assert.Equal(t, models.IntentKeepAndShare, *ci.Intent)
	}
}

func TestToggle_ReattachPreservesIntent(t *testing.T) {
	f := newFixture(t)
	a := f.asset(t, "Photos", models.AssetPhoto)
	c := f.contact(t, "sarah")

	row, err := f.assignments.Toggle(f.ctx, f.user, a.ID, c.ID, true)
	require.NoError(t, err)
	_, err = f.assignments.UpdateIntent(f.ctx, f.user, row.ID, ptr("archive_quietly"))
	require.NoError(t, err)

	_, err = f.assignments.Toggle(f.ctx, f.user, a.ID, c.ID, false)
	require.NoError(t, err)

	got, err := f.assignments.ContactsForAsset(f.ctx, f.user, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
	unassigned, err := f.assignments.UnassignedAssets(f.ctx, f.user)
	require.NoError(t, err)
	assert.Len(t, unassigned, 1)

	back, err := f.assignments.Toggle(f.ctx, f.user, a.ID, c.ID, true)
	require.NoError(t, err)
	assert.Equal(t, row.ID, back.ID)
	require.NotNil(t, back.IntentAction)
	assert.Equal(t, models.IntentArchiveQuietly, *back.IntentAction)
}

func TestToggle_Idempotent(t *testing.T) {
	f := newFixture(t)
	a := f.asset(t, "Photos", models.AssetPhoto)
	c := f.contact(t, "sarah")

	first, err := f.assignments.Toggle(f.ctx, f.user, a.ID, c.ID, true)
	require.NoError(t, err)
	again, err := f.assignments.Toggle(f.ctx, f.user, a.ID, c.ID, true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	rows, err := f.assignments.List(f.ctx, f.user)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = f.assignments.Toggle(f.ctx, f.user, a.ID, f.contact(t, "tom").ID, false)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestToggle_UnknownPair(t *testing.T) {
	f := newFixture(t)
	a := f.asset(t, "Photos", models.AssetPhoto)

	_, err := f.assignments.Toggle(f.ctx, f.user, a.ID, uuid.New(), true)
	assert.True(t, IsValidation(err))
	_, err = f.assignments.Toggle(f.ctx, f.user, uuid.New(), f.contact(t, "sarah").ID, true)
	assert.True(t, IsValidation(err))
}

func TestCreate_OptionalIntentAndAliases(t *testing.T) {
	f := newFixture(t)
	a := f.asset(t, "Photos", models.AssetPhoto)
	c1, c2 := f.contact(t, "sarah"), f.contact(t, "tom")

	bare, err := f.assignments.Create(f.ctx, f.user, a.ID, c1.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, bare.IntentAction)

	aliased, err := f.assignments.Create(f.ctx, f.user, a.ID, c2.ID, ptr(" Delete "))
	require.NoError(t, err)
	require.NotNil(t, aliased.IntentAction)
	assert.Equal(t, models.IntentClearMyPath, *aliased.IntentAction)

	_, err = f.assignments.Create(f.ctx, f.user, a.ID, c1.ID, nil)
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	_, err = f.assignments.UpdateIntent(f.ctx, f.user, bare.ID, ptr("shred"))
	assert.True(t, IsValidation(err))

	missing, err := f.assignments.MissingIntent(f.ctx, f.user)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, bare.ID, missing[0].ID)
}

func TestSetAssetIntent(t *testing.T) {
	f := newFixture(t)
	a := f.asset(t, "Photos", models.AssetPhoto)
	lonely := f.asset(t, "Drafts", models.AssetCreativeWork)
	c1, c2 := f.contact(t, "sarah"), f.contact(t, "tom")

	_, err := f.assignments.Create(f.ctx, f.user, a.ID, c1.ID, nil)
	require.NoError(t, err)
	_, err = f.assignments.Create(f.ctx, f.user, a.ID, c2.ID, ptr("keep_and_share"))
	require.NoError(t, err)

	rows, err := f.assignments.SetAssetIntent(f.ctx, f.user, a.ID, "donate_to_history")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, models.IntentDonateToHistory, *r.IntentAction)
	}

	_, err = f.assignments.SetAssetIntent(f.ctx, f.user, lonely.ID, "archive_quietly")
	assert.ErrorIs(t, err, ErrNoAssignments)

	_, err = f.assignments.SetAssetIntent(f.ctx, f.user, a.ID, "")
	assert.True(t, IsValidation(err))
}

func TestAssetsForContact(t *testing.T) {
	f := newFixture(t)
	a1 := f.asset(t, "Photos", models.AssetPhoto)
	a2 := f.asset(t, "Voice", models.AssetVoiceNote)
	f.asset(t, "Journal", models.AssetJournal)
	c := f.contact(t, "sarah")

	for _, a := range []models.DigitalAsset{a1, a2} {
		_, err := f.assignments.Toggle(f.ctx, f.user, a.ID, c.ID, true)
		require.NoError(t, err)
	}

	got, err := f.assignments.AssetsForContact(f.ctx, f.user, c.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a1.ID, got[0].ID)
	assert.Equal(t, a2.ID, got[1].ID)

	_, err = f.assignments.AssetsForContact(f.ctx, f.user, uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDerivedQueries_SkipDanglingRows(t *testing.T) {
	asset := models.DigitalAsset{ID: uuid.New(), Type: models.AssetPhoto}
	contact := models.TrustedContact{ID: uuid.New(), Name: "Sarah"}
	rows := []models.RelationalAssignment{
		{ID: uuid.New(), AssetID: asset.ID, ContactID: uuid.New()},
		{ID: uuid.New(), AssetID: asset.ID, ContactID: contact.ID},
		{ID: uuid.New(), AssetID: uuid.New(), ContactID: contact.ID},
	}

	got := ContactsForAsset(asset.ID, rows, []models.TrustedContact{contact})
	require.Len(t, got, 1)
	assert.Equal(t, "Sarah", got[0].Contact.Name)

	assets := AssetsForContact(contact.ID, rows, []models.DigitalAsset{asset})
	require.Len(t, assets, 1)
	assert.Equal(t, asset.ID, assets[0].ID)
}

func TestSarahScenario(t *testing.T) {
	f := newFixture(t)

	sarah, err := f.vault.CreateContact(f.ctx, f.user, ContactInput{Name: "Sarah", Email: "SARAH@EX.COM"})
	require.NoError(t, err)
	assert.Equal(t, "sarah@ex.com", sarah.Email)

	photos := f.asset(t, "Family Photos", models.AssetPhoto)
	unassigned, err := f.assignments.UnassignedAssets(f.ctx, f.user)
	require.NoError(t, err)
	require.Len(t, unassigned, 1)
	assert.Equal(t, photos.ID, unassigned[0].ID)

	_, err = f.assignments.Create(f.ctx, f.user, photos.ID, sarah.ID, ptr("clear_my_path"))
	require.NoError(t, err)

	got, err := f.assignments.ContactsForAsset(f.ctx, f.user, photos.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sarah", got[0].Contact.Name)
	assert.Equal(t, models.IntentClearMyPath, *got[0].Intent)

	missing, err := f.assignments.MissingIntent(f.ctx, f.user)
	require.NoError(t, err)
	assert.Empty(t, missing)

	view, err := f.intentions.View(f.ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, 75, view.Overview.Completeness)
	assert.Empty(t, view.Overview.Prompts)
}
