package services

import (
	"testing"

	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocial_SaveUpsertAndClear(t *testing.T) {
	f := newFixture(t)
	s := NewSocial(f.store)

	row, err := s.Save(f.ctx, f.user, "LinkedIn", "final_post_then_close", ptr("post the farewell draft"))
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, models.PlatformLinkedIn, row.Platform)

	row, err = s.Save(f.ctx, f.user, "linkedin", "delete", nil)
	require.NoError(t, err)
	assert.Equal(t, "delete", row.Intention)

	rows, err := s.List(f.ctx, f.user)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "delete", rows[0].Intention)

	row, err = s.Save(f.ctx, f.user, "linkedin", " ", nil)
	require.NoError(t, err)
	assert.Nil(t, row)

	rows, err = s.List(f.ctx, f.user)
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.ErrorIs(t, s.Delete(f.ctx, f.user, "linkedin"), repositories.ErrNotFound)
}

func TestSocial_RejectsForeignActions(t *testing.T) {
	f := newFixture(t)
	s := NewSocial(f.store)

	_, err := s.Save(f.ctx, f.user, "instagram", "wipe", nil)
	assert.True(t, IsValidation(err))

	_, err = s.Save(f.ctx, f.user, "myspace", "delete", nil)
	assert.True(t, IsValidation(err))
}

func TestSocialOptions(t *testing.T) {
	opts := SocialOptions()
	require.Len(t, opts, len(models.Platforms))
	assert.Equal(t, models.PlatformInstagram, opts[0].Platform)
	assert.Equal(t, []string{"memorialize", "delete"}, opts[0].Intentions)
}
