package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiles_DefaultsAndUpdate(t *testing.T) {
	f := newFixture(t)

	p, err := f.profiles.Get(f.ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultWaitPeriodDays, p.WaitPeriodDays)
	assert.False(t, p.MasterScrubEnabled)
	assert.Nil(t, p.ExecutorContactID)

	c := f.contact(t, "sarah")
	p, err = f.profiles.Update(f.ctx, f.user, ProfileInput{
		ExecutorContactID:  &c.ID,
		WaitPeriodDays:     ptr(30),
		MasterScrubEnabled: ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, p.WaitPeriodDays)
	assert.True(t, p.MasterScrubEnabled)
	require.NotNil(t, p.ExecutorContactID)

	p, err = f.profiles.Update(f.ctx, f.user, ProfileInput{ClearExecutor: true})
	require.NoError(t, err)
	assert.Nil(t, p.ExecutorContactID)
	assert.Equal(t, 30, p.WaitPeriodDays)
}

func TestProfiles_Validation(t *testing.T) {
	f := newFixture(t)

	for _, days := range []int{6, 31, 0} {
		_, err := f.profiles.Update(f.ctx, f.user, ProfileInput{WaitPeriodDays: ptr(days)})
		assert.True(t, IsValidation(err), "days=%d", days)
	}

	_, err := f.profiles.Update(f.ctx, f.user, ProfileInput{ExecutorContactID: ptr(uuid.New())})
	assert.True(t, IsValidation(err))
}
