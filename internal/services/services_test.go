package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx         context.Context
	store       *repositories.MemoryStore
	user        uuid.UUID
	vault       *Vault
	assignments *Assignments
	intentions  *Intentions
	profiles    *Profiles
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repositories.NewMemoryStore()
	return &fixture{
		ctx:         context.Background(),
		store:       store,
		user:        uuid.New(),
		vault:       NewVault(store),
		assignments: NewAssignments(store),
		intentions:  NewIntentions(store),
		profiles:    NewProfiles(store),
	}
}

func (f *fixture) contact(t *testing.T, name string) models.TrustedContact {
	t.Helper()
	c, err := f.vault.CreateContact(f.ctx, f.user, ContactInput{Name: name, Email: name + "@ex.com"})
	require.NoError(t, err)
	return c
}

func (f *fixture) asset(t *testing.T, name string, typ models.AssetType) models.DigitalAsset {
	t.Helper()
	a, err := f.vault.CreateAsset(f.ctx, f.user, AssetInput{Name: name, Type: string(typ)})
	require.NoError(t, err)
	return a
}

func ptr[T any](v T) *T { return &v }
