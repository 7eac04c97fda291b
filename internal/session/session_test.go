package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() models.User {
	return models.User{ID: uuid.New(), Email: "sarah@ex.com"}
}

func TestManager_BeginResolveEnd(t *testing.T) {
	ctx := context.Background()
	m := NewManager(repositories.NewMemorySessionStore(), "secret", time.Hour)

	token, sess, err := m.Begin(ctx, testUser(), models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sess, got)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.False(t, got.IsSuperAdmin())

	require.NoError(t, m.End(ctx, token))
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemorySessionStore()
	issuer := NewManager(store, "one", time.Hour)
	verifier := NewManager(store, "two", time.Hour)

	token, _, err := issuer.Begin(ctx, testUser(), models.RoleUser)
	require.NoError(t, err)

	_, err = verifier.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = verifier.Resolve(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.NoError(t, verifier.End(ctx, "not-a-jwt"))
}

func TestManager_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	m := NewManager(repositories.NewMemorySessionStore(), "secret", time.Minute)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, _, err := m.Begin(ctx, testUser(), models.RoleUser)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_RedisBacked(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	store := repositories.NewRedisSessionStore(mr.Addr(), "")
	t.Cleanup(func() { _ = store.Close() })

	m := NewManager(store, "secret", time.Hour)
	token, sess, err := m.Begin(ctx, testUser(), models.RoleSuperAdmin)
	require.NoError(t, err)
	assert.True(t, mr.Exists("session:"+sess.ID))

	got, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, got.IsSuperAdmin())

	mr.FastForward(2 * time.Hour)
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := Session{ID: "abc", UserID: uuid.New(), Role: models.RoleUser}
	got, ok := FromContext(WithContext(context.Background(), s))
	require.True(t, ok)
	assert.Equal(t, s, got)
}
