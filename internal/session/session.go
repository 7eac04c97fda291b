// Package session issues and resolves signed-in sessions. The JWT cookie
// carries the session id; the record itself lives in a KV store so that
// signing out invalidates the token before it expires.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
)

const CookieName = "token"

var ErrNoSession = errors.New("no active session")

// KV is the session record storage. RedisSessionStore and
// MemorySessionStore both satisfy it.
type KV interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

type Session struct {
	ID     string      `json:"id"`
	UserID uuid.UUID   `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

func (s Session) IsSuperAdmin() bool { return s.Role == models.RoleSuperAdmin }

// Claims struct
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type Manager struct {
	store  KV
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(store KV, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Begin stores a new session for user and returns the signed token for the
// cookie.
func (m *Manager) Begin(ctx context.Context, user models.User, role models.Role) (string, Session, error) {
	sess := Session{
		ID:     uuid.NewString(),
		UserID: user.ID,
		Email:  user.Email,
		Role:   role,
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return "", Session{}, err
	}
	if err := m.store.Set(ctx, sess.ID, string(raw), m.ttl); err != nil {
		return "", Session{}, fmt.Errorf("store session: %w", err)
	}

	now := m.now()
	claims := &Claims{
		UserID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign token: %w", err)
	}
	return token, sess, nil
}

// Resolve validates token and loads its session record. Expired, forged or
// signed-out tokens all fail with ErrNoSession.
func (m *Manager) Resolve(ctx context.Context, token string) (Session, error) {
	claims, err := m.parse(token)
	if err != nil {
		return Session{}, ErrNoSession
	}
	raw, ok, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return Session{}, ErrNoSession
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	if sess.UserID.String() != claims.UserID {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// End deletes the session behind token. Ending an unknown or invalid token
// is a no-op.
func (m *Manager) End(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.ID)
}

func (m *Manager) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.ID == "" || claims.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

type ctxKey struct{}

func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
