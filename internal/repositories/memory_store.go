package repositories

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
)

type memoryState struct {
	users       []models.User
	roles       []models.UserRole
	contacts    []models.TrustedContact
	assets      []models.DigitalAsset
	collections []models.Collection
	assignments []models.RelationalAssignment
	profiles    []models.Profile
	social      []models.SocialIntention
	waitlist    []models.WaitlistEntry
}

func (s memoryState) clone() memoryState {
	return memoryState{
		users:       slices.Clone(s.users),
		roles:       slices.Clone(s.roles),
		contacts:    slices.Clone(s.contacts),
		assets:      slices.Clone(s.assets),
		collections: slices.Clone(s.collections),
		assignments: slices.Clone(s.assignments),
		profiles:    slices.Clone(s.profiles),
		social:      slices.Clone(s.social),
		waitlist:    slices.Clone(s.waitlist),
	}
}

// MemoryStore keeps every table in process, in insertion order. It backs
// STORE_DRIVER=memory and the tests.
//
// Writes hold txMu for their duration, so a transaction sees no writes
// from outside it between its snapshot and a rollback.
type MemoryStore struct {
	txMu *sync.Mutex
	mu   *sync.RWMutex
	st   *memoryState
	now  func() time.Time
	inTx bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		txMu: &sync.Mutex{},
		mu:   &sync.RWMutex{},
		st:   &memoryState{},
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithTx serializes transactions and restores the previous state when fn
// fails.
func (m *MemoryStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if m.inTx {
		return fn(m)
	}
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.RLock()
	snap := m.st.clone()
	m.mu.RUnlock()

	tx := &MemoryStore{txMu: m.txMu, mu: m.mu, st: m.st, now: m.now, inTx: true}
	if err := fn(tx); err != nil {
		m.mu.Lock()
		*m.st = snap
		m.mu.Unlock()
		return err
	}
	return nil
}

// lock takes the write locks and returns the matching unlock.
func (m *MemoryStore) lock() func() {
	if !m.inTx {
		m.txMu.Lock()
	}
	m.mu.Lock()
	return func() {
		m.mu.Unlock()
		if !m.inTx {
			m.txMu.Unlock()
		}
	}
}

func (m *MemoryStore) stamp(id *uuid.UUID, created *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if created.IsZero() {
		*created = m.now()
	}
}

func newestFirst[T any](rows []T, created func(T) time.Time) []T {
	out := slices.Clone(rows)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b T) int { return created(b).Compare(created(a)) })
	return out
}

func oldestFirst[T any](rows []T, created func(T) time.Time) []T {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b T) int { return created(a).Compare(created(b)) })
	return out
}

func (m *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	defer m.lock()()
	for _, existing := range m.st.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicate
		}
	}
	m.stamp(&u.ID, &u.CreatedAt)
	u.UpdatedAt = u.CreatedAt
	m.st.users = append(m.st.users, *u)
	return nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *MemoryStore) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.st.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *MemoryStore) UpdateUserPassword(ctx context.Context, id uuid.UUID, hash string) error {
	defer m.lock()()
	for i := range m.st.users {
		if m.st.users[i].ID == id {
			m.st.users[i].Password = hash
			m.st.users[i].UpdatedAt = m.now()
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) AddRole(ctx context.Context, r *models.UserRole) error {
	defer m.lock()()
	for _, existing := range m.st.roles {
		if existing.UserID == r.UserID && existing.Role == r.Role {
			return ErrDuplicate
		}
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.st.roles = append(m.st.roles, *r)
	return nil
}

func (m *MemoryStore) ListRoles(ctx context.Context, userID uuid.UUID) ([]models.UserRole, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.UserRole
	for _, r := range m.st.roles {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) CreateContact(ctx context.Context, c *models.TrustedContact) error {
	defer m.lock()()
	m.stamp(&c.ID, &c.CreatedAt)
	m.st.contacts = append(m.st.contacts, *c)
	return nil
}

func (m *MemoryStore) GetContact(ctx context.Context, userID, id uuid.UUID) (models.TrustedContact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.st.contacts {
		if c.UserID == userID && c.ID == id {
			return c, nil
		}
	}
	return models.TrustedContact{}, ErrNotFound
}

func (m *MemoryStore) ListContacts(ctx context.Context, userID uuid.UUID) ([]models.TrustedContact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owned := filter(m.st.contacts, func(c models.TrustedContact) bool { return c.UserID == userID })
	return newestFirst(owned, func(c models.TrustedContact) time.Time { return c.CreatedAt }), nil
}

func (m *MemoryStore) DeleteContact(ctx context.Context, userID, id uuid.UUID) error {
	defer m.lock()()
	var n int
	m.st.contacts, n = remove(m.st.contacts, func(c models.TrustedContact) bool { return c.UserID == userID && c.ID == id })
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MemoryStore) CreateAsset(ctx context.Context, a *models.DigitalAsset) error {
	defer m.lock()()
	m.stamp(&a.ID, &a.CreatedAt)
	m.st.assets = append(m.st.assets, *a)
	return nil
}

func (m *MemoryStore) GetAsset(ctx context.Context, userID, id uuid.UUID) (models.DigitalAsset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.st.assets {
		if a.UserID == userID && a.ID == id {
			return a, nil
		}
	}
	return models.DigitalAsset{}, ErrNotFound
}

func (m *MemoryStore) ListAssets(ctx context.Context, userID uuid.UUID) ([]models.DigitalAsset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owned := filter(m.st.assets, func(a models.DigitalAsset) bool { return a.UserID == userID })
	return newestFirst(owned, func(a models.DigitalAsset) time.Time { return a.CreatedAt }), nil
}

func (m *MemoryStore) UpdateAsset(ctx context.Context, a *models.DigitalAsset) error {
	defer m.lock()()
	for i, existing := range m.st.assets {
		if existing.UserID == a.UserID && existing.ID == a.ID {
			a.CreatedAt = existing.CreatedAt
			m.st.assets[i] = *a
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) DeleteAsset(ctx context.Context, userID, id uuid.UUID) error {
	defer m.lock()()
	var n int
	m.st.assets, n = remove(m.st.assets, func(a models.DigitalAsset) bool { return a.UserID == userID && a.ID == id })
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MemoryStore) DetachCollection(ctx context.Context, userID, collectionID uuid.UUID) (int64, error) {
	defer m.lock()()
	var n int64
	for i, a := range m.st.assets {
		if a.UserID == userID && a.CollectionID != nil && *a.CollectionID == collectionID {
			m.st.assets[i].CollectionID = nil
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CreateCollection(ctx context.Context, c *models.Collection) error {
	defer m.lock()()
	m.stamp(&c.ID, &c.CreatedAt)
	m.st.collections = append(m.st.collections, *c)
	return nil
}

func (m *MemoryStore) GetCollection(ctx context.Context, userID, id uuid.UUID) (models.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.st.collections {
		if c.UserID == userID && c.ID == id {
			return c, nil
		}
	}
	return models.Collection{}, ErrNotFound
}

func (m *MemoryStore) ListCollections(ctx context.Context, userID uuid.UUID) ([]models.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owned := filter(m.st.collections, func(c models.Collection) bool { return c.UserID == userID })
	return oldestFirst(owned, func(c models.Collection) time.Time { return c.CreatedAt }), nil
}

func (m *MemoryStore) DeleteCollection(ctx context.Context, userID, id uuid.UUID) error {
	defer m.lock()()
	var n int
	m.st.collections, n = remove(m.st.collections, func(c models.Collection) bool { return c.UserID == userID && c.ID == id })
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MemoryStore) CreateAssignment(ctx context.Context, a *models.RelationalAssignment) error {
	defer m.lock()()
	for _, existing := range m.st.assignments {
		if existing.UserID == a.UserID && existing.AssetID == a.AssetID && existing.ContactID == a.ContactID {
			return ErrDuplicate
		}
	}
	m.stamp(&a.ID, &a.CreatedAt)
	m.st.assignments = append(m.st.assignments, *a)
	return nil
}

func (m *MemoryStore) GetAssignment(ctx context.Context, userID, id uuid.UUID) (models.RelationalAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.st.assignments {
		if a.UserID == userID && a.ID == id && a.Active() {
			return a, nil
		}
	}
	return models.RelationalAssignment{}, ErrNotFound
}

func (m *MemoryStore) FindAssignment(ctx context.Context, userID, assetID, contactID uuid.UUID) (models.RelationalAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.st.assignments {
		if a.UserID == userID && a.AssetID == assetID && a.ContactID == contactID {
			return a, nil
		}
	}
	return models.RelationalAssignment{}, ErrNotFound
}

func (m *MemoryStore) ListAssignments(ctx context.Context, userID uuid.UUID) ([]models.RelationalAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owned := filter(m.st.assignments, func(a models.RelationalAssignment) bool { return a.UserID == userID && a.Active() })
	return oldestFirst(owned, func(a models.RelationalAssignment) time.Time { return a.CreatedAt }), nil
}

func (m *MemoryStore) UpdateAssignment(ctx context.Context, a *models.RelationalAssignment) error {
	defer m.lock()()
	for i, existing := range m.st.assignments {
		if existing.UserID == a.UserID && existing.ID == a.ID {
			m.st.assignments[i].IntentAction = a.IntentAction
			m.st.assignments[i].DetachedAt = a.DetachedAt
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) DeleteAssignment(ctx context.Context, userID, id uuid.UUID) error {
	defer m.lock()()
	var n int
	m.st.assignments, n = remove(m.st.assignments, func(a models.RelationalAssignment) bool { return a.UserID == userID && a.ID == id })
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MemoryStore) DeleteAssignmentsForAsset(ctx context.Context, userID, assetID uuid.UUID) (int64, error) {
	defer m.lock()()
	var n int
	m.st.assignments, n = remove(m.st.assignments, func(a models.RelationalAssignment) bool { return a.UserID == userID && a.AssetID == assetID })
	return int64(n), nil
}

func (m *MemoryStore) DeleteAssignmentsForContact(ctx context.Context, userID, contactID uuid.UUID) (int64, error) {
	defer m.lock()()
	var n int
	m.st.assignments, n = remove(m.st.assignments, func(a models.RelationalAssignment) bool { return a.UserID == userID && a.ContactID == contactID })
	return int64(n), nil
}

func (m *MemoryStore) GetProfile(ctx context.Context, userID uuid.UUID) (models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.st.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return models.Profile{}, ErrNotFound
}

func (m *MemoryStore) SaveProfile(ctx context.Context, p *models.Profile) error {
	defer m.lock()()
	now := m.now()
	for i, existing := range m.st.profiles {
		if existing.UserID == p.UserID {
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
			p.UpdatedAt = now
			m.st.profiles[i] = *p
			return nil
		}
	}
	m.stamp(&p.ID, &p.CreatedAt)
	p.UpdatedAt = now
	m.st.profiles = append(m.st.profiles, *p)
	return nil
}

func (m *MemoryStore) ClearExecutor(ctx context.Context, userID, contactID uuid.UUID) error {
	defer m.lock()()
	for i, p := range m.st.profiles {
		if p.UserID == userID && p.ExecutorContactID != nil && *p.ExecutorContactID == contactID {
			m.st.profiles[i].ExecutorContactID = nil
			m.st.profiles[i].UpdatedAt = m.now()
		}
	}
	return nil
}

func (m *MemoryStore) ListSocialIntentions(ctx context.Context, userID uuid.UUID) ([]models.SocialIntention, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owned := filter(m.st.social, func(s models.SocialIntention) bool { return s.UserID == userID })
	return oldestFirst(owned, func(s models.SocialIntention) time.Time { return s.CreatedAt }), nil
}

func (m *MemoryStore) SaveSocialIntention(ctx context.Context, si *models.SocialIntention) error {
	defer m.lock()()
	now := m.now()
	for i, existing := range m.st.social {
		if existing.UserID == si.UserID && existing.Platform == si.Platform {
			si.ID = existing.ID
			si.CreatedAt = existing.CreatedAt
			si.UpdatedAt = now
			m.st.social[i] = *si
			return nil
		}
	}
	m.stamp(&si.ID, &si.CreatedAt)
	si.UpdatedAt = now
	m.st.social = append(m.st.social, *si)
	return nil
}

func (m *MemoryStore) DeleteSocialIntention(ctx context.Context, userID uuid.UUID, platform models.Platform) error {
	defer m.lock()()
	var n int
	m.st.social, n = remove(m.st.social, func(s models.SocialIntention) bool { return s.UserID == userID && s.Platform == platform })
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MemoryStore) AddWaitlistEntry(ctx context.Context, e *models.WaitlistEntry) error {
	defer m.lock()()
	for _, existing := range m.st.waitlist {
		if existing.Email == e.Email {
			return ErrDuplicate
		}
	}
	m.stamp(&e.ID, &e.CreatedAt)
	m.st.waitlist = append(m.st.waitlist, *e)
	return nil
}

func filter[T any](rows []T, keep func(T) bool) []T {
	var out []T
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// remove drops matching rows in place and reports how many were dropped.
func remove[T any](rows []T, match func(T) bool) ([]T, int) {
	kept := rows[:0]
	for _, r := range rows {
		if !match(r) {
			kept = append(kept, r)
		}
	}
	n := len(rows) - len(kept)
	clear(rows[len(kept):])
	return kept, n
}
