package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Store persists the vault's records. Every read and delete is scoped by
// the owning user id; a row owned by someone else reads as ErrNotFound.
type Store interface {
	// WithTx runs fn against a Store bound to a single transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// users
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, hash string) error

	// roles
	AddRole(ctx context.Context, r *models.UserRole) error
	ListRoles(ctx context.Context, userID uuid.UUID) ([]models.UserRole, error)

	// trusted contacts, newest first
	CreateContact(ctx context.Context, c *models.TrustedContact) error
	GetContact(ctx context.Context, userID, id uuid.UUID) (models.TrustedContact, error)
	ListContacts(ctx context.Context, userID uuid.UUID) ([]models.TrustedContact, error)
	DeleteContact(ctx context.Context, userID, id uuid.UUID) error

	// digital assets, newest first
	CreateAsset(ctx context.Context, a *models.DigitalAsset) error
	GetAsset(ctx context.Context, userID, id uuid.UUID) (models.DigitalAsset, error)
	ListAssets(ctx context.Context, userID uuid.UUID) ([]models.DigitalAsset, error)
	UpdateAsset(ctx context.Context, a *models.DigitalAsset) error
	DeleteAsset(ctx context.Context, userID, id uuid.UUID) error
	DetachCollection(ctx context.Context, userID, collectionID uuid.UUID) (int64, error)

	// collections, oldest first
	CreateCollection(ctx context.Context, c *models.Collection) error
	GetCollection(ctx context.Context, userID, id uuid.UUID) (models.Collection, error)
	ListCollections(ctx context.Context, userID uuid.UUID) ([]models.Collection, error)
	DeleteCollection(ctx context.Context, userID, id uuid.UUID) error

	// relational assignments; List returns attached rows in insertion order,
	// Find also sees detached rows.
	CreateAssignment(ctx context.Context, a *models.RelationalAssignment) error
	GetAssignment(ctx context.Context, userID, id uuid.UUID) (models.RelationalAssignment, error)
	FindAssignment(ctx context.Context, userID, assetID, contactID uuid.UUID) (models.RelationalAssignment, error)
	ListAssignments(ctx context.Context, userID uuid.UUID) ([]models.RelationalAssignment, error)
	UpdateAssignment(ctx context.Context, a *models.RelationalAssignment) error
	DeleteAssignment(ctx context.Context, userID, id uuid.UUID) error
	DeleteAssignmentsForAsset(ctx context.Context, userID, assetID uuid.UUID) (int64, error)
	DeleteAssignmentsForContact(ctx context.Context, userID, contactID uuid.UUID) (int64, error)

	// profiles, one per user
	GetProfile(ctx context.Context, userID uuid.UUID) (models.Profile, error)
	SaveProfile(ctx context.Context, p *models.Profile) error
	ClearExecutor(ctx context.Context, userID, contactID uuid.UUID) error

	// social intentions, one per (user, platform)
	ListSocialIntentions(ctx context.Context, userID uuid.UUID) ([]models.SocialIntention, error)
	SaveSocialIntention(ctx context.Context, s *models.SocialIntention) error
	DeleteSocialIntention(ctx context.Context, userID uuid.UUID, platform models.Platform) error

	// waitlist
	AddWaitlistEntry(ctx context.Context, e *models.WaitlistEntry) error
}

var (
	_ Store = (*GormStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
