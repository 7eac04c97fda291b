package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

// Accounts handles sign-up, sign-in and password changes.
type Accounts struct {
	store      repositories.Store
	superAdmin func(email string) bool
	cost       int
}

// NewAccounts builds the account service. superAdmin decides which emails
// get the super_admin role at registration; it may be nil.
func NewAccounts(store repositories.Store, superAdmin func(string) bool) *Accounts {
	if superAdmin == nil {
		superAdmin = func(string) bool { return false }
	}
	return &Accounts{store: store, superAdmin: superAdmin, cost: bcrypt.DefaultCost}
}

func checkPassword(field, pw string) error {
	if len(pw) < MinPasswordLength {
		return invalid(field, "must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// Register creates a password account with the user role.
func (a *Accounts) Register(ctx context.Context, name, email, password string) (models.User, error) {
	email, err := normalizeEmail("email", email)
	if err != nil {
		return models.User{}, err
	}
	if err := checkPassword("password", password); err != nil {
		return models.User{}, err
	}
	if a.store == nil {
		return models.User{}, ErrPersistenceDisabled
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	return a.create(ctx, models.User{Name: strings.TrimSpace(name), Email: email, Password: string(hash)})
}

func (a *Accounts) create(ctx context.Context, u models.User) (models.User, error) {
	err := a.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.CreateUser(ctx, &u); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return ErrEmailTaken
			}
			return fmt.Errorf("create user: %w", err)
		}
		roles := []models.Role{models.RoleUser}
		if a.superAdmin(u.Email) {
			roles = append(roles, models.RoleSuperAdmin)
		}
		for _, r := range roles {
			if err := tx.AddRole(ctx, &models.UserRole{UserID: u.ID, Role: r}); err != nil {
				return fmt.Errorf("add role %s: %w", r, err)
			}
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Authenticate checks email and password. Unknown emails and wrong
// passwords both return ErrInvalidCredentials.
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	if a.store == nil {
		return models.User{}, ErrPersistenceDisabled
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.User{}, invalid("credentials", "email and password are required")
	}
	u, err := a.store.GetUserByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	if u.Password == "" {
		// Google-only account
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// ChangePassword sets a new password for the signed-in user.
func (a *Accounts) ChangePassword(ctx context.Context, userID uuid.UUID, password, confirm string) error {
	if err := checkPassword("password", password); err != nil {
		return err
	}
	if password != confirm {
		return invalid("confirmPassword", "passwords do not match")
	}
	if a.store == nil {
		return ErrPersistenceDisabled
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := a.store.UpdateUserPassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (a *Accounts) User(ctx context.Context, userID uuid.UUID) (models.User, error) {
	if a.store == nil {
		return models.User{}, ErrPersistenceDisabled
	}
	u, err := a.store.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Role resolves the effective role from the user's role rows.
func (a *Accounts) Role(ctx context.Context, userID uuid.UUID) (models.Role, error) {
	if a.store == nil {
		return models.RoleNone, ErrPersistenceDisabled
	}
	rows, err := a.store.ListRoles(ctx, userID)
	if err != nil {
		return models.RoleNone, fmt.Errorf("list roles: %w", err)
	}
	return models.ResolveRole(rows), nil
}

// GoogleFlow is carried through the OAuth state.
type GoogleFlow string

const (
	GoogleLogin    GoogleFlow = "login"
	GoogleRegister GoogleFlow = "register"
)

// GoogleUser finds or creates the account for a Google profile. Logging in
// with an unknown email fails with ErrNotFound and registering an existing
// one fails with ErrEmailTaken.
func (a *Accounts) GoogleUser(ctx context.Context, flow GoogleFlow, p GoogleProfile) (models.User, error) {
	if a.store == nil {
		return models.User{}, ErrPersistenceDisabled
	}
	email, err := normalizeEmail("email", p.Email)
	if err != nil {
		return models.User{}, err
	}
	u, err := a.store.GetUserByEmail(ctx, email)
	found := err == nil
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}

	switch flow {
	case GoogleRegister:
		if found {
			return models.User{}, ErrEmailTaken
		}
		return a.create(ctx, models.User{Name: p.Name, Email: email})
	default:
		if !found {
			return models.User{}, fmt.Errorf("get user: %w", repositories.ErrNotFound)
		}
		return u, nil
	}
}
