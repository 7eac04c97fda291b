package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
)

// Assignments manages the links between assets and trusted contacts.
type Assignments struct {
	store repositories.Store
	now   func() time.Time
}

func NewAssignments(store repositories.Store) *Assignments {
	return &Assignments{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// ContactIntent is one contact attached to an asset together with the
// intent recorded on that link.
type ContactIntent struct {
	AssignmentID uuid.UUID             `json:"assignmentId"`
	Contact      models.TrustedContact `json:"contact"`
	Intent       *models.IntentAction  `json:"intentAction"`
}

// parseIntent maps an optional boundary value to a stored intent. Blank
// input means no intent.
func parseIntent(v *string) (*models.IntentAction, error) {
	t := optionalText(v)
	if t == nil {
		return nil, nil
	}
	a, err := models.ParseIntentAction(*t)
	if err != nil {
		return nil, invalid("intentAction", "must be one of %v", models.IntentActions)
	}
	return &a, nil
}

func (s *Assignments) checkPair(ctx context.Context, tx repositories.Store, userID, assetID, contactID uuid.UUID) error {
	if _, err := tx.GetAsset(ctx, userID, assetID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return invalid("assetId", "unknown asset")
		}
		return fmt.Errorf("get asset: %w", err)
	}
	if _, err := tx.GetContact(ctx, userID, contactID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return invalid("contactId", "unknown contact")
		}
		return fmt.Errorf("get contact: %w", err)
	}
	return nil
}

// Create links asset and contact. A previously detached link is reattached
// with the given intent; an already active link is a duplicate.
func (s *Assignments) Create(ctx context.Context, userID, assetID, contactID uuid.UUID, intent *string) (models.RelationalAssignment, error) {
	if s.store == nil {
		return models.RelationalAssignment{}, ErrPersistenceDisabled
	}
	action, err := parseIntent(intent)
	if err != nil {
		return models.RelationalAssignment{}, err
	}
	var out models.RelationalAssignment
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := s.checkPair(ctx, tx, userID, assetID, contactID); err != nil {
			return err
		}
		existing, err := tx.FindAssignment(ctx, userID, assetID, contactID)
		switch {
		case err == nil && existing.Active():
			return fmt.Errorf("create assignment: %w", repositories.ErrDuplicate)
		case err == nil:
			existing.DetachedAt = nil
			existing.IntentAction = action
			if err := tx.UpdateAssignment(ctx, &existing); err != nil {
				return fmt.Errorf("reattach assignment: %w", err)
			}
			out = existing
			return nil
		case !errors.Is(err, repositories.ErrNotFound):
			return fmt.Errorf("find assignment: %w", err)
		}
		a := models.RelationalAssignment{
			UserID:       userID,
			AssetID:      assetID,
			ContactID:    contactID,
			IntentAction: action,
		}
		if err := tx.CreateAssignment(ctx, &a); err != nil {
			return fmt.Errorf("create assignment: %w", err)
		}
		out = a
		return nil
	})
	return out, err
}

// UpdateIntent changes only the intent of an existing row. A nil or blank
// intent clears it.
func (s *Assignments) UpdateIntent(ctx context.Context, userID, id uuid.UUID, intent *string) (models.RelationalAssignment, error) {
	if s.store == nil {
		return models.RelationalAssignment{}, ErrPersistenceDisabled
	}
	action, err := parseIntent(intent)
	if err != nil {
		return models.RelationalAssignment{}, err
	}
	a, err := s.store.GetAssignment(ctx, userID, id)
	if err != nil {
		return models.RelationalAssignment{}, fmt.Errorf("get assignment: %w", err)
	}
	a.IntentAction = action
	if err := s.store.UpdateAssignment(ctx, &a); err != nil {
		return models.RelationalAssignment{}, fmt.Errorf("update assignment: %w", err)
	}
	return a, nil
}

func (s *Assignments) List(ctx context.Context, userID uuid.UUID) ([]models.RelationalAssignment, error) {
	if s.store == nil {
		return nil, ErrPersistenceDisabled
	}
	rows, err := s.store.ListAssignments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return rows, nil
}

func (s *Assignments) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if s.store == nil {
		return ErrPersistenceDisabled
	}
	if err := s.store.DeleteAssignment(ctx, userID, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

func (s *Assignments) DeleteForAsset(ctx context.Context, userID, assetID uuid.UUID) (int64, error) {
	if s.store == nil {
		return 0, ErrPersistenceDisabled
	}
	n, err := s.store.DeleteAssignmentsForAsset(ctx, userID, assetID)
	if err != nil {
		return 0, fmt.Errorf("delete assignments for asset: %w", err)
	}
	return n, nil
}

func (s *Assignments) DeleteForContact(ctx context.Context, userID, contactID uuid.UUID) (int64, error) {
	if s.store == nil {
		return 0, ErrPersistenceDisabled
	}
	n, err := s.store.DeleteAssignmentsForContact(ctx, userID, contactID)
	if err != nil {
		return 0, fmt.Errorf("delete assignments for contact: %w", err)
	}
	return n, nil
}

// Toggle attaches or detaches contact on asset. Detaching keeps the row so
// a later reattach restores its intent; a first-time attach gets
// DefaultIntent.
func (s *Assignments) Toggle(ctx context.Context, userID, assetID, contactID uuid.UUID, on bool) (models.RelationalAssignment, error) {
	if s.store == nil {
		return models.RelationalAssignment{}, ErrPersistenceDisabled
	}
	var out models.RelationalAssignment
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := s.checkPair(ctx, tx, userID, assetID, contactID); err != nil {
			return err
		}
		existing, err := tx.FindAssignment(ctx, userID, assetID, contactID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("find assignment: %w", err)
		}
		found := err == nil

		switch {
		case on && !found:
			intent := models.DefaultIntent
			out = models.RelationalAssignment{
				UserID:       userID,
				AssetID:      assetID,
				ContactID:    contactID,
				IntentAction: &intent,
			}
			if err := tx.CreateAssignment(ctx, &out); err != nil {
				return fmt.Errorf("create assignment: %w", err)
			}
			return nil
		case on && !existing.Active():
			existing.DetachedAt = nil
		case !on && !found:
			return fmt.Errorf("find assignment: %w", repositories.ErrNotFound)
		case !on && existing.Active():
			now := s.now()
			existing.DetachedAt = &now
		default:
			// already in the requested state
			out = existing
			return nil
		}
		if err := tx.UpdateAssignment(ctx, &existing); err != nil {
			return fmt.Errorf("toggle assignment: %w", err)
		}
		out = existing
		return nil
	})
	return out, err
}

// SetAssetIntent applies one intent to every contact attached to the asset.
func (s *Assignments) SetAssetIntent(ctx context.Context, userID, assetID uuid.UUID, intent string) ([]models.RelationalAssignment, error) {
	if s.store == nil {
		return nil, ErrPersistenceDisabled
	}
	action, err := parseIntent(&intent)
	if err != nil {
		return nil, err
	}
	if action == nil {
		return nil, invalid("intentAction", "is required")
	}
	var out []models.RelationalAssignment
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.GetAsset(ctx, userID, assetID); err != nil {
			return fmt.Errorf("get asset: %w", err)
		}
		rows, err := tx.ListAssignments(ctx, userID)
		if err != nil {
			return fmt.Errorf("list assignments: %w", err)
		}
		for _, a := range rows {
			if a.AssetID != assetID {
				continue
			}
			a.IntentAction = action
			if err := tx.UpdateAssignment(ctx, &a); err != nil {
				return fmt.Errorf("update assignment: %w", err)
			}
			out = append(out, a)
		}
		if len(out) == 0 {
			return ErrNoAssignments
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// snapshot loads the rows the derived queries work on.
func (s *Assignments) snapshot(ctx context.Context, userID uuid.UUID) ([]models.DigitalAsset, []models.TrustedContact, []models.RelationalAssignment, error) {
	if s.store == nil {
		return nil, nil, nil, ErrPersistenceDisabled
	}
	assets, err := s.store.ListAssets(ctx, userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list assets: %w", err)
	}
	contacts, err := s.store.ListContacts(ctx, userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list contacts: %w", err)
	}
	rows, err := s.store.ListAssignments(ctx, userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list assignments: %w", err)
	}
	return assets, contacts, rows, nil
}

func (s *Assignments) ContactsForAsset(ctx context.Context, userID, assetID uuid.UUID) ([]ContactIntent, error) {
	assets, contacts, rows, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !containsAsset(assets, assetID) {
		return nil, fmt.Errorf("get asset: %w", repositories.ErrNotFound)
	}
	return ContactsForAsset(assetID, rows, contacts), nil
}

func (s *Assignments) AssetsForContact(ctx context.Context, userID, contactID uuid.UUID) ([]models.DigitalAsset, error) {
	assets, contacts, rows, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, c := range contacts {
		if c.ID == contactID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("get contact: %w", repositories.ErrNotFound)
	}
	return AssetsForContact(contactID, rows, assets), nil
}

func (s *Assignments) UnassignedAssets(ctx context.Context, userID uuid.UUID) ([]models.DigitalAsset, error) {
	assets, _, rows, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return UnassignedAssets(assets, rows), nil
}

func (s *Assignments) MissingIntent(ctx context.Context, userID uuid.UUID) ([]models.RelationalAssignment, error) {
	rows, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return MissingIntent(rows), nil
}

func containsAsset(assets []models.DigitalAsset, id uuid.UUID) bool {
	for _, a := range assets {
		if a.ID == id {
			return true
		}
	}
	return false
}

// ContactsForAsset returns the contacts linked to assetID in assignment
// order. Links to contacts that no longer exist are skipped.
func ContactsForAsset(assetID uuid.UUID, rows []models.RelationalAssignment, contacts []models.TrustedContact) []ContactIntent {
	byID := make(map[uuid.UUID]models.TrustedContact, len(contacts))
	for _, c := range contacts {
		byID[c.ID] = c
	}
	out := []ContactIntent{}
	for _, a := range rows {
		if a.AssetID != assetID || !a.Active() {
			continue
		}
		c, ok := byID[a.ContactID]
		if !ok {
			continue
		}
		out = append(out, ContactIntent{AssignmentID: a.ID, Contact: c, Intent: a.IntentAction})
	}
	return out
}

// AssetsForContact returns each asset linked to contactID once, in
// assignment order.
func AssetsForContact(contactID uuid.UUID, rows []models.RelationalAssignment, assets []models.DigitalAsset) []models.DigitalAsset {
	byID := make(map[uuid.UUID]models.DigitalAsset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}
	seen := make(map[uuid.UUID]bool)
	out := []models.DigitalAsset{}
	for _, r := range rows {
		if r.ContactID != contactID || !r.Active() || seen[r.AssetID] {
			continue
		}
		a, ok := byID[r.AssetID]
		if !ok {
			continue
		}
		seen[r.AssetID] = true
		out = append(out, a)
	}
	return out
}

// UnassignedAssets returns the assets without any active assignment row,
// keeping the input order.
func UnassignedAssets(assets []models.DigitalAsset, rows []models.RelationalAssignment) []models.DigitalAsset {
	assigned := make(map[uuid.UUID]bool, len(rows))
	for _, r := range rows {
		if r.Active() {
			assigned[r.AssetID] = true
		}
	}
	out := []models.DigitalAsset{}
	for _, a := range assets {
		if !assigned[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

func MissingIntent(rows []models.RelationalAssignment) []models.RelationalAssignment {
	out := []models.RelationalAssignment{}
	for _, r := range rows {
		if r.Active() && !r.HasIntent() {
			out = append(out, r)
		}
	}
	return out
}
