package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
)

// Vault is the CRUD layer for trusted contacts, digital assets and
// collections. A nil store means persistence is disabled.
type Vault struct {
	store repositories.Store
}

func NewVault(store repositories.Store) *Vault {
	return &Vault{store: store}
}

type ContactInput struct {
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	Relationship        *string `json:"relationship"`
	PhoneNumber         *string `json:"phoneNumber"`
	PersonalizedMessage *string `json:"personalizedMessage"`
}

func (in ContactInput) build(userID uuid.UUID) (models.TrustedContact, error) {
	name, err := requireText("name", in.Name)
	if err != nil {
		return models.TrustedContact{}, err
	}
	email, err := normalizeEmail("email", in.Email)
	if err != nil {
		return models.TrustedContact{}, err
	}
	msg := optionalText(in.PersonalizedMessage)
	if err := checkMessage(msg); err != nil {
		return models.TrustedContact{}, err
	}
	return models.TrustedContact{
		UserID:              userID,
		Name:                name,
		Email:               email,
		Relationship:        optionalText(in.Relationship),
		PhoneNumber:         optionalText(in.PhoneNumber),
		PersonalizedMessage: msg,
	}, nil
}

func (v *Vault) CreateContact(ctx context.Context, userID uuid.UUID, in ContactInput) (models.TrustedContact, error) {
	if v.store == nil {
		return models.TrustedContact{}, ErrPersistenceDisabled
	}
	c, err := in.build(userID)
	if err != nil {
		return models.TrustedContact{}, err
	}
	if err := v.store.CreateContact(ctx, &c); err != nil {
		return models.TrustedContact{}, fmt.Errorf("create contact: %w", err)
	}
	return c, nil
}

func (v *Vault) ListContacts(ctx context.Context, userID uuid.UUID) ([]models.TrustedContact, error) {
	if v.store == nil {
		return nil, ErrPersistenceDisabled
	}
	rows, err := v.store.ListContacts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return rows, nil
}

// DeleteContact removes the contact, its assignment rows and the profile's
// executor reference to it in one transaction.
func (v *Vault) DeleteContact(ctx context.Context, userID, id uuid.UUID) error {
	if v.store == nil {
		return ErrPersistenceDisabled
	}
	return v.store.WithTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.GetContact(ctx, userID, id); err != nil {
			return fmt.Errorf("get contact: %w", err)
		}
		if _, err := tx.DeleteAssignmentsForContact(ctx, userID, id); err != nil {
			return fmt.Errorf("delete assignments: %w", err)
		}
		if err := tx.ClearExecutor(ctx, userID, id); err != nil {
			return fmt.Errorf("clear executor: %w", err)
		}
		if err := tx.DeleteContact(ctx, userID, id); err != nil {
			return fmt.Errorf("delete contact: %w", err)
		}
		return nil
	})
}

type AssetInput struct {
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Notes        *string    `json:"notes"`
	FilePath     *string    `json:"filePath"`
	CollectionID *uuid.UUID `json:"collectionId"`
}

// AssetPatch changes only the fields that are set. ClearCollection removes
// the asset from its collection.
type AssetPatch struct {
	Name            *string    `json:"name"`
	Type            *string    `json:"type"`
	Notes           *string    `json:"notes"`
	CollectionID    *uuid.UUID `json:"collectionId"`
	ClearCollection bool       `json:"clearCollection"`
}

func (v *Vault) checkCollection(ctx context.Context, store repositories.Store, userID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := store.GetCollection(ctx, userID, *id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return invalid("collectionId", "unknown collection")
		}
		return fmt.Errorf("get collection: %w", err)
	}
	return nil
}

func (v *Vault) CreateAsset(ctx context.Context, userID uuid.UUID, in AssetInput) (models.DigitalAsset, error) {
	if v.store == nil {
		return models.DigitalAsset{}, ErrPersistenceDisabled
	}
	name, err := requireText("name", in.Name)
	if err != nil {
		return models.DigitalAsset{}, err
	}
	typ, err := models.ParseAssetType(in.Type)
	if err != nil {
		return models.DigitalAsset{}, invalid("type", "must be one of %v", models.AssetTypes)
	}
	if err := v.checkCollection(ctx, v.store, userID, in.CollectionID); err != nil {
		return models.DigitalAsset{}, err
	}
	a := models.DigitalAsset{
		UserID:        userID,
		Name:          name,
		Type:          typ,
		MappingSource: optionalText(in.Notes),
		FilePath:      optionalText(in.FilePath),
		CollectionID:  in.CollectionID,
	}
	if err := v.store.CreateAsset(ctx, &a); err != nil {
		return models.DigitalAsset{}, fmt.Errorf("create asset: %w", err)
	}
	return a, nil
}

func (v *Vault) GetAsset(ctx context.Context, userID, id uuid.UUID) (models.DigitalAsset, error) {
	if v.store == nil {
		return models.DigitalAsset{}, ErrPersistenceDisabled
	}
	a, err := v.store.GetAsset(ctx, userID, id)
	if err != nil {
		return models.DigitalAsset{}, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

func (v *Vault) ListAssets(ctx context.Context, userID uuid.UUID) ([]models.DigitalAsset, error) {
	if v.store == nil {
		return nil, ErrPersistenceDisabled
	}
	rows, err := v.store.ListAssets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return rows, nil
}

func (v *Vault) UpdateAsset(ctx context.Context, userID, id uuid.UUID, p AssetPatch) (models.DigitalAsset, error) {
	if v.store == nil {
		return models.DigitalAsset{}, ErrPersistenceDisabled
	}
	var out models.DigitalAsset
	err := v.store.WithTx(ctx, func(tx repositories.Store) error {
		a, err := tx.GetAsset(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("get asset: %w", err)
		}
		if p.Name != nil {
			if a.Name, err = requireText("name", *p.Name); err != nil {
				return err
			}
		}
		if p.Type != nil {
			if a.Type, err = models.ParseAssetType(*p.Type); err != nil {
				return invalid("type", "must be one of %v", models.AssetTypes)
			}
		}
		if p.Notes != nil {
			a.MappingSource = optionalText(p.Notes)
		}
		switch {
		case p.ClearCollection:
			a.CollectionID = nil
		case p.CollectionID != nil:
			if err := v.checkCollection(ctx, tx, userID, p.CollectionID); err != nil {
				return err
			}
			a.CollectionID = p.CollectionID
		}
		if err := tx.UpdateAsset(ctx, &a); err != nil {
			return fmt.Errorf("update asset: %w", err)
		}
		out = a
		return nil
	})
	return out, err
}

// SetFilePath records where the asset's file lives in object storage.
func (v *Vault) SetFilePath(ctx context.Context, userID, id uuid.UUID, path string) (models.DigitalAsset, error) {
	if v.store == nil {
		return models.DigitalAsset{}, ErrPersistenceDisabled
	}
	a, err := v.store.GetAsset(ctx, userID, id)
	if err != nil {
		return models.DigitalAsset{}, fmt.Errorf("get asset: %w", err)
	}
	a.FilePath = &path
	if err := v.store.UpdateAsset(ctx, &a); err != nil {
		return models.DigitalAsset{}, fmt.Errorf("update asset: %w", err)
	}
	return a, nil
}

// DeleteAsset purges the asset's assignment rows and then the asset. The
// deleted row is returned so callers can clean up its file.
func (v *Vault) DeleteAsset(ctx context.Context, userID, id uuid.UUID) (models.DigitalAsset, error) {
	if v.store == nil {
		return models.DigitalAsset{}, ErrPersistenceDisabled
	}
	var deleted models.DigitalAsset
	err := v.store.WithTx(ctx, func(tx repositories.Store) error {
		a, err := tx.GetAsset(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("get asset: %w", err)
		}
		if _, err := tx.DeleteAssignmentsForAsset(ctx, userID, id); err != nil {
			return fmt.Errorf("delete assignments: %w", err)
		}
		if err := tx.DeleteAsset(ctx, userID, id); err != nil {
			return fmt.Errorf("delete asset: %w", err)
		}
		deleted = a
		return nil
	})
	return deleted, err
}

func (v *Vault) CreateCollection(ctx context.Context, userID uuid.UUID, name string) (models.Collection, error) {
	if v.store == nil {
		return models.Collection{}, ErrPersistenceDisabled
	}
	name, err := requireText("name", name)
	if err != nil {
		return models.Collection{}, err
	}
	c := models.Collection{UserID: userID, Name: name}
	if err := v.store.CreateCollection(ctx, &c); err != nil {
		return models.Collection{}, fmt.Errorf("create collection: %w", err)
	}
	return c, nil
}

func (v *Vault) ListCollections(ctx context.Context, userID uuid.UUID) ([]models.Collection, error) {
	if v.store == nil {
		return nil, ErrPersistenceDisabled
	}
	rows, err := v.store.ListCollections(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return rows, nil
}

// DeleteCollection keeps the member assets and only clears their
// collection reference.
func (v *Vault) DeleteCollection(ctx context.Context, userID, id uuid.UUID) error {
	if v.store == nil {
		return ErrPersistenceDisabled
	}
	return v.store.WithTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.GetCollection(ctx, userID, id); err != nil {
			return fmt.Errorf("get collection: %w", err)
		}
		if _, err := tx.DetachCollection(ctx, userID, id); err != nil {
			return fmt.Errorf("detach assets: %w", err)
		}
		if err := tx.DeleteCollection(ctx, userID, id); err != nil {
			return fmt.Errorf("delete collection: %w", err)
		}
		return nil
	})
}
