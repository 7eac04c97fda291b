package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
)

type Profiles struct {
	store repositories.Store
}

func NewProfiles(store repositories.Store) *Profiles {
	return &Profiles{store: store}
}

// ProfileInput updates only the fields that are set.
type ProfileInput struct {
	ExecutorContactID  *uuid.UUID `json:"executorContactId"`
	ClearExecutor      bool       `json:"clearExecutor"`
	WaitPeriodDays     *int       `json:"waitPeriodDays"`
	MasterScrubEnabled *bool      `json:"masterScrubEnabled"`
}

// Get returns the stored profile or the defaults when none was saved yet.
func (p *Profiles) Get(ctx context.Context, userID uuid.UUID) (models.Profile, error) {
	if p.store == nil {
		return models.Profile{}, ErrPersistenceDisabled
	}
	return getProfile(ctx, p.store, userID)
}

func getProfile(ctx context.Context, store repositories.Store, userID uuid.UUID) (models.Profile, error) {
	prof, err := store.GetProfile(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.DefaultProfile(userID), nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return prof, nil
}

func checkWaitPeriod(days int) error {
	if days < models.MinWaitPeriodDays || days > models.MaxWaitPeriodDays {
		return invalid("waitPeriodDays", "must be between %d and %d", models.MinWaitPeriodDays, models.MaxWaitPeriodDays)
	}
	return nil
}

func (p *Profiles) Update(ctx context.Context, userID uuid.UUID, in ProfileInput) (models.Profile, error) {
	if p.store == nil {
		return models.Profile{}, ErrPersistenceDisabled
	}
	if in.WaitPeriodDays != nil {
		if err := checkWaitPeriod(*in.WaitPeriodDays); err != nil {
			return models.Profile{}, err
		}
	}
	var out models.Profile
	err := p.store.WithTx(ctx, func(tx repositories.Store) error {
		prof, err := getProfile(ctx, tx, userID)
		if err != nil {
			return err
		}
		switch {
		case in.ClearExecutor:
			prof.ExecutorContactID = nil
		case in.ExecutorContactID != nil:
			if _, err := tx.GetContact(ctx, userID, *in.ExecutorContactID); err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return invalid("executorContactId", "unknown contact")
				}
				return fmt.Errorf("get contact: %w", err)
			}
			prof.ExecutorContactID = in.ExecutorContactID
		}
		if in.WaitPeriodDays != nil {
			prof.WaitPeriodDays = *in.WaitPeriodDays
		}
		if in.MasterScrubEnabled != nil {
			prof.MasterScrubEnabled = *in.MasterScrubEnabled
		}
		if err := tx.SaveProfile(ctx, &prof); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		out = prof
		return nil
	})
	return out, err
}
