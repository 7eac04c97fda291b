package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
)

const executorRelationship = "Digital Executor"

// OnboardingInput is the guided setup. Executor and first asset are both
// optional; the wait period is always saved.
type OnboardingInput struct {
	ExecutorName   string `json:"executorName"`
	ExecutorEmail  string `json:"executorEmail"`
	WaitPeriodDays int    `json:"waitPeriodDays"`
	FirstAssetName string `json:"firstAssetName"`
}

type OnboardingResult struct {
	Profile  models.Profile         `json:"profile"`
	Executor *models.TrustedContact `json:"executor,omitempty"`
	Asset    *models.DigitalAsset   `json:"asset,omitempty"`
}

type Onboarding struct {
	store repositories.Store
}

func NewOnboarding(store repositories.Store) *Onboarding {
	return &Onboarding{store: store}
}

func (o *Onboarding) Complete(ctx context.Context, userID uuid.UUID, in OnboardingInput) (OnboardingResult, error) {
	if o.store == nil {
		return OnboardingResult{}, ErrPersistenceDisabled
	}
	if in.WaitPeriodDays == 0 {
		in.WaitPeriodDays = models.DefaultWaitPeriodDays
	}
	if err := checkWaitPeriod(in.WaitPeriodDays); err != nil {
		return OnboardingResult{}, err
	}

	var executor *models.TrustedContact
	if strings.TrimSpace(in.ExecutorName) != "" && strings.TrimSpace(in.ExecutorEmail) != "" {
		rel := executorRelationship
		c, err := ContactInput{Name: in.ExecutorName, Email: in.ExecutorEmail, Relationship: &rel}.build(userID)
		if err != nil {
			return OnboardingResult{}, err
		}
		executor = &c
	}
	assetName := strings.TrimSpace(in.FirstAssetName)

	var res OnboardingResult
	err := o.store.WithTx(ctx, func(tx repositories.Store) error {
		prof, err := getProfile(ctx, tx, userID)
		if err != nil {
			return err
		}
		prof.WaitPeriodDays = in.WaitPeriodDays
		prof.ExecutorContactID = nil
		if executor != nil {
			if err := tx.CreateContact(ctx, executor); err != nil {
				return fmt.Errorf("create executor: %w", err)
			}
			prof.ExecutorContactID = &executor.ID
			res.Executor = executor
		}
		if err := tx.SaveProfile(ctx, &prof); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		res.Profile = prof
		if assetName != "" {
			a := models.DigitalAsset{UserID: userID, Name: assetName, Type: models.AssetPhoto}
			if err := tx.CreateAsset(ctx, &a); err != nil {
				return fmt.Errorf("create asset: %w", err)
			}
			res.Asset = &a
		}
		return nil
	})
	if err != nil {
		return OnboardingResult{}, err
	}
	return res, nil
}
