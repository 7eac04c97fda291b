package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
)

type Social struct {
	store repositories.Store
}

func NewSocial(store repositories.Store) *Social {
	return &Social{store: store}
}

// PlatformOptions lists every platform with the intentions it accepts.
type PlatformOptions struct {
	Platform   models.Platform `json:"platform"`
	Intentions []string        `json:"intentions"`
}

func SocialOptions() []PlatformOptions {
	out := make([]PlatformOptions, 0, len(models.Platforms))
	for _, p := range models.Platforms {
		out = append(out, PlatformOptions{Platform: p, Intentions: models.PlatformIntentions(p)})
	}
	return out
}

func (s *Social) List(ctx context.Context, userID uuid.UUID) ([]models.SocialIntention, error) {
	if s.store == nil {
		return nil, ErrPersistenceDisabled
	}
	rows, err := s.store.ListSocialIntentions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list social intentions: %w", err)
	}
	return rows, nil
}

// Save upserts the intention for platform. A blank intention removes the
// row and returns nil.
func (s *Social) Save(ctx context.Context, userID uuid.UUID, platform, intention string, notes *string) (*models.SocialIntention, error) {
	if s.store == nil {
		return nil, ErrPersistenceDisabled
	}
	p, err := models.ParsePlatform(strings.ToLower(strings.TrimSpace(platform)))
	if err != nil {
		return nil, invalid("platform", "must be one of %v", models.Platforms)
	}
	intention = strings.TrimSpace(intention)
	if intention == "" {
		if err := s.Delete(ctx, userID, string(p)); err != nil && !isNotFound(err) {
			return nil, err
		}
		return nil, nil
	}
	if err := models.ValidateIntention(p, intention); err != nil {
		return nil, invalid("intention", "must be one of %v for %s", models.PlatformIntentions(p), p)
	}
	row := &models.SocialIntention{
		UserID:    userID,
		Platform:  p,
		Intention: intention,
		Notes:     optionalText(notes),
	}
	if err := s.store.SaveSocialIntention(ctx, row); err != nil {
		return nil, fmt.Errorf("save social intention: %w", err)
	}
	return row, nil
}

func (s *Social) Delete(ctx context.Context, userID uuid.UUID, platform string) error {
	if s.store == nil {
		return ErrPersistenceDisabled
	}
	p, err := models.ParsePlatform(strings.ToLower(strings.TrimSpace(platform)))
	if err != nil {
		return invalid("platform", "must be one of %v", models.Platforms)
	}
	if err := s.store.DeleteSocialIntention(ctx, userID, p); err != nil {
		return fmt.Errorf("delete social intention: %w", err)
	}
	return nil
}
