package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
)

type WaitlistResult struct {
	Email         string `json:"email"`
	AlreadyOnList bool   `json:"alreadyOnList"`
	Message       string `json:"message"`
}

type Waitlist struct {
	store repositories.Store
}

func NewWaitlist(store repositories.Store) *Waitlist {
	return &Waitlist{store: store}
}

// Join adds email to the waitlist. Joining twice is reported as success.
func (w *Waitlist) Join(ctx context.Context, email string) (WaitlistResult, error) {
	email, err := normalizeEmail("email", email)
	if err != nil {
		return WaitlistResult{}, err
	}
	if w.store == nil {
		return WaitlistResult{}, ErrPersistenceDisabled
	}
	err = w.store.AddWaitlistEntry(ctx, &models.WaitlistEntry{Email: email})
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return WaitlistResult{Email: email, AlreadyOnList: true, Message: "Already on the list!"}, nil
	case err != nil:
		return WaitlistResult{}, fmt.Errorf("join waitlist: %w", err)
	}
	return WaitlistResult{Email: email, Message: "You're on the list."}, nil
}
