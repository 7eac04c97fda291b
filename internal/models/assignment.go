package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type IntentAction string

const (
	IntentKeepAndShare    IntentAction = "keep_and_share"
	IntentArchiveQuietly  IntentAction = "archive_quietly"
	IntentClearMyPath     IntentAction = "clear_my_path"
	IntentDonateToHistory IntentAction = "donate_to_history"

	// DefaultIntent is applied to first-time assignments ("Preserve").
	DefaultIntent = IntentKeepAndShare
)

var IntentActions = []IntentAction{IntentKeepAndShare, IntentArchiveQuietly, IntentClearMyPath, IntentDonateToHistory}

var intentAliases = map[string]IntentAction{
	"preserve": IntentKeepAndShare,
	"delete":   IntentClearMyPath,
}

// ParseIntentAction accepts the stored values plus the "preserve" and
// "delete" aliases, case-insensitively.
func ParseIntentAction(s string) (IntentAction, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := intentAliases[v]; ok {
		return alias, nil
	}
	for _, a := range IntentActions {
		if string(a) == v {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: intent action %q", ErrInvalidValue, s)
}

// RelationalAssignment links an asset to a contact. A detached row is kept
// so that re-attaching the same contact restores its intent; there is at
// most one row per pair.
type RelationalAssignment struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID     `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_assignment_pair"`
	AssetID      uuid.UUID     `json:"assetId" gorm:"type:uuid;index;not null;uniqueIndex:idx_assignment_pair"`
	ContactID    uuid.UUID     `json:"contactId" gorm:"type:uuid;index;not null;uniqueIndex:idx_assignment_pair"`
	IntentAction *IntentAction `json:"intentAction" gorm:"type:text"`
	DetachedAt   *time.Time    `json:"-" gorm:"index"`
	CreatedAt    time.Time     `json:"createdAt" gorm:"autoCreateTime"`
}

func (a RelationalAssignment) Active() bool { return a.DetachedAt == nil }

func (a RelationalAssignment) HasIntent() bool { return a.IntentAction != nil }
