package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinWaitPeriodDays     = 7
	MaxWaitPeriodDays     = 30
	DefaultWaitPeriodDays = 14
)

type Profile struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID  `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	ExecutorContactID  *uuid.UUID `json:"executorContactId" gorm:"type:uuid"`
	WaitPeriodDays     int        `json:"waitPeriodDays" gorm:"not null;default:14;check:wait_period_days BETWEEN 7 AND 30"`
	MasterScrubEnabled bool       `json:"masterScrubEnabled" gorm:"not null;default:false"`
	CreatedAt          time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// DefaultProfile is what a user without a stored profile row sees.
func DefaultProfile(userID uuid.UUID) Profile {
	return Profile{UserID: userID, WaitPeriodDays: DefaultWaitPeriodDays}
}

func (p Profile) HasExecutor() bool { return p.ExecutorContactID != nil }
