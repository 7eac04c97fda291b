package models

import (
	"time"

	"github.com/google/uuid"
)

type WaitlistEntry struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (WaitlistEntry) TableName() string { return "waitlist" }
