package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxMessageWords = 200
	MaxMessageChars = 1400
)

type TrustedContact struct {
	ID                  uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID              uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Name                string    `json:"name" gorm:"not null"`
	Email               string    `json:"email" gorm:"not null"` // always lower case
	Relationship        *string   `json:"relationship"`
	PhoneNumber         *string   `json:"phoneNumber"`
	PersonalizedMessage *string   `json:"personalizedMessage" gorm:"type:text"`
	CreatedAt           time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
