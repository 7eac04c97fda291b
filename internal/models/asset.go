package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AssetType string

const (
	AssetPhoto        AssetType = "photo"
	AssetVoiceNote    AssetType = "voice_note"
	AssetMessage      AssetType = "message"
	AssetJournal      AssetType = "journal"
	AssetCreativeWork AssetType = "creative_work"
	AssetAccount      AssetType = "account"
)

// AssetTypes lists every asset type in display order.
var AssetTypes = []AssetType{AssetPhoto, AssetVoiceNote, AssetMessage, AssetJournal, AssetCreativeWork, AssetAccount}

func ParseAssetType(s string) (AssetType, error) {
	for _, t := range AssetTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: asset type %q", ErrInvalidValue, s)
}

type DigitalAsset struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID  `json:"userId" gorm:"type:uuid;index;not null"`
	Name          string     `json:"name" gorm:"not null"`
	Type          AssetType  `json:"type" gorm:"type:text;not null"`
	MappingSource *string    `json:"notes" gorm:"type:text"`
	FilePath      *string    `json:"filePath"`
	CollectionID  *uuid.UUID `json:"collectionId" gorm:"type:uuid;index"`
	CreatedAt     time.Time  `json:"createdAt" gorm:"autoCreateTime"`
}
