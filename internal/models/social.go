package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformThreads   Platform = "threads"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformDiscord   Platform = "discord"
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
)

var Platforms = []Platform{
	PlatformInstagram, PlatformFacebook, PlatformTwitter, PlatformThreads, PlatformLinkedIn,
	PlatformDiscord, PlatformWhatsApp, PlatformYouTube, PlatformTikTok,
}

// platformIntentions is the action set each platform supports.
var platformIntentions = map[Platform][]string{
	PlatformInstagram: {"memorialize", "delete"},
	PlatformFacebook:  {"memorialize", "delete"},
	PlatformTwitter:   {"archive", "digital_scrub"},
	PlatformThreads:   {"archive", "digital_scrub"},
	PlatformLinkedIn:  {"final_post_then_close", "delete"},
	PlatformDiscord:   {"preserve_threads", "wipe"},
	PlatformWhatsApp:  {"preserve_threads", "wipe"},
	PlatformYouTube:   {"transfer", "delete"},
	PlatformTikTok:    {"transfer", "delete"},
}

func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: platform %q", ErrInvalidValue, s)
}

// PlatformIntentions returns a copy of the actions allowed on p.
func PlatformIntentions(p Platform) []string {
	return append([]string(nil), platformIntentions[p]...)
}

// ValidateIntention reports whether intention is one of p's actions.
func ValidateIntention(p Platform, intention string) error {
	for _, allowed := range platformIntentions[p] {
		if allowed == intention {
			return nil
		}
	}
	return fmt.Errorf("%w: intention %q for platform %s", ErrInvalidValue, intention, p)
}

type SocialIntention struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_social_user_platform"`
	Platform  Platform  `json:"platform" gorm:"type:text;not null;uniqueIndex:idx_social_user_platform"`
	Intention string    `json:"intention" gorm:"not null"`
	Notes     *string   `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
