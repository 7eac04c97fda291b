package services

import (
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"github.com/rohits-web03/safehands/internal/models"
)

const maxEmailLength = 255

func requireText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", invalid(field, "is required")
	}
	return v, nil
}

// normalizeEmail trims and lower-cases v and checks it is a plausible
// address.
func normalizeEmail(field, v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case v == "":
		return "", invalid(field, "is required")
	case len(v) > maxEmailLength:
		return "", invalid(field, "must be at most %d characters", maxEmailLength)
	case !govalidator.IsEmail(v):
		return "", invalid(field, "is not a valid email address")
	}
	return v, nil
}

// optionalText trims v and maps blank input to nil.
func optionalText(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func checkMessage(msg *string) error {
	if msg == nil {
		return nil
	}
	if n := len(strings.Fields(*msg)); n > models.MaxMessageWords {
		return invalid("personalizedMessage", "must be at most %d words", models.MaxMessageWords)
	}
	if utf8.RuneCountInString(*msg) > models.MaxMessageChars {
		return invalid("personalizedMessage", "must be at most %d characters", models.MaxMessageChars)
	}
	return nil
}
