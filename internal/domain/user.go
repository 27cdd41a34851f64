package domain

import (
	"strings"
	"time"
)

// PreferredLanguage enumerates the supported UI languages.
type PreferredLanguage string

const (
	LanguageSpanish    PreferredLanguage = "es"
	LanguageEnglish    PreferredLanguage = "en"
	LanguageFrench     PreferredLanguage = "fr"
	LanguagePortuguese PreferredLanguage = "pt"
	LanguageGerman     PreferredLanguage = "de"
	LanguageItalian    PreferredLanguage = "it"
)

// DefaultPreferredLanguage is applied by the store when no language was supplied.
const DefaultPreferredLanguage = LanguageSpanish

// TravelerType enumerates the traveler profiles a user can register as.
type TravelerType string

const (
	TravelerSolo     TravelerType = "solo"
	TravelerCouple   TravelerType = "couple"
	TravelerFamily   TravelerType = "family"
	TravelerFriends  TravelerType = "friends"
	TravelerBusiness TravelerType = "business"
)

// PreferredLanguages lists the valid language values in catalog order.
func PreferredLanguages() []PreferredLanguage {
	return []PreferredLanguage{
		LanguageSpanish, LanguageEnglish, LanguageFrench,
		LanguagePortuguese, LanguageGerman, LanguageItalian,
	}
}

// TravelerTypes lists the valid traveler values in catalog order.
func TravelerTypes() []TravelerType {
	return []TravelerType{
		TravelerSolo, TravelerCouple, TravelerFamily,
		TravelerFriends, TravelerBusiness,
	}
}

// User is the domain model for registered travelers. PasswordHash holds the
// bcrypt output only; the plaintext never reaches this struct.
type User struct {
	ID                string
	FullName          string
	Email             string
	Phone             string
	PasswordHash      string
	CountryOfOrigin   string
	PreferredLanguage PreferredLanguage
	TravelerType      TravelerType
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Normalize trims surrounding whitespace from text fields and lowercases the
// email, so uniqueness is case-insensitive at the store.
func (u *User) Normalize() {
	u.FullName = strings.TrimSpace(u.FullName)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Phone = strings.TrimSpace(u.Phone)
	u.CountryOfOrigin = strings.TrimSpace(u.CountryOfOrigin)
}
