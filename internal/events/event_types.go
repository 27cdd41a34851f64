package events

import (
	"time"

	"github.com/J-CamiloG/AppKit-API/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserLoggedIn   EventType = "user_logged_in"
)

// Event represents a domain event emitted by services. Payloads carry public
// user fields only; credentials never travel through the dispatcher.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	FullName          string                   `json:"full_name"`
	Email             string                   `json:"email"`
	PreferredLanguage domain.PreferredLanguage `json:"preferred_language"`
	TravelerType      domain.TravelerType      `json:"traveler_type"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	Email string `json:"email"`
}
