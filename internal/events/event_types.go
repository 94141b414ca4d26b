package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded    EventType = "login_succeeded"
	EventLoginFailed       EventType = "login_failed"
	EventAccountRegistered EventType = "account_registered"
	EventTokenRefreshed    EventType = "token_refreshed"
	EventLogout            EventType = "logout"
	EventAuthRejected      EventType = "auth_rejected"
)

// Event represents an authentication event emitted by the auth pipeline.
// Raw tokens are never carried in events.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Username  string      `json:"username,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// New builds an event with a fresh ID and the current timestamp.
func New(eventType EventType, username string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Username:  username,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}

// TokenRefreshedPayload payload.
type TokenRefreshedPayload struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthRejectedPayload payload.
type AuthRejectedPayload struct {
	Reason string `json:"reason"`
}
