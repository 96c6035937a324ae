package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"sports-portal/internal/approval"
)

const (
	SubjectPlayerRegistered    = "player.registered"
	SubjectPlayerStatusChanged = "player.status.changed"
	SubjectNotificationCreated = "notification.created"
	SubjectPushFailed          = "notification.push.failed"
)

type PlayerRegisteredEvent struct {
	EventType string    `json:"event_type"`
	UserID    uuid.UUID `json:"user_id"`
	PlayerID  uuid.UUID `json:"player_id"`
	Email     string    `json:"email"`
	SportID   uuid.UUID `json:"sport_id"`
	At        time.Time `json:"at"`
}

type PlayerStatusChangedEvent struct {
	EventType string          `json:"event_type"`
	UserID    uuid.UUID       `json:"user_id"`
	From      approval.Status `json:"from"`
	To        approval.Status `json:"to"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	At        time.Time       `json:"at"`
}

type NotificationCreatedEvent struct {
	EventType      string     `json:"event_type"`
	NotificationID uuid.UUID  `json:"notification_id"`
	RecipientID    *uuid.UUID `json:"recipient_id,omitempty"`
	IsGeneral      bool       `json:"is_general"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
}

// PushFailedEvent is dead-lettered once per device whose push exhausted its retries.
type PushFailedEvent struct {
	EventType   string          `json:"event_type"`
	DeviceToken string          `json:"device_token"`
	Error       string          `json:"error"`
	Event       json.RawMessage `json:"event"`
	At          time.Time       `json:"at"`
}
