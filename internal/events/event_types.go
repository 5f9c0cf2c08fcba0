package events

import (
	"fmt"
	"time"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
)

// Action describes what happened to a record.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// EventType enumerates supported event identifiers, e.g. "vehicle_updated".
type EventType string

// TypeFor builds the event type for a record kind and action.
func TypeFor(kind domain.RecordKind, action Action) EventType {
	return EventType(fmt.Sprintf("%s_%s", kind, action))
}

// Event represents a record change emitted by services.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Kind      domain.RecordKind `json:"kind"`
	Action    Action            `json:"action"`
	RecordID  string            `json:"record_id"`
	ActorID   string            `json:"actor_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   interface{}       `json:"payload"`
}

// DeletedPayload carries what is left of a record after deletion.
type DeletedPayload struct {
	DiscordMessageID *string `json:"discord_message_id,omitempty"`
}
