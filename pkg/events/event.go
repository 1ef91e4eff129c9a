package events

import (
	"context"
	"time"
)

const TypeChatTurnCompleted = "CHAT_TURN_COMPLETED"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_TURN_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher ships events to an external bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// BaseEvent is the generic Event used when the payload is already a map.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// TurnCompleted is emitted once per processed chat message.
type TurnCompleted struct {
	SessionID      string    `json:"session_id"`
	Query          string    `json:"query"`
	FollowUpKind   string    `json:"follow_up_kind"`
	ProductType    string    `json:"product_type,omitempty"`
	RecommendedIDs []string  `json:"recommended_ids"`
	UsedFallback   bool      `json:"used_fallback"`
	Template       string    `json:"template,omitempty"`
	AuditNotes     string    `json:"audit_notes,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func (e TurnCompleted) EventType() string {
	return TypeChatTurnCompleted
}

func (e TurnCompleted) Payload() map[string]interface{} {
	ids := make([]interface{}, len(e.RecommendedIDs))
	for i, id := range e.RecommendedIDs {
		ids[i] = id
	}
	return map[string]interface{}{
		"session_id":      e.SessionID,
		"query":           e.Query,
		"follow_up_kind":  e.FollowUpKind,
		"product_type":    e.ProductType,
		"recommended_ids": ids,
		"used_fallback":   e.UsedFallback,
		"template":        e.Template,
		"audit_notes":     e.AuditNotes,
		"timestamp":       e.OccurredAt.Format(time.RFC3339Nano),
	}
}

func (e TurnCompleted) Timestamp() time.Time {
	return e.OccurredAt
}
