package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTurnCompleted_Payload(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	evt := TurnCompleted{
		SessionID:      "s-1",
		Query:          "red tote",
		FollowUpKind:   "new",
		ProductType:    "tote",
		RecommendedIDs: []string{"mk-002"},
		OccurredAt:     at,
	}

	var e Event = evt
	assert.Equal(t, TypeChatTurnCompleted, e.EventType())
	assert.Equal(t, at, e.Timestamp())

	p := e.Payload()
	assert.Equal(t, "s-1", p["session_id"])
	assert.Equal(t, []interface{}{"mk-002"}, p["recommended_ids"])
	assert.Equal(t, false, p["used_fallback"])
	assert.Equal(t, "2026-03-01T10:00:00Z", p["timestamp"])
}
