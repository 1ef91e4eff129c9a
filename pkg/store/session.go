package store

import (
	"time"

	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/rag/filter"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of the rolling conversation history.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionContext represents the conversational state held in memory per session
type SessionContext struct {
	ID string `json:"id"`

	LastQuery string `json:"last_query"`

	// THE WORKING SET (base list that follow-up turns filter)
	LastProducts []catalog.Product `json:"last_products"`

	// THE SHELF (what the shopper saw last)
	LastRecommended []catalog.Product `json:"last_recommended"`

	LastFilters       filter.FilterSet `json:"last_filters"`
	LockedProductType string           `json:"locked_product_type,omitempty"`

	History   []Message `json:"history"`
	TurnCount int       `json:"turn_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy so callers never share slices with the store.
func (s *SessionContext) Clone() SessionContext {
	c := *s
	c.LastProducts = catalog.CloneAll(s.LastProducts)
	c.LastRecommended = catalog.CloneAll(s.LastRecommended)
	c.LastFilters = s.LastFilters.Clone()
	c.History = append([]Message(nil), s.History...)
	return c
}

// RecentHistory returns at most n of the newest messages.
func (s *SessionContext) RecentHistory(n int) []Message {
	if n <= 0 || len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}
