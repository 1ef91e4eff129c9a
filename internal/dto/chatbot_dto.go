package dto

import (
	"time"

	"albi-mall-assistant-be/pkg/rag/filter"
)

type ChatRequest struct {
	Message   string `json:"message" validate:"required,max=500"`
	SessionID string `json:"sessionId" validate:"omitempty,max=128,sessionid"`
	// LegacySessionID accepts older clients that send snake_case.
	LegacySessionID string `json:"session_id,omitempty" validate:"omitempty,max=128,sessionid"`
}

// Session returns the client's session id, preferring sessionId.
func (r *ChatRequest) Session() string {
	if r.SessionID != "" {
		return r.SessionID
	}
	return r.LegacySessionID
}

type RecommendedProductDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Highlight string `json:"highlight"`
}

type ChatResponse struct {
	SessionID           string                  `json:"sessionId"`
	AssistantText       string                  `json:"assistant_text"`
	RecommendedProducts []RecommendedProductDTO `json:"recommended_products"`
	AuditNotes          string                  `json:"audit_notes,omitempty"`
}

// ChatEnvelope is the /chat body: the usual response plus sessionId at the
// top level, where the storefront reads it.
type ChatEnvelope struct {
	Success   bool         `json:"success"`
	Code      int          `json:"code"`
	Message   string       `json:"message"`
	Data      ChatResponse `json:"data"`
	SessionID string       `json:"sessionId"`
}

type MessageDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type SessionResponse struct {
	ID                string           `json:"id"`
	LastQuery         string           `json:"last_query"`
	LastFilters       filter.FilterSet `json:"last_filters"`
	LockedProductType string           `json:"locked_product_type,omitempty"`
	WorkingSetSize    int              `json:"working_set_size"`
	LastRecommended   []ProductSummary `json:"last_recommended"`
	History           []MessageDTO     `json:"history"`
	TurnCount         int              `json:"turn_count"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type SessionSummary struct {
	ID        string    `json:"id"`
	TurnCount int       `json:"turn_count"`
	LastQuery string    `json:"last_query"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SessionStatsDTO struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type SessionsResponse struct {
	ActiveSessions []SessionSummary `json:"activeSessions"`
	Count          int              `json:"count"`
	Stats          SessionStatsDTO  `json:"stats"`
}

type HealthResponse struct {
	Service   string    `json:"service"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type ProductTypeCount struct {
	ProductType string `json:"product_type"`
	Count       int    `json:"count"`
}

type TurnStatsDTO struct {
	TotalTurns      int                `json:"total_turns"`
	FollowUpTurns   int                `json:"follow_up_turns"`
	FallbackTurns   int                `json:"fallback_turns"`
	Templates       map[string]int     `json:"templates"`
	TopProductTypes []ProductTypeCount `json:"top_product_types"`
	LastTurnAt      *time.Time         `json:"last_turn_at,omitempty"`
}

type StatsResponse struct {
	Sessions SessionStatsDTO `json:"sessions"`
	Turns    TurnStatsDTO    `json:"turns"`
}
