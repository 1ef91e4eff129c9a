package mapper

import (
	"albi-mall-assistant-be/internal/dto"
	"albi-mall-assistant-be/pkg/rag/session"
	"albi-mall-assistant-be/pkg/store"
)

type SessionMapper struct {
	products *ProductMapper
}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{products: NewProductMapper()}
}

func (m *SessionMapper) ToResponse(s store.SessionContext) *dto.SessionResponse {
	history := make([]dto.MessageDTO, 0, len(s.History))
	for _, msg := range s.History {
		history = append(history, dto.MessageDTO{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		})
	}

	return &dto.SessionResponse{
		ID:                s.ID,
		LastQuery:         s.LastQuery,
		LastFilters:       s.LastFilters,
		LockedProductType: s.LockedProductType,
		WorkingSetSize:    len(s.LastProducts),
		LastRecommended:   m.products.ToSummaries(s.LastRecommended),
		History:           history,
		TurnCount:         s.TurnCount,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *SessionMapper) ToSummary(s store.SessionContext) dto.SessionSummary {
	return dto.SessionSummary{
		ID:        s.ID,
		TurnCount: s.TurnCount,
		LastQuery: s.LastQuery,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *SessionMapper) ToStats(st session.Stats) dto.SessionStatsDTO {
	return dto.SessionStatsDTO{Total: st.Total, Active: st.Active}
}
