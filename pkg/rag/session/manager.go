package session

import (
	"sort"
	"sync"
	"time"

	"albi-mall-assistant-be/internal/pkg/logger"
	"albi-mall-assistant-be/internal/repository/memory"
	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/rag/filter"
	"albi-mall-assistant-be/pkg/store"
)

// Turn is everything one processed message contributes to the session.
type Turn struct {
	Utterance   string
	Query       string
	Reply       string
	Filters     filter.FilterSet
	FollowUp    bool
	Products    []catalog.Product // working set retrieved this turn
	Recommended []catalog.Product
}

// Stats counts stored sessions and those touched within the inactivity window.
type Stats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// Manager handles session operations
type Manager struct {
	sessionRepo *memory.SessionRepository
	historySize int
	window      time.Duration
	logger      logger.ILogger

	// serializes read-modify-write in Update
	mu  sync.Mutex
	now func() time.Time
}

// NewManager creates a new session manager
func NewManager(sessionRepo *memory.SessionRepository, historySize int, window time.Duration, log logger.ILogger) *Manager {
	if historySize <= 0 {
		historySize = 10
	}
	return &Manager{
		sessionRepo: sessionRepo,
		historySize: historySize,
		window:      window,
		logger:      log,
		now:         time.Now,
	}
}

// GetOrCreate returns a copy of the stored context, or a fresh one when the
// session is unknown or expired. A fresh context is not stored until Update.
func (m *Manager) GetOrCreate(sessionID string) store.SessionContext {
	if s, found := m.sessionRepo.Get(sessionID); found {
		return s.Clone()
	}
	now := m.now()
	return store.SessionContext{
		ID:        sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Get returns a copy of a live session.
func (m *Manager) Get(sessionID string) (store.SessionContext, bool) {
	s, found := m.sessionRepo.Get(sessionID)
	if !found {
		return store.SessionContext{}, false
	}
	return s.Clone(), true
}

// Update records a processed turn. The working set is only replaced on
// non-follow-up turns so refinements keep filtering the same base list.
func (m *Manager) Update(sessionID string, turn Turn) store.SessionContext {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.GetOrCreate(sessionID)
	now := m.now()

	current.History = append(current.History,
		store.Message{Role: store.RoleUser, Content: turn.Utterance, Timestamp: now},
		store.Message{Role: store.RoleAssistant, Content: turn.Reply, Timestamp: now},
	)
	if over := len(current.History) - m.historySize; over > 0 {
		current.History = append([]store.Message(nil), current.History[over:]...)
	}

	current.LastQuery = turn.Query
	current.LastFilters = turn.Filters.Clone()
	if !turn.FollowUp {
		current.LastProducts = catalog.CloneAll(turn.Products)
	}
	current.LastRecommended = catalog.CloneAll(turn.Recommended)
	if turn.Filters.ProductType != "" {
		current.LockedProductType = turn.Filters.ProductType
	}
	current.TurnCount++
	current.UpdatedAt = now

	m.sessionRepo.Save(&current)

	m.logger.Debug("SESSION", "Session updated", map[string]interface{}{
		"session_id":    sessionID,
		"turns":         current.TurnCount,
		"follow_up":     turn.FollowUp,
		"working_set":   len(current.LastProducts),
		"locked_type":   current.LockedProductType,
		"history_count": len(current.History),
	})

	return current.Clone()
}

// Clear removes the session and reports whether it existed.
func (m *Manager) Clear(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionRepo.Delete(sessionID)
}

// Stats counts stored sessions; active ones had a message within the window.
func (m *Manager) Stats() Stats {
	cutoff := m.now().Add(-m.window)
	active := 0
	for _, s := range m.sessionRepo.List() {
		if s.UpdatedAt.After(cutoff) {
			active++
		}
	}
	return Stats{Total: m.sessionRepo.Count(), Active: active}
}

// List returns copies of the live sessions, most recently used first.
func (m *Manager) List() []store.SessionContext {
	sessions := m.sessionRepo.List()
	out := make([]store.SessionContext, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
