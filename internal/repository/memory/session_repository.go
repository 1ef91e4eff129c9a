package memory

import (
	"errors"
	"time"

	"albi-mall-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps each session for ttl after its last save and
// purges expired items every cleanupInterval. Expired items are already
// invisible to Get before the purge runs.
func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *SessionRepository) Save(session *store.SessionContext) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.SessionContext, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.SessionContext), true
	}
	return nil, false
}

// Delete reports whether a live session was removed.
func (r *SessionRepository) Delete(sessionID string) bool {
	if _, found := r.cache.Get(sessionID); !found {
		return false
	}
	r.cache.Delete(sessionID)
	return true
}

// List returns every unexpired session.
func (r *SessionRepository) List() []*store.SessionContext {
	items := r.cache.Items()
	sessions := make([]*store.SessionContext, 0, len(items))
	for _, item := range items {
		if s, ok := item.Object.(*store.SessionContext); ok {
			sessions = append(sessions, s)
		}
	}
	return sessions
}

// Count includes expired sessions the janitor has not purged yet.
func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
