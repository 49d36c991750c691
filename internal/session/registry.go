// Package session tracks which users are currently logged in. The
// registry is owned by the server instance and process-local: it is
// cleared on restart and carries no expiry.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dverdugo/message-app/internal/models"
)

type Registry struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*models.User
}

func NewRegistry() *Registry {
	return &Registry{users: make(map[uuid.UUID]*models.User)}
}

func (r *Registry) Put(user *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
}

// Remove is idempotent; removing an absent session is a no-op.
func (r *Registry) Remove(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
}

// Get returns the cached user or nil. This is a cheap presence check,
// distinct from the live-delivery connection registry.
func (r *Registry) Get(userID uuid.UUID) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[userID]
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
