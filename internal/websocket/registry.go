package websocket

import (
	"errors"
	"sync"
)

var (
	// ErrConnectionClosed is returned by Push after the connection shut down.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrSlowConsumer is returned by Push when the outbound buffer is full.
	ErrSlowConsumer = errors.New("outbound buffer full")
)

// Session is one live subscriber of a chat. *Client is the production
// implementation.
type Session interface {
	UserId() uint
	Push(message []byte) error
}

// Registry tracks which sessions are attached to which chat. Sessions are
// kept in registration order so fan-out order is deterministic.
type Registry struct {
	mu    sync.RWMutex
	chats map[uint][]Session
}

func NewRegistry() *Registry {
	return &Registry{
		chats: make(map[uint][]Session),
	}
}

func (r *Registry) Register(chatId uint, s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats[chatId] = append(r.chats[chatId], s)
}

// Unregister removes the session from the chat. Removing a session that is
// not registered is a no-op, so eviction paths and deferred cleanup can both
// call it without coordination. The chat entry is deleted once its last
// session leaves.
func (r *Registry) Unregister(chatId uint, s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessions, ok := r.chats[chatId]
	if !ok {
		return
	}
	for i, existing := range sessions {
		if existing == s {
			r.chats[chatId] = append(sessions[:i], sessions[i+1:]...)
			break
		}
	}
	if len(r.chats[chatId]) == 0 {
		delete(r.chats, chatId)
	}
}

// Members returns a snapshot of the chat's sessions. The caller may iterate
// without holding any lock; registrations after the snapshot are not seen.
func (r *Registry) Members(chatId uint) []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessions := r.chats[chatId]
	if len(sessions) == 0 {
		return nil
	}
	snapshot := make([]Session, len(sessions))
	copy(snapshot, sessions)
	return snapshot
}

func (r *Registry) Count(chatId uint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chats[chatId])
}

// Chats returns the number of chats with at least one session.
func (r *Registry) Chats() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chats)
}
