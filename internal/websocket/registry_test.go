package websocket

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSession struct {
	id     uint
	mu     sync.Mutex
	frames [][]byte
	pushed int
	fail   error
}

func (s *stubSession) UserId() uint { return s.id }

func (s *stubSession) Push(message []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.pushed++
	s.frames = append(s.frames, message)
	return nil
}

func (s *stubSession) received() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushed
}

func TestRegistryRegisterAndMembers(t *testing.T) {
	r := NewRegistry()
	a := &stubSession{id: 1}
	b := &stubSession{id: 2}

	r.Register(7, a)
	r.Register(7, b)

	members := r.Members(7)
	require.Len(t, members, 2)
	assert.Same(t, Session(a), members[0])
	assert.Same(t, Session(b), members[1])
	assert.Equal(t, 2, r.Count(7))
	assert.Equal(t, 1, r.Chats())
}

func TestRegistryMembersIsSnapshot(t *testing.T) {
	r := NewRegistry()
	a := &stubSession{id: 1}
	r.Register(7, a)

	members := r.Members(7)
	r.Register(7, &stubSession{id: 2})

	assert.Len(t, members, 1)
	assert.Equal(t, 2, r.Count(7))
}

func TestRegistryUnregisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	a := &stubSession{id: 1}
	b := &stubSession{id: 2}
	r.Register(7, a)
	r.Register(7, b)

	r.Unregister(7, a)
	r.Unregister(7, a)

	require.Equal(t, 1, r.Count(7))
	assert.Same(t, Session(b), r.Members(7)[0])

	// Unknown chat is a no-op too.
	r.Unregister(99, a)
}

func TestRegistryPrunesEmptyChat(t *testing.T) {
	r := NewRegistry()
	a := &stubSession{id: 1}
	r.Register(7, a)
	require.Equal(t, 1, r.Chats())

	r.Unregister(7, a)

	assert.Equal(t, 0, r.Chats())
	assert.Nil(t, r.Members(7))
}

func TestRegistrySameUserMultipleSessions(t *testing.T) {
	r := NewRegistry()
	first := &stubSession{id: 1}
	second := &stubSession{id: 1}
	r.Register(7, first)
	r.Register(7, second)

	require.Equal(t, 2, r.Count(7))

	r.Unregister(7, first)
	members := r.Members(7)
	require.Len(t, members, 1)
	assert.Same(t, Session(second), members[0])
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n uint) {
			defer wg.Done()
			s := &stubSession{id: n}
			r.Register(n%5, s)
			r.Members(n % 5)
			r.Unregister(n%5, s)
		}(uint(i))
	}
	wg.Wait()
	assert.Equal(t, 0, r.Chats())
}
