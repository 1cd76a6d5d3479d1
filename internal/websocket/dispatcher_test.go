package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkaudit-be/internal/entity"
)

type stubAuthorizer struct {
	err error
}

func (a *stubAuthorizer) Authorize(ctx context.Context, userId, chatId uint) error {
	return a.err
}

type stubStore struct {
	err   error
	calls int
	last  *entity.ChatMessage
}

func (s *stubStore) Append(ctx context.Context, chatId, userId uint, text, image *string) (*entity.ChatMessage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	s.last = &entity.ChatMessage{
		Id:        uint(s.calls),
		ChatId:    chatId,
		UserId:    userId,
		Text:      text,
		Image:     image,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	return s.last, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestDispatcher(auth *stubAuthorizer, store *stubStore) (*Dispatcher, *Registry) {
	registry := NewRegistry()
	return NewDispatcher(registry, auth, store, nil, nopLogger{}), registry
}

func strPtr(s string) *string { return &s }

func TestParseInbound(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantText  *string
		wantImage *string
	}{
		{
			name:     "json text only",
			raw:      `{"text":"pothole on 5th"}`,
			wantText: strPtr("pothole on 5th"),
		},
		{
			name:      "json text and image",
			raw:       `{"text":"see photo","image":"/uploads/a.jpg"}`,
			wantText:  strPtr("see photo"),
			wantImage: strPtr("/uploads/a.jpg"),
		},
		{
			name:     "bare string becomes text",
			raw:      "hello there",
			wantText: strPtr("hello there"),
		},
		{
			name: "empty json object",
			raw:  `{}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, image := parseInbound([]byte(tt.raw))
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantImage, image)
		})
	}
}

func TestHandleInboundFansOutToAllIncludingSender(t *testing.T) {
	store := &stubStore{}
	d, registry := newTestDispatcher(&stubAuthorizer{}, store)

	sender := &stubSession{id: 1}
	peer := &stubSession{id: 2}
	registry.Register(7, sender)
	registry.Register(7, peer)

	err := d.HandleInbound(context.Background(), 7, sender, []byte(`{"text":"hi"}`))
	require.NoError(t, err)

	require.Equal(t, 1, sender.received())
	require.Equal(t, 1, peer.received())

	var frame OutboundFrame
	require.NoError(t, json.Unmarshal(peer.frames[0], &frame))
	assert.Equal(t, strPtr("hi"), frame.Text)
	assert.Equal(t, uint(1), frame.SenderId)
	assert.Equal(t, "2026-03-01T12:00:00Z", frame.CreatedAt)
}

func TestHandleInboundAuthorizationFailureReturnsError(t *testing.T) {
	store := &stubStore{}
	d, registry := newTestDispatcher(&stubAuthorizer{err: errors.New("forbidden")}, store)

	sender := &stubSession{id: 1}
	registry.Register(7, sender)

	err := d.HandleInbound(context.Background(), 7, sender, []byte(`{"text":"hi"}`))
	require.Error(t, err)
	assert.Zero(t, store.calls, "message must not be persisted")
	assert.Zero(t, sender.received(), "message must not be delivered")
}

func TestHandleInboundPersistenceFailureNotifiesSenderOnly(t *testing.T) {
	store := &stubStore{err: errors.New("db down")}
	d, registry := newTestDispatcher(&stubAuthorizer{}, store)

	sender := &stubSession{id: 1}
	peer := &stubSession{id: 2}
	registry.Register(7, sender)
	registry.Register(7, peer)

	err := d.HandleInbound(context.Background(), 7, sender, []byte(`{"text":"hi"}`))
	require.NoError(t, err, "persistence failure keeps the connection alive")

	require.Equal(t, 1, sender.received())
	assert.Zero(t, peer.received())

	var frame errorFrame
	require.NoError(t, json.Unmarshal(sender.frames[0], &frame))
	assert.NotEmpty(t, frame.Error)
}

func TestHandleInboundEvictsSenderWhenErrorFramePushFails(t *testing.T) {
	store := &stubStore{err: errors.New("db down")}
	d, registry := newTestDispatcher(&stubAuthorizer{}, store)

	sender := &stubSession{id: 1, fail: ErrConnectionClosed}
	registry.Register(7, sender)

	err := d.HandleInbound(context.Background(), 7, sender, []byte(`{"text":"hi"}`))
	require.NoError(t, err)
	assert.Zero(t, registry.Count(7))
}

func TestDeliverLocalEvictsFailingSession(t *testing.T) {
	store := &stubStore{}
	d, registry := newTestDispatcher(&stubAuthorizer{}, store)

	healthy := &stubSession{id: 1}
	broken := &stubSession{id: 2, fail: ErrSlowConsumer}
	registry.Register(7, healthy)
	registry.Register(7, broken)

	err := d.HandleInbound(context.Background(), 7, healthy, []byte(`{"text":"hi"}`))
	require.NoError(t, err)

	assert.Equal(t, 1, healthy.received())
	assert.Equal(t, 1, registry.Count(7), "broken session is evicted")
	assert.Same(t, Session(healthy), registry.Members(7)[0])
}

func TestBroadcastDeliversPersistedMessage(t *testing.T) {
	d, registry := newTestDispatcher(&stubAuthorizer{}, &stubStore{})

	peer := &stubSession{id: 3}
	registry.Register(9, peer)

	d.Broadcast(context.Background(), 9, &entity.ChatMessage{
		ChatId:    9,
		UserId:    4,
		Text:      strPtr("from http"),
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	require.Equal(t, 1, peer.received())
	var frame OutboundFrame
	require.NoError(t, json.Unmarshal(peer.frames[0], &frame))
	assert.Equal(t, uint(4), frame.SenderId)
	assert.Equal(t, strPtr("from http"), frame.Text)
}

func TestHandleInboundPersistsBeforeDelivery(t *testing.T) {
	store := &stubStore{}
	d, registry := newTestDispatcher(&stubAuthorizer{}, store)

	sender := &stubSession{id: 5}
	registry.Register(11, sender)

	require.NoError(t, d.HandleInbound(context.Background(), 11, sender, []byte("quick note")))

	require.NotNil(t, store.last)
	assert.Equal(t, uint(11), store.last.ChatId)
	assert.Equal(t, strPtr("quick note"), store.last.Text)
	assert.Equal(t, 1, sender.received())
}
