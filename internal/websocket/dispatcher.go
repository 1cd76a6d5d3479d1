package websocket

import (
	"context"
	"encoding/json"
	"time"

	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const relayChannel = "chat_relay"

// Authorizer re-checks chat access. It is consulted on connect and again for
// every inbound message, so revoked access takes effect mid-session.
type Authorizer interface {
	Authorize(ctx context.Context, userId, chatId uint) error
}

// MessageStore persists a chat message before it is delivered to anyone.
type MessageStore interface {
	Append(ctx context.Context, chatId, userId uint, text, image *string) (*entity.ChatMessage, error)
}

// OutboundFrame is the wire shape every subscriber receives.
type OutboundFrame struct {
	Text      *string `json:"text"`
	Image     *string `json:"image"`
	SenderId  uint    `json:"sender_id"`
	CreatedAt string  `json:"created_at"`
}

type errorFrame struct {
	Error string `json:"error"`
}

type relayEnvelope struct {
	ChatId uint            `json:"chat_id"`
	Frame  json.RawMessage `json:"frame"`
	Origin string          `json:"origin"`
}

// Dispatcher owns the message path of a chat: authorize, persist, then fan
// out to every registered session of the chat, the sender included.
type Dispatcher struct {
	registry *Registry
	auth     Authorizer
	store    MessageStore
	rdb      *redis.Client
	origin   string
	logger   logger.ILogger
}

func NewDispatcher(registry *Registry, auth Authorizer, store MessageStore, rdb *redis.Client, log logger.ILogger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		auth:     auth,
		store:    store,
		rdb:      rdb,
		origin:   uuid.NewString(),
		logger:   log,
	}
}

type inboundPayload struct {
	Text  *string `json:"text"`
	Image *string `json:"image"`
}

// parseInbound accepts either a JSON object with text/image fields or a bare
// string, which is treated as the message text.
func parseInbound(raw []byte) (text, image *string) {
	var payload inboundPayload
	if err := json.Unmarshal(raw, &payload); err == nil {
		return payload.Text, payload.Image
	}
	plain := string(raw)
	return &plain, nil
}

// HandleInbound runs one message through the full path. A returned error
// means the sender lost access and the caller should close the connection;
// everything else is handled here.
func (d *Dispatcher) HandleInbound(ctx context.Context, chatId uint, sender Session, raw []byte) error {
	if err := d.auth.Authorize(ctx, sender.UserId(), chatId); err != nil {
		return err
	}

	text, image := parseInbound(raw)

	message, err := d.store.Append(ctx, chatId, sender.UserId(), text, image)
	if err != nil {
		d.logger.Error("Dispatcher", "Failed to persist chat message", map[string]interface{}{
			"chat_id": chatId,
			"user_id": sender.UserId(),
			"error":   err.Error(),
		})
		// Persistence failed, so nobody gets the message. Only the sender
		// learns about it.
		frame, _ := json.Marshal(errorFrame{Error: "failed to save message"})
		if pushErr := sender.Push(frame); pushErr != nil {
			d.registry.Unregister(chatId, sender)
		}
		return nil
	}

	frame, err := json.Marshal(OutboundFrame{
		Text:      message.Text,
		Image:     message.Image,
		SenderId:  message.UserId,
		CreatedAt: message.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return nil
	}

	d.deliverLocal(chatId, frame)
	d.publishRelay(ctx, chatId, frame)
	return nil
}

// Broadcast fans out an already-persisted message, for send paths that do
// not originate on a websocket (the HTTP message endpoint).
func (d *Dispatcher) Broadcast(ctx context.Context, chatId uint, message *entity.ChatMessage) {
	frame, err := json.Marshal(OutboundFrame{
		Text:      message.Text,
		Image:     message.Image,
		SenderId:  message.UserId,
		CreatedAt: message.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	d.deliverLocal(chatId, frame)
	d.publishRelay(ctx, chatId, frame)
}

// deliverLocal pushes the frame to every session of the chat on this
// instance. A session that cannot take the frame is dropped from the
// registry without interrupting delivery to the rest.
func (d *Dispatcher) deliverLocal(chatId uint, frame []byte) {
	for _, session := range d.registry.Members(chatId) {
		if err := session.Push(frame); err != nil {
			d.registry.Unregister(chatId, session)
			d.logger.Warn("Dispatcher", "Evicted unresponsive session", map[string]interface{}{
				"chat_id": chatId,
				"user_id": session.UserId(),
				"reason":  err.Error(),
			})
		}
	}
}

func (d *Dispatcher) publishRelay(ctx context.Context, chatId uint, frame []byte) {
	if d.rdb == nil {
		return
	}
	envelope, _ := json.Marshal(relayEnvelope{
		ChatId: chatId,
		Frame:  frame,
		Origin: d.origin,
	})
	if err := d.rdb.Publish(ctx, relayChannel, envelope).Err(); err != nil {
		d.logger.Warn("Dispatcher", "Relay publish failed", map[string]interface{}{
			"chat_id": chatId,
			"error":   err.Error(),
		})
	}
}

// RunRelay consumes frames published by other instances and delivers them to
// local sessions. Messages are already persisted by the origin instance.
// Blocks until the context is cancelled.
func (d *Dispatcher) RunRelay(ctx context.Context) {
	if d.rdb == nil {
		return
	}
	pubsub := d.rdb.Subscribe(ctx, relayChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var envelope relayEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				d.logger.Warn("Dispatcher", "Malformed relay payload", map[string]interface{}{
					"error": err.Error(),
				})
				continue
			}
			if envelope.Origin == d.origin {
				continue
			}
			d.deliverLocal(envelope.ChatId, envelope.Frame)
		}
	}
}
