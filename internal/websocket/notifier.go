package websocket

import (
	"context"
	"encoding/json"
	"strings"

	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/logger"
	"walkaudit-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
)

const notifyChannel = "notification_relay"

// Notifier pushes notification payloads to a user's open sockets. It reuses
// the registry keyed by user id instead of chat id, and relays through Redis
// so users connected to another instance still get the push.
type Notifier struct {
	sessions *Registry
	rdb      *redis.Client
	origin   string
	logger   logger.ILogger
}

func NewNotifier(rdb *redis.Client, origin string, log logger.ILogger) *Notifier {
	return &Notifier{
		sessions: NewRegistry(),
		rdb:      rdb,
		origin:   origin,
		logger:   log,
	}
}

type notifyEnvelope struct {
	UserId  uint            `json:"user_id"`
	Payload json.RawMessage `json:"payload"`
	Origin  string          `json:"origin"`
}

// Send delivers the notification to every local socket of the user and
// relays it for other instances. Sockets that cannot take the payload are
// dropped.
func (n *Notifier) Send(ctx context.Context, userId uint, notification *entity.Notification) {
	payload, err := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": map[string]interface{}{
			"id":         notification.Id,
			"message":    notification.Message,
			"is_read":    notification.IsRead,
			"created_at": notification.CreatedAt,
		},
	})
	if err != nil {
		return
	}

	n.deliverLocal(userId, payload)

	if n.rdb != nil {
		envelope, _ := json.Marshal(notifyEnvelope{
			UserId:  userId,
			Payload: payload,
			Origin:  n.origin,
		})
		if err := n.rdb.Publish(ctx, notifyChannel, envelope).Err(); err != nil {
			n.logger.Warn("Notifier", "Relay publish failed", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		}
	}
}

func (n *Notifier) deliverLocal(userId uint, payload []byte) {
	for _, session := range n.sessions.Members(userId) {
		if err := session.Push(payload); err != nil {
			n.sessions.Unregister(userId, session)
		}
	}
}

// RunRelay consumes notification pushes originating on other instances.
func (n *Notifier) RunRelay(ctx context.Context) {
	if n.rdb == nil {
		return
	}
	pubsub := n.rdb.Subscribe(ctx, notifyChannel)
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
			var envelope notifyEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				continue
			}
			if envelope.Origin == n.origin {
				continue
			}
			n.deliverLocal(envelope.UserId, envelope.Payload)
		}
	}
}

// ServeNotifications is the websocket handler for /ws/notifications. The
// connection only receives pushes; inbound frames are drained and ignored.
func (n *Notifier) ServeNotifications() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		defer conn.Close()

		token := conn.Query("token")
		if token == "" {
			token = strings.TrimPrefix(conn.Headers(fiber.HeaderAuthorization), "Bearer ")
		}
		userId, err := serverutils.ParseUserId(token)
		if err != nil {
			rejectConn(conn, CloseUnauthorized, "unauthorized")
			return
		}

		client := NewClient(conn, userId, 0)
		n.sessions.Register(userId, client)
		defer n.sessions.Unregister(userId, client)

		n.logger.Info("Notifier", "Client connected", map[string]interface{}{
			"user_id": userId,
		})

		go client.writeLoop()
		client.readLoop(func([]byte) error { return nil })

		n.logger.Info("Notifier", "Client disconnected", map[string]interface{}{
			"user_id": userId,
		})
	}
}
