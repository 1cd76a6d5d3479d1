package websocket

import (
	"context"
	"strconv"
	"strings"

	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/logger"
	"walkaudit-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Application-level close codes sent before tearing a connection down.
const (
	CloseUnauthorized = 4001
	CloseForbidden    = 4003
)

// ConnectGate admits a user to the conversation of a report, resolving or
// creating it on first use. Implemented by the chat service.
type ConnectGate interface {
	Admit(ctx context.Context, userId, reportId uint) (*entity.Chat, error)
}

// ServeChat returns the websocket handler for /ws/chats/:reportId. The token
// comes from the ?token= query param, with the Authorization header as a
// fallback for clients that can set one.
func ServeChat(gate ConnectGate, dispatcher *Dispatcher, registry *Registry, log logger.ILogger) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		defer conn.Close()

		reportId, err := strconv.ParseUint(conn.Params("reportId"), 10, 64)
		if err != nil {
			rejectConn(conn, CloseForbidden, "invalid report id")
			return
		}

		token := conn.Query("token")
		if token == "" {
			token = strings.TrimPrefix(conn.Headers(fiber.HeaderAuthorization), "Bearer ")
		}
		userId, err := serverutils.ParseUserId(token)
		if err != nil {
			rejectConn(conn, CloseUnauthorized, "unauthorized")
			return
		}

		ctx := context.Background()
		chat, err := gate.Admit(ctx, userId, uint(reportId))
		if err != nil {
			if serverutils.IsStatus(err, fiber.StatusUnauthorized) {
				rejectConn(conn, CloseUnauthorized, "unauthorized")
			} else {
				rejectConn(conn, CloseForbidden, "forbidden")
			}
			return
		}

		client := NewClient(conn, userId, chat.Id)
		registry.Register(chat.Id, client)
		// Unconditional cleanup keeps the registry leak-free on every exit
		// path, duplicate disconnects included.
		defer registry.Unregister(chat.Id, client)

		log.Info("ChatWS", "Client connected", map[string]interface{}{
			"chat_id":   chat.Id,
			"report_id": chat.ReportId,
			"user_id":   userId,
		})

		go client.writeLoop()
		client.readLoop(func(raw []byte) error {
			if err := dispatcher.HandleInbound(ctx, chat.Id, client, raw); err != nil {
				client.closeWith(CloseForbidden, "forbidden")
				return err
			}
			return nil
		})

		log.Info("ChatWS", "Client disconnected", map[string]interface{}{
			"chat_id": chat.Id,
			"user_id": userId,
		})
	}
}

func rejectConn(conn *websocket.Conn, code int, reason string) {
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
}
