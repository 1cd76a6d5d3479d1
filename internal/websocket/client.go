package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Client is a middleman between one websocket connection and the registry.
type Client struct {
	conn   *websocket.Conn
	userId uint
	chatId uint

	// Buffered channel of outbound messages.
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(conn *websocket.Conn, userId, chatId uint) *Client {
	return &Client{
		conn:   conn,
		userId: userId,
		chatId: chatId,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
}

func (c *Client) UserId() uint {
	return c.userId
}

func (c *Client) ChatId() uint {
	return c.chatId
}

// Push queues a message for delivery. It never blocks: a closed connection
// or a full buffer is reported as an error so the caller can evict.
func (c *Client) Push(message []byte) error {
	select {
	case <-c.done:
		return ErrConnectionClosed
	default:
	}
	select {
	case c.send <- message:
		return nil
	default:
		return ErrSlowConsumer
	}
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// closeWith sends a close frame with the given status code, then tears the
// connection down.
func (c *Client) closeWith(code int, reason string) {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
	c.shutdown()
}

// readLoop pumps inbound frames to onMessage until the peer disconnects.
// Runs on the handler goroutine.
func (c *Client) readLoop(onMessage func(raw []byte) error) {
	defer c.shutdown()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if err := onMessage(raw); err != nil {
			return
		}
	}
}

// writeLoop pumps queued messages to the websocket connection and keeps the
// connection alive with pings.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.shutdown()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
