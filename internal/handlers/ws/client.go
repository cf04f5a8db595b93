package ws

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait is the deadline for a single outbound write
	writeWait = 10 * time.Second

	// pongWait is how long a connection may stay silent before it is
	// presumed dead
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait so pings keep the read
	// deadline alive
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096

	// sendBufferSize bounds the outbound queue; a client that falls this
	// far behind is disconnected rather than allowed to stall the game
	sendBufferSize = 64
)

// Client is one websocket connection. The read pump is the only
// goroutine that mutates sessionID; the hub reads it under its own lock
// during bind and unregister, after which no dispatch can run.
type Client struct {
	hub     *Hub
	handler *Handler
	conn    *websocket.Conn

	participantID string
	sessionID     string

	sendMu sync.Mutex
	closed bool
	send   chan []byte
}

func newClient(hub *Hub, handler *Handler, conn *websocket.Conn, participantID string) *Client {
	return &Client{
		hub:           hub,
		handler:       handler,
		conn:          conn,
		participantID: participantID,
		send:          make(chan []byte, sendBufferSize),
	}
}

// enqueue queues an outbound frame, dropping the connection if the
// client cannot keep up.
func (c *Client) enqueue(data []byte) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("ws: participant %s too slow, dropping connection", c.participantID)
		c.conn.Close()
	}
}

// markClosed flags the client before its send channel is closed, so a
// concurrent enqueue can never write to a closed channel.
func (c *Client) markClosed() {
	c.sendMu.Lock()
	c.closed = true
	c.sendMu.Unlock()
}

// readPump consumes inbound envelopes until the connection drops, then
// tears the client down.
func (c *Client) readPump() {
	defer func() {
		c.handler.disconnect(c)
		c.markClosed()
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws: participant %s read error: %v", c.participantID, err)
			}
			return
		}
		c.handler.dispatch(c, raw)
	}
}

// writePump drains the send channel onto the wire and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
