package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 10000
)

// Client represents a connected websocket client
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	userID     uint
	circles    map[uint]bool
	circlesMux sync.RWMutex
}

// Event is a message on a circle's feed
type Event struct {
	Type     string      `json:"type"`
	CircleID uint        `json:"circle_id,omitempty"`
	Payload  interface{} `json:"payload,omitempty"`
}

// joinCircle tracks a subscription on both the client and the hub
func (c *Client) joinCircle(circleID uint) {
	c.circlesMux.Lock()
	c.circles[circleID] = true
	c.circlesMux.Unlock()

	c.hub.joinCircle(c, circleID)
}

// leaveCircle drops a subscription on both the client and the hub
func (c *Client) leaveCircle(circleID uint) {
	c.circlesMux.Lock()
	delete(c.circles, circleID)
	c.circlesMux.Unlock()

	c.hub.leaveCircle(c, circleID)
}

// readPump pumps subscription requests from the websocket connection
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}

		HandleIncomingMessage(c, message)
	}
}

// writePump pumps events from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// sendEvent marshals and queues an event for this client only
func (c *Client) sendEvent(eventType string, payload interface{}) {
	event := Event{Type: eventType, Payload: payload}
	eventBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("error marshaling event: %v", err)
		return
	}

	select {
	case c.send <- eventBytes:
	default:
	}
}
