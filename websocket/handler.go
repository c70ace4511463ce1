package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/cride-hq/cride_backend/database"
	"github.com/cride-hq/cride_backend/models"
	"github.com/cride-hq/cride_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Initialize the hub
func init() {
	InitHub()
}

// HandleConnection upgrades the request and attaches the client to the
// event hub. The token query parameter carries the user's JWT.
func HandleConnection(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	userID, err := utils.ParseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("error upgrading connection: %v", err)
		return
	}

	client := &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		userID:  userID,
		circles: make(map[uint]bool),
	}

	client.hub.register <- client

	go client.readPump()
	go client.writePump()
}

// HandleIncomingMessage processes a subscription request from a client.
// Only circle feed subscribe/unsubscribe are accepted; all domain events
// originate server-side.
func HandleIncomingMessage(client *Client, messageBytes []byte) {
	var event Event
	if err := json.Unmarshal(messageBytes, &event); err != nil {
		log.Printf("error unmarshaling client message: %v", err)
		return
	}

	switch event.Type {
	case "join_circle":
		circleID := payloadCircleID(event)
		if circleID == 0 {
			client.sendEvent("error", "circle_id is required")
			return
		}

		// Only active members may follow a circle's feed
		var membership models.Membership
		err := database.DB.
			Where("circle_id = ? AND user_id = ? AND is_active = ?", circleID, client.userID, true).
			First(&membership).Error
		if err != nil {
			client.sendEvent("error", "You are not a member of this circle")
			return
		}

		client.joinCircle(circleID)
		client.sendEvent("joined_circle", circleID)
	case "leave_circle":
		circleID := payloadCircleID(event)
		if circleID == 0 {
			client.sendEvent("error", "circle_id is required")
			return
		}
		client.leaveCircle(circleID)
		client.sendEvent("left_circle", circleID)
	}
}

// payloadCircleID extracts a circle ID sent either as a number or string
func payloadCircleID(event Event) uint {
	if event.CircleID != 0 {
		return event.CircleID
	}

	switch v := event.Payload.(type) {
	case float64:
		return uint(v)
	case string:
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint(id)
		}
	}
	return 0
}
