package socket

import (
	"log"

	gosocketio "github.com/erock530/gosf-socketio"
)

// NewSocketServer initializes the Socket.IO server. Clients join the room named
// by their relationship id and receive newMessage broadcasts for it.
func NewSocketServer() *gosocketio.Server {
	server := gosocketio.NewServer(nil)

	// Handle connection events
	server.On(gosocketio.OnConnection, func(c *gosocketio.Channel) {
		log.Println("✅ Socket connected:", c.Id())
	})

	// Handle join events
	server.On("join", func(c *gosocketio.Channel, data map[string]string) {
		relationshipID := data["relationshipId"]
		if relationshipID == "" {
			log.Println("❌ Invalid relationshipId in join request")
			return
		}
		log.Printf("👥 Client %s joined relationship %s\n", c.Id(), relationshipID)
		c.Join(relationshipID)
	})

	// Handle leave events
	server.On("leave", func(c *gosocketio.Channel, data map[string]string) {
		relationshipID := data["relationshipId"]
		if relationshipID == "" {
			return
		}
		c.Leave(relationshipID)
	})

	// Handle disconnection
	server.On(gosocketio.OnDisconnection, func(c *gosocketio.Channel) {
		log.Println("❌ Socket disconnected:", c.Id())
	})

	return server
}
