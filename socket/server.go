package socket

import (
	"log"

	"playerpath_server/services"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes and returns a new Socket.IO server. Clients
// join a room keyed by their athlete id to receive invitation status updates.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, data map[string]string) {
		athleteID := data["athleteId"]
		if athleteID == "" {
			log.Println("Invalid athleteId in join request")
			return
		}
		log.Printf("Client %s joined room %s\n", c.ID(), athleteID)
		c.Join(athleteID)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("Socket disconnected:", c.ID(), reason)
	})

	return server
}

// StatusHub pushes invitation delivery-status updates to the inviting
// athlete's connected clients.
type StatusHub struct {
	server *socketio.Server
}

func NewStatusHub(server *socketio.Server) *StatusHub {
	return &StatusHub{server: server}
}

// BroadcastInvitationStatus emits an invitationStatus event to the athlete's room.
func (h *StatusHub) BroadcastInvitationStatus(athleteID string, status services.InvitationStatus) {
	h.server.BroadcastToRoom("/", athleteID, "invitationStatus", status)
}
