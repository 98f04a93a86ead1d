// Package ws is the connection gateway: it upgrades client connections,
// maps each one to a room code and participant identity, turns inbound
// envelopes into coordinator calls and fans coordinator events back out to
// the room's connections.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Coordinator is the slice of the room coordinator the gateway needs.
type Coordinator interface {
	Join(roomCode, participantID, username string)
	Leave(roomCode, participantID string)
	Move(roomCode, participantID string, move json.RawMessage) error
	RequestRematch(roomCode, participantID string) error
	AcceptRematch(roomCode, participantID string) error
	RejectRematch(roomCode, participantID string) error
}

// client is one live connection. roomCode and participantID are recorded
// on the first join and reused to synthesize a leave when the transport
// drops. mu serializes writes; gorilla allows only one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex

	roomCode      string
	participantID string
}

func (c *client) send(event string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("ws: marshal %s: %v", event, err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(Envelope{Event: event, Data: payload}); err != nil {
		log.Printf("ws: write %s: %v", event, err)
	}
}

func (c *client) sendError(message string) {
	c.send("error", map[string]string{"message": message})
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}

	coord    Coordinator
	upgrader websocket.Upgrader
}

func NewHub(clientOrigin string) *Hub {
	return &Hub{
		rooms: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if clientOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == clientOrigin
			},
		},
	}
}

// SetCoordinator wires the room coordinator in after construction; the
// coordinator itself broadcasts through the hub.
func (h *Hub) SetCoordinator(c Coordinator) {
	h.coord = c
}

// HandleWS upgrades the connection and runs its read loop. A read error of
// any kind ends the loop and synthesizes a leave for the connection's last
// known room.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}
	cl := &client{conn: conn}
	log.Printf("ws: connection from %s", conn.RemoteAddr())

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			break
		}
		h.dispatch(cl, env)
	}
	h.drop(cl)
}

func (h *Hub) dispatch(cl *client, env Envelope) {
	switch env.Event {
	case EventJoinRoom:
		var p joinPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.RoomCode == "" || p.ParticipantID == "" {
			cl.sendError("invalid join-room payload")
			return
		}
		h.register(cl, p.RoomCode, p.ParticipantID)
		h.coord.Join(p.RoomCode, p.ParticipantID, p.DisplayName)

	case EventLeaveGame:
		p, ok := h.identify(cl, env.Data)
		if !ok {
			return
		}
		h.coord.Leave(p.RoomCode, p.ParticipantID)
		h.unregister(cl)

	case EventMakeMove:
		var p movePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			cl.sendError("invalid make-move payload")
			return
		}
		if !h.known(cl) {
			cl.sendError("join a room first")
			return
		}
		if err := h.coord.Move(p.RoomCode, p.ParticipantID, p.Move); err != nil {
			cl.sendError(err.Error())
		}

	case EventRequestRematch:
		if p, ok := h.identify(cl, env.Data); ok {
			if err := h.coord.RequestRematch(p.RoomCode, p.ParticipantID); err != nil {
				cl.sendError(err.Error())
			}
		}

	case EventAcceptRematch:
		if p, ok := h.identify(cl, env.Data); ok {
			if err := h.coord.AcceptRematch(p.RoomCode, p.ParticipantID); err != nil {
				cl.sendError(err.Error())
			}
		}

	case EventRejectRematch:
		if p, ok := h.identify(cl, env.Data); ok {
			if err := h.coord.RejectRematch(p.RoomCode, p.ParticipantID); err != nil {
				cl.sendError(err.Error())
			}
		}

	default:
		log.Printf("ws: unknown event %q", env.Event)
		cl.sendError("unknown event")
	}
}

// identify decodes a room payload and rejects events from connections that
// never joined a room.
func (h *Hub) identify(cl *client, data json.RawMessage) (roomPayload, bool) {
	var p roomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomCode == "" || p.ParticipantID == "" {
		cl.sendError("invalid payload")
		return p, false
	}
	if !h.known(cl) {
		cl.sendError("join a room first")
		return p, false
	}
	return p, true
}

func (h *Hub) known(cl *client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return cl.roomCode != ""
}

// register adds the connection to the room's conn set before the join is
// applied, so the resulting broadcast reaches the joiner too. A connection
// switching rooms leaves its previous one first.
func (h *Hub) register(cl *client, roomCode, participantID string) {
	var prevRoom, prevID string

	h.mu.Lock()
	if cl.roomCode != "" && cl.roomCode != roomCode {
		prevRoom, prevID = cl.roomCode, cl.participantID
		delete(h.rooms[cl.roomCode], cl)
		if len(h.rooms[cl.roomCode]) == 0 {
			delete(h.rooms, cl.roomCode)
		}
	}
	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[*client]struct{})
	}
	h.rooms[roomCode][cl] = struct{}{}
	cl.roomCode = roomCode
	cl.participantID = participantID
	h.mu.Unlock()

	if prevRoom != "" {
		h.coord.Leave(prevRoom, prevID)
	}
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cl.roomCode == "" {
		return
	}
	delete(h.rooms[cl.roomCode], cl)
	if len(h.rooms[cl.roomCode]) == 0 {
		delete(h.rooms, cl.roomCode)
	}
	cl.roomCode = ""
	cl.participantID = ""
}

// drop handles a transport-level disconnect: synthesize a leave through
// the same coordinator path as an explicit one, then forget the conn.
func (h *Hub) drop(cl *client) {
	h.mu.RLock()
	roomCode, participantID := cl.roomCode, cl.participantID
	h.mu.RUnlock()

	if roomCode != "" {
		h.coord.Leave(roomCode, participantID)
	}
	h.unregister(cl)
	_ = cl.conn.Close()
	log.Printf("ws: connection %s closed", cl.conn.RemoteAddr())
}

// Broadcast implements room.Broadcaster for every connection in the room.
func (h *Hub) Broadcast(roomCode, event string, data interface{}) {
	for _, cl := range h.clients(roomCode, "") {
		cl.send(event, data)
	}
}

// SendTo implements room.Broadcaster for one participant's connections.
func (h *Hub) SendTo(roomCode, participantID, event string, data interface{}) {
	for _, cl := range h.clients(roomCode, participantID) {
		cl.send(event, data)
	}
}

func (h *Hub) clients(roomCode, participantID string) []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set, ok := h.rooms[roomCode]
	if !ok {
		return nil
	}
	out := make([]*client, 0, len(set))
	for cl := range set {
		if participantID == "" || cl.participantID == participantID {
			out = append(out, cl)
		}
	}
	return out
}
