package ws

import "encoding/json"

// Envelope frames every message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound event names.
const (
	EventJoinRoom       = "join-room"
	EventLeaveGame      = "leave-game"
	EventMakeMove       = "make-move"
	EventRequestRematch = "request-rematch"
	EventAcceptRematch  = "accept-rematch"
	EventRejectRematch  = "reject-rematch"
)

type joinPayload struct {
	RoomCode      string `json:"roomCode"`
	ParticipantID string `json:"participantId"`
	DisplayName   string `json:"displayName"`
}

type roomPayload struct {
	RoomCode      string `json:"roomCode"`
	ParticipantID string `json:"participantId"`
}

type movePayload struct {
	RoomCode      string          `json:"roomCode"`
	Move          json.RawMessage `json:"move"`
	ParticipantID string          `json:"participantId"`
}
