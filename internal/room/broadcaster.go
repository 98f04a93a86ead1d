package room

// Broadcaster delivers coordinator events to the connections of a room.
// The websocket hub implements it; tests substitute a recorder.
type Broadcaster interface {
	// Broadcast sends an event to every connection in the room.
	Broadcast(roomCode string, event string, data interface{})
	// SendTo sends an event only to the connections of one participant.
	SendTo(roomCode string, participantID string, event string, data interface{})
}
