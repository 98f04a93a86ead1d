package room

import "sync"

// Color is the side a participant plays in a room.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Participant is a connection's identity within one room. It lives only as
// long as the room does.
type Participant struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Color    Color  `json:"color"`
}

// Room pairs up to two participants around one ongoing game. All mutation
// goes through the Coordinator while holding mu; the gateway only reads
// broadcast snapshots.
type Room struct {
	Code string

	mu           sync.Mutex
	participants []Participant
	turn         Color
	// closed is set when the last participant leaves, so a Join racing the
	// removal can detect the stale pointer and retry against the registry.
	closed bool
}

func newRoom(code string) *Room {
	return &Room{Code: code, turn: White}
}

// State is the broadcast snapshot of a room.
type State struct {
	Participants []Participant `json:"participants"`
	Turn         Color         `json:"turn"`
}

// state snapshots the room. Caller must hold mu.
func (r *Room) state() State {
	ps := make([]Participant, len(r.participants))
	copy(ps, r.participants)
	return State{Participants: ps, Turn: r.turn}
}

// find returns the participant with the given identity. Caller must hold mu.
func (r *Room) find(participantID string) (Participant, bool) {
	for _, p := range r.participants {
		if p.ID == participantID {
			return p, true
		}
	}
	return Participant{}, false
}

// other returns the participant that is not the given identity. Caller must
// hold mu.
func (r *Room) other(participantID string) (Participant, bool) {
	for _, p := range r.participants {
		if p.ID != participantID {
			return p, true
		}
	}
	return Participant{}, false
}
