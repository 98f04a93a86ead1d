package room

import (
	"encoding/json"
	"errors"
	"log"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("participant not found")
)

// Coordinator applies join/leave/move/rematch events to rooms and decides
// what gets broadcast. It is the only writer of room state; per-room
// serialization comes from the room mutex, so events on different rooms
// run fully in parallel.
//
// Move payloads are opaque: the coordinator relays them without any
// legality check. Turn ownership is the only thing enforced here.
type Coordinator struct {
	registry *Registry
	b        Broadcaster
}

func NewCoordinator(registry *Registry, b Broadcaster) *Coordinator {
	return &Coordinator{registry: registry, b: b}
}

// Join adds a participant to the room with the given code, creating the
// room if it does not exist. The first joiner plays white and white moves
// first; the second joiner takes the remaining color. A join on a room the
// participant is already in, or on a full room, mutates nothing and only
// delivers the current state back to the requester.
func (c *Coordinator) Join(code, participantID, username string) {
	for {
		r := c.registry.GetOrCreate(code)
		r.mu.Lock()
		if r.closed {
			// Lost a race with the last leave; the pointer is stale.
			r.mu.Unlock()
			continue
		}

		if _, ok := r.find(participantID); ok || len(r.participants) >= 2 {
			st := r.state()
			r.mu.Unlock()
			c.b.SendTo(code, participantID, "game-state", st)
			return
		}

		color := White
		if len(r.participants) == 1 {
			color = r.participants[0].Color.Opposite()
		}
		r.participants = append(r.participants, Participant{
			ID:       participantID,
			Username: username,
			Color:    color,
		})
		st := r.state()
		r.mu.Unlock()

		log.Printf("room %s: %s (%s) joined as %s", code, username, participantID, color)
		c.b.Broadcast(code, "game-state", st)
		return
	}
}

// Leave removes the participant from the room. It is idempotent: a
// disconnect-synthesized leave racing an explicit one removes the
// participant once and deletes the room once. When the room empties it is
// dropped from the registry.
func (c *Coordinator) Leave(code, participantID string) {
	r, ok := c.registry.Get(code)
	if !ok {
		return
	}
	r.mu.Lock()
	if _, ok := r.find(participantID); !ok {
		r.mu.Unlock()
		return
	}
	kept := r.participants[:0]
	for _, p := range r.participants {
		if p.ID != participantID {
			kept = append(kept, p)
		}
	}
	r.participants = kept

	if len(r.participants) == 0 {
		r.closed = true
		c.registry.Remove(code)
		r.mu.Unlock()
		log.Printf("room %s: empty, removed", code)
		return
	}
	st := r.state()
	r.mu.Unlock()

	c.b.Broadcast(code, "participant-left", map[string]interface{}{"participantId": participantID})
	c.b.Broadcast(code, "game-state", st)
}

// Move relays an opaque move payload. It is accepted only when the sender's
// color matches the room's current turn; on acceptance the turn flips and
// the payload is broadcast verbatim, followed by a fresh state broadcast.
// An out-of-turn move yields a single invalid-move notice to the sender.
func (c *Coordinator) Move(code, participantID string, move json.RawMessage) error {
	r, ok := c.registry.Get(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	p, ok := r.find(participantID)
	if !ok {
		r.mu.Unlock()
		return ErrParticipantNotFound
	}
	if p.Color != r.turn {
		r.mu.Unlock()
		c.b.SendTo(code, participantID, "invalid-move", map[string]interface{}{
			"message": "It's not your turn",
		})
		return nil
	}
	r.turn = r.turn.Opposite()
	turn := r.turn
	st := r.state()
	r.mu.Unlock()

	c.b.Broadcast(code, "move-made", map[string]interface{}{
		"move":          move,
		"participantId": participantID,
		"turn":          turn,
	})
	c.b.Broadcast(code, "game-state", st)
	return nil
}

// RequestRematch relays a rematch request to the other participant only.
func (c *Coordinator) RequestRematch(code, participantID string) error {
	r, ok := c.registry.Get(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	if _, ok := r.find(participantID); !ok {
		r.mu.Unlock()
		return ErrParticipantNotFound
	}
	other, hasOther := r.other(participantID)
	r.mu.Unlock()

	if hasOther {
		c.b.SendTo(code, other.ID, "rematch-requested", map[string]interface{}{
			"participantId": participantID,
		})
	}
	return nil
}

// AcceptRematch swaps every participant's color, resets the turn to white
// and broadcasts the fresh state.
func (c *Coordinator) AcceptRematch(code, participantID string) error {
	r, ok := c.registry.Get(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	if _, ok := r.find(participantID); !ok {
		r.mu.Unlock()
		return ErrParticipantNotFound
	}
	for i := range r.participants {
		r.participants[i].Color = r.participants[i].Color.Opposite()
	}
	r.turn = White
	st := r.state()
	r.mu.Unlock()

	log.Printf("room %s: rematch accepted, colors swapped", code)
	c.b.Broadcast(code, "rematch-accepted", nil)
	c.b.Broadcast(code, "game-state", st)
	return nil
}

// RejectRematch relays the rejection to the other participant (the one who
// asked for the rematch).
func (c *Coordinator) RejectRematch(code, participantID string) error {
	r, ok := c.registry.Get(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	if _, ok := r.find(participantID); !ok {
		r.mu.Unlock()
		return ErrParticipantNotFound
	}
	other, hasOther := r.other(participantID)
	r.mu.Unlock()

	if hasOther {
		c.b.SendTo(code, other.ID, "rematch-rejected", nil)
	}
	return nil
}

// State returns the current snapshot of a room, if it exists.
func (c *Coordinator) State(code string) (State, bool) {
	r, ok := c.registry.Get(code)
	if !ok {
		return State{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state(), true
}
