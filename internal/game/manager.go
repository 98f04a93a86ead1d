// Package game holds the request/response side of the session store: the
// durable player and game records mutated at create/join/end boundaries.
// It never touches the live room registry; the real-time move path is
// internal/room.
package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/mukeshkrmukhiya/Chess-Backend/internal/store"
)

const (
	defaultTimeControl = 10

	pointsWin     = 10
	pointsDraw    = 1
	pointsLossCut = 8
)

// Manager owns durable game lifecycle: creation with the unfilled-room
// expiry window, seat filling, matchmaking and outcome bookkeeping.
type Manager struct {
	players store.PlayerStore
	games   store.GameStore

	codeLen int
	openTTL time.Duration
}

func NewManager(players store.PlayerStore, games store.GameStore, codeLen int, openTTL time.Duration) *Manager {
	return &Manager{players: players, games: games, codeLen: codeLen, openTTL: openTTL}
}

// Info is a game record joined with the players' usernames.
type Info struct {
	store.Game
	WhitePlayer string `json:"whitePlayer,omitempty"`
	BlackPlayer string `json:"blackPlayer,omitempty"`
}

// CreateGame persists an open game for the creator (who plays white) and
// arms the expiry that deletes the record if nobody joins within the
// window. The delete is conditional on the game still being open, so a
// join landing exactly at expiry wins or loses atomically, never both.
func (m *Manager) CreateGame(playerID string, timeControl int) (string, string, error) {
	p, err := m.players.GetPlayer(playerID)
	if err != nil {
		return "", "", err
	}
	if timeControl <= 0 {
		timeControl = defaultTimeControl
	}

	code := randCode(m.codeLen)
	now := time.Now()
	g := &store.Game{
		GameCode:    code,
		WhiteID:     playerID,
		TimeControl: timeControl,
		Status:      store.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := m.games.CreateGame(g); err != nil {
		return "", "", fmt.Errorf("create game: %w", err)
	}
	m.armExpiry(code)

	log.Printf("game %s created by %s (%d min)", code, p.Username, timeControl)
	return code, p.Username, nil
}

func (m *Manager) armExpiry(code string) {
	time.AfterFunc(m.openTTL, func() {
		deleted, err := m.games.DeleteIfOpen(code)
		if err != nil {
			log.Printf("game %s: expiry check failed: %v", code, err)
			return
		}
		if deleted {
			log.Printf("game %s deleted, no second player joined in %s", code, m.openTTL)
		}
	})
}

// JoinGame fills the black seat of an open game. Joining a game the player
// is already part of returns the current record (rejoin); a third identity
// on a full game gets ErrGameFull.
func (m *Manager) JoinGame(code, playerID string) (*Info, error) {
	if _, err := m.players.GetPlayer(playerID); err != nil {
		return nil, err
	}
	seated, err := m.games.FillBlack(code, playerID)
	if err != nil {
		return nil, fmt.Errorf("join game: %w", err)
	}
	g, err := m.games.GetGame(code)
	if err != nil {
		return nil, err
	}
	if !seated && g.WhiteID != playerID && g.BlackID != playerID {
		return nil, store.ErrGameFull
	}
	return m.info(g)
}

// RandomMatch joins a recent open game with the same time control, or
// creates a new one when none is waiting. It returns the game code and the
// color the player got.
func (m *Manager) RandomMatch(playerID string, timeControl int) (string, string, error) {
	if timeControl <= 0 {
		timeControl = defaultTimeControl
	}
	g, err := m.games.FindOpenGame(timeControl, time.Now().Add(-m.openTTL))
	if err == nil && g.WhiteID != playerID {
		if seated, err := m.games.FillBlack(g.GameCode, playerID); err == nil && seated {
			return g.GameCode, "black", nil
		}
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", "", err
	}

	code, _, err := m.CreateGame(playerID, timeControl)
	if err != nil {
		return "", "", err
	}
	return code, "white", nil
}

// GetGameInfo returns a read-only snapshot of the record.
func (m *Manager) GetGameInfo(code string) (*Info, error) {
	g, err := m.games.GetGame(code)
	if err != nil {
		return nil, err
	}
	return m.info(g)
}

// EndGame marks the record finished and settles both players' history and
// points. winner is "white", "black" or "draw".
func (m *Manager) EndGame(code, winner string) error {
	g, err := m.games.GetGame(code)
	if err != nil {
		return err
	}
	if err := m.games.FinishGame(code, winner); err != nil {
		return err
	}

	white, err := m.players.GetPlayer(g.WhiteID)
	if err != nil {
		return fmt.Errorf("white player: %w", err)
	}
	black, err := m.players.GetPlayer(g.BlackID)
	if err != nil {
		return fmt.Errorf("black player: %w", err)
	}

	if err := m.settle(white, code, outcomeFor("white", winner), "white", black.Username); err != nil {
		return err
	}
	if err := m.settle(black, code, outcomeFor("black", winner), "black", white.Username); err != nil {
		return err
	}
	log.Printf("game %s finished, winner: %s", code, winner)
	return nil
}

func outcomeFor(color, winner string) string {
	switch winner {
	case color:
		return store.OutcomeWin
	case "draw", "":
		return store.OutcomeDraw
	default:
		return store.OutcomeLose
	}
}

func (m *Manager) settle(p *store.Player, code, outcome, color, opponent string) error {
	if err := m.players.AppendHistory(&store.GameRecord{
		PlayerID: p.ID,
		GameCode: code,
		Opponent: opponent,
		Outcome:  outcome,
		Color:    color,
		Date:     time.Now(),
	}); err != nil {
		return fmt.Errorf("history for %s: %w", p.Username, err)
	}

	var delta int
	switch outcome {
	case store.OutcomeWin:
		delta = pointsWin
	case store.OutcomeDraw:
		delta = pointsDraw
	case store.OutcomeLose:
		if p.Points >= pointsLossCut {
			delta = -pointsLossCut
		}
	}
	if delta == 0 {
		return nil
	}
	if _, err := m.players.AddPoints(p.ID, delta); err != nil {
		return fmt.Errorf("points for %s: %w", p.Username, err)
	}
	return nil
}

func (m *Manager) info(g *store.Game) (*Info, error) {
	out := &Info{Game: *g}
	if g.WhiteID != "" {
		if p, err := m.players.GetPlayer(g.WhiteID); err == nil {
			out.WhitePlayer = p.Username
		}
	}
	if g.BlackID != "" {
		if p, err := m.players.GetPlayer(g.BlackID); err == nil {
			out.BlackPlayer = p.Username
		}
	}
	return out, nil
}

// Alphabet avoids ambiguous characters so codes survive being read aloud.
const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return string(b)
}
