package store

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrGameFull     = errors.New("game is already full")
	ErrPlayerExists = errors.New("player already exists")
)

// Game statuses. A game is open until the second seat fills, active while
// both seats are taken and finished once an outcome is reported.
const (
	StatusOpen     = "open"
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Outcomes recorded in a player's game history.
const (
	OutcomeWin  = "win"
	OutcomeLose = "lose"
	OutcomeDraw = "draw"
)

type Player struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Points    int       `db:"points" json:"points"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Game struct {
	GameCode    string    `db:"game_code" json:"gameCode"`
	WhiteID     string    `db:"white_id" json:"playerWhite"`
	BlackID     string    `db:"black_id" json:"playerBlack,omitempty"`
	TimeControl int       `db:"time_control" json:"timeControl"`
	Status      string    `db:"status" json:"status"`
	Winner      string    `db:"winner" json:"winner,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// GameRecord is one row of a player's finished-game history.
type GameRecord struct {
	ID       int64     `db:"id" json:"-"`
	PlayerID string    `db:"player_id" json:"-"`
	GameCode string    `db:"game_code" json:"gameCode"`
	Opponent string    `db:"opponent" json:"opponent"`
	Outcome  string    `db:"outcome" json:"outcome"`
	Color    string    `db:"color" json:"color"`
	Date     time.Time `db:"date" json:"date"`
}

type PlayerStore interface {
	CreatePlayer(p *Player) error
	GetPlayer(id string) (*Player, error)
	GetPlayerByEmail(email string) (*Player, error)
	// AddPoints increments (or decrements) a player's points and returns
	// the new total.
	AddPoints(id string, delta int) (int, error)
	AppendHistory(rec *GameRecord) error
	History(playerID string) ([]GameRecord, error)
}

type GameStore interface {
	CreateGame(g *Game) error
	GetGame(code string) (*Game, error)
	// FillBlack seats playerID as black on an open game. It reports
	// whether the seat was taken, atomically with respect to a concurrent
	// expiry delete on the same code.
	FillBlack(code, playerID string) (bool, error)
	// FindOpenGame returns an open game with the given time control
	// created after notBefore, if any.
	FindOpenGame(timeControl int, notBefore time.Time) (*Game, error)
	FinishGame(code, winner string) error
	// DeleteIfOpen removes the game only if no second player has joined.
	// It reports whether a row was deleted.
	DeleteIfOpen(code string) (bool, error)
}
