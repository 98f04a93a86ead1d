package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-gorp/gorp/v3"
	_ "github.com/mattn/go-sqlite3"
)

// SQLStore is the durable session store backed by sqlite. It implements
// both PlayerStore and GameStore.
type SQLStore struct {
	dbmap *gorp.DbMap
}

// Open opens (or creates) the sqlite database at path and maps the tables.
func Open(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return NewSQLStore(db)
}

func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	dbmap := &gorp.DbMap{Db: db, Dialect: gorp.SqliteDialect{}}

	t := dbmap.AddTableWithName(Player{}, "players").SetKeys(false, "ID")
	t.ColMap("Username").SetUnique(true)
	t.ColMap("Email").SetUnique(true)

	dbmap.AddTableWithName(Game{}, "games").SetKeys(false, "GameCode")
	dbmap.AddTableWithName(GameRecord{}, "player_games").SetKeys(true, "ID")

	if err := dbmap.CreateTablesIfNotExists(); err != nil {
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &SQLStore{dbmap: dbmap}, nil
}

func (s *SQLStore) Close() error {
	return s.dbmap.Db.Close()
}

func (s *SQLStore) CreatePlayer(p *Player) error {
	var n int64
	err := s.dbmap.SelectOne(&n,
		"select count(*) from players where username = ? or email = ?",
		p.Username, p.Email)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrPlayerExists
	}
	return s.dbmap.Insert(p)
}

func (s *SQLStore) GetPlayer(id string) (*Player, error) {
	var p Player
	err := s.dbmap.SelectOne(&p, "select * from players where id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLStore) GetPlayerByEmail(email string) (*Player, error) {
	var p Player
	err := s.dbmap.SelectOne(&p, "select * from players where email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLStore) AddPoints(id string, delta int) (int, error) {
	res, err := s.dbmap.Exec("update players set points = points + ? where id = ?", delta, id)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, ErrNotFound
	}
	var points int
	if err := s.dbmap.SelectOne(&points, "select points from players where id = ?", id); err != nil {
		return 0, err
	}
	return points, nil
}

func (s *SQLStore) AppendHistory(rec *GameRecord) error {
	return s.dbmap.Insert(rec)
}

func (s *SQLStore) History(playerID string) ([]GameRecord, error) {
	var recs []GameRecord
	_, err := s.dbmap.Select(&recs,
		"select * from player_games where player_id = ? order by date", playerID)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *SQLStore) CreateGame(g *Game) error {
	return s.dbmap.Insert(g)
}

func (s *SQLStore) GetGame(code string) (*Game, error) {
	var g Game
	err := s.dbmap.SelectOne(&g, "select * from games where game_code = ?", code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// FillBlack seats playerID on an open game. The conditional update is a
// single statement, so a join can never interleave with the expiry delete
// on the same code.
func (s *SQLStore) FillBlack(code, playerID string) (bool, error) {
	res, err := s.dbmap.Exec(
		"update games set black_id = ?, status = ?, updated_at = ? where game_code = ? and status = ? and black_id = ''",
		playerID, StatusActive, time.Now(), code, StatusOpen)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *SQLStore) FindOpenGame(timeControl int, notBefore time.Time) (*Game, error) {
	var g Game
	err := s.dbmap.SelectOne(&g,
		"select * from games where status = ? and time_control = ? and created_at >= ? order by created_at limit 1",
		StatusOpen, timeControl, notBefore)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *SQLStore) FinishGame(code, winner string) error {
	res, err := s.dbmap.Exec(
		"update games set status = ?, winner = ?, updated_at = ? where game_code = ?",
		StatusFinished, winner, time.Now(), code)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) DeleteIfOpen(code string) (bool, error) {
	res, err := s.dbmap.Exec(
		"delete from games where game_code = ? and status = ?", code, StatusOpen)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
