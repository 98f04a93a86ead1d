package store

import (
	"sync"
	"time"
)

// MemoryStore is an in-memory session store with the same contracts as the
// sqlite one. Tests run against it.
type MemoryStore struct {
	mu      sync.Mutex
	players map[string]*Player
	games   map[string]*Game
	history map[string][]GameRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players: map[string]*Player{},
		games:   map[string]*Game{},
		history: map[string][]GameRecord{},
	}
}

func (m *MemoryStore) CreatePlayer(p *Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.players {
		if existing.Username == p.Username || existing.Email == p.Email {
			return ErrPlayerExists
		}
	}
	cp := *p
	m.players[p.ID] = &cp
	return nil
}

func (m *MemoryStore) GetPlayer(id string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) GetPlayerByEmail(email string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) AddPoints(id string, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return 0, ErrNotFound
	}
	p.Points += delta
	return p.Points, nil
}

func (m *MemoryStore) AppendHistory(rec *GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[rec.PlayerID] = append(m.history[rec.PlayerID], *rec)
	return nil
}

func (m *MemoryStore) History(playerID string) ([]GameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := make([]GameRecord, len(m.history[playerID]))
	copy(recs, m.history[playerID])
	return recs, nil
}

func (m *MemoryStore) CreateGame(g *Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *g
	m.games[g.GameCode] = &cp
	return nil
}

func (m *MemoryStore) GetGame(code string) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *MemoryStore) FillBlack(code, playerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[code]
	if !ok || g.Status != StatusOpen || g.BlackID != "" {
		return false, nil
	}
	g.BlackID = playerID
	g.Status = StatusActive
	g.UpdatedAt = time.Now()
	return true, nil
}

func (m *MemoryStore) FindOpenGame(timeControl int, notBefore time.Time) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *Game
	for _, g := range m.games {
		if g.Status != StatusOpen || g.TimeControl != timeControl || g.CreatedAt.Before(notBefore) {
			continue
		}
		if best == nil || g.CreatedAt.Before(best.CreatedAt) {
			best = g
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (m *MemoryStore) FinishGame(code, winner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[code]
	if !ok {
		return ErrNotFound
	}
	g.Status = StatusFinished
	g.Winner = winner
	g.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) DeleteIfOpen(code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[code]
	if !ok || g.Status != StatusOpen {
		return false, nil
	}
	delete(m.games, code)
	return true, nil
}
