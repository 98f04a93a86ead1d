package http

// CreateGameRequest is the payload for POST /api/games/create.
type CreateGameRequest struct {
	PlayerID    string `json:"playerId" binding:"required"`
	TimeControl int    `json:"timeControl"`
}

// JoinGameRequest is the payload for POST /api/games/join.
type JoinGameRequest struct {
	GameCode string `json:"gameCode" binding:"required"`
	PlayerID string `json:"playerId" binding:"required"`
}

// RandomMatchRequest is the payload for POST /api/games/random-match.
type RandomMatchRequest struct {
	PlayerID    string `json:"playerId" binding:"required"`
	TimeControl int    `json:"timeControl"`
}

// EndGameRequest is the payload for POST /api/games/end. Winner is
// "white", "black" or "draw".
type EndGameRequest struct {
	GameCode string `json:"gameCode" binding:"required"`
	Winner   string `json:"winner" binding:"required"`
}

// RegisterRequest is the payload for POST /api/players/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the payload for POST /api/players/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdatePointsRequest is the payload for PUT /api/players/:id/points.
type UpdatePointsRequest struct {
	Points int `json:"points" binding:"required"`
}
