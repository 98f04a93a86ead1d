package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mukeshkrmukhiya/Chess-Backend/internal/game"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/store"
)

// @Summary Create a game
// @Description Persists an open game for the creator and returns its code. The game is deleted if nobody joins within the expiry window.
// @Tags Games
// @Accept json
// @Produce json
// @Param request body CreateGameRequest true "Creator and time control"
// @Success 201 {object} map[string]interface{}
// @Router /api/games/create [post]
func CreateGameHandler(gm *game.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGameRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "playerId required"})
			return
		}
		code, username, err := gm.CreateGame(req.PlayerID, req.TimeControl)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Player not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create game"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":  "Game created successfully",
			"gameCode": code,
			"username": username,
		})
	}
}

// @Summary Join a game
// @Description Fills the black seat of an open game. A player already in the game gets the current record back.
// @Tags Games
// @Accept json
// @Produce json
// @Param request body JoinGameRequest true "Game code and player"
// @Success 200 {object} game.Info
// @Router /api/games/join [post]
func JoinGameHandler(gm *game.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinGameRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "gameCode and playerId required"})
			return
		}
		info, err := gm.JoinGame(req.GameCode, req.PlayerID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Game or player not found"})
		case errors.Is(err, store.ErrGameFull):
			c.JSON(http.StatusConflict, gin.H{"message": "Game is already full"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join game"})
		default:
			c.JSON(http.StatusOK, info)
		}
	}
}

// @Summary Random match
// @Description Joins a waiting open game with the same time control, or creates one.
// @Tags Games
// @Accept json
// @Produce json
// @Param request body RandomMatchRequest true "Player and time control"
// @Success 200 {object} map[string]interface{}
// @Router /api/games/random-match [post]
func RandomMatchHandler(gm *game.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RandomMatchRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "playerId required"})
			return
		}
		code, color, err := gm.RandomMatch(req.PlayerID, req.TimeControl)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Player not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"gameCode": code, "color": color})
	}
}

// @Summary Get game info
// @Description Read-only snapshot of a game record, with player usernames.
// @Tags Games
// @Produce json
// @Param gameCode path string true "Game code"
// @Success 200 {object} game.Info
// @Router /api/games/{gameCode} [get]
func GameInfoHandler(gm *game.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := gm.GetGameInfo(c.Param("gameCode"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

// @Summary End a game
// @Description Marks the record finished and settles both players' points and history.
// @Tags Games
// @Accept json
// @Produce json
// @Param request body EndGameRequest true "Game code and winner"
// @Success 200 {object} map[string]interface{}
// @Router /api/games/end [post]
func EndGameHandler(gm *game.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EndGameRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "gameCode and winner required"})
			return
		}
		err := gm.EndGame(req.GameCode, req.Winner)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to end game"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Game ended successfully"})
	}
}
