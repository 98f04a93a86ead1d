package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mukeshkrmukhiya/Chess-Backend/internal/auth"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/store"
)

// @Summary Register a player
// @Description Creates a player with a starting points balance and returns a token.
// @Tags Players
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Credentials"
// @Success 201 {object} map[string]interface{}
// @Router /api/players/register [post]
func RegisterHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill all fields"})
			return
		}
		p, token, err := svc.Register(req.Username, req.Email, req.Password)
		if errors.Is(err, store.ErrPlayerExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Player already exists"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"token":   token,
			"message": "Registration successful",
			"player": gin.H{
				"id":       p.ID,
				"username": p.Username,
				"email":    p.Email,
				"points":   p.Points,
			},
		})
	}
}

// @Summary Log a player in
// @Tags Players
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Router /api/players/login [post]
func LoginHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide email and password"})
			return
		}
		p, token, err := svc.Login(req.Email, req.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "id": p.ID, "message": "Login successful"})
	}
}

// @Summary Player profile
// @Description The authenticated player's record and finished-game history.
// @Tags Players
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/players/profile [get]
func ProfileHandler(players store.PlayerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.GetString(ctxPlayerID)
		p, err := players.GetPlayer(playerID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Player not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		history, err := players.History(playerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"player": p, "games": history})
	}
}

// @Summary Update player points
// @Description Increments (or decrements) a player's points.
// @Tags Players
// @Accept json
// @Produce json
// @Param id path string true "Player ID"
// @Param request body UpdatePointsRequest true "Point delta"
// @Success 200 {object} map[string]interface{}
// @Router /api/players/{id}/points [put]
func UpdatePointsHandler(players store.PlayerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdatePointsRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "points required"})
			return
		}
		points, err := players.AddPoints(c.Param("id"), req.Points)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Player not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Points updated", "points": points})
	}
}
