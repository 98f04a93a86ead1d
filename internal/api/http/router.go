package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mukeshkrmukhiya/Chess-Backend/internal/api/ws"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/auth"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/game"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/store"
)

// SetupRouter wires the REST surface and the websocket gateway.
func SetupRouter(gm *game.Manager, players store.PlayerStore, authSvc *auth.Service, hub *ws.Hub, clientOrigin string) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if clientOrigin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{clientOrigin}
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// Live relay connection
	r.GET("/ws", hub.HandleWS)

	games := r.Group("/api/games")
	{
		games.POST("/create", CreateGameHandler(gm))
		games.POST("/join", JoinGameHandler(gm))
		games.POST("/random-match", RandomMatchHandler(gm))
		games.POST("/end", EndGameHandler(gm))
		games.GET("/:gameCode", GameInfoHandler(gm))
	}

	playersGroup := r.Group("/api/players")
	{
		playersGroup.POST("/register", RegisterHandler(authSvc))
		playersGroup.POST("/login", LoginHandler(authSvc))
		playersGroup.PUT("/:id/points", UpdatePointsHandler(players))
		playersGroup.GET("/profile", AuthRequired(authSvc), ProfileHandler(players))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
