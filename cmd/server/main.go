package main

import (
	"log"

	httpapi "github.com/mukeshkrmukhiya/Chess-Backend/internal/api/http"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/api/ws"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/auth"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/config"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/game"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/room"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/store"

	// swagger docs
	_ "github.com/mukeshkrmukhiya/Chess-Backend/docs"
)

// @title Chess Backend API
// @version 1.0
// @description Multiplayer chess session relay: game codes, live rooms, player accounts.
// @contact.name Backend Team
// @BasePath /
func main() {
	cfg := config.Load()

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	registry := room.NewRegistry()
	hub := ws.NewHub(cfg.ClientOrigin)
	coord := room.NewCoordinator(registry, hub)
	hub.SetCoordinator(coord)

	gm := game.NewManager(db, db, cfg.RoomCodeLen, cfg.OpenGameTTL)
	authSvc := auth.NewService(db, cfg.JWTSecret)

	r := httpapi.SetupRouter(gm, db, authSvc, hub, cfg.ClientOrigin)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
