package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTPAddr is the listen address, e.g. ":5000".
	HTTPAddr string
	// ClientOrigin is the allowed browser origin for CORS and websocket
	// upgrades. "*" allows any origin.
	ClientOrigin string
	// JWTSecret signs player tokens.
	JWTSecret string
	// DBPath is the sqlite database file.
	DBPath string
	// OpenGameTTL is how long a created game waits for a second player
	// before the durable record is deleted.
	OpenGameTTL time.Duration
	// RoomCodeLen is the length of generated game codes.
	RoomCodeLen int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		HTTPAddr:     ":" + getenv("PORT", "5000"),
		ClientOrigin: getenv("CLIENT_ORIGIN", "*"),
		JWTSecret:    getenv("JWT_SECRET", "dev-secret"),
		DBPath:       getenv("DB_PATH", "chess.db"),
		OpenGameTTL:  getenvDuration("OPEN_GAME_TTL", 5*time.Minute),
		RoomCodeLen:  getenvInt("ROOM_CODE_LEN", 6),
	}
}
