// Package auth issues and verifies player tokens and owns password
// hashing. It is peripheral bookkeeping over the player store; nothing on
// the real-time move path consults it.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mukeshkrmukhiya/Chess-Backend/internal/store"
)

const (
	tokenTTL = 7 * 24 * time.Hour
	// Every new player starts with this many points.
	startingPoints = 700
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	players store.PlayerStore
	secret  []byte
}

func NewService(players store.PlayerStore, secret string) *Service {
	return &Service{players: players, secret: []byte(secret)}
}

// Register creates a player with a hashed password and returns the player
// and a signed token. Duplicate username or email yields
// store.ErrPlayerExists.
func (s *Service) Register(username, email, password string) (*store.Player, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	p := &store.Player{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  string(hash),
		Points:    startingPoints,
		CreatedAt: time.Now(),
	}
	if err := s.players.CreatePlayer(p); err != nil {
		return nil, "", err
	}
	token, err := s.issue(p.ID)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

// Login checks the password against the stored hash and returns the player
// and a fresh token. Unknown email and wrong password are indistinguishable
// to the caller.
func (s *Service) Login(email, password string) (*store.Player, string, error) {
	p, err := s.players.GetPlayerByEmail(email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issue(p.ID)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

func (s *Service) issue(playerID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   playerID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the player ID it was issued for.
func (s *Service) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidCredentials
	}
	return claims.Subject, nil
}
