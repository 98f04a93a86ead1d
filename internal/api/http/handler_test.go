package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mukeshkrmukhiya/Chess-Backend/internal/api/ws"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/auth"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/game"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/room"
	"github.com/mukeshkrmukhiya/Chess-Backend/internal/store"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	mem := store.NewMemoryStore()
	registry := room.NewRegistry()
	hub := ws.NewHub("*")
	hub.SetCoordinator(room.NewCoordinator(registry, hub))

	gm := game.NewManager(mem, mem, 6, time.Minute)
	authSvc := auth.NewService(mem, "test-secret")

	return SetupRouter(gm, mem, authSvc, hub, "*")
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("response %q is not JSON: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func register(t *testing.T, r *gin.Engine, username string) (id, token string) {
	t.Helper()
	w, resp := doJSON(t, r, "POST", "/api/players/register", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "hunter22",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %v", username, w.Code, resp)
	}
	player := resp["player"].(map[string]interface{})
	return player["id"].(string), resp["token"].(string)
}

func TestRegisterAndLogin(t *testing.T) {
	r := newTestRouter()
	id, token := register(t, r, "alice")
	if id == "" || token == "" {
		t.Fatal("registration returned empty id or token")
	}

	w, resp := doJSON(t, r, "POST", "/api/players/login", gin.H{
		"email":    "alice@example.com",
		"password": "hunter22",
	}, "")
	if w.Code != http.StatusOK || resp["id"] != id {
		t.Errorf("login: status %d, body %v", w.Code, resp)
	}

	w, _ = doJSON(t, r, "POST", "/api/players/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad login status = %d, want 400", w.Code)
	}

	w, _ = doJSON(t, r, "POST", "/api/players/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", w.Code)
	}
}

func TestGameLifecycle(t *testing.T) {
	r := newTestRouter()
	whiteID, whiteToken := register(t, r, "alice")
	blackID, _ := register(t, r, "bob")
	thirdID, _ := register(t, r, "carol")

	w, resp := doJSON(t, r, "POST", "/api/games/create", gin.H{
		"playerId": whiteID, "timeControl": 10,
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %v", w.Code, resp)
	}
	code := resp["gameCode"].(string)

	w, resp = doJSON(t, r, "POST", "/api/games/join", gin.H{
		"gameCode": code, "playerId": blackID,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("join: status %d, body %v", w.Code, resp)
	}
	if resp["whitePlayer"] != "alice" || resp["blackPlayer"] != "bob" {
		t.Errorf("join response: %v", resp)
	}

	w, _ = doJSON(t, r, "POST", "/api/games/join", gin.H{
		"gameCode": code, "playerId": thirdID,
	}, "")
	if w.Code != http.StatusConflict {
		t.Errorf("third join status = %d, want 409", w.Code)
	}

	w, resp = doJSON(t, r, "GET", "/api/games/"+code, nil, "")
	if w.Code != http.StatusOK || resp["status"] != store.StatusActive {
		t.Errorf("info: status %d, body %v", w.Code, resp)
	}

	w, resp = doJSON(t, r, "POST", "/api/games/end", gin.H{
		"gameCode": code, "winner": "white",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("end: status %d, body %v", w.Code, resp)
	}

	// Winner's profile reflects the payout and the history row.
	w, resp = doJSON(t, r, "GET", "/api/players/profile", nil, whiteToken)
	if w.Code != http.StatusOK {
		t.Fatalf("profile: status %d, body %v", w.Code, resp)
	}
	player := resp["player"].(map[string]interface{})
	if player["points"].(float64) != 710 {
		t.Errorf("winner points = %v, want 710", player["points"])
	}
	games := resp["games"].([]interface{})
	if len(games) != 1 {
		t.Fatalf("history length = %d, want 1", len(games))
	}
	if rec := games[0].(map[string]interface{}); rec["outcome"] != "win" || rec["opponent"] != "bob" {
		t.Errorf("history row: %v", rec)
	}
}

func TestGameNotFound(t *testing.T) {
	r := newTestRouter()
	id, _ := register(t, r, "alice")

	w, _ := doJSON(t, r, "GET", "/api/games/NOPE42", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("info status = %d, want 404", w.Code)
	}
	w, _ = doJSON(t, r, "POST", "/api/games/join", gin.H{"gameCode": "NOPE42", "playerId": id}, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("join status = %d, want 404", w.Code)
	}
	w, _ = doJSON(t, r, "POST", "/api/games/end", gin.H{"gameCode": "NOPE42", "winner": "white"}, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("end status = %d, want 404", w.Code)
	}
}

func TestRandomMatchEndpoint(t *testing.T) {
	r := newTestRouter()
	p1, _ := register(t, r, "alice")
	p2, _ := register(t, r, "bob")

	w, resp := doJSON(t, r, "POST", "/api/games/random-match", gin.H{"playerId": p1, "timeControl": 10}, "")
	if w.Code != http.StatusOK || resp["color"] != "white" {
		t.Fatalf("first match: status %d, body %v", w.Code, resp)
	}
	code := resp["gameCode"].(string)

	w, resp = doJSON(t, r, "POST", "/api/games/random-match", gin.H{"playerId": p2, "timeControl": 10}, "")
	if w.Code != http.StatusOK || resp["color"] != "black" || resp["gameCode"] != code {
		t.Errorf("second match: status %d, body %v", w.Code, resp)
	}
}

func TestUpdatePoints(t *testing.T) {
	r := newTestRouter()
	id, _ := register(t, r, "alice")

	w, resp := doJSON(t, r, "PUT", "/api/players/"+id+"/points", gin.H{"points": 25}, "")
	if w.Code != http.StatusOK || resp["points"].(float64) != 725 {
		t.Errorf("update points: status %d, body %v", w.Code, resp)
	}

	w, _ = doJSON(t, r, "PUT", "/api/players/ghost/points", gin.H{"points": 25}, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown player status = %d, want 404", w.Code)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	r := newTestRouter()
	register(t, r, "alice")

	w, _ := doJSON(t, r, "GET", "/api/players/profile", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}
	w, _ = doJSON(t, r, "GET", "/api/players/profile", nil, "garbage")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", w.Code)
	}
}
