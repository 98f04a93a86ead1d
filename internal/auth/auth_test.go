package auth

import (
	"errors"
	"testing"

	"github.com/mukeshkrmukhiya/Chess-Backend/internal/store"
)

func newTestService() (*Service, *store.MemoryStore) {
	mem := store.NewMemoryStore()
	return NewService(mem, "test-secret"), mem
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()

	p, token, err := svc.Register("alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if p.Points != 700 {
		t.Errorf("starting points = %d, want 700", p.Points)
	}
	if p.Password == "hunter22" {
		t.Error("password stored in plaintext")
	}
	if token == "" {
		t.Error("no token issued")
	}

	if _, _, err := svc.Register("alice", "other@example.com", "hunter22"); !errors.Is(err, store.ErrPlayerExists) {
		t.Errorf("duplicate username err = %v, want ErrPlayerExists", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	reg, _, err := svc.Register("alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	p, token, err := svc.Login("alice@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != reg.ID || token == "" {
		t.Errorf("login returned %+v, token %q", p, token)
	}

	if _, _, err := svc.Login("alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, _, err := svc.Login("nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}
}

func TestVerify(t *testing.T) {
	svc, _ := newTestService()
	p, token, err := svc.Register("alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	id, err := svc.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if id != p.ID {
		t.Errorf("verified subject = %q, want %q", id, p.ID)
	}

	if _, err := svc.Verify("not-a-token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("garbage token err = %v", err)
	}

	// Token signed with a different secret must not verify.
	other := NewService(store.NewMemoryStore(), "other-secret")
	otherTok, err := other.issue(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Verify(otherTok); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("cross-secret token err = %v", err)
	}
}
