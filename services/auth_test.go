package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/libs"
)

func newAuthService(t *testing.T) (*AuthService, *libs.Tokens) {
	t.Helper()
	tokens := libs.NewTokens("test-secret", time.Hour)
	return NewAuthService(newTestStore(t), tokens, time.Second), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tokens := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Ada Lovelace", "Ada@Example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.TokenType != "bearer" || reg.User.Email != "ada@example.com" || reg.User.ID == "" {
		t.Fatalf("reg=%+v", reg)
	}
	uid, err := tokens.Verify(reg.AccessToken)
	if err != nil || uid != reg.User.ID {
		t.Fatalf("Verify: uid=%q err=%v", uid, err)
	}

	login, err := svc.Login(ctx, "  ADA@example.com ", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Errorf("login user=%+v", login.User)
	}

	me, err := svc.Me(ctx, reg.User.ID)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.Name != "Ada Lovelace" || me.CreatedAt.IsZero() {
		t.Errorf("me=%+v", me)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(ctx, "Other Ada", "ADA@example.com", "secret2")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("err=%v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	cases := []struct {
		name, user, email, password string
	}{
		{"short name", "A", "a@example.com", "secret1"},
		{"long name", strings.Repeat("n", 51), "a@example.com", "secret1"},
		{"bad email", "Ada", "not-an-email", "secret1"},
		{"display name email", "Ada", "Ada <ada@example.com>", "secret1"},
		{"short password", "Ada", "a@example.com", "12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.user, tc.email, tc.password)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err=%v", err)
			}
		})
	}
}

func TestLoginUniformError(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}

	_, wrongPassword := svc.Login(ctx, "ada@example.com", "nope123")
	_, unknownEmail := svc.Login(ctx, "bob@example.com", "secret1")
	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("wrong password=%v, unknown email=%v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Errorf("messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestMeUnknownUser(t *testing.T) {
	svc, _ := newAuthService(t)
	if _, err := svc.Me(context.Background(), "01HZZZZZZZZZZZZZZZZZZZZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
}
