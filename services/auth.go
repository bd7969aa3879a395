package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/database"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/libs"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/model"
)

const minPasswordLength = 6

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserSummary `json:"user"`
}

type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthService struct {
	store     database.Store
	tokens    *libs.Tokens
	dbTimeout time.Duration
	now       func() time.Time
}

func NewAuthService(store database.Store, tokens *libs.Tokens, dbTimeout time.Duration) *AuthService {
	return &AuthService{store: store, tokens: tokens, dbTimeout: dbTimeout, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(name, email, password string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(name)); n < 2 || n > 50 {
		return fmt.Errorf("%w: name must be 2-50 characters", ErrValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	return nil
}

// Register creates an account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	_, err := s.store.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, database.ErrNotFound):
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hashed, err := libs.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:           strings.TrimSpace(name),
		Email:          email,
		HashedPassword: hashed,
		CreatedAt:      s.now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.store.CreateUser(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.signIn(user)
}

// Login returns ErrInvalidCredentials for both unknown emails and wrong
// passwords.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	user, err := s.store.FindUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !libs.CheckPasswordHash(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	return s.signIn(user)
}

// Me looks up the token's owner. A deleted or unknown user is ErrNotFound,
// not an auth failure.
func (s *AuthService) Me(ctx context.Context, userID string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	user, err := s.store.FindUserByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &Profile{ID: user.ID, Name: user.Name, Email: user.Email, CreatedAt: user.CreatedAt}, nil
}

func (s *AuthService) signIn(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateJWT(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{
		AccessToken: token,
		TokenType:   "bearer",
		User:        UserSummary{ID: user.ID, Name: user.Name, Email: user.Email},
	}, nil
}
