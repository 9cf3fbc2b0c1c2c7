// Package auth registers users and checks their passwords.
package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	maxPasswordBytes  = 72
)

var (
	ErrInvalidUsername    = errors.New("username must be 3-32 characters of letters, digits, '.', '_' or '-'")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)

// Service checks credentials against a CredentialStore
type Service struct {
	store   interfaces.CredentialStore
	cost    int
	compare func(hash, password []byte) error

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(store interfaces.CredentialStore) *Service {
	return &Service{store: store, cost: bcrypt.DefaultCost, compare: bcrypt.CompareHashAndPassword}
}

// dummy returns a hash of the service's cost that no password matches. Unknown
// users are checked against it so both login failures cost one bcrypt compare.
func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("finance-assistant/no-such-user"), s.cost)
	})
	return s.dummyHash
}

// Register validates the form, stores a bcrypt hash and returns the normalized username
func (s *Service) Register(ctx context.Context, username, password, confirm string) (string, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return "", ErrInvalidUsername
	}
	if len(password) < MinPasswordLength {
		return "", ErrWeakPassword
	}
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	if password != confirm {
		return "", ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}

	if err := s.store.CreateUser(ctx, username, string(hash)); err != nil {
		if errors.Is(err, ErrUserExists) {
			logger.Auth(ctx, username, "register_rejected", "reason", "exists")
		}
		return "", err
	}

	logger.Auth(ctx, username, "register")
	return username, nil
}

// Login returns ErrInvalidCredentials for both unknown users and wrong passwords
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	hash, err := s.store.PasswordHash(ctx, username)
	if errors.Is(err, ErrUnknownUser) {
		s.compare(s.dummy(), []byte(password))
		logger.Auth(ctx, username, "login_failed", "reason", "unknown_user")
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := s.compare([]byte(hash), []byte(password)); err != nil {
		logger.Auth(ctx, username, "login_failed", "reason", "bad_password")
		return "", ErrInvalidCredentials
	}

	logger.Auth(ctx, username, "login")
	return username, nil
}

// IsUserError reports whether err is a form validation or credential failure to show inline
func IsUserError(err error) bool {
	for _, target := range []error{ErrInvalidUsername, ErrWeakPassword, ErrPasswordTooLong, ErrPasswordMismatch, ErrUserExists, ErrInvalidCredentials} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
