package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service manages account lifecycle and profile synchronization.
type Service struct {
	repo Repository
}

// NewService creates a new account service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates an account from credentials. The password is hashed with
// bcrypt before it touches the store; the plain form is never persisted.
func (s *Service) Register(ctx context.Context, creds Credentials) (Account, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return Account{}, ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	now := time.Now().UTC()
	acc := Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, acc); err != nil {
		return Account{}, err
	}

	return acc, nil
}

// Authenticate verifies credentials against the stored hash.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (Account, error) {
	acc, err := s.repo.FindByEmail(ctx, strings.TrimSpace(creds.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(creds.Password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}

	return acc, nil
}

// Get returns the account record for the authenticated subject.
func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	return s.repo.FindByID(ctx, id)
}

// ReplaceProfile performs the wholesale last-write-wins profile update. The
// caller must submit the full profile object; omitted optional fields are
// cleared, not preserved.
func (s *Service) ReplaceProfile(ctx context.Context, id string, data UserData) (Account, error) {
	if data.Profile == nil {
		return Account{}, errors.New("profile data required")
	}
	return s.repo.ReplaceProfile(ctx, id, data)
}
