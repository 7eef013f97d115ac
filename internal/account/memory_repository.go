package account

import (
	"context"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.RWMutex
	byEmail  map[string]string
	accounts map[string]Account
}

// NewMemoryRepository builds an in-memory account store for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byEmail:  make(map[string]string),
		accounts: make(map[string]Account),
	}
}

func (r *memoryRepository) Create(_ context.Context, acc Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[acc.Email]; exists {
		return ErrDuplicateAccount
	}
	r.byEmail[acc.Email] = acc.ID
	r.accounts[acc.ID] = acc
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return Account{}, ErrNotFound
	}
	return r.accounts[id], nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acc, nil
}

func (r *memoryRepository) ReplaceProfile(_ context.Context, id string, data UserData) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	acc.FullName = data.FullName
	acc.Phone = data.Phone
	acc.Profile = *data.Profile
	acc.UpdatedAt = time.Now().UTC()
	r.accounts[id] = acc
	return acc, nil
}
