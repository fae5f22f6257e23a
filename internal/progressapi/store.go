package progressapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"signup/pkg/platform/sentinel"
)

// Store persists accounts and sessions.
// Lookups of missing records return sentinel.ErrNotFound; creating an
// account that exists returns sentinel.ErrConflict.
type Store interface {
	CreateAccount(ctx context.Context, account Account) error
	FindAccount(ctx context.Context, email string) (*Account, error)
	// UpdateRegistration applies fn to the account's registration atomically.
	// Nothing is written when fn returns an error.
	UpdateRegistration(ctx context.Context, email string, fn func(*Registration) error) (Registration, error)
	SaveSession(ctx context.Context, session Session) error
	FindSession(ctx context.Context, id string) (*Session, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

type InMemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*Account
	sessions map[string]Session
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		accounts: make(map[string]*Account),
		sessions: make(map[string]Session),
	}
}

func (s *InMemoryStore) CreateAccount(_ context.Context, account Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeEmail(account.Email)
	if _, exists := s.accounts[key]; exists {
		return fmt.Errorf("account %s: %w", key, sentinel.ErrConflict)
	}
	account.Registration = account.Registration.clone()
	s.accounts[key] = &account
	return nil
}

func (s *InMemoryStore) FindAccount(_ context.Context, email string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[normalizeEmail(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *account
	out.Registration = account.Registration.clone()
	return &out, nil
}

func (s *InMemoryStore) UpdateRegistration(_ context.Context, email string, fn func(*Registration) error) (Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[normalizeEmail(email)]
	if !ok {
		return Registration{}, sentinel.ErrNotFound
	}
	reg := account.Registration.clone()
	if err := fn(&reg); err != nil {
		return Registration{}, err
	}
	account.Registration = reg
	return reg.clone(), nil
}

func (s *InMemoryStore) SaveSession(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *InMemoryStore) FindSession(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &session, nil
}

func (s *InMemoryStore) DeleteExpiredSessions(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}
