package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

type AccountStore struct {
	mu            sync.RWMutex
	byID          map[string]domain.Account
	byEmail       map[string]string // normalized email -> account id
	caseSensitive bool
	now           func() time.Time
}

func NewAccountStore(caseSensitive bool) *AccountStore {
	return &AccountStore{
		byID:          make(map[string]domain.Account),
		byEmail:       make(map[string]string),
		caseSensitive: caseSensitive,
		now:           time.Now,
	}
}

func (s *AccountStore) key(email string) string {
	return domain.NormalizeEmail(email, s.caseSensitive)
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[s.key(email)]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return s.byID[id], nil
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (s *AccountStore) ListAll(ctx context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Account, 0, len(s.byID))
	for _, a := range s.byID {
		out = append(out, a)
	}
	return out, nil
}

// Create checks uniqueness and inserts under one write lock, so of two racing
// creates with the same email exactly one wins.
func (s *AccountStore) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.key(a.Email)
	if _, exists := s.byEmail[k]; exists {
		return domain.Account{}, domain.ErrEmailAlreadyExists()
	}

	a.ID = uuid.NewString()
	a.Email = k
	a.CreatedAt = s.now().UTC()

	s.byID[a.ID] = a
	s.byEmail[k] = a.ID
	return a, nil
}

func (s *AccountStore) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	delete(s.byID, id)
	delete(s.byEmail, s.key(a.Email))
	return nil
}

// Ping always succeeds; it lets the readiness check treat every store alike.
func (s *AccountStore) Ping(ctx context.Context) error { return nil }
