package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeStore struct {
	mu sync.Mutex

	byID    map[string]domain.Account
	byEmail map[string]string // email -> id
	nextID  int

	// injected errors (if set, method returns error)
	findByEmailErr error
	findByIDErr    error
	listErr        error
	createErr      error
	deleteErr      error

	findByEmailCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byID:    map[string]domain.Account{},
		byEmail: map[string]string{},
	}
}

func (f *fakeStore) put(a domain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[a.ID] = a
	f.byEmail[strings.ToLower(a.Email)] = a.ID
}

func (f *fakeStore) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.findByEmailCalls++
	if f.findByEmailErr != nil {
		return domain.Account{}, f.findByEmailErr
	}
	id, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return f.byID[id], nil
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findByIDErr != nil {
		return domain.Account{}, f.findByIDErr
	}
	a, ok := f.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound()
	}
	return a, nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Account, 0, len(f.byID))
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.Account{}, f.createErr
	}
	key := strings.ToLower(a.Email)
	if _, ok := f.byEmail[key]; ok {
		return domain.Account{}, domain.ErrEmailAlreadyExists()
	}
	f.nextID++
	a.ID = fmt.Sprintf("acc-%d", f.nextID)
	a.CreatedAt = time.Unix(1700000000, 0).UTC()
	f.byID[a.ID] = a
	f.byEmail[key] = a.ID
	return a, nil
}

func (f *fakeStore) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	a, ok := f.byID[id]
	if !ok {
		return domain.ErrAccountNotFound()
	}
	delete(f.byID, id)
	delete(f.byEmail, strings.ToLower(a.Email))
	return nil
}

type fakeHasher struct {
	mu           sync.Mutex
	hashFn       func(pw string) (string, error)
	compareFn    func(hash, pw string) error
	hashCalls    int
	compareCalls int

	// honourCtx makes both calls fail on a done context, like the bcrypt
	// hasher waiting for a slot.
	honourCtx       bool
	lastCompareHash string
}

func (h *fakeHasher) Hash(ctx context.Context, password string) (string, error) {
	h.mu.Lock()
	h.hashCalls++
	h.mu.Unlock()
	if h.honourCtx && ctx.Err() != nil {
		return "", ctx.Err()
	}
	if h.hashFn != nil {
		return h.hashFn(password)
	}
	return "hash:" + password, nil
}

func (h *fakeHasher) Compare(ctx context.Context, hash string, password string) error {
	h.mu.Lock()
	h.compareCalls++
	h.lastCompareHash = hash
	h.mu.Unlock()
	if h.honourCtx && ctx.Err() != nil {
		return ctx.Err()
	}
	if h.compareFn != nil {
		return h.compareFn(hash, password)
	}
	if hash == "hash:"+password {
		return nil
	}
	return errors.New("mismatch")
}

type fakeSigner struct {
	signFn  func(userID, role string, ttl time.Duration) (string, error)
	lastTTL time.Duration
}

func (s *fakeSigner) SignAccessToken(userID string, role string, ttl time.Duration) (string, error) {
	s.lastTTL = ttl
	if s.signFn != nil {
		return s.signFn(userID, role, ttl)
	}
	return fmt.Sprintf("jwt(%s,%s)", userID, role), nil
}

type fakePublisher struct {
	mu         sync.Mutex
	err        error
	registered []AccountRegisteredEvent
	deleted    []AccountDeletedEvent
}

func (p *fakePublisher) PublishAccountRegistered(ctx context.Context, evt AccountRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.registered = append(p.registered, evt)
	return nil
}

func (p *fakePublisher) PublishAccountDeleted(ctx context.Context, evt AccountDeletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.deleted = append(p.deleted, evt)
	return nil
}

type auditEntry struct {
	action string
	fields map[string]string
}

type testDeps struct {
	store  *fakeStore
	hasher *fakeHasher
	signer *fakeSigner
	pub    *fakePublisher

	mu     sync.Mutex
	audits []auditEntry
}

func (d *testDeps) actions() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.audits))
	for _, a := range d.audits {
		out = append(out, a.action)
	}
	return out
}

func newSvcForTest(t *testing.T, cfg Config) (*Service, *testDeps) {
	t.Helper()

	d := &testDeps{
		store:  newFakeStore(),
		hasher: &fakeHasher{},
		signer: &fakeSigner{},
		pub:    &fakePublisher{},
	}
	svc := NewService(d.store, d.hasher, d.signer, d.pub, cfg).
		WithAudit(func(action string, fields map[string]string) {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.audits = append(d.audits, auditEntry{action: action, fields: fields})
		})
	return svc, d
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}
