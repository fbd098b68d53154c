package auth

import (
	"context"
	"sync"
	"time"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

// dummyPassword is hashed once and compared against when a login names an
// unknown email, so both failure paths spend a bcrypt comparison.
const dummyPassword = "account-service/timing-equalizer"

type Service struct {
	store  AccountStore
	hasher PasswordHasher
	signer TokenSigner
	pub    EventPublisher

	tokenTTL    time.Duration
	rolePolicy  domain.RolePolicy
	defaultRole string

	audit func(action string, fields map[string]string)
	now   func() time.Time

	dummyMu   sync.Mutex
	dummyHash string
}

type Config struct {
	TokenTTL    time.Duration
	RolePolicy  domain.RolePolicy
	DefaultRole string
}

func NewService(
	store AccountStore,
	hasher PasswordHasher,
	signer TokenSigner,
	pub EventPublisher,
	cfg Config,
) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	policy := cfg.RolePolicy
	if policy == "" {
		policy = domain.RolePolicyFixed
	}
	if pub == nil {
		pub = noopPublisher{}
	}
	role := cfg.DefaultRole
	if role == "" {
		role = string(domain.RoleUser)
	}
	return &Service{
		store:  store,
		hasher: hasher,
		signer: signer,
		pub:    pub,

		tokenTTL:    ttl,
		rolePolicy:  policy,
		defaultRole: role,

		audit: func(string, map[string]string) {},
		now:   time.Now,
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// AccessToken is the common token output for handlers/DTO mapping.
type AccessToken struct {
	Token     string
	TokenType string // "Bearer"
	ExpiresIn int64  // seconds
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	ProfilePic string
}

type RegisterResult struct {
	Token   AccessToken
	Account domain.PublicAccount
}

type LoginResult struct {
	Token   AccessToken
	Profile domain.Profile
}

type DeleteResult struct {
	ID string
}

func (s *Service) issueToken(userID, role string) (AccessToken, error) {
	tok, err := s.signer.SignAccessToken(userID, role, s.tokenTTL)
	if err != nil {
		if domain.Is(err, "token_sign_failed") {
			return AccessToken{}, err
		}
		return AccessToken{}, domain.ErrTokenSignFailed(err)
	}
	return AccessToken{
		Token:     tok,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

// WarmUp builds the throwaway hash used for unknown-email logins so the first
// such login does not pay for a hash on top of the comparison.
func (s *Service) WarmUp(ctx context.Context) error {
	_, err := s.decoyHash(ctx)
	return err
}

// decoyHash returns the throwaway hash, building it on first use. A failed
// build is not remembered; the next caller tries again.
func (s *Service) decoyHash(ctx context.Context) (string, error) {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyHash != "" {
		return s.dummyHash, nil
	}
	h, err := s.hasher.Hash(ctx, dummyPassword)
	if err != nil {
		return "", err
	}
	s.dummyHash = h
	return h, nil
}

// burnCompare spends one bcrypt comparison against the throwaway hash.
// The hash is built detached from ctx: a caller that went away must not leave
// later callers without one.
func (s *Service) burnCompare(ctx context.Context, password string) {
	h, err := s.decoyHash(context.WithoutCancel(ctx))
	if err != nil {
		s.audit("decoy_hash_failed", map[string]string{"error": err.Error()})
		return
	}
	_ = s.hasher.Compare(ctx, h, password)
}

type noopPublisher struct{}

func (noopPublisher) PublishAccountRegistered(context.Context, AccountRegisteredEvent) error {
	return nil
}

func (noopPublisher) PublishAccountDeleted(context.Context, AccountDeletedEvent) error {
	return nil
}
