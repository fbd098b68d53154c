package auth

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/validation"
)

// Register creates an account and issues its first access token.
// The returned account is the public projection; the hash never leaves here.
func (s *Service) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	if in.Password == "" {
		return RegisterResult{}, domain.ErrMissingField("password")
	}
	if in.Email == "" {
		return RegisterResult{}, domain.ErrMissingField("email")
	}
	if !validation.IsEmail(in.Email) {
		return RegisterResult{}, domain.ErrInvalidField("email", "invalid format")
	}
	if len(in.Password) > domain.MaxPasswordBytes {
		return RegisterResult{}, domain.ErrPasswordTooLong()
	}

	role, err := domain.ResolveRole(s.rolePolicy, s.defaultRole, in.Role)
	if err != nil {
		return RegisterResult{}, err
	}

	// Friendly pre-check; the store still has the final say on uniqueness.
	if _, err := s.store.FindByEmail(ctx, in.Email); err == nil {
		return RegisterResult{}, domain.ErrEmailAlreadyExists()
	} else if !domain.Is(err, "account_not_found") {
		return RegisterResult{}, err
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		if domain.Is(err, "hash_failed") {
			return RegisterResult{}, err
		}
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	created, err := s.store.Create(ctx, domain.Account{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		ProfilePic:   strings.TrimSpace(in.ProfilePic),
	})
	if err != nil {
		return RegisterResult{}, err
	}

	tok, err := s.issueToken(created.ID, created.Role)
	if err != nil {
		return RegisterResult{}, err
	}

	s.audit("account_registered", map[string]string{
		"account_id": created.ID,
		"role":       created.Role,
	})
	if err := s.pub.PublishAccountRegistered(ctx, AccountRegisteredEvent{
		AccountID: created.ID,
		Email:     created.Email,
		Role:      created.Role,
		At:        s.now().UTC(),
	}); err != nil {
		s.audit("publish_failed", map[string]string{
			"event":      "account.registered",
			"account_id": created.ID,
			"error":      err.Error(),
		})
	}

	return RegisterResult{Token: tok, Account: created.Public()}, nil
}
