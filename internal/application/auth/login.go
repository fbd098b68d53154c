package auth

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/validation"
)

// Login authenticates an email/password pair and issues an access token.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)

	if email == "" {
		return LoginResult{}, domain.ErrMissingField("email")
	}
	if !validation.IsEmail(email) {
		return LoginResult{}, domain.ErrInvalidField("email", "invalid format")
	}
	if password == "" {
		return LoginResult{}, domain.ErrMissingField("password")
	}
	if len(password) > domain.MaxPasswordBytes {
		return LoginResult{}, domain.ErrPasswordTooLong()
	}

	a, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "account_not_found") {
			s.burnCompare(ctx, password)
			return LoginResult{}, domain.ErrInvalidCredentials()
		}
		return LoginResult{}, err
	}

	if err := s.hasher.Compare(ctx, a.PasswordHash, password); err != nil {
		if ctx.Err() != nil {
			return LoginResult{}, domain.ErrInternal(ctx.Err())
		}
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	tok, err := s.issueToken(a.ID, a.Role)
	if err != nil {
		return LoginResult{}, err
	}

	s.audit("account_logged_in", map[string]string{"account_id": a.ID})

	return LoginResult{Token: tok, Profile: a.ProfileView()}, nil
}
