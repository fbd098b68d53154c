package dto

import (
	"strings"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/validation"
)

type RegisterRequest struct {
	Name       string `json:"name" validate:"max=100"`
	Email      string `json:"email" validate:"max=254"`
	Password   string `json:"password"`
	Role       string `json:"role" validate:"max=32"`
	ProfilePic string `json:"profilePic" validate:"omitempty,url,max=2048"`
}

// Validate checks presence first (password, then email), then email format,
// then sizes. The service repeats the presence and format checks in the same
// order for callers that bypass HTTP.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)

	if r.Password == "" {
		return domain.ErrMissingField("password")
	}
	if r.Email == "" {
		return domain.ErrMissingField("email")
	}
	if !validation.IsEmail(r.Email) {
		return domain.ErrInvalidField("email", "invalid format")
	}
	if len(r.Password) > domain.MaxPasswordBytes {
		return domain.ErrPasswordTooLong()
	}
	return validation.Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)

	if r.Email == "" {
		return domain.ErrMissingField("email")
	}
	if !validation.IsEmail(r.Email) {
		return domain.ErrInvalidField("email", "invalid format")
	}
	if r.Password == "" {
		return domain.ErrMissingField("password")
	}
	if len(r.Password) > domain.MaxPasswordBytes {
		return domain.ErrPasswordTooLong()
	}
	return validation.Struct(r)
}
