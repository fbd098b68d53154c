package domain

import (
	"strings"
	"time"
)

// Account is the internal account record. It carries the password hash and
// must never be serialized to clients; use Public or ProfileView instead.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	ProfilePic   string
	CreatedAt    time.Time
}

// PublicAccount is the outward-facing projection of an Account.
type PublicAccount struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	ProfilePic string    `json:"profilePic,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Profile is the narrow view returned after a successful login.
type Profile struct {
	ProfilePic string `json:"profilePic"`
}

func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Role:       a.Role,
		ProfilePic: a.ProfilePic,
		CreatedAt:  a.CreatedAt,
	}
}

func (a Account) ProfileView() Profile {
	return Profile{ProfilePic: a.ProfilePic}
}

// PublicAccounts projects a slice of records. The result is never nil.
func PublicAccounts(in []Account) []PublicAccount {
	out := make([]PublicAccount, 0, len(in))
	for _, a := range in {
		out = append(out, a.Public())
	}
	return out
}

// MaxPasswordBytes is bcrypt's input limit; longer passwords are rejected,
// not truncated.
const MaxPasswordBytes = 72

// NormalizeEmail is the key stores match emails on.
func NormalizeEmail(email string, caseSensitive bool) string {
	email = strings.TrimSpace(email)
	if caseSensitive {
		return email
	}
	return strings.ToLower(email)
}
