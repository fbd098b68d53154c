package auth

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

/*
AccountStore
------------
Persistence port for accounts (the credential store adapter).
Only describes WHAT the service needs, not HOW it's stored.
No hashing, token or validation logic belongs behind it.
*/
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (domain.Account, error)
	FindByID(ctx context.Context, id string) (domain.Account, error)
	ListAll(ctx context.Context) ([]domain.Account, error)

	// Create assigns ID and CreatedAt. It is the final authority on email
	// uniqueness and returns email_already_exists on a duplicate.
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
	DeleteByID(ctx context.Context, id string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt. Both calls may block on a bounded worker slot and honour ctx
while waiting.
*/
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Compare(ctx context.Context, hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues access tokens (JWT). The service never reads tokens back;
verification lives on the concrete signer for token consumers.
*/
type TokenClaims struct {
	UserID string
	Role   string
	Exp    time.Time
}

type TokenSigner interface {
	SignAccessToken(userID string, role string, ttl time.Duration) (string, error)
}

/*
EventPublisher
--------------
Announces account lifecycle changes to other services.
Publishing is best-effort: failures are logged, never returned to clients.
*/
type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, evt AccountRegisteredEvent) error
	PublishAccountDeleted(ctx context.Context, evt AccountDeletedEvent) error
}

type AccountRegisteredEvent struct {
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	At        time.Time `json:"at"`
}

type AccountDeletedEvent struct {
	AccountID string    `json:"account_id"`
	At        time.Time `json:"at"`
}
