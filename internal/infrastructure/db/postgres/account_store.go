package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

const uniqueViolation = "23505"

const schemaDDL = `
CREATE TABLE IF NOT EXISTS accounts (
    id            UUID PRIMARY KEY,
    name          TEXT NOT NULL DEFAULT '',
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL,
    profile_pic   TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

type AccountStore struct {
	db            *sql.DB
	caseSensitive bool
}

func NewAccountStore(db *sql.DB, caseSensitive bool) *AccountStore {
	return &AccountStore{db: db, caseSensitive: caseSensitive}
}

// EnsureSchema creates the accounts table if it does not exist yet.
func (s *AccountStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	return nil
}

func (s *AccountStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	return nil
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	email = domain.NormalizeEmail(email, s.caseSensitive)
	if email == "" {
		return domain.Account{}, domain.ErrAccountNotFound()
	}

	q := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 LIMIT 1`
	ar, err := scanAccountRow(s.db.QueryRowContext(ctx, q, email))
	if err != nil {
		return domain.Account{}, mapReadErr(err)
	}
	return ar.toDomain(), nil
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (domain.Account, error) {
	id = strings.TrimSpace(id)
	// ids are UUIDs; anything else cannot exist and must not reach the uuid column
	if _, err := uuid.Parse(id); err != nil {
		return domain.Account{}, domain.ErrAccountNotFound()
	}

	q := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 LIMIT 1`
	ar, err := scanAccountRow(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return domain.Account{}, mapReadErr(err)
	}
	return ar.toDomain(), nil
}

func (s *AccountStore) ListAll(ctx context.Context) ([]domain.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	defer rows.Close()

	out := make([]domain.Account, 0)
	for rows.Next() {
		ar, err := scanAccountRow(rows)
		if err != nil {
			return nil, domain.ErrStoreUnavailable(err)
		}
		out = append(out, ar.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	return out, nil
}

func (s *AccountStore) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	a.Email = domain.NormalizeEmail(a.Email, s.caseSensitive)
	if a.Email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}

	q := `
INSERT INTO accounts (id, name, email, password_hash, role, profile_pic)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + accountColumns

	ar, err := scanAccountRow(s.db.QueryRowContext(ctx, q,
		uuid.NewString(), a.Name, a.Email, a.PasswordHash, a.Role, a.ProfilePic,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Account{}, domain.ErrEmailAlreadyExists()
		}
		return domain.Account{}, domain.ErrStoreUnavailable(err)
	}
	return ar.toDomain(), nil
}

func (s *AccountStore) DeleteByID(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrAccountNotFound()
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAccountNotFound()
	}
	return nil
}

func mapReadErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrAccountNotFound()
	}
	return domain.ErrStoreUnavailable(err)
}
