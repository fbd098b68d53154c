package postgres

import (
	"time"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

type accountRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	ProfilePic   string
	CreatedAt    time.Time
}

const accountColumns = `id, name, email, password_hash, role, profile_pic, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccountRow(s rowScanner) (accountRow, error) {
	var ar accountRow
	err := s.Scan(
		&ar.ID,
		&ar.Name,
		&ar.Email,
		&ar.PasswordHash,
		&ar.Role,
		&ar.ProfilePic,
		&ar.CreatedAt,
	)
	return ar, err
}

func (ar accountRow) toDomain() domain.Account {
	return domain.Account{
		ID:           ar.ID,
		Name:         ar.Name,
		Email:        ar.Email,
		PasswordHash: ar.PasswordHash,
		Role:         ar.Role,
		ProfilePic:   ar.ProfilePic,
		CreatedAt:    ar.CreatedAt.UTC(),
	}
}
