package auth

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

// ListAccounts returns every account as its public projection.
func (s *Service) ListAccounts(ctx context.Context) ([]domain.PublicAccount, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.PublicAccounts(all), nil
}

// DeleteAccount removes an account by id. A second delete of the same id
// reports account_not_found.
func (s *Service) DeleteAccount(ctx context.Context, id string) (DeleteResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return DeleteResult{}, domain.ErrMissingField("id")
	}

	if _, err := s.store.FindByID(ctx, id); err != nil {
		return DeleteResult{}, err
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return DeleteResult{}, err
	}

	s.audit("account_deleted", map[string]string{"account_id": id})
	if err := s.pub.PublishAccountDeleted(ctx, AccountDeletedEvent{
		AccountID: id,
		At:        s.now().UTC(),
	}); err != nil {
		s.audit("publish_failed", map[string]string{
			"event":      "account.deleted",
			"account_id": id,
			"error":      err.Error(),
		})
	}

	return DeleteResult{ID: id}, nil
}
