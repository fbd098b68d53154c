package memory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/auth"
)

// NoopPublisher logs events instead of sending them. Used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishAccountRegistered(ctx context.Context, evt auth.AccountRegisteredEvent) error {
	log.Debug().Str("account_id", evt.AccountID).Str("role", evt.Role).Msg("noop-pub: account registered")
	return nil
}

func (p *NoopPublisher) PublishAccountDeleted(ctx context.Context, evt auth.AccountDeletedEvent) error {
	log.Debug().Str("account_id", evt.AccountID).Msg("noop-pub: account deleted")
	return nil
}
