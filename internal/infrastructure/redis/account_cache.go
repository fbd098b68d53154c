package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/auth"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

// CachedAccountStore decorates an auth.AccountStore with a read-through cache.
// - Read path: Redis -> inner store -> Redis set, unless the id is tombstoned
// - Delete: tombstone -> inner store -> evict both keys
// Redis failures are logged and never fail the call.
type CachedAccountStore struct {
	inner         auth.AccountStore
	rdb           *goredis.Client
	ttl           time.Duration
	caseSensitive bool
}

func NewCachedAccountStore(inner auth.AccountStore, client *Client, ttl time.Duration, caseSensitive bool) *CachedAccountStore {
	var rdb *goredis.Client
	if client != nil {
		rdb = client.rdb
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedAccountStore{inner: inner, rdb: rdb, ttl: ttl, caseSensitive: caseSensitive}
}

// tombstoneTTL outlives any read that could have started before a delete;
// reads are bounded by the HTTP write timeout.
const tombstoneTTL = time.Minute

func idKey(id string) string       { return "account:id:" + id }
func emailKey(email string) string { return "account:email:" + email }
func deletedKey(id string) string  { return "account:deleted:" + id }

// cachedAccount is the wire form in Redis. domain.Account has no json tags
// and never leaves the process otherwise.
type cachedAccount struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	ProfilePic   string    `json:"profile_pic"`
	CreatedAt    time.Time `json:"created_at"`
}

func toCached(a domain.Account) cachedAccount {
	return cachedAccount(a)
}

func (c cachedAccount) toDomain() domain.Account {
	return domain.Account(c)
}

func (s *CachedAccountStore) get(ctx context.Context, key string) (domain.Account, bool) {
	if s.rdb == nil {
		return domain.Account{}, false
	}
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("account cache read failed")
		}
		return domain.Account{}, false
	}
	var ca cachedAccount
	if err := json.Unmarshal(b, &ca); err != nil {
		return domain.Account{}, false
	}
	return ca.toDomain(), true
}

func (s *CachedAccountStore) fill(ctx context.Context, a domain.Account) {
	if s.rdb == nil {
		return
	}
	b, err := json.Marshal(toCached(a))
	if err != nil {
		return
	}
	// KEYS[1]=tombstone KEYS[2]=id key KEYS[3]=email key
	// ARGV[1]=entry ARGV[2]=ttl ms
	// The tombstone check and both SETs run atomically, so a read that raced a
	// delete cannot re-cache the removed account.
	const lua = `
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 0
end
redis.call("SET", KEYS[2], ARGV[1], "PX", ARGV[2])
redis.call("SET", KEYS[3], ARGV[1], "PX", ARGV[2])
return 1
`
	keys := []string{
		deletedKey(a.ID),
		idKey(a.ID),
		emailKey(domain.NormalizeEmail(a.Email, s.caseSensitive)),
	}
	if err := s.rdb.Eval(ctx, lua, keys, string(b), s.ttl.Milliseconds()).Err(); err != nil {
		log.Warn().Err(err).Str("account_id", a.ID).Msg("account cache fill failed")
	}
}

func (s *CachedAccountStore) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	if a, ok := s.get(ctx, emailKey(domain.NormalizeEmail(email, s.caseSensitive))); ok {
		return a, nil
	}
	a, err := s.inner.FindByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, err
	}
	s.fill(ctx, a)
	return a, nil
}

func (s *CachedAccountStore) FindByID(ctx context.Context, id string) (domain.Account, error) {
	if a, ok := s.get(ctx, idKey(id)); ok {
		return a, nil
	}
	a, err := s.inner.FindByID(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}
	s.fill(ctx, a)
	return a, nil
}

func (s *CachedAccountStore) ListAll(ctx context.Context) ([]domain.Account, error) {
	return s.inner.ListAll(ctx)
}

func (s *CachedAccountStore) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	return s.inner.Create(ctx, a)
}

func (s *CachedAccountStore) DeleteByID(ctx context.Context, id string) error {
	// before the inner delete: any fill that runs after this point is refused
	if s.rdb != nil {
		if err := s.rdb.Set(ctx, deletedKey(id), 1, tombstoneTTL).Err(); err != nil {
			log.Warn().Err(err).Str("account_id", id).Msg("account cache tombstone failed")
		}
	}

	// the email key is only known from the record
	var email string
	if a, err := s.inner.FindByID(ctx, id); err == nil {
		email = a.Email
	}

	if err := s.inner.DeleteByID(ctx, id); err != nil {
		return err
	}

	if s.rdb != nil {
		keys := []string{idKey(id)}
		if email != "" {
			keys = append(keys, emailKey(domain.NormalizeEmail(email, s.caseSensitive)))
		}
		if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Warn().Err(err).Str("account_id", id).Msg("account cache evict failed")
		}
	}
	return nil
}
