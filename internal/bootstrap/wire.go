package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/auth"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/redis"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/security"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
	http_handlers "github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/handlers"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (*sql.DB, error)

	NewRedis func(addr, password string, db int) *redis.Client

	NewPublisher func(rabbitURL, exchange string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

// Publisher is the event sink the service publishes to; Close is optional.
type Publisher interface {
	auth.EventPublisher
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()
	fail := func(err error) (*http.Server, func(), error) {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	readiness := map[string]http_handlers.Pinger{}

	// 1) account store
	var store auth.AccountStore
	switch cfg.StoreDriver {
	case config.StorePostgres:
		if deps.NewDB == nil {
			return fail(errors.New("bootstrap: postgres selected but no NewDB"))
		}
		db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
		if err != nil {
			return fail(err)
		}
		cleanupFns = append(cleanupFns, func() { _ = db.Close() })

		pg := postgres.NewAccountStore(db, cfg.EmailCaseSensitive)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = pg.EnsureSchema(ctx)
		cancel()
		if err != nil {
			return fail(err)
		}
		store = pg
		readiness["database"] = pg
	default:
		store = memory.NewAccountStore(cfg.EmailCaseSensitive)
	}

	// 2) redis cache (best-effort)
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := c.Ping(ctx)
		cancel()

		if err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; account cache disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Dur("ttl", cfg.AccountCacheTTL).Msg("redis connected; account cache enabled")
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			store = redis.NewCachedAccountStore(store, c, cfg.AccountCacheTTL, cfg.EmailCaseSensitive)
		}
	}

	// 3) publisher
	var pub auth.EventPublisher = memory.NewNoopPublisher()
	if cfg.RabbitURL != "" && deps.NewPublisher != nil {
		p, err := deps.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			if cfg.Env != "dev" {
				return fail(err)
			}
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
		} else {
			pub = p
			if c, ok := p.(interface{ Close() error }); ok {
				cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			}
		}
	}

	// 4) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost, cfg.HashConcurrency)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// 5) service
	svc := auth.NewService(store, hasher, signer, pub, auth.Config{
		TokenTTL:    cfg.TokenTTL,
		RolePolicy:  domain.RolePolicy(cfg.RolePolicy),
		DefaultRole: cfg.DefaultRole,
	}).WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	})

	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.WarmUp(warmCtx); err != nil {
		// login builds it lazily instead
		logger.Logger.Warn().Err(err).Msg("decoy hash warm-up failed")
	}
	warmCancel()

	// 6) router
	newRouter := deps.NewRouter
	if newRouter == nil {
		newRouter = router.New
	}
	mux, err := newRouter(router.Deps{
		Health:       http_handlers.NewHealthHandler(readiness),
		Accounts:     http_handlers.NewAccountHandler(svc),
		APIPrefix:    cfg.APIPrefix,
		MaxBodyBytes: cfg.MaxBodyBytes,
		HSTS:         cfg.Env != "dev",
		CORSOrigins:  cfg.CORSOrigins,
	})
	if err != nil {
		return fail(err)
	}

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	logger.Logger.Info().
		Str("env", cfg.Env).
		Str("store", cfg.StoreDriver).
		Str("role_policy", cfg.RolePolicy).
		Msg("account-service wired")

	cleanup := func() {
		runCleanup(cleanupFns)
	}
	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		NewRedis:   redis.New,
		NewPublisher: func(url, exchange string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url, exchange)
		},
		NewRouter: router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
