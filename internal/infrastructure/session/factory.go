package session

import (
	"time"

	"github.com/inventra/frontend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewStore builds the session store for the deployment: Redis when
// reachable, otherwise an in-memory store. The fallback keeps a dev
// environment or a degraded instance serving logins instead of failing
// at startup.
func NewStore(cfg config.RedisConfig, ttl time.Duration, log *zap.Logger) Store {
	store, err := NewRedisStore(cfg.Addr(), cfg.Password, cfg.DB, ttl)
	if err != nil {
		log.Warn("Redis unreachable, using in-memory session store",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewMemoryStore(ttl)
	}

	log.Info("Using Redis session store", zap.String("addr", cfg.Addr()))
	return store
}
