package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"brickhub/internal/http-api/models"

	"github.com/redis/go-redis/v9"
)

// cachedCatalogRepository caches composition lookups in Redis. The catalog is
// read-only at runtime so entries only need a TTL, no invalidation. Cache
// failures fall through to Postgres and are logged, never surfaced.
type cachedCatalogRepository struct {
	inner  CatalogRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedCatalogRepository(inner CatalogRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) CatalogRepository {
	return &cachedCatalogRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

func (r *cachedCatalogRepository) GetSet(ctx context.Context, setNum string) (*models.Set, error) {
	return r.inner.GetSet(ctx, setNum)
}

func (r *cachedCatalogRepository) Composition(ctx context.Context, setNum string) ([]models.SetFigure, error) {
	key := fmt.Sprintf("catalog:composition:%s", setNum)

	if raw, err := r.client.Get(ctx, key).Result(); err == nil {
		var figures []models.SetFigure
		if err := json.Unmarshal([]byte(raw), &figures); err == nil {
			return figures, nil
		}
		r.logger.Warn("dropping corrupt composition cache entry", "set_num", setNum)
		r.client.Del(ctx, key)
	} else if err != redis.Nil {
		r.logger.Warn("composition cache read failed", "set_num", setNum, "error", err)
	}

	figures, err := r.inner.Composition(ctx, setNum)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(figures); err == nil {
		if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
			r.logger.Warn("composition cache write failed", "set_num", setNum, "error", err)
		}
	}

	return figures, nil
}
