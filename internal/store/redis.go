package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/types"
	"github.com/mockuniversity/mocku-backend/internal/utils"
)

const redisKeyPrefix = "recs:"

// RedisStore keeps one JSON value per external id.
type RedisStore struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewRedisStore(log *logger.Logger) (*RedisStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{
		log: log.With("service", "RedisRecordStore"),
		rdb: rdb,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, externalID string) (types.Recommendation, bool, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+externalID).Bytes()
	if errors.Is(err, goredis.Nil) {
		return types.Recommendation{}, false, nil
	}
	if err != nil {
		return types.Recommendation{}, false, fmt.Errorf("redis get: %w", err)
	}
	var rec types.Recommendation
	if err := json.Unmarshal(raw, &rec); err != nil {
		return types.Recommendation{}, false, fmt.Errorf("decode stored record: %w", err)
	}
	return rec, true, nil
}

func (s *RedisStore) Put(ctx context.Context, externalID string, rec types.Recommendation) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+externalID, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
