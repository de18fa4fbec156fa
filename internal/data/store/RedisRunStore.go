package store

import (
	"context"
	"time"

	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/data/redisStore"
	"github.com/akolanti/rfqflow/internal/domain/runModel"
	"github.com/akolanti/rfqflow/pkg/logger_i"
)

const runKeyPrefix = "rfq:run:"

type RedisRunStore struct {
	store  *redisStore.Store
	ttl    time.Duration
	logger *logger_i.Logger
}

// GetRedisRunStore returns nil when Redis is unreachable; callers fall back to memory.
func GetRedisRunStore(ctx context.Context, cfg config.RedisConfig) *RedisRunStore {
	s := redisStore.GetRedisStore(ctx, cfg)
	if s == nil {
		return nil
	}
	return NewRedisRunStore(s, cfg.TTL)
}

func NewRedisRunStore(s *redisStore.Store, ttl time.Duration) *RedisRunStore {
	return &RedisRunStore{
		store:  s,
		ttl:    ttl,
		logger: logger_i.NewLogger("RunStore"),
	}
}

func (s *RedisRunStore) SaveRun(ctx context.Context, run runModel.Run) error {
	if err := s.store.SetJSON(ctx, runKeyPrefix+run.Id, run, s.ttl); err != nil {
		return err
	}
	s.logger.WithTrace(ctx).Debug("Saved run to Redis", "runId", run.Id, "status", run.Status, "stage", run.Stage)
	return nil
}

func (s *RedisRunStore) GetRun(ctx context.Context, runId string) (runModel.Run, bool) {
	var run runModel.Run
	log := s.logger.WithTrace(ctx).With("runId", runId)
	found, err := s.store.GetJSON(ctx, runKeyPrefix+runId, &run)
	if err != nil {
		log.Error("Reading run from Redis failed", "error", err)
		return runModel.Run{}, false
	}
	return run, found
}

func (s *RedisRunStore) DeleteRun(ctx context.Context, runId string) {
	if err := s.store.Del(ctx, runKeyPrefix+runId); err != nil {
		s.logger.WithTrace(ctx).Error("Error deleting run from Redis", "runId", runId, "error", err)
		return
	}
	s.logger.Debug("Run deleted from Redis", "runId", runId)
}
