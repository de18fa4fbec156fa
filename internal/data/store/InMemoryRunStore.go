package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/rfqflow/internal/domain/runModel"
	"github.com/akolanti/rfqflow/pkg/logger_i"
)

type inMemoryRun struct {
	run       runModel.Run
	expiresAt time.Time
}

// InMemoryRunStore keeps each run for ttl after its last save, the same lifetime the
// Redis store gives its keys. A ttl of zero keeps runs until DeleteRun.
type InMemoryRunStore struct {
	runMutex  *sync.RWMutex
	runMap    map[string]inMemoryRun
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
	logger    *logger_i.Logger
}

func InitInMemoryRunStore(ttl time.Duration) *InMemoryRunStore {
	return &InMemoryRunStore{
		runMutex: new(sync.RWMutex),
		runMap:   make(map[string]inMemoryRun),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger_i.NewLogger("InMem RunStore"),
	}
}

func (store *InMemoryRunStore) SaveRun(ctx context.Context, run runModel.Run) error {
	store.runMutex.Lock()
	defer store.runMutex.Unlock()

	now := store.now()
	if store.ttl > 0 && now.Sub(store.lastSweep) >= store.ttl {
		store.sweep(now)
	}

	record := inMemoryRun{run: run}
	if store.ttl > 0 {
		record.expiresAt = now.Add(store.ttl)
	}
	store.runMap[run.Id] = record
	store.logger.WithTrace(ctx).Debug("Saved run to store", "runId", run.Id, "status", run.Status)
	return nil
}

func (store *InMemoryRunStore) GetRun(ctx context.Context, runId string) (runModel.Run, bool) {
	store.runMutex.RLock()
	defer store.runMutex.RUnlock()
	record, found := store.runMap[runId]
	if found && store.expired(record, store.now()) {
		found = false
	}
	store.logger.WithTrace(ctx).Debug("Run lookup", "runId", runId, "found", found)
	if !found {
		return runModel.Run{}, false
	}
	return record.run, true
}

func (store *InMemoryRunStore) DeleteRun(ctx context.Context, runId string) {
	store.runMutex.Lock()
	defer store.runMutex.Unlock()
	delete(store.runMap, runId)
}

func (store *InMemoryRunStore) expired(record inMemoryRun, now time.Time) bool {
	return !record.expiresAt.IsZero() && !now.Before(record.expiresAt)
}

// sweep runs under the write lock.
func (store *InMemoryRunStore) sweep(now time.Time) {
	removed := 0
	for id, record := range store.runMap {
		if store.expired(record, now) {
			delete(store.runMap, id)
			removed++
		}
	}
	store.lastSweep = now
	if removed > 0 {
		store.logger.Debug("Swept expired runs", "removed", removed)
	}
}
