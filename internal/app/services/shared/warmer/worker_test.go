package warmer

import (
	"context"
	"doctor-appointment-service/internal/app/services/shared/cache"
	"doctor-appointment-service/internal/app/services/shared/locker"
	"doctor-appointment-service/internal/pkg/constvars"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshList(context.Context) (int, error) {
	r.calls.Add(1)
	return 3, r.err
}

func TestRunOnce_RefreshesAndReleasesLeaderLock(t *testing.T) {
	backend, err := cache.NewMemoryCache(64)
	require.NoError(t, err)
	refresher := &countingRefresher{}
	worker := NewWorker(zap.NewNop(), locker.NewLockService(backend, zap.NewNop()), refresher, "@every 1h", time.Minute)

	worker.RunOnce(context.Background())
	worker.RunOnce(context.Background())

	assert.Equal(t, int32(2), refresher.calls.Load())
	_, found, err := backend.Get(context.Background(), constvars.LockKeyCacheWarmerLeader)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRunOnce_SkipsWhenAnotherLeaderHoldsLock(t *testing.T) {
	backend, err := cache.NewMemoryCache(64)
	require.NoError(t, err)
	lockSvc := locker.NewLockService(backend, zap.NewNop())

	acquired, _, err := lockSvc.TryLock(context.Background(), constvars.LockKeyCacheWarmerLeader, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	refresher := &countingRefresher{}
	NewWorker(zap.NewNop(), lockSvc, refresher, "@every 1h", time.Minute).RunOnce(context.Background())

	assert.Equal(t, int32(0), refresher.calls.Load())
}

func TestRunOnce_RefreshErrorStillReleasesLock(t *testing.T) {
	backend, err := cache.NewMemoryCache(64)
	require.NoError(t, err)
	refresher := &countingRefresher{err: errors.New("store down")}
	NewWorker(zap.NewNop(), locker.NewLockService(backend, zap.NewNop()), refresher, "@every 1h", time.Minute).RunOnce(context.Background())

	_, found, err := backend.Get(context.Background(), constvars.LockKeyCacheWarmerLeader)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStartStop_InvalidSpecFallsBack(t *testing.T) {
	backend, err := cache.NewMemoryCache(64)
	require.NoError(t, err)
	worker := NewWorker(zap.NewNop(), locker.NewLockService(backend, zap.NewNop()), &countingRefresher{}, "not a spec", time.Minute)

	worker.Start(context.Background())
	require.NotNil(t, worker.cron)
	assert.Len(t, worker.cron.Entries(), 1)
	worker.Stop()
}
