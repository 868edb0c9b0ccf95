package locker

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultRetryInterval = 20 * time.Millisecond

// localHold is the in-process half of a lock taken through Lock. shared is
// false when the backend could not be reached and only this process is
// excluded.
type localHold struct {
	lockValue string
	expiresAt time.Time
	shared    bool
}

type lockService struct {
	backend       contracts.CacheBackend
	Log           *zap.Logger
	retryInterval time.Duration
	now           func() time.Time

	mu    sync.Mutex
	local map[string]localHold
}

func NewLockService(backend contracts.CacheBackend, logger *zap.Logger) contracts.LockerService {
	return &lockService{
		backend:       backend,
		Log:           logger,
		retryInterval: defaultRetryInterval,
		now:           time.Now,
		local:         map[string]localHold{},
	}
}

func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	lockValue := uuid.NewString()
	acquired, err := s.trySetShared(ctx, key, lockValue, expiration)
	if err != nil || !acquired {
		return false, "", err
	}
	return true, lockValue, nil
}

// Lock takes the process-local lock for key, then the shared one, retrying
// both until wait elapses. When the backend is unreachable the caller keeps
// the process-local lock alone.
func (s *lockService) Lock(ctx context.Context, key string, expiration, wait time.Duration) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	ticker := time.NewTicker(s.retryInterval)
	defer ticker.Stop()

	lockValue := uuid.NewString()
	for !s.holdLocal(key, lockValue, expiration) {
		select {
		case <-waitCtx.Done():
			return "", exceptions.ErrSlotLockNotAcquired(waitCtx.Err(), key)
		case <-ticker.C:
		}
	}

	for {
		acquired, err := s.trySetShared(waitCtx, key, lockValue, expiration)
		if err != nil {
			s.markLocalOnly(key, lockValue)
			s.Log.Warn("lockService.Lock backend unreachable, holding process-local lock only",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
			return lockValue, nil
		}
		if acquired {
			return lockValue, nil
		}

		select {
		case <-waitCtx.Done():
			s.releaseLocal(key, lockValue)
			return "", exceptions.ErrSlotLockNotAcquired(waitCtx.Err(), key)
		case <-ticker.C:
		}
	}
}

func (s *lockService) Unlock(ctx context.Context, key, lockValue string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Debug("lockService.Unlock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, lockValue),
	)

	hold, heldLocally := s.releaseLocal(key, lockValue)
	if heldLocally && !hold.shared {
		return nil
	}

	released, err := s.backend.CompareAndDelete(ctx, key, lockValue)
	if err != nil {
		s.Log.Error("lockService.Unlock error calling backend.CompareAndDelete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	if !released {
		err := exceptions.ErrRedisUnlock(errors.New("lock expired or not owned by this client"))
		s.Log.Warn("lockService.Unlock lock ownership mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}

	s.Log.Debug("lockService.Unlock succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
	)
	return nil
}

func (s *lockService) trySetShared(ctx context.Context, key, lockValue string, expiration time.Duration) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Debug("lockService.TryLock called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, expiration),
	)

	acquired, err := s.backend.TrySetNX(ctx, key, lockValue, expiration)
	if err != nil {
		s.Log.Error("lockService.TryLock error calling backend.TrySetNX",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return false, err
	}

	if !acquired {
		s.Log.Debug("lockService.TryLock not acquired",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, nil
	}

	s.Log.Debug("lockService.TryLock acquired lock",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, lockValue),
	)
	return true, nil
}

func (s *lockService) holdLocal(key, lockValue string, expiration time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if hold, ok := s.local[key]; ok && now.Before(hold.expiresAt) {
		return false
	}
	s.local[key] = localHold{lockValue: lockValue, expiresAt: now.Add(expiration), shared: true}
	return true
}

func (s *lockService) markLocalOnly(key, lockValue string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hold, ok := s.local[key]; ok && hold.lockValue == lockValue {
		hold.shared = false
		s.local[key] = hold
	}
}

func (s *lockService) releaseLocal(key, lockValue string) (localHold, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hold, ok := s.local[key]
	if !ok || hold.lockValue != lockValue {
		return localHold{}, false
	}
	delete(s.local, key)
	return hold, true
}
