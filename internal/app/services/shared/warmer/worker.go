package warmer

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/utils"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const fallbackCronSpec = "@every 30m"

// ListRefresher drops and recomputes the cached doctor list.
type ListRefresher interface {
	RefreshList(ctx context.Context) (int, error)
}

// Worker periodically rebuilds the doctor list cache. Only the instance
// holding the leader lock does the work on a given tick.
type Worker struct {
	log       *zap.Logger
	locker    contracts.LockerService
	refresher ListRefresher
	spec      string
	lockTTL   time.Duration
	cron      *cron.Cron
	runCtx    context.Context
	cancel    context.CancelFunc
}

func NewWorker(log *zap.Logger, lockerSvc contracts.LockerService, refresher ListRefresher, spec string, lockTTL time.Duration) *Worker {
	return &Worker{log: log, locker: lockerSvc, refresher: refresher, spec: spec, lockTTL: lockTTL}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(w.spec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("warmer.Worker: invalid cron spec, falling back",
			zap.String("spec", w.spec),
			zap.String("fallback", fallbackCronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackCronSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight runs and waits for the scheduler to drain.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// RunOnce performs a single leader-locked refresh.
func (w *Worker) RunOnce(ctx context.Context) {
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	acquired, token, err := w.locker.TryLock(ctx, constvars.LockKeyCacheWarmerLeader, w.lockTTL)
	if err != nil {
		w.log.Warn("warmer.Worker: leader lock attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		w.log.Info("warmer.Worker: leader lock held by another instance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return
	}
	defer func() {
		if err := w.locker.Unlock(context.WithoutCancel(ctx), constvars.LockKeyCacheWarmerLeader, token); err != nil {
			w.log.Warn("warmer.Worker: leader lock release failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, w.lockTTL)
	defer cancel()

	count, err := w.refresher.RefreshList(runCtx)
	if err != nil {
		w.log.Warn("warmer.Worker: doctor list refresh failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	w.log.Info("warmer.Worker: doctor list refreshed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, count),
	)
}
