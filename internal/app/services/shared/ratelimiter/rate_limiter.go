package ratelimiter

import (
	"context"
	"doctor-appointment-service/internal/pkg/constvars"
	"math"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ResourceLimiter keeps one token bucket per resource name. Buckets live in a
// bounded LRU so idle principals are eventually forgotten.
type ResourceLimiter struct {
	log      *zap.Logger
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
}

// NewResourceLimiter allows requestsPerSecond sustained requests per resource
// with bursts of burst.
func NewResourceLimiter(requestsPerSecond, burst, size int, log *zap.Logger) (*ResourceLimiter, error) {
	limiters, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		return nil, err
	}
	if burst <= 0 {
		burst = 1
	}
	return &ResourceLimiter{
		log:      log,
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
		limiters: limiters,
	}, nil
}

// ApplyResourceLimiterInput configures limiter evaluation.
type ApplyResourceLimiterInput struct {
	// ResourceName is the entity to be limited, usually a principal id or remote address.
	ResourceName string
	// LimiterGroupName namespaces the bucket, e.g. "booking".
	LimiterGroupName string
	// NowUTC is optional; zero means time.Now().
	NowUTC time.Time
}

type ApplyResourceLimiterOutput struct {
	Allowed        bool
	RetryAfterSecs int
}

func (l *ResourceLimiter) ApplyResourceLimiter(ctx context.Context, in *ApplyResourceLimiterInput) *ApplyResourceLimiterOutput {
	if l.limit <= 0 {
		return &ApplyResourceLimiterOutput{Allowed: true}
	}

	key := strings.ToUpper(strings.TrimSpace(in.LimiterGroupName)) + ":" + strings.ToLower(strings.TrimSpace(in.ResourceName))
	now := in.NowUTC
	if now.IsZero() {
		now = time.Now()
	}

	reservation := l.limiterFor(key).ReserveN(now, 1)
	if !reservation.OK() {
		return &ApplyResourceLimiterOutput{Allowed: false, RetryAfterSecs: 1}
	}

	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return &ApplyResourceLimiterOutput{Allowed: true}
	}
	reservation.CancelAt(now)

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	l.log.Info("ResourceLimiter.ApplyResourceLimiter rejected request",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("limiter_key", key),
		zap.Duration("retry_after", delay),
	)
	return &ApplyResourceLimiterOutput{
		Allowed:        false,
		RetryAfterSecs: int(math.Ceil(delay.Seconds())),
	}
}

func (l *ResourceLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.limiters.Get(key); ok {
		return limiter
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	l.limiters.Add(key, limiter)
	return limiter
}
