package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestApplyResourceLimiter_BurstThenReject(t *testing.T) {
	limiter, err := NewResourceLimiter(1, 2, 16, zap.NewNop())
	require.NoError(t, err)

	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	in := &ApplyResourceLimiterInput{ResourceName: "u1", LimiterGroupName: "booking", NowUTC: now}

	assert.True(t, limiter.ApplyResourceLimiter(context.Background(), in).Allowed)
	assert.True(t, limiter.ApplyResourceLimiter(context.Background(), in).Allowed)

	out := limiter.ApplyResourceLimiter(context.Background(), in)
	assert.False(t, out.Allowed)
	assert.Equal(t, 1, out.RetryAfterSecs)

	in.NowUTC = now.Add(time.Second)
	assert.True(t, limiter.ApplyResourceLimiter(context.Background(), in).Allowed)
}

func TestApplyResourceLimiter_SeparateBuckets(t *testing.T) {
	limiter, err := NewResourceLimiter(1, 1, 16, zap.NewNop())
	require.NoError(t, err)

	now := time.Now()
	a := &ApplyResourceLimiterInput{ResourceName: "u1", LimiterGroupName: "booking", NowUTC: now}
	b := &ApplyResourceLimiterInput{ResourceName: "u2", LimiterGroupName: "booking", NowUTC: now}

	assert.True(t, limiter.ApplyResourceLimiter(context.Background(), a).Allowed)
	assert.False(t, limiter.ApplyResourceLimiter(context.Background(), a).Allowed)
	assert.True(t, limiter.ApplyResourceLimiter(context.Background(), b).Allowed)
}

func TestApplyResourceLimiter_Disabled(t *testing.T) {
	limiter, err := NewResourceLimiter(0, 1, 16, zap.NewNop())
	require.NoError(t, err)

	in := &ApplyResourceLimiterInput{ResourceName: "u1", LimiterGroupName: "booking"}
	for i := 0; i < 10; i++ {
		assert.True(t, limiter.ApplyResourceLimiter(context.Background(), in).Allowed)
	}
}
