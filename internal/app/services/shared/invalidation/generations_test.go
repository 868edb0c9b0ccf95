package invalidation

import (
	"context"
	"testing"
	"time"

	"doctor-appointment-service/internal/app/services/shared/cache"
	"doctor-appointment-service/internal/app/services/shared/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerations(t *testing.T) {
	g := NewGenerations()

	mark := g.Mark()
	assert.False(t, g.Superseded("doctor:1", mark))

	g.Bump("doctor:1", "doctors")
	assert.True(t, g.Superseded("doctor:1", mark))
	assert.True(t, g.Superseded("doctors", mark))
	assert.False(t, g.Superseded("doctor:2", mark))

	later := g.Mark()
	assert.False(t, g.Superseded("doctor:1", later))
}

func TestGenerations_NilTracksNothing(t *testing.T) {
	var g *Generations
	g.Bump("doctor:1")
	assert.Zero(t, g.Mark())
	assert.False(t, g.Superseded("doctor:1", 0))
}

func TestListenerAndInvalidator_BumpGenerations(t *testing.T) {
	ctx := context.Background()
	hub := NewLocalHub(zap.NewNop())

	cacheA, err := cache.NewMemoryCache(10)
	require.NoError(t, err)
	cacheB, err := cache.NewMemoryCache(10)
	require.NoError(t, err)

	busA := hub.NewBus()
	busB := hub.NewBus()
	defer busA.Close()
	defer busB.Close()

	generationsA := NewGenerations()
	generationsB := NewGenerations()

	listenerB := &Listener{Bus: busB, Cache: cacheB, Generations: generationsB, Metrics: metrics.Noop{}, Log: zap.NewNop(), Timeout: time.Second}
	require.NoError(t, listenerB.Start(ctx))

	invalidator := &Invalidator{Bus: busA, Cache: cacheA, Generations: generationsA, Metrics: metrics.Noop{}, Log: zap.NewNop(), Timeout: time.Second}
	markA := invalidator.Mark()
	markB := generationsB.Mark()

	invalidator.Invalidate(ctx, "doctor:1")

	assert.True(t, invalidator.Superseded("doctor:1", markA))
	assert.Eventually(t, func() bool {
		return generationsB.Superseded("doctor:1", markB)
	}, time.Second, 5*time.Millisecond)
}
