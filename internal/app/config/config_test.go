package config

import (
	"testing"
	"time"

	"doctor-appointment-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestNewInternalConfig_Defaults(t *testing.T) {
	cfg := NewInternalConfig()

	assert.Equal(t, time.Hour, cfg.Cache.TTL())
	assert.Equal(t, 500*time.Millisecond, cfg.Cache.OperationTimeout())
	assert.Equal(t, constvars.CacheDefaultInvalidationChannel, cfg.Cache.InvalidationChannel)
	assert.Equal(t, 10*time.Second, cfg.Booking.SlotLockTTL())
	assert.Equal(t, 3*time.Second, cfg.Booking.SlotLockWait())
	assert.Equal(t, 5*time.Second, cfg.Booking.StoreOperationTimeout())
	assert.Equal(t, "api", cfg.App.EndpointPrefix)
	assert.Equal(t, "v1", cfg.App.Version)
	assert.Equal(t, constvars.MailerTransportRabbitMQ, cfg.Mailer.Transport)
}

func TestNewInternalConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CACHE_TTL_IN_SECONDS", "120")
	t.Setenv("CACHE_INVALIDATION_TRANSPORT", constvars.CacheInvalidationTransportRabbit)
	t.Setenv("BOOKING_SLOT_LOCK_WAIT_IN_MILLISECONDS", "250")
	t.Setenv("APP_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CACHE_MEMORY_SIZE", "not-a-number")

	cfg := NewInternalConfig()

	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL())
	assert.Equal(t, constvars.CacheInvalidationTransportRabbit, cfg.Cache.InvalidationTransport)
	assert.Equal(t, 250*time.Millisecond, cfg.Booking.SlotLockWait())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 10000, cfg.Cache.MemorySize)
}
