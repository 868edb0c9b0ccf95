package auth

import (
	"context"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolve_RoundTrip(t *testing.T) {
	resolver := NewJWTPrincipalResolver("secret", time.Hour, zap.NewNop())

	token, err := resolver.CreateToken(models.Principal{ID: "u1", Role: constvars.RoleUser})
	require.NoError(t, err)

	principal, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, models.Principal{ID: "u1", Role: constvars.RoleUser}, principal)
}

func TestResolve_Rejects(t *testing.T) {
	resolver := NewJWTPrincipalResolver("secret", time.Hour, zap.NewNop())
	other := NewJWTPrincipalResolver("other-secret", time.Hour, zap.NewNop())
	expired := NewJWTPrincipalResolver("secret", -time.Minute, zap.NewNop())

	foreign, err := other.CreateToken(models.Principal{ID: "u1", Role: constvars.RoleUser})
	require.NoError(t, err)
	stale, err := expired.CreateToken(models.Principal{ID: "u1", Role: constvars.RoleUser})
	require.NoError(t, err)
	noRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "u1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", "  "},
		{"garbage", "not.a.jwt"},
		{"wrong secret", foreign},
		{"expired", stale},
		{"missing role claim", noRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(context.Background(), tt.token)
			assert.ErrorIs(t, err, exceptions.KindUnauthenticated)
		})
	}
}
