package exceptions

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"doctor-appointment-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNewCustomError_KindFromStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   error
	}{
		{"not found", constvars.StatusNotFound, KindNotFound},
		{"forbidden", constvars.StatusForbidden, KindForbidden},
		{"bad request", constvars.StatusBadRequest, KindValidation},
		{"unauthorized", constvars.StatusUnauthorized, KindUnauthenticated},
		{"unavailable", constvars.StatusServiceUnavailable, KindUnavailable},
		{"internal", constvars.StatusInternalServerError, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BuildNewCustomError(errors.New("boom"), tt.status, "client", "dev")
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Len(t, err.Locations, 1)
		})
	}
}

func TestCustomError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrMongoDBFindDocument(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, KindUnavailable)
	assert.Contains(t, err.Error(), constvars.ErrDevDBFailedToFindDocument)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCustomError_AccumulatesLocations(t *testing.T) {
	inner := ErrRedisGet(errors.New("timeout"))
	outer := ErrServerProcess(inner)

	assert.Len(t, outer.Locations, 2)
}

func TestDomainKinds(t *testing.T) {
	assert.ErrorIs(t, ErrSlotFullyBooked(nil, "slot", 4, 4), KindSlotFull)
	assert.ErrorIs(t, ErrInvalidScheduleDay(nil, "d1", "Monday"), KindInvalidSlot)
	assert.ErrorIs(t, ErrInvalidScheduleSlot(nil, "d1", "Monday", "Clinic A", "10:00", "12:00"), KindInvalidSlot)
	assert.ErrorIs(t, ErrRoleCannotBook(nil, constvars.RoleDoctor), KindRoleForbidden)
	assert.ErrorIs(t, ErrDoctorUpdateForbidden(nil, "u1", "d1"), KindForbidden)
	assert.ErrorIs(t, ErrDoctorNotFound(nil, "d1"), KindNotFound)
	assert.NotErrorIs(t, ErrSlotFullyBooked(nil, "slot", 4, 4), KindForbidden)
}

func TestAsUnavailable(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, AsUnavailable(nil))
	})

	t.Run("plain error becomes unavailable", func(t *testing.T) {
		err := AsUnavailable(fmt.Errorf("dial: %w", context.DeadlineExceeded))
		require.Error(t, err)
		assert.ErrorIs(t, err, KindUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("domain error passes through", func(t *testing.T) {
		notFound := ErrDoctorNotFound(nil, "d1")
		err := AsUnavailable(notFound)
		assert.Same(t, notFound, err)
	})

	t.Run("internal custom error becomes unavailable", func(t *testing.T) {
		err := AsUnavailable(ErrRedisGet(errors.New("down")))
		assert.ErrorIs(t, err, KindUnavailable)
	})
}
