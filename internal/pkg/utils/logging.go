package utils

import (
	"context"

	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GetPrincipal(ctx context.Context) (models.Principal, bool) {
	principal, ok := ctx.Value(constvars.CONTEXT_PRINCIPAL_KEY).(models.Principal)
	return principal, ok
}
