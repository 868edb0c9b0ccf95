package middlewares

import (
	"context"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// Authenticate resolves the bearer token into a principal and stores it on the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		token := ""
		if strings.HasPrefix(authHeader, bearerPrefix) {
			token = strings.TrimPrefix(authHeader, bearerPrefix)
		}

		principal, err := m.PrincipalResolver.Resolve(r.Context(), token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		m.Log.Debug("Middlewares.Authenticate principal resolved",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingRequesterIDKey, principal.ID),
			zap.String(constvars.LoggingRequesterRoleKey, principal.Role),
		)

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_PRINCIPAL_KEY, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RestrictTo only lets through principals holding one of roles. It must run after Authenticate.
func (m *Middlewares) RestrictTo(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := utils.GetPrincipal(r.Context())
			if !ok {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrPrincipalMissing(nil))
				return
			}

			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotAllowed(nil, principal.Role, strings.Join(roles, ",")))
		})
	}
}
