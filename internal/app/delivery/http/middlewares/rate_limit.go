package middlewares

import (
	"doctor-appointment-service/internal/app/services/shared/ratelimiter"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"net"
	"net/http"
	"strconv"
)

const bookingLimiterGroup = "booking"

// BookingRateLimit throttles booking attempts per principal, falling back to the remote address.
func (m *Middlewares) BookingRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.BookingLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		resource := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			resource = host
		}
		if principal, ok := utils.GetPrincipal(r.Context()); ok {
			resource = principal.ID
		}

		out := m.BookingLimiter.ApplyResourceLimiter(r.Context(), &ratelimiter.ApplyResourceLimiterInput{
			ResourceName:     resource,
			LimiterGroupName: bookingLimiterGroup,
		})
		if !out.Allowed {
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(out.RetryAfterSecs))
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}
