package middlewares

import (
	"net/http"
	"time"
)

// RequestLogger writes one access log line per request.
func (m *Middlewares) RequestLogger(next http.Handler) http.Handler {
	tz, err := time.LoadLocation(m.InternalConfig.App.Timezone)
	if err != nil {
		m.AccessLog.Printf("Invalid time zone: %v", err)
		tz = time.UTC
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)
		duration := time.Since(start)

		m.AccessLog.Printf(`{%s} | {%s} | {%s} ==> {%s} | {%s} | {%d}`,
			time.Now().In(tz).Format(time.RFC850), r.RemoteAddr, r.Method, r.RequestURI, duration, rec.statusCode)
	})
}
