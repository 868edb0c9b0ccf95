package routers

import (
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/delivery/http/controllers"
	"doctor-appointment-service/internal/app/delivery/http/middlewares"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	metricsHandler http.Handler,
	doctorController *controllers.DoctorController,
	appointmentController *controllers.AppointmentController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	window := time.Second
	if internalConfig.App.MaxTimeRequestsPerSeconds > 0 {
		window = time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	}
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, window)
	router.Use(rateLimiter)

	if internalConfig.App.RequestBodyLimitInMegabyte > 0 {
		router.Use(middleware.RequestSize(int64(internalConfig.App.RequestBodyLimitInMegabyte) << 20))
	}

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.RequestLogger)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	if metricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/doctors", func(r chi.Router) {
				attachDoctorRoutes(r, middlewares, doctorController)
			})

			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, middlewares, appointmentController)
			})
		})
	})
}
