package routers

import (
	"doctor-appointment-service/internal/app/delivery/http/controllers"
	"doctor-appointment-service/internal/app/delivery/http/middlewares"
	"doctor-appointment-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(middlewares.Authenticate)

	router.With(middlewares.RestrictTo(constvars.RoleUser), middlewares.BookingRateLimit).Post("/book", appointmentController.BookAppointment)
	router.Get("/doctor/{doctor_id}", appointmentController.GetDoctorAppointments)
	router.Get("/user/{user_id}", appointmentController.GetUserAppointments)
	router.With(middlewares.RestrictTo(constvars.RoleUser)).Get("/user", appointmentController.GetUserAppointments)
}
