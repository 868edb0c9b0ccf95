package routers

import (
	"doctor-appointment-service/internal/app/delivery/http/controllers"
	"doctor-appointment-service/internal/app/delivery/http/middlewares"
	"doctor-appointment-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController) {
	router.Get("/all", doctorController.ListDoctors)
	router.Get("/{doctor_id}", doctorController.GetDoctorByID)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.With(middlewares.RestrictTo(constvars.RoleDoctor)).Get("/by-user/{user_id}", doctorController.GetDoctorByUser)
		r.With(middlewares.RestrictTo(constvars.RoleDoctor)).Post("/", doctorController.CreateDoctor)
		r.With(middlewares.RestrictTo(constvars.RoleDoctor)).Put("/{doctor_id}", doctorController.UpdateDoctor)
		r.With(middlewares.RestrictTo(constvars.RoleDoctor)).Delete("/{doctor_id}", doctorController.DeleteDoctor)
		r.Get("/{doctor_id}/appointments", doctorController.GetDoctorAppointments)
	})
}
