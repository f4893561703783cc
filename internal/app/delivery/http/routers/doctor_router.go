package routers

import (
	"doctor-appointment-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, doctorController *controllers.DoctorController) {
	router.Get("/", doctorController.FindAll)
	router.Get("/me", doctorController.GetProfile)
	router.Put("/me", doctorController.UpdateProfile)
	router.Get("/{doctorID}", doctorController.FindByID)
	router.Get("/{doctorID}/slots", doctorController.GetAvailableSlots)
	router.Patch("/{doctorID}/availability", doctorController.ChangeAvailability)
}

func attachAdminRoutes(router chi.Router, doctorController *controllers.DoctorController) {
	router.Post("/doctors", doctorController.CreateDoctor)
}
