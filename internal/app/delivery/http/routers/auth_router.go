package routers

import (
	"doctor-appointment-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, authController *controllers.AuthController) {
	router.Post("/register", authController.RegisterPatient)
	router.Post("/login/patient", authController.LoginPatient)
	router.Post("/login/doctor", authController.LoginDoctor)
	router.Post("/login/admin", authController.LoginAdmin)
	router.Post("/logout", authController.Logout)
}
