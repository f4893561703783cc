package routers

import (
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/delivery/http/controllers"
	"doctor-appointment-service/internal/app/delivery/http/middlewares"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	metricsHandler http.Handler,
	authController *controllers.AuthController,
	doctorController *controllers.DoctorController,
	userController *controllers.UserController,
	appointmentController *controllers.AppointmentController,
	paymentController *controllers.PaymentController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Razorpay-Signature"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.Metrics)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	router.Method(http.MethodGet, "/metrics", metricsHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Use(middlewares.Authenticate)
			r.Use(middlewares.Authorize)

			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, authController)
			})

			r.Route("/doctors", func(r chi.Router) {
				attachDoctorRoutes(r, doctorController)
			})

			r.Route("/admin", func(r chi.Router) {
				attachAdminRoutes(r, doctorController)
			})

			r.Route("/users", func(r chi.Router) {
				attachUserRoutes(r, userController)
			})

			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, appointmentController, paymentController)
			})

			r.Route("/payments", func(r chi.Router) {
				attachPaymentRoutes(r, paymentController)
			})
		})
	})
}
