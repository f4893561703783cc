package routers

import (
	"doctor-appointment-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, appointmentController *controllers.AppointmentController, paymentController *controllers.PaymentController) {
	router.Get("/", appointmentController.FindAll)
	router.Post("/", appointmentController.CreateAppointment)
	router.Post("/{appointmentID}/cancel", appointmentController.CancelAppointment)
	router.Post("/{appointmentID}/complete", appointmentController.CompleteAppointment)
	router.Post("/{appointmentID}/payment-order", paymentController.CreateOrder)
}

func attachPaymentRoutes(router chi.Router, paymentController *controllers.PaymentController) {
	router.Post("/verify", paymentController.VerifyPayment)
	router.Post("/webhook", paymentController.HandleWebhook)
}
