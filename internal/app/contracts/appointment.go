package contracts

import (
	"context"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
)

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (appointmentID string, err error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error)
	FindAll(ctx context.Context) ([]models.Appointment, error)
	// UpdateState writes the state of appointment only if the stored state is
	// still from. matched is false when another writer got there first.
	UpdateState(ctx context.Context, appointment *models.Appointment, from models.AppointmentState) (matched bool, err error)
	// MarkPaid sets payment on a non-cancelled appointment.
	MarkPaid(ctx context.Context, appointmentID string) (matched bool, err error)
	SetPaymentOrderID(ctx context.Context, appointmentID, orderID string) error
}

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, sessionData string, request *requests.BookAppointment) (*responses.BookAppointment, error)
	ListAppointments(ctx context.Context, sessionData string) ([]responses.Appointment, error)
	CancelAppointment(ctx context.Context, sessionData, appointmentID string) error
	CompleteAppointment(ctx context.Context, sessionData, appointmentID string) error
	ConfirmPayment(ctx context.Context, appointmentID string, proof models.SettlementProof) error
	// FindOwnedByPatient returns an appointment that belongs to the session patient.
	FindOwnedByPatient(ctx context.Context, sessionData, appointmentID string) (*models.Appointment, error)
	AttachPaymentOrder(ctx context.Context, appointmentID, orderID string) error
}

type PaymentUsecase interface {
	CreateOrder(ctx context.Context, sessionData, appointmentID string) (*responses.PaymentOrder, error)
	VerifyPayment(ctx context.Context, sessionData string, request *requests.VerifyPayment) (*responses.PaymentConfirmation, error)
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}
