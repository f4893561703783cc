package contracts

import (
	"context"
	"doctor-appointment-service/internal/app/models"
)

type EventPublisher interface {
	PublishAppointmentEvent(ctx context.Context, event models.AppointmentEvent) error
}
