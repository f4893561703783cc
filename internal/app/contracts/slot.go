package contracts

import (
	"context"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/dto/responses"
)

// SlotRegistry is the only writer of a doctor's booked slots.
type SlotRegistry interface {
	// Reserve fails with a slot conflict when key is already booked.
	Reserve(ctx context.Context, doctorID string, key models.SlotKey) error
	// Release succeeds when key is absent.
	Release(ctx context.Context, doctorID string, key models.SlotKey) error
}

type SlotCache interface {
	Get(doctorID string) (models.RegistrySnapshot, bool)
	// Generation is bumped by every Invalidate of doctorID. Read it before
	// loading the registry and hand it to Add.
	Generation(doctorID string) uint64
	// Add drops the snapshot and returns false when doctorID was invalidated
	// after generation was read.
	Add(snapshot models.RegistrySnapshot, generation uint64) bool
	Invalidate(doctorID string)
}

type SlotUsecase interface {
	GetAvailableSlots(ctx context.Context, doctorID string) (*responses.DoctorSlots, error)
}
