package slots

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"doctor-appointment-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.uber.org/zap"
)

type slotUsecase struct {
	DoctorRepository contracts.DoctorRepository
	SlotCache        contracts.SlotCache
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
	Clock            func() time.Time
}

var (
	slotUsecaseInstance contracts.SlotUsecase
	onceSlotUsecase     sync.Once
)

func NewSlotUsecase(
	doctorRepository contracts.DoctorRepository,
	slotCache contracts.SlotCache,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SlotUsecase {
	onceSlotUsecase.Do(func() {
		instance := &slotUsecase{
			DoctorRepository: doctorRepository,
			SlotCache:        slotCache,
			InternalConfig:   internalConfig,
			Log:              logger,
			Clock:            time.Now,
		}
		slotUsecaseInstance = instance
	})
	return slotUsecaseInstance
}

func (uc *slotUsecase) GetAvailableSlots(ctx context.Context, doctorID string) (*responses.DoctorSlots, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.GetAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	snapshot, err := uc.registrySnapshot(ctx, doctorID)
	if err != nil {
		uc.Log.Error("slotUsecase.GetAvailableSlots error loading registry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.Clock().In(uc.InternalConfig.Location())
	days := Calculate(snapshot.Booked, now)

	response := &responses.DoctorSlots{
		DoctorID:  doctorID,
		Available: snapshot.Available,
		Days:      make([]responses.DaySchedule, 0, len(days)),
	}
	for _, day := range days {
		schedule := responses.DaySchedule{
			DateKey: day.DateKey,
			Weekday: day.Date.Weekday().String(),
			Slots:   make([]responses.Slot, 0, len(day.Slots)),
		}
		for _, slot := range day.Slots {
			schedule.Slots = append(schedule.Slots, responses.Slot{
				DateKey:  slot.DateKey,
				Time:     slot.Time,
				DateTime: slot.Start.Format(time.RFC3339),
			})
		}
		response.Days = append(response.Days, schedule)
	}

	uc.Log.Info("slotUsecase.GetAvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	return response, nil
}

func (uc *slotUsecase) registrySnapshot(ctx context.Context, doctorID string) (models.RegistrySnapshot, error) {
	if snapshot, ok := uc.SlotCache.Get(doctorID); ok {
		return snapshot, nil
	}
	generation := uc.SlotCache.Generation(doctorID)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		if exceptions.IsKind(err, exceptions.KindNotFound) {
			return models.RegistrySnapshot{}, exceptions.ErrDoctorNotFound(err, doctorID)
		}
		return models.RegistrySnapshot{}, err
	}
	if doctor == nil {
		return models.RegistrySnapshot{}, exceptions.ErrDoctorNotFound(nil, doctorID)
	}

	snapshot := models.RegistrySnapshot{
		DoctorID:  doctorID,
		Available: doctor.Available,
		Booked:    doctor.SlotsBooked,
	}
	uc.SlotCache.Add(snapshot, generation)
	return snapshot, nil
}
