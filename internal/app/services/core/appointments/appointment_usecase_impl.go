package appointments

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/app/services/core/slots"
	"doctor-appointment-service/internal/app/services/shared/locker"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

const bookingOutcomeSuccess = "success"

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	DoctorRepository      contracts.DoctorRepository
	UserRepository        contracts.UserRepository
	SlotRegistry          contracts.SlotRegistry
	SlotCache             contracts.SlotCache
	LockService           contracts.LockerService
	EventPublisher        contracts.EventPublisher
	Metrics               contracts.BookingMetrics
	SessionService        contracts.SessionService
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	Clock                 func() time.Time
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	userRepository contracts.UserRepository,
	slotRegistry contracts.SlotRegistry,
	slotCache contracts.SlotCache,
	lockService contracts.LockerService,
	eventPublisher contracts.EventPublisher,
	metrics contracts.BookingMetrics,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		instance := &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			DoctorRepository:      doctorRepository,
			UserRepository:        userRepository,
			SlotRegistry:          slotRegistry,
			SlotCache:             slotCache,
			LockService:           lockService,
			EventPublisher:        eventPublisher,
			Metrics:               metrics,
			SessionService:        sessionService,
			InternalConfig:        internalConfig,
			Log:                   logger,
			Clock:                 time.Now,
		}
		appointmentUsecaseInstance = instance
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) BookAppointment(ctx context.Context, sessionData string, request *requests.BookAppointment) (*responses.BookAppointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.BookAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingSlotDateKey, request.SlotDate),
		zap.String(constvars.LoggingSlotTimeKey, request.SlotTime),
	)

	appointment, err := uc.bookAppointment(ctx, sessionData, request)
	if err != nil {
		uc.Metrics.ObserveBooking(string(exceptions.KindOf(err)))
		uc.Log.Error("appointmentUsecase.BookAppointment failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorKindKey, string(exceptions.KindOf(err))),
			zap.Error(err),
		)
		return nil, err
	}
	uc.Metrics.ObserveBooking(bookingOutcomeSuccess)

	uc.SlotCache.Invalidate(appointment.DoctorID)
	uc.publish(ctx, constvars.AppointmentEventBooked, appointment)

	uc.Log.Info("appointmentUsecase.BookAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return &responses.BookAppointment{AppointmentID: appointment.ID}, nil
}

func (uc *appointmentUsecase) bookAppointment(ctx context.Context, sessionData string, request *requests.BookAppointment) (*models.Appointment, error) {
	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}
	if !session.IsPatient() {
		return nil, exceptions.ErrRoleNotPermitted(nil, session.Role, "book", constvars.ResourceAppointments)
	}

	user, err := uc.findUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	doctor, err := uc.findDoctor(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.Available {
		return nil, exceptions.ErrDoctorUnavailable(nil, doctor.ID)
	}

	key, err := uc.resolveSlot(request.SlotDate, request.SlotTime)
	if err != nil {
		return nil, err
	}
	if doctor.SlotsBooked.Contains(key) {
		return nil, exceptions.ErrSlotConflict(nil, doctor.ID, key.DateKey, key.Time)
	}

	unlock, err := uc.lockDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// the registry write is the authoritative conflict check
	err = uc.SlotRegistry.Reserve(ctx, doctor.ID, key)
	if err != nil {
		return nil, err
	}

	appointment := models.NewAppointment(user, doctor, key)
	appointment.SetCreatedAtUpdatedAt(uc.Clock())

	appointmentID, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		releaseErr := uc.SlotRegistry.Release(ctx, doctor.ID, key)
		if releaseErr != nil {
			uc.Log.Error("appointmentUsecase.BookAppointment compensating release failed, left for reconciler",
				zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
				zap.String(constvars.LoggingSlotDateKey, key.DateKey),
				zap.String(constvars.LoggingSlotTimeKey, key.Time),
				zap.Error(releaseErr),
			)
		}
		return nil, err
	}
	appointment.ID = appointmentID
	return appointment, nil
}

// resolveSlot normalises the requested date and time and rejects slots off
// the working grid or already in the past.
func (uc *appointmentUsecase) resolveSlot(slotDate, slotTime string) (models.SlotKey, error) {
	loc := uc.InternalConfig.Location()

	day, err := utils.ParseDateKey(slotDate, loc)
	if err != nil {
		return models.SlotKey{}, exceptions.ErrInvalidDateKey(err, slotDate)
	}
	hour, minute, err := utils.ParseSlotTime(slotTime)
	if err != nil {
		return models.SlotKey{}, exceptions.ErrInvalidSlotTime(err, slotTime)
	}

	key := models.SlotKey{DateKey: utils.FormatDateKey(day), Time: utils.FormatSlotTime(hour, minute)}
	if !slots.IsBookable(hour, minute) {
		return models.SlotKey{}, exceptions.ErrSlotOutsideWindow(nil, key.Time)
	}
	if !slots.SlotStart(day, hour, minute).After(uc.Clock().In(loc)) {
		return models.SlotKey{}, exceptions.ErrSlotInPast(nil, key.DateKey, key.Time)
	}
	return key, nil
}

func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, sessionData, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return err
	}

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	switch {
	case session.IsAdmin():
	case session.IsPatient() && appointment.UserID == session.UserID:
	case session.IsDoctor() && appointment.DoctorID == session.UserID:
	default:
		return exceptions.ErrNotAppointmentOwner(nil, session.UserID, session.Role, appointmentID)
	}

	from := appointment.CurrentState()
	if err := appointment.Cancel(); err != nil {
		return err
	}
	appointment.SetUpdatedAt(uc.Clock())

	unlock, err := uc.lockDoctor(ctx, appointment.DoctorID)
	if err != nil {
		return err
	}
	defer unlock()

	matched, err := uc.AppointmentRepository.UpdateState(ctx, appointment, from)
	if err != nil {
		return err
	}
	if !matched {
		return uc.staleTransition(ctx, appointmentID, (*models.Appointment).Cancel)
	}

	err = uc.SlotRegistry.Release(ctx, appointment.DoctorID, appointment.SlotKey())
	if err != nil {
		uc.Log.Error("appointmentUsecase.CancelAppointment error releasing slot, restoring appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		appointment.Reactivate()
		appointment.SetUpdatedAt(uc.Clock())
		if _, restoreErr := uc.AppointmentRepository.UpdateState(ctx, appointment, models.AppointmentStateCancelled); restoreErr != nil {
			uc.Log.Error("appointmentUsecase.CancelAppointment error restoring appointment, left for reconciler",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
				zap.Error(restoreErr),
			)
		}
		return exceptions.ErrSlotCompensationFailed(err)
	}

	uc.SlotCache.Invalidate(appointment.DoctorID)
	uc.Metrics.ObserveTransition(constvars.AppointmentEventCancelled)
	uc.publish(ctx, constvars.AppointmentEventCancelled, appointment)

	uc.Log.Info("appointmentUsecase.CancelAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingRoleKey, session.Role),
	)
	return nil
}

// CompleteAppointment leaves the slot registry untouched.
func (uc *appointmentUsecase) CompleteAppointment(ctx context.Context, sessionData, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CompleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return err
	}

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !session.IsDoctor() || appointment.DoctorID != session.UserID {
		return exceptions.ErrNotAppointmentOwner(nil, session.UserID, session.Role, appointmentID)
	}

	from := appointment.CurrentState()
	changed, err := appointment.Complete()
	if err != nil {
		return err
	}
	if !changed {
		uc.Log.Info("appointmentUsecase.CompleteAppointment already completed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		)
		return nil
	}
	appointment.SetUpdatedAt(uc.Clock())

	matched, err := uc.AppointmentRepository.UpdateState(ctx, appointment, from)
	if err != nil {
		return err
	}
	if !matched {
		return uc.staleTransition(ctx, appointmentID, func(a *models.Appointment) error {
			_, err := a.Complete()
			return err
		})
	}

	uc.Metrics.ObserveTransition(constvars.AppointmentEventCompleted)
	uc.publish(ctx, constvars.AppointmentEventCompleted, appointment)

	uc.Log.Info("appointmentUsecase.CompleteAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return nil
}

// ConfirmPayment is safe to call repeatedly for the same settled order.
func (uc *appointmentUsecase) ConfirmPayment(ctx context.Context, appointmentID string, proof models.SettlementProof) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ConfirmPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingOrderIDKey, proof.OrderID),
	)

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !proof.Settled {
		return exceptions.ErrPaymentNotSettled(nil, proof.OrderID)
	}

	changed, err := appointment.SettlePayment()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	matched, err := uc.AppointmentRepository.MarkPaid(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !matched {
		return uc.staleTransition(ctx, appointmentID, func(a *models.Appointment) error {
			_, err := a.SettlePayment()
			return err
		})
	}

	uc.Metrics.ObserveTransition(constvars.AppointmentEventPaid)
	uc.publish(ctx, constvars.AppointmentEventPaid, appointment)

	uc.Log.Info("appointmentUsecase.ConfirmPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return nil
}

func (uc *appointmentUsecase) ListAppointments(ctx context.Context, sessionData string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}

	var appointments []models.Appointment
	switch {
	case session.IsPatient():
		if _, err := uc.findUser(ctx, session.UserID); err != nil {
			return nil, err
		}
		appointments, err = uc.AppointmentRepository.FindByUserID(ctx, session.UserID)
		if err == nil {
			sortBySlotDesc(appointments, uc.InternalConfig.Location())
		}
	case session.IsDoctor():
		if _, err := uc.findDoctor(ctx, session.UserID); err != nil {
			return nil, err
		}
		appointments, err = uc.AppointmentRepository.FindByDoctorID(ctx, session.UserID)
	case session.IsAdmin():
		appointments, err = uc.AppointmentRepository.FindAll(ctx)
	default:
		return nil, exceptions.ErrRoleNotPermitted(nil, session.Role, "list", constvars.ResourceAppointments)
	}
	if err != nil {
		uc.Log.Error("appointmentUsecase.ListAppointments error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		response = append(response, appointments[i].ToResponse())
	}

	uc.Log.Info("appointmentUsecase.ListAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleKey, session.Role),
		zap.Int(constvars.LoggingCountKey, len(response)),
	)
	return response, nil
}

func (uc *appointmentUsecase) FindOwnedByPatient(ctx context.Context, sessionData, appointmentID string) (*models.Appointment, error) {
	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !session.IsPatient() || appointment.UserID != session.UserID {
		return nil, exceptions.ErrNotAppointmentOwner(nil, session.UserID, session.Role, appointmentID)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) AttachPaymentOrder(ctx context.Context, appointmentID, orderID string) error {
	return uc.AppointmentRepository.SetPaymentOrderID(ctx, appointmentID, orderID)
}

// staleTransition re-reads an appointment whose conditional update matched
// nothing and replays the transition on the fresh copy. A nil result means
// another writer already reached the same end state.
func (uc *appointmentUsecase) staleTransition(ctx context.Context, appointmentID string, transition func(*models.Appointment) error) error {
	fresh, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	before := fresh.CurrentState()
	paid := fresh.Payment
	if err := transition(fresh); err != nil {
		return err
	}
	if fresh.CurrentState() == before && fresh.Payment == paid {
		return nil
	}
	return exceptions.ErrAppointmentStateChanged(nil, appointmentID)
}

// lockDoctor serialises registry writers of one doctor.
func (uc *appointmentUsecase) lockDoctor(ctx context.Context, doctorID string) (func(), error) {
	key := fmt.Sprintf(constvars.RedisDoctorLockKeyFormat, doctorID)
	booking := uc.InternalConfig.Booking

	token, err := locker.Acquire(ctx, uc.LockService, key, booking.LockTTL, booking.LockRetryAttempts, booking.LockRetryStep)
	if err != nil {
		return nil, err
	}
	return func() {
		// a fresh context so a cancelled request still releases its lock
		if err := uc.LockService.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			uc.Log.Warn("appointmentUsecase.lockDoctor unlock failed",
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}, nil
}

// publish is best effort; the appointment is already committed.
func (uc *appointmentUsecase) publish(ctx context.Context, eventType string, appointment *models.Appointment) {
	event := models.NewAppointmentEvent(eventType, appointment, uc.Clock())
	if err := uc.EventPublisher.PublishAppointmentEvent(ctx, event); err != nil {
		uc.Log.Warn("appointmentUsecase.publish failed",
			zap.String(constvars.LoggingEventTypeKey, eventType),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}
}

func (uc *appointmentUsecase) findAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		if exceptions.IsKind(err, exceptions.KindNotFound) {
			return nil, exceptions.ErrAppointmentNotFound(err, appointmentID)
		}
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) findDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		if exceptions.IsKind(err, exceptions.KindNotFound) {
			return nil, exceptions.ErrDoctorNotFound(err, doctorID)
		}
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, doctorID)
	}
	return doctor, nil
}

func (uc *appointmentUsecase) findUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		if exceptions.IsKind(err, exceptions.KindNotFound) {
			return nil, exceptions.ErrUserNotFound(err, userID)
		}
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotFound(nil, userID)
	}
	return user, nil
}

// sortBySlotDesc orders a patient's appointments by slot start, newest first,
// falling back to creation time. Unparseable slots sort last.
func sortBySlotDesc(appointments []models.Appointment, loc *time.Location) {
	type entry struct {
		start       time.Time
		appointment models.Appointment
	}
	entries := make([]entry, len(appointments))
	for i := range appointments {
		entries[i] = entry{start: slotStartOf(&appointments[i], loc), appointment: appointments[i]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].start.Equal(entries[j].start) {
			return entries[i].start.After(entries[j].start)
		}
		return entries[i].appointment.CreatedAt.After(entries[j].appointment.CreatedAt)
	})
	for i := range entries {
		appointments[i] = entries[i].appointment
	}
}

func slotStartOf(appointment *models.Appointment, loc *time.Location) time.Time {
	day, err := utils.ParseDateKey(appointment.SlotDate, loc)
	if err != nil {
		return time.Time{}
	}
	hour, minute, err := utils.ParseSlotTime(appointment.SlotTime)
	if err != nil {
		return day
	}
	return slots.SlotStart(day, hour, minute)
}
