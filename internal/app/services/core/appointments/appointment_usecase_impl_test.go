package appointments

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/app/services/core/session"
	"doctor-appointment-service/internal/app/services/core/slots"
	"doctor-appointment-service/internal/app/services/shared/slotcache"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryStore backs every fake port so the registry and the appointments
// stay consistent the way the mongo collections do.
type memoryStore struct {
	mu           sync.Mutex
	doctors      map[string]*models.Doctor
	users        map[string]*models.User
	appointments map[string]*models.Appointment
	nextID       int
	failInsert   error
	failRelease  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		doctors:      map[string]*models.Doctor{},
		users:        map[string]*models.User{},
		appointments: map[string]*models.Appointment{},
	}
}

func (s *memoryStore) registry(doctorID string) models.BookedSlots {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doctors[doctorID].SlotsBooked.Clone()
}

type fakeDoctorRepository struct{ *memoryStore }

func (r fakeDoctorRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error) {
	return "", errors.New("not used")
}

func (r fakeDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	clone := *doctor
	clone.SlotsBooked = doctor.SlotsBooked.Clone()
	return &clone, nil
}

func (r fakeDoctorRepository) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return nil, nil
}

func (r fakeDoctorRepository) FindAll(ctx context.Context) ([]models.Doctor, error) {
	return nil, nil
}

func (r fakeDoctorRepository) UpdateProfile(ctx context.Context, doctor *models.Doctor) error {
	return nil
}

func (r fakeDoctorRepository) SetAvailability(ctx context.Context, doctorID string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[doctorID].Available = available
	return nil
}

type fakeUserRepository struct{ *memoryStore }

func (r fakeUserRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	return "", errors.New("not used")
}

func (r fakeUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r fakeUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}

func (r fakeUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	return nil
}

type fakeSlotRegistry struct{ *memoryStore }

func (r fakeSlotRegistry) Reserve(ctx context.Context, doctorID string, key models.SlotKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor := r.doctors[doctorID]
	if doctor.SlotsBooked.Contains(key) {
		return exceptions.ErrSlotConflict(nil, doctorID, key.DateKey, key.Time)
	}
	doctor.SlotsBooked[key.DateKey] = append(doctor.SlotsBooked[key.DateKey], key.Time)
	return nil
}

func (r fakeSlotRegistry) Release(ctx context.Context, doctorID string, key models.SlotKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failRelease != nil {
		return r.failRelease
	}
	doctor := r.doctors[doctorID]
	times := doctor.SlotsBooked[key.DateKey][:0]
	for _, t := range doctor.SlotsBooked[key.DateKey] {
		if t != key.Time {
			times = append(times, t)
		}
	}
	doctor.SlotsBooked[key.DateKey] = times
	return nil
}

type fakeAppointmentRepository struct{ *memoryStore }

func (r fakeAppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failInsert != nil {
		return "", r.failInsert
	}
	r.nextID++
	id := fmt.Sprintf("a-%d", r.nextID)
	stored := *appointment
	stored.ID = id
	r.appointments[id] = &stored
	return id, nil
}

func (r fakeAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	clone := *appointment
	return &clone, nil
}

func (r fakeAppointmentRepository) filter(match func(*models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Appointment, 0)
	for _, appointment := range r.appointments {
		if match(appointment) {
			out = append(out, *appointment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r fakeAppointmentRepository) FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	return r.filter(func(a *models.Appointment) bool { return a.UserID == userID }), nil
}

func (r fakeAppointmentRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.filter(func(a *models.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r fakeAppointmentRepository) FindAll(ctx context.Context) ([]models.Appointment, error) {
	return r.filter(func(a *models.Appointment) bool { return true }), nil
}

func (r fakeAppointmentRepository) UpdateState(ctx context.Context, appointment *models.Appointment, from models.AppointmentState) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[appointment.ID]
	if !ok || stored.CurrentState() != from {
		return false, nil
	}
	stored.State = appointment.State
	stored.Cancelled = appointment.Cancelled
	stored.IsCompleted = appointment.IsCompleted
	stored.UpdatedAt = appointment.UpdatedAt
	return true, nil
}

func (r fakeAppointmentRepository) MarkPaid(ctx context.Context, appointmentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[appointmentID]
	if !ok || stored.CurrentState() == models.AppointmentStateCancelled {
		return false, nil
	}
	stored.Payment = true
	return true, nil
}

func (r fakeAppointmentRepository) SetPaymentOrderID(ctx context.Context, appointmentID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[appointmentID]
	if !ok {
		return exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	stored.PaymentOrderID = orderID
	return nil
}

type fakeLocker struct {
	mu    sync.Mutex
	held  map[string]string
	count int
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return false, "", nil
	}
	l.count++
	token := fmt.Sprintf("t-%d", l.count)
	l.held[key] = token
	return true, token, nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == lockValue {
		delete(l.held, key)
	}
	return nil
}

func (l *fakeLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []models.AppointmentEvent
}

func (p *fakePublisher) PublishAppointmentEvent(ctx context.Context, event models.AppointmentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Type)
	}
	return out
}

type fakeMetrics struct {
	mu          sync.Mutex
	bookings    map[string]int
	transitions map[string]int
}

func (m *fakeMetrics) ObserveBooking(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[outcome]++
}

func (m *fakeMetrics) ObserveTransition(eventType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[eventType]++
}

func (m *fakeMetrics) ObserveReconciliation(released, reserved int) {}

const (
	doctorD  = "d-1"
	patient1 = "p-1"
	patient2 = "p-2"
	patient3 = "p-3"
)

// Mon 3 Mar 2025, 09:00
var monday0900 = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

type ledgerFixture struct {
	store     *memoryStore
	locker    *fakeLocker
	publisher *fakePublisher
	metrics   *fakeMetrics
	uc        *appointmentUsecase
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	store := newMemoryStore()
	store.doctors[doctorD] = &models.Doctor{
		ID:          doctorD,
		Name:        "Dr. D",
		Fees:        50,
		Available:   true,
		SlotsBooked: models.BookedSlots{},
	}
	for _, id := range []string{patient1, patient2, patient3} {
		store.users[id] = &models.User{ID: id, Name: "Patient " + id}
	}

	f := &ledgerFixture{
		store:     store,
		locker:    &fakeLocker{held: map[string]string{}},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{bookings: map[string]int{}, transitions: map[string]int{}},
	}
	f.uc = &appointmentUsecase{
		AppointmentRepository: fakeAppointmentRepository{store},
		DoctorRepository:      fakeDoctorRepository{store},
		UserRepository:        fakeUserRepository{store},
		SlotRegistry:          fakeSlotRegistry{store},
		SlotCache:             slotcache.NewLRUSlotCache(8, time.Minute, zap.NewNop()),
		LockService:           f.locker,
		EventPublisher:        f.publisher,
		Metrics:               f.metrics,
		SessionService:        session.NewSessionService(nil),
		InternalConfig: &config.InternalConfig{
			App:     config.App{Timezone: "UTC"},
			Booking: config.AppBooking{LockTTL: time.Second, LockRetryAttempts: 200, LockRetryStep: time.Millisecond},
		},
		Log:   zap.NewNop(),
		Clock: func() time.Time { return monday0900 },
	}
	return f
}

func sessionData(t *testing.T, userID, role string) string {
	t.Helper()
	raw, err := json.Marshal(models.Session{
		SessionID: "s-" + userID,
		UserID:    userID,
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	return string(raw)
}

func (f *ledgerFixture) book(t *testing.T, patientID, slotTime string) (string, error) {
	t.Helper()
	response, err := f.uc.BookAppointment(context.Background(), sessionData(t, patientID, constvars.RolePatient),
		&requests.BookAppointment{DoctorID: doctorD, SlotDate: "3_3_2025", SlotTime: slotTime})
	if err != nil {
		return "", err
	}
	return response.AppointmentID, nil
}

func slotTimes(schedule []slots.DaySchedule, day int) []string {
	out := make([]string, 0, len(schedule[day].Slots))
	for _, slot := range schedule[day].Slots {
		out = append(out, slot.Time)
	}
	return out
}

func TestScenarios(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	// Scenario A
	schedule := slots.Calculate(f.store.registry(doctorD), monday0900)
	require.Len(t, schedule, constvars.SlotScheduleDays)
	assert.Equal(t, "10:00 AM", schedule[0].Slots[0].Time)

	a1, err := f.book(t, patient1, "10:00 AM")
	require.NoError(t, err)

	stored, err := f.uc.AppointmentRepository.FindByID(ctx, a1)
	require.NoError(t, err)
	assert.Equal(t, 50.0, stored.Amount)
	assert.False(t, stored.Cancelled)
	assert.False(t, stored.IsCompleted)
	assert.False(t, stored.Payment)
	assert.Equal(t, models.AppointmentStateActive, stored.State)
	assert.Equal(t, monday0900, stored.CreatedAt)

	schedule = slots.Calculate(f.store.registry(doctorD), monday0900)
	assert.NotContains(t, slotTimes(schedule, 0), "10:00 AM")
	assert.Contains(t, slotTimes(schedule, 0), "10:30 AM")

	// Scenario B
	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, patientID := range []string{patient1, patient2} {
		wg.Add(1)
		go func(i int, patientID string) {
			defer wg.Done()
			_, results[i] = f.book(t, patientID, "10:30 AM")
		}(i, patientID)
	}
	wg.Wait()

	conflicts, successes := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case exceptions.IsKind(err, exceptions.KindSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	// Scenario C
	require.NoError(t, f.uc.CancelAppointment(ctx, sessionData(t, patient1, constvars.RolePatient), a1))
	assert.False(t, f.store.registry(doctorD).Contains(models.SlotKey{DateKey: "3_3_2025", Time: "10:00 AM"}))

	rebooked, err := f.book(t, patient2, "10:00 AM")
	require.NoError(t, err)
	assert.NotEqual(t, a1, rebooked)

	// Scenario D
	a2, err := f.book(t, patient3, "11:00 AM")
	require.NoError(t, err)
	require.NoError(t, f.uc.CompleteAppointment(ctx, sessionData(t, doctorD, constvars.RoleDoctor), a2))
	assert.True(t, f.store.registry(doctorD).Contains(models.SlotKey{DateKey: "3_3_2025", Time: "11:00 AM"}))

	_, err = f.book(t, patient2, "11:00 AM")
	assert.True(t, exceptions.IsKind(err, exceptions.KindSlotConflict))
	schedule = slots.Calculate(f.store.registry(doctorD), monday0900)
	assert.NotContains(t, slotTimes(schedule, 0), "11:00 AM")

	err = f.uc.CancelAppointment(ctx, sessionData(t, patient3, constvars.RolePatient), a2)
	assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidState))

	assert.Empty(t, f.locker.held)
	assert.Equal(t, 4, f.metrics.bookings[bookingOutcomeSuccess])
	assert.Equal(t, 2, f.metrics.bookings[string(exceptions.KindSlotConflict)])
}

func TestBookAppointment_Preconditions(t *testing.T) {
	t.Run("unknown doctor", func(t *testing.T) {
		f := newLedgerFixture(t)
		_, err := f.uc.BookAppointment(context.Background(), sessionData(t, patient1, constvars.RolePatient),
			&requests.BookAppointment{DoctorID: "missing", SlotDate: "not a date", SlotTime: "10:00 AM"})
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("unavailable doctor is checked before slot parsing", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.store.doctors[doctorD].Available = false
		_, err := f.book(t, patient1, "garbage")
		assert.True(t, exceptions.IsKind(err, exceptions.KindUnavailable))
	})

	t.Run("invalid date and time", func(t *testing.T) {
		f := newLedgerFixture(t)
		_, err := f.uc.BookAppointment(context.Background(), sessionData(t, patient1, constvars.RolePatient),
			&requests.BookAppointment{DoctorID: doctorD, SlotDate: "31_2_2025", SlotTime: "10:00 AM"})
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidInput))

		_, err = f.book(t, patient1, "25:00")
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidInput))
	})

	t.Run("off grid, outside window and past slots", func(t *testing.T) {
		f := newLedgerFixture(t)
		for _, slotTime := range []string{"10:15 AM", "09:30 AM", "09:00 PM"} {
			_, err := f.book(t, patient1, slotTime)
			assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidInput), slotTime)
		}

		f.uc.Clock = func() time.Time { return monday0900.Add(2 * time.Hour) }
		_, err := f.book(t, patient1, "11:00 AM")
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidInput))
		assert.Empty(t, f.store.registry(doctorD)["3_3_2025"])
	})

	t.Run("input is normalised", func(t *testing.T) {
		f := newLedgerFixture(t)
		response, err := f.uc.BookAppointment(context.Background(), sessionData(t, patient1, constvars.RolePatient),
			&requests.BookAppointment{DoctorID: doctorD, SlotDate: "2025-03-04", SlotTime: "1:30 pm"})
		require.NoError(t, err)

		stored, _ := f.uc.AppointmentRepository.FindByID(context.Background(), response.AppointmentID)
		assert.Equal(t, "4_3_2025", stored.SlotDate)
		assert.Equal(t, "01:30 PM", stored.SlotTime)
	})

	t.Run("only patients book", func(t *testing.T) {
		f := newLedgerFixture(t)
		_, err := f.uc.BookAppointment(context.Background(), sessionData(t, doctorD, constvars.RoleDoctor),
			&requests.BookAppointment{DoctorID: doctorD, SlotDate: "3_3_2025", SlotTime: "10:00 AM"})
		assert.True(t, exceptions.IsKind(err, exceptions.KindForbidden))
	})
}

func TestBookAppointment_InsertFailureReleasesSlot(t *testing.T) {
	f := newLedgerFixture(t)
	f.store.failInsert = exceptions.ErrMongoDBInsertDocument(errors.New("primary stepped down"))

	_, err := f.book(t, patient1, "10:00 AM")
	assert.True(t, exceptions.IsKind(err, exceptions.KindDependencyFailure))
	assert.Empty(t, f.store.registry(doctorD)["3_3_2025"])
	assert.Empty(t, f.store.appointments)
	assert.Empty(t, f.locker.held)
}

func TestBookAppointment_LockBusy(t *testing.T) {
	f := newLedgerFixture(t)
	f.uc.InternalConfig.Booking.LockRetryAttempts = 2
	f.locker.held[fmt.Sprintf(constvars.RedisDoctorLockKeyFormat, doctorD)] = "someone-else"

	_, err := f.book(t, patient1, "10:00 AM")
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindDependencyFailure))
	assert.True(t, exceptions.KindOf(err).Retryable())
	assert.Empty(t, f.store.registry(doctorD)["3_3_2025"])
}

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("ownership", func(t *testing.T) {
		f := newLedgerFixture(t)
		id, err := f.book(t, patient1, "10:00 AM")
		require.NoError(t, err)

		err = f.uc.CancelAppointment(ctx, sessionData(t, patient2, constvars.RolePatient), id)
		assert.True(t, exceptions.IsKind(err, exceptions.KindForbidden))
		err = f.uc.CancelAppointment(ctx, sessionData(t, "d-other", constvars.RoleDoctor), id)
		assert.True(t, exceptions.IsKind(err, exceptions.KindForbidden))

		require.NoError(t, f.uc.CancelAppointment(ctx, sessionData(t, doctorD, constvars.RoleDoctor), id))
	})

	t.Run("admin cancels and second cancel is rejected", func(t *testing.T) {
		f := newLedgerFixture(t)
		id, err := f.book(t, patient1, "10:00 AM")
		require.NoError(t, err)

		admin := sessionData(t, constvars.AdminSubjectID, constvars.RoleAdmin)
		require.NoError(t, f.uc.CancelAppointment(ctx, admin, id))

		err = f.uc.CancelAppointment(ctx, admin, id)
		assert.True(t, exceptions.IsKind(err, exceptions.KindAlreadyCancelled))
		assert.Equal(t, []string{constvars.AppointmentEventBooked, constvars.AppointmentEventCancelled}, f.publisher.types())
	})

	t.Run("not found", func(t *testing.T) {
		f := newLedgerFixture(t)
		err := f.uc.CancelAppointment(ctx, sessionData(t, patient1, constvars.RolePatient), "a-404")
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("release failure restores the appointment", func(t *testing.T) {
		f := newLedgerFixture(t)
		id, err := f.book(t, patient1, "10:00 AM")
		require.NoError(t, err)

		f.store.failRelease = errors.New("write conflict")
		err = f.uc.CancelAppointment(ctx, sessionData(t, patient1, constvars.RolePatient), id)
		assert.True(t, exceptions.IsKind(err, exceptions.KindDependencyFailure))

		stored, _ := f.uc.AppointmentRepository.FindByID(ctx, id)
		assert.Equal(t, models.AppointmentStateActive, stored.State)
		assert.False(t, stored.Cancelled)
		assert.True(t, f.store.registry(doctorD).Contains(stored.SlotKey()))
	})
}

func TestCompleteAppointment(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	doctor := sessionData(t, doctorD, constvars.RoleDoctor)

	id, err := f.book(t, patient1, "10:00 AM")
	require.NoError(t, err)

	err = f.uc.CompleteAppointment(ctx, sessionData(t, patient1, constvars.RolePatient), id)
	assert.True(t, exceptions.IsKind(err, exceptions.KindForbidden))

	require.NoError(t, f.uc.CompleteAppointment(ctx, doctor, id))
	require.NoError(t, f.uc.CompleteAppointment(ctx, doctor, id))
	assert.Equal(t, 1, f.metrics.transitions[constvars.AppointmentEventCompleted])

	t.Run("completed slot stays reserved", func(t *testing.T) {
		_, err := f.book(t, patient2, "10:00 AM")
		assert.True(t, exceptions.IsKind(err, exceptions.KindSlotConflict))

		appointments, err := f.uc.AppointmentRepository.FindByDoctorID(ctx, doctorD)
		require.NoError(t, err)
		assert.Len(t, appointments, 1)
	})

	cancelledID, err := f.book(t, patient2, "10:30 AM")
	require.NoError(t, err)
	require.NoError(t, f.uc.CancelAppointment(ctx, sessionData(t, patient2, constvars.RolePatient), cancelledID))

	err = f.uc.CompleteAppointment(ctx, doctor, cancelledID)
	assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidState))
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	id, err := f.book(t, patient1, "10:00 AM")
	require.NoError(t, err)

	err = f.uc.ConfirmPayment(ctx, id, models.SettlementProof{OrderID: "order_1", Settled: false})
	assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidState))

	proof := models.SettlementProof{OrderID: "order_1", Settled: true}
	require.NoError(t, f.uc.ConfirmPayment(ctx, id, proof))
	require.NoError(t, f.uc.ConfirmPayment(ctx, id, proof))
	assert.Equal(t, 1, f.metrics.transitions[constvars.AppointmentEventPaid])

	stored, _ := f.uc.AppointmentRepository.FindByID(ctx, id)
	assert.True(t, stored.Payment)

	owned, err := f.uc.FindOwnedByPatient(ctx, sessionData(t, patient1, constvars.RolePatient), id)
	require.NoError(t, err)
	assert.True(t, exceptions.IsKind(owned.CanStartPayment(), exceptions.KindInvalidState))

	_, err = f.uc.FindOwnedByPatient(ctx, sessionData(t, patient2, constvars.RolePatient), id)
	assert.True(t, exceptions.IsKind(err, exceptions.KindForbidden))

	cancelledID, err := f.book(t, patient2, "10:30 AM")
	require.NoError(t, err)
	require.NoError(t, f.uc.CancelAppointment(ctx, sessionData(t, patient2, constvars.RolePatient), cancelledID))
	err = f.uc.ConfirmPayment(ctx, cancelledID, proof)
	assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidState))

	err = f.uc.ConfirmPayment(ctx, "a-404", proof)
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
}

func TestListAppointments(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	late, err := f.book(t, patient1, "04:00 PM")
	require.NoError(t, err)
	f.uc.Clock = func() time.Time { return monday0900.Add(time.Minute) }
	early, err := f.book(t, patient1, "10:00 AM")
	require.NoError(t, err)
	_, err = f.book(t, patient2, "11:00 AM")
	require.NoError(t, err)

	mine, err := f.uc.ListAppointments(ctx, sessionData(t, patient1, constvars.RolePatient))
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, late, mine[0].ID)
	assert.Equal(t, early, mine[1].ID)

	assigned, err := f.uc.ListAppointments(ctx, sessionData(t, doctorD, constvars.RoleDoctor))
	require.NoError(t, err)
	assert.Len(t, assigned, 3)

	all, err := f.uc.ListAppointments(ctx, sessionData(t, constvars.AdminSubjectID, constvars.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.uc.ListAppointments(ctx, sessionData(t, "p-ghost", constvars.RolePatient))
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
}
