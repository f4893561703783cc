package reconciler

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/models"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryDoctors struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
}

func (m *memoryDoctors) CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error) {
	return "", nil
}

func (m *memoryDoctors) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doctor, ok := m.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	clone := *doctor
	clone.SlotsBooked = doctor.SlotsBooked.Clone()
	return &clone, nil
}

func (m *memoryDoctors) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return nil, nil
}

func (m *memoryDoctors) FindAll(ctx context.Context) ([]models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Doctor, 0, len(m.doctors))
	for _, doctor := range m.doctors {
		out = append(out, models.Doctor{ID: doctor.ID})
	}
	return out, nil
}

func (m *memoryDoctors) UpdateProfile(ctx context.Context, doctor *models.Doctor) error {
	return nil
}

func (m *memoryDoctors) SetAvailability(ctx context.Context, doctorID string, available bool) error {
	return nil
}

func (m *memoryDoctors) Reserve(ctx context.Context, doctorID string, key models.SlotKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booked := m.doctors[doctorID].SlotsBooked
	booked[key.DateKey] = append(booked[key.DateKey], key.Time)
	return nil
}

func (m *memoryDoctors) Release(ctx context.Context, doctorID string, key models.SlotKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booked := m.doctors[doctorID].SlotsBooked
	kept := make([]string, 0)
	for _, t := range booked[key.DateKey] {
		if t != key.Time {
			kept = append(kept, t)
		}
	}
	booked[key.DateKey] = kept
	return nil
}

type memoryAppointments struct {
	byDoctor map[string][]models.Appointment
}

func (m *memoryAppointments) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	return "", nil
}

func (m *memoryAppointments) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return nil, nil
}

func (m *memoryAppointments) FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	return nil, nil
}

func (m *memoryAppointments) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return m.byDoctor[doctorID], nil
}

func (m *memoryAppointments) FindAll(ctx context.Context) ([]models.Appointment, error) {
	return nil, nil
}

func (m *memoryAppointments) UpdateState(ctx context.Context, appointment *models.Appointment, from models.AppointmentState) (bool, error) {
	return false, nil
}

func (m *memoryAppointments) MarkPaid(ctx context.Context, appointmentID string) (bool, error) {
	return false, nil
}

func (m *memoryAppointments) SetPaymentOrderID(ctx context.Context, appointmentID, orderID string) error {
	return nil
}

type memoryLocker struct {
	mu   sync.Mutex
	held map[string]string
}

func (l *memoryLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return false, "", nil
	}
	l.held[key] = key + "-token"
	return true, key + "-token", nil
}

func (l *memoryLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == lockValue {
		delete(l.held, key)
	}
	return nil
}

func (l *memoryLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

type nopCache struct {
	invalidated []string
}

func (c *nopCache) Get(doctorID string) (models.RegistrySnapshot, bool) {
	return models.RegistrySnapshot{}, false
}

func (c *nopCache) Generation(doctorID string) uint64 { return 0 }

func (c *nopCache) Add(snapshot models.RegistrySnapshot, generation uint64) bool { return false }

func (c *nopCache) Invalidate(doctorID string) {
	c.invalidated = append(c.invalidated, doctorID)
}

type countingMetrics struct {
	released, reserved int
}

func (m *countingMetrics) ObserveBooking(outcome string)      {}
func (m *countingMetrics) ObserveTransition(eventType string) {}
func (m *countingMetrics) ObserveReconciliation(released, reserved int) {
	m.released += released
	m.reserved += reserved
}

func appointment(doctorID, dateKey, slotTime string, state models.AppointmentState) models.Appointment {
	return models.Appointment{DoctorID: doctorID, SlotDate: dateKey, SlotTime: slotTime, State: state}
}

func TestWorker_RunOnce(t *testing.T) {
	doctors := &memoryDoctors{doctors: map[string]*models.Doctor{
		"d-1": {ID: "d-1", SlotsBooked: models.BookedSlots{
			"3_3_2025": {"10:00 AM", "10:30 AM"},
		}},
		"d-2": {ID: "d-2", SlotsBooked: models.BookedSlots{
			"4_3_2025": {"11:00 AM"},
		}},
	}}
	appointments := &memoryAppointments{byDoctor: map[string][]models.Appointment{
		"d-1": {
			appointment("d-1", "3_3_2025", "10:00 AM", models.AppointmentStateActive),
			// cancelled but still in the registry: orphan
			appointment("d-1", "3_3_2025", "10:30 AM", models.AppointmentStateCancelled),
			// completed appointments keep their slot; this one lost it
			appointment("d-1", "5_3_2025", "02:00 PM", models.AppointmentStateCompleted),
		},
		"d-2": {
			appointment("d-2", "4_3_2025", "11:00 AM", models.AppointmentStateActive),
		},
	}}
	lockSvc := &memoryLocker{held: map[string]string{}}
	cache := &nopCache{}
	metrics := &countingMetrics{}

	worker := NewWorker(zap.NewNop(), &config.InternalConfig{
		Booking:    config.AppBooking{LockTTL: time.Second, LockRetryAttempts: 3, LockRetryStep: time.Millisecond},
		Reconciler: config.AppReconciler{LeaderLockTTL: time.Minute},
	}, lockSvc, doctors, appointments, doctors, cache, metrics)

	released, reserved, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, released)
	assert.Equal(t, 1, reserved)
	assert.Equal(t, []string{"d-1"}, cache.invalidated)
	assert.Equal(t, 1, metrics.released)
	assert.Equal(t, 1, metrics.reserved)

	repaired := doctors.doctors["d-1"].SlotsBooked
	assert.True(t, repaired.Contains(models.SlotKey{DateKey: "3_3_2025", Time: "10:00 AM"}))
	assert.False(t, repaired.Contains(models.SlotKey{DateKey: "3_3_2025", Time: "10:30 AM"}))
	assert.True(t, repaired.Contains(models.SlotKey{DateKey: "5_3_2025", Time: "02:00 PM"}))
	assert.Empty(t, lockSvc.held)

	released, reserved, err = worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, released)
	assert.Zero(t, reserved)
}

func TestWorker_RunOnceWithoutLeadership(t *testing.T) {
	lockSvc := &memoryLocker{held: map[string]string{"appointment:reconciler:leader": "other"}}
	doctors := &memoryDoctors{doctors: map[string]*models.Doctor{}}

	worker := NewWorker(zap.NewNop(), &config.InternalConfig{}, lockSvc, doctors,
		&memoryAppointments{}, doctors, &nopCache{}, &countingMetrics{})

	released, reserved, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, released+reserved)
}

func TestWorker_StartDisabled(t *testing.T) {
	worker := NewWorker(zap.NewNop(), &config.InternalConfig{}, nil, nil, nil, nil, nil, nil)
	worker.Start(context.Background())
	assert.Nil(t, worker.cron)
	worker.Stop()
}
