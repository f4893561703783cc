package reconciler

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/app/services/shared/locker"
	"doctor-appointment-service/internal/pkg/constvars"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const fallbackCronSpec = "@every 15m"

// Worker periodically repairs each doctor's slot registry against the
// appointments that should hold a slot. It only matters after a double
// failure in booking or cancellation, so it never runs inside a request.
type Worker struct {
	log          *zap.Logger
	cfg          *config.InternalConfig
	locker       contracts.LockerService
	doctors      contracts.DoctorRepository
	appointments contracts.AppointmentRepository
	registry     contracts.SlotRegistry
	cache        contracts.SlotCache
	metrics      contracts.BookingMetrics
	cron         *cron.Cron
	runCtx       context.Context
	cancel       context.CancelFunc
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	doctors contracts.DoctorRepository,
	appointments contracts.AppointmentRepository,
	registry contracts.SlotRegistry,
	cache contracts.SlotCache,
	metrics contracts.BookingMetrics,
) *Worker {
	return &Worker{
		log:          log,
		cfg:          cfg,
		locker:       lockerSvc,
		doctors:      doctors,
		appointments: appointments,
		registry:     registry,
		cache:        cache,
		metrics:      metrics,
	}
}

// Start schedules the worker. An empty cron spec leaves it disabled.
func (w *Worker) Start(ctx context.Context) {
	spec := w.cfg.Reconciler.CronSpec
	if spec == "" {
		w.log.Info("reconciler.worker: disabled, no cron spec configured")
		return
	}

	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("reconciler.worker: invalid cron spec, falling back",
			zap.String("spec", spec),
			zap.String("fallback", fallbackCronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for an in-flight run to finish.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	released, reserved, err := w.RunOnce(ctx)
	if err != nil {
		w.log.Warn("reconciler.worker: run failed", zap.Error(err))
		return
	}
	w.log.Info("reconciler.worker: run finished",
		zap.Int("released", released),
		zap.Int("reserved", reserved),
	)
}

// RunOnce reconciles every doctor when this instance wins the leader lock.
// It returns zero counts without error when another instance is leading.
func (w *Worker) RunOnce(ctx context.Context) (released, reserved int, err error) {
	ttl := w.cfg.Reconciler.LeaderLockTTL
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisReconcilerLeaderLockKey, ttl)
	if err != nil {
		return 0, 0, err
	}
	if !acquired {
		w.log.Info("reconciler.worker: leader lock held by another instance")
		return 0, 0, nil
	}
	defer w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisReconcilerLeaderLockKey, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go w.refreshLeaderLock(refreshCtx, token, ttl)

	doctors, err := w.doctors.FindAll(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, doctor := range doctors {
		if ctx.Err() != nil {
			break
		}
		r, s, err := w.reconcileDoctor(ctx, doctor.ID)
		if err != nil {
			w.log.Warn("reconciler.worker: doctor skipped",
				zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
				zap.Error(err),
			)
			continue
		}
		released += r
		reserved += s
	}

	w.metrics.ObserveReconciliation(released, reserved)
	return released, reserved, nil
}

func (w *Worker) refreshLeaderLock(ctx context.Context, token string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	tick := time.NewTicker(ttl / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := w.locker.Refresh(ctx, constvars.RedisReconcilerLeaderLockKey, token, ttl); err != nil {
				w.log.Warn("reconciler.worker: failed to refresh leader lock", zap.Error(err))
			}
		}
	}
}

// reconcileDoctor runs under the same lock as booking and cancellation, so
// the registry and the appointments cannot move underneath it.
func (w *Worker) reconcileDoctor(ctx context.Context, doctorID string) (released, reserved int, err error) {
	booking := w.cfg.Booking
	lockKey := fmt.Sprintf(constvars.RedisDoctorLockKeyFormat, doctorID)
	token, err := locker.Acquire(ctx, w.locker, lockKey, booking.LockTTL, booking.LockRetryAttempts, booking.LockRetryStep)
	if err != nil {
		return 0, 0, err
	}
	defer w.locker.Unlock(context.WithoutCancel(ctx), lockKey, token)

	doctor, err := w.doctors.FindByID(ctx, doctorID)
	if err != nil || doctor == nil {
		return 0, 0, err
	}
	appointments, err := w.appointments.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return 0, 0, err
	}

	held := make(map[models.SlotKey]bool, len(appointments))
	for i := range appointments {
		if appointments[i].HoldsSlot() {
			held[appointments[i].SlotKey()] = true
		}
	}

	for _, key := range doctor.SlotsBooked.Keys() {
		if held[key] {
			continue
		}
		if err := w.registry.Release(ctx, doctorID, key); err != nil {
			return released, reserved, err
		}
		released++
	}

	for key := range held {
		if doctor.SlotsBooked.Contains(key) {
			continue
		}
		if err := w.registry.Reserve(ctx, doctorID, key); err != nil {
			return released, reserved, err
		}
		reserved++
	}

	if released+reserved > 0 {
		w.cache.Invalidate(doctorID)
		w.log.Info("reconciler.worker: registry repaired",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Int("released", released),
			zap.Int("reserved", reserved),
		)
	}
	return released, reserved, nil
}
