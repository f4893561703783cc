package main

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/delivery/http/controllers"
	"doctor-appointment-service/internal/app/delivery/http/middlewares"
	"doctor-appointment-service/internal/app/delivery/http/routers"
	"doctor-appointment-service/internal/app/drivers/database"
	"doctor-appointment-service/internal/app/drivers/logger"
	"doctor-appointment-service/internal/app/drivers/messaging"
	"doctor-appointment-service/internal/app/drivers/storage"
	"doctor-appointment-service/internal/app/services/core/appointments"
	"doctor-appointment-service/internal/app/services/core/auth"
	"doctor-appointment-service/internal/app/services/core/doctors"
	"doctor-appointment-service/internal/app/services/core/payments"
	"doctor-appointment-service/internal/app/services/core/reconciler"
	"doctor-appointment-service/internal/app/services/core/session"
	"doctor-appointment-service/internal/app/services/core/slots"
	"doctor-appointment-service/internal/app/services/core/users"
	"doctor-appointment-service/internal/app/services/shared/locker"
	"doctor-appointment-service/internal/app/services/shared/metrics"
	"doctor-appointment-service/internal/app/services/shared/notification"
	"doctor-appointment-service/internal/app/services/shared/payment_gateway"
	"doctor-appointment-service/internal/app/services/shared/redis"
	"doctor-appointment-service/internal/app/services/shared/slotcache"
	minioStorage "doctor-appointment-service/internal/app/services/shared/storage"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	time.Local = internalConfig.Location()

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig, internalConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         log,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	err := bootstrapingTheApp(workerCtx, bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler: chiRouter,
	}

	go func() {
		log.Info("Server started", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) error {
	cfg := bootstrap.InternalConfig
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	log := bootstrap.Logger

	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	metricsCollector := metrics.NewMetricsCollector()
	slotCache := slotcache.NewLRUSlotCache(cfg.Cache.SlotRegistrySize, cfg.Cache.SlotRegistryTTL, log)
	imageStorage := minioStorage.NewMinioStorage(bootstrap.Minio, cfg.Minio.PublicBaseUrl, log)
	paymentGateway := payment_gateway.NewRazorpayService(cfg, log)
	eventPublisher, err := notification.NewRabbitMQPublisher(bootstrap.RabbitMQ, cfg.RabbitMQ.AppointmentEventsQueue, log)
	if err != nil {
		return err
	}

	enforcer, err := casbin.NewEnforcer(cfg.RBAC.ModelPath, cfg.RBAC.PolicyPath)
	if err != nil {
		return err
	}

	// Session
	sessionService := session.NewSessionService(redisRepository)

	// Repositories
	userRepository := users.NewUserMongoRepository(bootstrap.MongoDB, dbName)
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB, dbName)
	slotRegistry := doctors.NewSlotRegistryMongo(bootstrap.MongoDB, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName)

	// Usecases
	authUsecase := auth.NewAuthUsecase(userRepository, doctorRepository, sessionService, cfg, log)
	userUsecase := users.NewUserUsecase(userRepository, sessionService, imageStorage, cfg, log)
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, sessionService, imageStorage, slotCache, cfg, log)
	slotUsecase := slots.NewSlotUsecase(doctorRepository, slotCache, cfg, log)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		doctorRepository,
		userRepository,
		slotRegistry,
		slotCache,
		lockService,
		eventPublisher,
		metricsCollector,
		sessionService,
		cfg,
		log,
	)
	paymentUsecase := payments.NewPaymentUsecase(appointmentUsecase, paymentGateway, cfg, log)

	// Reconciliation worker
	worker := reconciler.NewWorker(log, cfg, lockService, doctorRepository, appointmentRepository, slotRegistry, slotCache, metricsCollector)
	worker.Start(ctx)
	bootstrap.WorkerStop = worker.Stop

	// Delivery
	middlewareInstance := middlewares.NewMiddlewares(log, cfg, sessionService, enforcer, metricsCollector)
	routers.SetupRoutes(
		bootstrap.Router,
		cfg,
		middlewareInstance,
		metricsCollector.Handler(),
		controllers.NewAuthController(log, authUsecase),
		controllers.NewDoctorController(log, doctorUsecase, slotUsecase),
		controllers.NewUserController(log, userUsecase),
		controllers.NewAppointmentController(log, appointmentUsecase),
		controllers.NewPaymentController(log, paymentUsecase),
	)
	return nil
}
