package main

import (
	"context"
	"medicore-service/internal/app/config"
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/app/delivery/http/routers"
	"medicore-service/internal/app/drivers/database"
	"medicore-service/internal/app/drivers/logger"
	"medicore-service/internal/app/drivers/messaging"
	"medicore-service/internal/app/drivers/storage"
	"medicore-service/internal/app/services/core/admissions"
	"medicore-service/internal/app/services/core/beds"
	"medicore-service/internal/app/services/core/departments"
	"medicore-service/internal/app/services/core/dispositions"
	"medicore-service/internal/app/services/core/encounters"
	"medicore-service/internal/app/services/core/surgeries"
	"medicore-service/internal/app/services/core/waitlists"
	"medicore-service/internal/app/services/shared/auditarchive"
	"medicore-service/internal/app/services/shared/eventbus"
	"medicore-service/internal/app/services/shared/locker"
	redisrepo "medicore-service/internal/app/services/shared/redis"
	"medicore-service/internal/app/services/shared/sequence"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	logrusLogger := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrusLogger.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitConn,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	ctx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	bootstrapTheApp(ctx, &bootstrap, logrusLogger, minioClient)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrusLogger.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logrusLogger.Fatalf("Server forced to shutdown: %v", err)
	}

	cancelWorkers()
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrusLogger.Fatalf("Failed to shut down cleanly: %v", err)
	}

	logrusLogger.Println("Server exiting")
}

func bootstrapTheApp(ctx context.Context, bootstrap *config.Bootstrap, logrusLogger *logrus.Logger, minioClient *minio.Client) {
	// Shared services
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	sequenceService := sequence.NewSequenceService(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName, bootstrap.Logger)

	eventPublisher, err := eventbus.NewPublisher(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.Disposition.EventQueueName)
	if err != nil {
		logrusLogger.Fatalf("Failed to initialize event publisher: %v", err)
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Repositories
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	encounterRepository := encounters.NewEncounterMongoRepository(bootstrap.MongoDB, dbName)
	bedRepository := beds.NewBedMongoRepository(bootstrap.MongoDB, dbName, redisRepository, bootstrap.Logger)
	admissionRepository := admissions.NewAdmissionMongoRepository(bootstrap.MongoDB, dbName)
	waitlistRepository := waitlists.NewWaitlistMongoRepository(bootstrap.MongoDB, dbName)
	surgeryRepository := surgeries.NewSurgeryMongoRepository(bootstrap.MongoDB, dbName)
	departmentRepository := departments.NewDepartmentMongoRepository(bootstrap.MongoDB, dbName)

	// Disposition
	dispositionUsecase := dispositions.NewDispositionUsecase(
		encounterRepository,
		bedRepository,
		admissionRepository,
		waitlistRepository,
		surgeryRepository,
		departmentRepository,
		sequenceService,
		eventPublisher,
		bootstrap.Logger,
	)
	dispositionController := dispositions.NewDispositionController(bootstrap.Logger, dispositionUsecase, bootstrap.InternalConfig)

	// Bed
	bedUsecase := beds.NewBedUsecase(bedRepository, redisRepository, eventPublisher, bootstrap.Logger)
	bedController := beds.NewBedController(bootstrap.Logger, bedUsecase, bootstrap.InternalConfig)

	// Waitlist monitor
	waitlistMonitor := waitlists.NewMonitor(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		lockerService,
		waitlistRepository,
		bedRepository,
		admissionRepository,
		sequenceService,
		eventPublisher,
	)
	bootstrap.WaitlistMonitorStop = waitlistMonitor.Start(ctx)

	// Audit archive
	auditWorker, err := auditarchive.NewWorker(bootstrap.RabbitMQ, minioClient, bootstrap.Logger, bootstrap.InternalConfig)
	if err != nil {
		logrusLogger.Fatalf("Failed to initialize audit archive worker: %v", err)
	}
	auditStop, err := auditWorker.Start(ctx)
	if err != nil {
		logrusLogger.Fatalf("Failed to start audit archive worker: %v", err)
	}
	bootstrap.AuditArchiveStop = auditStop

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, logrusLogger, middlewares, dispositionController, bedController)
}
