package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gandall-service/internal/app/config"
	"gandall-service/internal/app/delivery/http/controllers"
	"gandall-service/internal/app/delivery/http/middlewares"
	"gandall-service/internal/app/delivery/http/routers"
	"gandall-service/internal/app/drivers/database"
	"gandall-service/internal/app/drivers/logger"
	"gandall-service/internal/app/drivers/messaging"
	"gandall-service/internal/app/drivers/storage"
	"gandall-service/internal/app/services/core/audits"
	"gandall-service/internal/app/services/core/countries"
	"gandall-service/internal/app/services/core/languages"
	"gandall-service/internal/app/services/core/organizations"
	"gandall-service/internal/app/services/core/patients"
	"gandall-service/internal/app/services/core/photos"
	"gandall-service/internal/app/services/core/practitioners"
	fhirOrganizations "gandall-service/internal/app/services/fhir_hapi/organizations"
	fhirPatients "gandall-service/internal/app/services/fhir_hapi/patients"
	fhirPractitioners "gandall-service/internal/app/services/fhir_hapi/practitioners"
	"gandall-service/internal/app/services/shared/auditqueue"
	"gandall-service/internal/app/services/shared/cache"
	"gandall-service/internal/app/services/shared/fhirauth"
	"gandall-service/internal/app/services/shared/ratelimiter"
	sharedStorage "gandall-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQConnection,
		Minio:          minioClient,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(&bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
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
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Error while closing dependencies: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	// Shared services
	cacheRepository := cache.NewRedisCache(bootstrap.Redis)
	minioStorage := sharedStorage.NewMinioStorage(bootstrap.Minio)
	tokenProvider := fhirauth.NewTokenProvider(bootstrap.InternalConfig, bootstrap.Logger)
	fhirLimiter := ratelimiter.NewFhirLimiter(bootstrap.InternalConfig.FHIR.MaxRequestsPerSecond)

	auditQueue, err := auditqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.RabbitMQ.AuditPrefetchCount)
	if err != nil {
		logrus.Fatalf("Failed to initialize audit queue: %v", err)
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// FHIR clients
	patientFhirClient := fhirPatients.NewPatientFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl, tokenProvider, fhirLimiter, bootstrap.Logger)
	practitionerFhirClient := fhirPractitioners.NewPractitionerFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl, tokenProvider, fhirLimiter, bootstrap.Logger)
	organizationFhirClient := fhirOrganizations.NewOrganizationFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl, tokenProvider, fhirLimiter, bootstrap.Logger)

	// Patient
	patientUsecase := patients.NewPatientUsecase(patientFhirClient, cacheRepository, auditQueue, bootstrap.InternalConfig, bootstrap.Logger)
	patientController := controllers.NewPatientController(bootstrap.Logger, patientUsecase)

	// Practitioner
	practitionerUsecase := practitioners.NewPractitionerUsecase(practitionerFhirClient, cacheRepository, auditQueue, bootstrap.InternalConfig, bootstrap.Logger)
	practitionerController := controllers.NewPractitionerController(bootstrap.Logger, practitionerUsecase)

	// Organization
	organizationUsecase := organizations.NewOrganizationUsecase(organizationFhirClient, cacheRepository, auditQueue, bootstrap.InternalConfig, bootstrap.Logger)
	organizationController := controllers.NewOrganizationController(bootstrap.Logger, organizationUsecase)

	// Photo
	photoUsecase := photos.NewPhotoUsecase(minioStorage, bootstrap.InternalConfig, bootstrap.Logger)
	photoController := controllers.NewPhotoController(bootstrap.Logger, photoUsecase)

	// Reference data
	languageUsecase := languages.NewLanguageUsecase(bootstrap.Logger)
	languageController := controllers.NewLanguageController(bootstrap.Logger, languageUsecase)

	countryUsecase := countries.NewCountryUsecase(bootstrap.Logger)
	countryController := controllers.NewCountryController(bootstrap.Logger, countryUsecase)

	// Audit
	auditRepository := audits.NewAuditMongoRepository(bootstrap.MongoDB, bootstrap.InternalConfig.MongoDB.GandallDbName)
	auditUsecase := audits.NewAuditUsecase(auditRepository, bootstrap.Logger)
	auditController := controllers.NewAuditController(bootstrap.Logger, auditUsecase)

	auditWorker := audits.NewWorker(bootstrap.Logger, bootstrap.InternalConfig, auditQueue, auditRepository)
	bootstrap.WorkerStop = auditWorker.Start(context.Background())

	// Health
	healthController := controllers.NewHealthController(bootstrap.Logger, bootstrap.InternalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		patientController,
		practitionerController,
		organizationController,
		photoController,
		languageController,
		countryController,
		auditController,
		healthController,
	)
}
