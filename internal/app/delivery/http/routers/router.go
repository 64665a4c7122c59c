package routers

import (
	"time"

	"gandall-service/internal/app/config"
	"gandall-service/internal/app/delivery/http/controllers"
	"gandall-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	patientController *controllers.PatientController,
	practitionerController *controllers.PractitionerController,
	organizationController *controllers.OrganizationController,
	photoController *controllers.PhotoController,
	languageController *controllers.LanguageController,
	countryController *controllers.CountryController,
	auditController *controllers.AuditController,
	healthController *controllers.HealthController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id", "x-api-key"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.RequestBodyLimit)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.APIKeyAuth)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/patients", func(r chi.Router) {
			attachPatientRoutes(r, middlewares, patientController)
		})

		r.Route("/practitioners", func(r chi.Router) {
			attachPractitionerRoutes(r, middlewares, practitionerController)
		})

		r.Route("/organizations", func(r chi.Router) {
			attachOrganizationRoutes(r, middlewares, organizationController)
		})

		r.Route("/resources", func(r chi.Router) {
			attachPhotoRoutes(r, middlewares, photoController)
		})

		r.Route("/reference", func(r chi.Router) {
			attachReferenceRoutes(r, middlewares, languageController, countryController)
		})

		r.Route("/audits", func(r chi.Router) {
			attachAuditRoutes(r, middlewares, auditController)
		})

		r.Get("/health", healthController.Check)
	})
}
