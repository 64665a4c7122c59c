package routers

import (
	"gandall-service/internal/app/delivery/http/controllers"
	"gandall-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuditRoutes(router chi.Router, middlewares *middlewares.Middlewares, auditController *controllers.AuditController) {
	router.With(middlewares.RequireAdminAPIKey).Get("/", auditController.FindAll)
}
