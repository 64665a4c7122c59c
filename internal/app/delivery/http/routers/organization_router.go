package routers

import (
	"gandall-service/internal/app/delivery/http/controllers"
	"gandall-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachOrganizationRoutes(router chi.Router, middlewares *middlewares.Middlewares, organizationController *controllers.OrganizationController) {
	router.Get("/", organizationController.SearchOrganizations)
	router.Post("/", organizationController.CreateOrganization)
	router.Get("/form/default", organizationController.GetDefaultOrganizationForm)
	router.Post("/form/validate", organizationController.ValidateOrganizationForm)
	router.Get("/{organization_id}/form", organizationController.FindOrganizationFormByID)
	router.Put("/{organization_id}", organizationController.UpdateOrganizationByID)
}
