package routers

import (
	"gandall-service/internal/app/delivery/http/controllers"
	"gandall-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPractitionerRoutes(router chi.Router, middlewares *middlewares.Middlewares, practitionerController *controllers.PractitionerController) {
	router.Get("/", practitionerController.SearchPractitioners)
	router.Post("/", practitionerController.CreatePractitioner)
	router.Get("/form/default", practitionerController.GetDefaultPractitionerForm)
	router.Post("/form/validate", practitionerController.ValidatePractitionerForm)
	router.Get("/{practitioner_id}/form", practitionerController.FindPractitionerFormByID)
	router.Put("/{practitioner_id}", practitionerController.UpdatePractitionerByID)
}
