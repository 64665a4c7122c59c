package routers

import (
	"gandall-service/internal/app/delivery/http/controllers"
	"gandall-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachReferenceRoutes(router chi.Router, middlewares *middlewares.Middlewares, languageController *controllers.LanguageController, countryController *controllers.CountryController) {
	router.Get("/languages", languageController.FindAll)
	router.Get("/countries", countryController.FindAll)
}
