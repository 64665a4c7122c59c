package routers

import (
	"gandall-service/internal/app/delivery/http/controllers"
	"gandall-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPhotoRoutes(router chi.Router, middlewares *middlewares.Middlewares, photoController *controllers.PhotoController) {
	router.Post("/photos", photoController.UploadPhoto)
}
