package routers

import (
	"gandall-service/internal/app/delivery/http/controllers"
	"gandall-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, middlewares *middlewares.Middlewares, patientController *controllers.PatientController) {
	router.Get("/", patientController.SearchPatients)
	router.Post("/", patientController.CreatePatient)
	router.Get("/form/default", patientController.GetDefaultPatientForm)
	router.Post("/form/validate", patientController.ValidatePatientForm)
	router.Get("/{patient_id}/form", patientController.FindPatientFormByID)
	router.Put("/{patient_id}", patientController.UpdatePatientByID)
}
