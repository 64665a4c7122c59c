package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gandall-service/internal/app/config"
	"gandall-service/internal/app/delivery/http/controllers"
	"gandall-service/internal/app/delivery/http/middlewares"
	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/dto/responses"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPatientUsecase struct {
	mock.Mock
}

func (m *MockPatientUsecase) GetPatientForm(ctx context.Context, patientID string) (*responses.PatientForm, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.PatientForm), args.Error(1)
}

func (m *MockPatientUsecase) GetDefaultPatientForm(ctx context.Context) (*responses.PatientForm, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.PatientForm), args.Error(1)
}

func (m *MockPatientUsecase) CreatePatient(ctx context.Context, form *forms.PatientFormValues) (*responses.PatientForm, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.PatientForm), args.Error(1)
}

func (m *MockPatientUsecase) UpdatePatient(ctx context.Context, patientID string, form *forms.PatientFormValues) (*responses.PatientForm, error) {
	args := m.Called(ctx, patientID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.PatientForm), args.Error(1)
}

func (m *MockPatientUsecase) ValidatePatientForm(ctx context.Context, form *forms.PatientFormValues) *responses.FormValidation {
	args := m.Called(ctx, form)
	return args.Get(0).(*responses.FormValidation)
}

func (m *MockPatientUsecase) SearchPatients(ctx context.Context, name string, page, pageSize int) ([]responses.PatientSummary, int, error) {
	args := m.Called(ctx, name, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]responses.PatientSummary), args.Int(1), args.Error(2)
}

func TestPatientRouter_Endpoints(t *testing.T) {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{}

	mockPatientUsecase := new(MockPatientUsecase)

	patientController := &controllers.PatientController{
		Log:            logger,
		PatientUsecase: mockPatientUsecase,
	}

	middlewareInstance := middlewares.NewMiddlewares(logger, internalConfig)

	router := chi.NewRouter()
	router.Use(middlewareInstance.RequestIDMiddleware)
	attachPatientRoutes(router, middlewareInstance, patientController)

	patientForm := &responses.PatientForm{
		PatientID: "patient-1",
		Form:      &forms.PatientFormValues{FirstName: "Dewi", LastName: "Lestari"},
	}

	t.Run("Get Default Form", func(t *testing.T) {
		mockPatientUsecase.On("GetDefaultPatientForm", mock.Anything).
			Return(&responses.PatientForm{Form: &forms.PatientFormValues{Active: true}}, nil)

		req := httptest.NewRequest("GET", "/form/default", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for the default form")
	})

	t.Run("Get Form By ID", func(t *testing.T) {
		mockPatientUsecase.On("GetPatientForm", mock.Anything, "patient-1").Return(patientForm, nil)

		req := httptest.NewRequest("GET", "/patient-1/form", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for an existing patient")
		mockPatientUsecase.AssertCalled(t, "GetPatientForm", mock.Anything, "patient-1")
	})

	t.Run("Get Form With Malformed ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/bad_id/form", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "should return 400 Bad Request for an id outside the FHIR grammar")
		mockPatientUsecase.AssertNotCalled(t, "GetPatientForm", mock.Anything, "bad_id")
	})

	t.Run("Create Patient", func(t *testing.T) {
		mockPatientUsecase.On("CreatePatient", mock.Anything, mock.AnythingOfType("*forms.PatientFormValues")).
			Return(patientForm, nil)

		requestBody := forms.PatientFormValues{
			FirstName: "Dewi",
			LastName:  "Lestari",
			Gender:    "female",
			BirthDate: "1994-06-23",
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code, "should return 201 Created for a new patient")
	})

	t.Run("Create Patient With Malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "should return 400 Bad Request for a body that does not parse")
	})

	t.Run("Update Patient", func(t *testing.T) {
		mockPatientUsecase.On("UpdatePatient", mock.Anything, "patient-1", mock.AnythingOfType("*forms.PatientFormValues")).
			Return(patientForm, nil)

		requestBody := forms.PatientFormValues{FirstName: "Dewi", LastName: "Lestari"}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("PUT", "/patient-1", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for an updated patient")
		mockPatientUsecase.AssertCalled(t, "UpdatePatient", mock.Anything, "patient-1", mock.AnythingOfType("*forms.PatientFormValues"))
	})

	t.Run("Validate Form", func(t *testing.T) {
		mockPatientUsecase.On("ValidatePatientForm", mock.Anything, mock.AnythingOfType("*forms.PatientFormValues")).
			Return(&responses.FormValidation{Valid: false, Errors: map[string]string{"first_name": "first name is required"}})

		requestBody := forms.PatientFormValues{LastName: "Lestari"}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/form/validate", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK with the verdict even for an invalid form")
	})

	t.Run("Search Patients", func(t *testing.T) {
		mockPatientUsecase.On("SearchPatients", mock.Anything, "dewi", 2, 5).
			Return([]responses.PatientSummary{{PatientID: "patient-1", Name: "Dewi Lestari"}}, 11, nil)

		req := httptest.NewRequest("GET", "/?name=dewi&page=2&page_size=5", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for a search")
		mockPatientUsecase.AssertCalled(t, "SearchPatients", mock.Anything, "dewi", 2, 5)
	})
}

func TestPatientRouter_RequestIDGuard(t *testing.T) {
	logger := zap.NewNop()
	mockPatientUsecase := new(MockPatientUsecase)

	patientController := &controllers.PatientController{
		Log:            logger,
		PatientUsecase: mockPatientUsecase,
	}

	middlewareInstance := middlewares.NewMiddlewares(logger, &config.InternalConfig{})

	// No request-id middleware mounted: the handlers must refuse to run.
	router := chi.NewRouter()
	attachPatientRoutes(router, middlewareInstance, patientController)

	req := httptest.NewRequest("GET", "/form/default", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code, "should return 500 when no request id was assigned")
	mockPatientUsecase.AssertNotCalled(t, "GetDefaultPatientForm")
}
