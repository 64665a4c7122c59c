package patients

import (
	"context"
	"errors"
	"testing"
	"time"

	"gandall-service/internal/app/config"
	"gandall-service/internal/app/models"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/exceptions"
	"gandall-service/internal/pkg/fhir_dto"
	"gandall-service/internal/pkg/fhirform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPatientFhirClient struct {
	mock.Mock
}

func (m *MockPatientFhirClient) CreatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Patient), args.Error(1)
}

func (m *MockPatientFhirClient) UpdatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Patient), args.Error(1)
}

func (m *MockPatientFhirClient) FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Patient), args.Error(1)
}

func (m *MockPatientFhirClient) FindPatientsByName(ctx context.Context, name string, page, pageSize int) ([]fhir_dto.Patient, int, error) {
	args := m.Called(ctx, name, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]fhir_dto.Patient), args.Int(1), args.Error(2)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockAuditPublisher struct {
	mock.Mock
}

func (m *MockAuditPublisher) PublishResourceAudit(ctx context.Context, event models.ResourceAudit) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestPatientUsecase(client *MockPatientFhirClient, cacheRepository *MockCacheRepository, auditPublisher *MockAuditPublisher) *patientUsecase {
	return &patientUsecase{
		PatientFhirClient: client,
		CacheRepository:   cacheRepository,
		AuditPublisher:    auditPublisher,
		Adapter:           &fhirform.PatientAdapter{},
		InternalConfig: &config.InternalConfig{
			FHIR: config.AppFHIR{CacheExpiredTimeInMinutes: 5},
		},
		Log: zap.NewNop(),
	}
}

func validPatientForm() *forms.PatientFormValues {
	return &forms.PatientFormValues{
		FirstName: "Dewi",
		LastName:  "Lestari",
		Gender:    "female",
		BirthDate: "1994-06-23",
		Active:    true,
	}
}

func storedPatient(id string) *fhir_dto.Patient {
	return &fhir_dto.Patient{
		ResourceType: constvars.ResourcePatient,
		ID:           id,
		Active:       true,
		Name:         []fhir_dto.HumanName{{Family: "Lestari", Given: []string{"Dewi"}}},
		Gender:       "female",
		BirthDate:    "1994-06-23",
	}
}

func TestPatientUsecase_GetPatientForm(t *testing.T) {
	ctx := context.Background()
	cacheKey := "fhir:Patient:patient-1"

	t.Run("Cache Hit Skips The FHIR Server", func(t *testing.T) {
		client := new(MockPatientFhirClient)
		cacheRepository := new(MockCacheRepository)
		uc := newTestPatientUsecase(client, cacheRepository, new(MockAuditPublisher))

		cacheRepository.On("Get", mock.Anything, cacheKey).
			Return(`{"resourceType":"Patient","id":"patient-1","name":[{"family":"Lestari","given":["Dewi"]}],"gender":"female","birthDate":"1994-06-23"}`, nil)

		response, err := uc.GetPatientForm(ctx, "patient-1")

		require.NoError(t, err, "Error should be nil on a cache hit")
		assert.Equal(t, "patient-1", response.PatientID, "PatientID should come from the cached resource")
		assert.Equal(t, "Dewi", response.Form.FirstName, "Form should be hydrated from the cached resource")
		client.AssertNotCalled(t, "FindPatientByID", mock.Anything, mock.Anything)
	})

	t.Run("Cache Miss Fetches And Caches", func(t *testing.T) {
		client := new(MockPatientFhirClient)
		cacheRepository := new(MockCacheRepository)
		uc := newTestPatientUsecase(client, cacheRepository, new(MockAuditPublisher))

		cacheRepository.On("Get", mock.Anything, cacheKey).Return("", nil)
		client.On("FindPatientByID", mock.Anything, "patient-1").Return(storedPatient("patient-1"), nil)
		cacheRepository.On("Set", mock.Anything, cacheKey, mock.Anything, 5*time.Minute).Return(nil)

		response, err := uc.GetPatientForm(ctx, "patient-1")

		require.NoError(t, err, "Error should be nil on a cache miss")
		assert.Equal(t, "Dewi", response.Form.FirstName, "Form should be hydrated from the fetched resource")
		cacheRepository.AssertCalled(t, "Set", mock.Anything, cacheKey, mock.Anything, 5*time.Minute)
	})

	t.Run("Cache Failure Falls Back To The FHIR Server", func(t *testing.T) {
		client := new(MockPatientFhirClient)
		cacheRepository := new(MockCacheRepository)
		uc := newTestPatientUsecase(client, cacheRepository, new(MockAuditPublisher))

		cacheRepository.On("Get", mock.Anything, cacheKey).Return("", errors.New("connection refused"))
		client.On("FindPatientByID", mock.Anything, "patient-1").Return(storedPatient("patient-1"), nil)
		cacheRepository.On("Set", mock.Anything, cacheKey, mock.Anything, 5*time.Minute).Return(nil)

		response, err := uc.GetPatientForm(ctx, "patient-1")

		require.NoError(t, err, "A cache failure should not fail the read")
		assert.Equal(t, "patient-1", response.PatientID, "Form should be served from the FHIR server")
	})

	t.Run("Corrupt Cache Entry Counts As A Miss", func(t *testing.T) {
		client := new(MockPatientFhirClient)
		cacheRepository := new(MockCacheRepository)
		uc := newTestPatientUsecase(client, cacheRepository, new(MockAuditPublisher))

		cacheRepository.On("Get", mock.Anything, cacheKey).Return("{not json", nil)
		client.On("FindPatientByID", mock.Anything, "patient-1").Return(storedPatient("patient-1"), nil)
		cacheRepository.On("Set", mock.Anything, cacheKey, mock.Anything, 5*time.Minute).Return(nil)

		response, err := uc.GetPatientForm(ctx, "patient-1")

		require.NoError(t, err, "A corrupt cache entry should not fail the read")
		assert.Equal(t, "Dewi", response.Form.FirstName, "Form should be served from the FHIR server")
	})

	t.Run("FHIR Error Propagates", func(t *testing.T) {
		client := new(MockPatientFhirClient)
		cacheRepository := new(MockCacheRepository)
		uc := newTestPatientUsecase(client, cacheRepository, new(MockAuditPublisher))

		fhirError := exceptions.ErrFHIRResourceNotFound(nil, constvars.ResourcePatient)
		cacheRepository.On("Get", mock.Anything, cacheKey).Return("", nil)
		client.On("FindPatientByID", mock.Anything, "patient-1").Return(nil, fhirError)

		response, err := uc.GetPatientForm(ctx, "patient-1")

		require.Error(t, err, "A FHIR server error should propagate")
		assert.Nil(t, response, "Response should be nil on error")
		assert.Equal(t, fhirError, err, "The FHIR client error should come back unchanged")
	})
}

func TestPatientUsecase_CreatePatient(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid Form Creates And Publishes An Audit", func(t *testing.T) {
		client := new(MockPatientFhirClient)
		auditPublisher := new(MockAuditPublisher)
		uc := newTestPatientUsecase(client, new(MockCacheRepository), auditPublisher)

		client.On("CreatePatient", mock.Anything, mock.AnythingOfType("*fhir_dto.Patient")).
			Return(storedPatient("patient-9"), nil)
		auditPublisher.On("PublishResourceAudit", mock.Anything, mock.MatchedBy(func(event models.ResourceAudit) bool {
			return event.ResourceType == constvars.ResourcePatient &&
				event.ResourceID == "patient-9" &&
				event.Action == constvars.AuditActionCreate &&
				event.EventID != ""
		})).Return(nil)

		response, err := uc.CreatePatient(ctx, validPatientForm())

		require.NoError(t, err, "Error should be nil for a valid form")
		assert.Equal(t, "patient-9", response.PatientID, "PatientID should come from the created resource")
		auditPublisher.AssertExpectations(t)
	})

	t.Run("Invalid Form Is Rejected Before The FHIR Call", func(t *testing.T) {
		client := new(MockPatientFhirClient)
		uc := newTestPatientUsecase(client, new(MockCacheRepository), new(MockAuditPublisher))

		form := validPatientForm()
		form.FirstName = ""

		response, err := uc.CreatePatient(ctx, form)

		require.Error(t, err, "A form without a first name should be rejected")
		assert.Nil(t, response, "Response should be nil on validation failure")

		var customError *exceptions.CustomError
		require.ErrorAs(t, err, &customError, "Validation failures should surface as CustomError")
		assert.Equal(t, constvars.StatusUnprocessableEntity, customError.StatusCode, "Validation failures should map to 422")
		assert.Contains(t, customError.ValidationErrors, "first_name", "The failing field should be named")
		client.AssertNotCalled(t, "CreatePatient", mock.Anything, mock.Anything)
	})

	t.Run("Audit Publish Failure Does Not Fail The Write", func(t *testing.T) {
		client := new(MockPatientFhirClient)
		auditPublisher := new(MockAuditPublisher)
		uc := newTestPatientUsecase(client, new(MockCacheRepository), auditPublisher)

		client.On("CreatePatient", mock.Anything, mock.AnythingOfType("*fhir_dto.Patient")).
			Return(storedPatient("patient-9"), nil)
		auditPublisher.On("PublishResourceAudit", mock.Anything, mock.Anything).
			Return(errors.New("broker unavailable"))

		response, err := uc.CreatePatient(ctx, validPatientForm())

		require.NoError(t, err, "A failed audit publish should not surface to the caller")
		assert.Equal(t, "patient-9", response.PatientID, "The completed write should be reported as usual")
	})
}

func TestPatientUsecase_UpdatePatient(t *testing.T) {
	ctx := context.Background()
	cacheKey := "fhir:Patient:patient-1"

	t.Run("Valid Update Invalidates The Cache", func(t *testing.T) {
		client := new(MockPatientFhirClient)
		cacheRepository := new(MockCacheRepository)
		auditPublisher := new(MockAuditPublisher)
		uc := newTestPatientUsecase(client, cacheRepository, auditPublisher)

		client.On("UpdatePatient", mock.Anything, mock.MatchedBy(func(request *fhir_dto.Patient) bool {
			return request.ID == "patient-1"
		})).Return(storedPatient("patient-1"), nil)
		cacheRepository.On("Delete", mock.Anything, cacheKey).Return(nil)
		auditPublisher.On("PublishResourceAudit", mock.Anything, mock.MatchedBy(func(event models.ResourceAudit) bool {
			return event.Action == constvars.AuditActionUpdate && event.ResourceID == "patient-1"
		})).Return(nil)

		response, err := uc.UpdatePatient(ctx, "patient-1", validPatientForm())

		require.NoError(t, err, "Error should be nil for a valid update")
		assert.Equal(t, "patient-1", response.PatientID, "PatientID should come from the updated resource")
		cacheRepository.AssertCalled(t, "Delete", mock.Anything, cacheKey)
		auditPublisher.AssertExpectations(t)
	})

	t.Run("Cache Delete Failure Is Swallowed", func(t *testing.T) {
		client := new(MockPatientFhirClient)
		cacheRepository := new(MockCacheRepository)
		auditPublisher := new(MockAuditPublisher)
		uc := newTestPatientUsecase(client, cacheRepository, auditPublisher)

		client.On("UpdatePatient", mock.Anything, mock.Anything).Return(storedPatient("patient-1"), nil)
		cacheRepository.On("Delete", mock.Anything, cacheKey).Return(errors.New("connection refused"))
		auditPublisher.On("PublishResourceAudit", mock.Anything, mock.Anything).Return(nil)

		_, err := uc.UpdatePatient(ctx, "patient-1", validPatientForm())

		require.NoError(t, err, "A failed cache invalidation should not surface to the caller")
	})
}

func TestPatientUsecase_SearchPatients(t *testing.T) {
	ctx := context.Background()

	t.Run("Results Map To Summaries", func(t *testing.T) {
		client := new(MockPatientFhirClient)
		uc := newTestPatientUsecase(client, new(MockCacheRepository), new(MockAuditPublisher))

		client.On("FindPatientsByName", mock.Anything, "dewi", 1, 10).
			Return([]fhir_dto.Patient{*storedPatient("patient-1")}, 7, nil)

		summaries, total, err := uc.SearchPatients(ctx, "dewi", 1, 10)

		require.NoError(t, err, "Error should be nil for a successful search")
		assert.Equal(t, 7, total, "Total should come from the FHIR bundle")
		require.Len(t, summaries, 1, "Each bundle entry should map to one summary")
		assert.Equal(t, "patient-1", summaries[0].PatientID, "Summary should carry the resource id")
		assert.Equal(t, "Dewi Lestari", summaries[0].Name, "Summary name should join given and family names")
		assert.Equal(t, "female", summaries[0].Gender, "Summary should carry the coerced gender")
	})

	t.Run("Search Error Propagates", func(t *testing.T) {
		client := new(MockPatientFhirClient)
		uc := newTestPatientUsecase(client, new(MockCacheRepository), new(MockAuditPublisher))

		searchError := exceptions.ErrSearchFHIRResource(errors.New("bad gateway"), constvars.ResourcePatient)
		client.On("FindPatientsByName", mock.Anything, "dewi", 1, 10).Return(nil, 0, searchError)

		summaries, total, err := uc.SearchPatients(ctx, "dewi", 1, 10)

		require.Error(t, err, "A search error should propagate")
		assert.Nil(t, summaries, "Summaries should be nil on error")
		assert.Zero(t, total, "Total should be zero on error")
	})
}

func TestPatientUsecase_ValidatePatientForm(t *testing.T) {
	ctx := context.Background()
	uc := newTestPatientUsecase(new(MockPatientFhirClient), new(MockCacheRepository), new(MockAuditPublisher))

	t.Run("Valid Form", func(t *testing.T) {
		verdict := uc.ValidatePatientForm(ctx, validPatientForm())

		assert.True(t, verdict.Valid, "A complete form should be valid")
		assert.Empty(t, verdict.Errors, "A valid form should carry no field errors")
	})

	t.Run("Invalid Form Names The Failing Fields", func(t *testing.T) {
		form := validPatientForm()
		form.FirstName = ""
		form.BirthDate = "23-06-1994"

		verdict := uc.ValidatePatientForm(ctx, form)

		assert.False(t, verdict.Valid, "An incomplete form should be invalid")
		assert.Contains(t, verdict.Errors, "first_name", "The missing first name should be reported")
		assert.Contains(t, verdict.Errors, "birth_date", "The malformed birth date should be reported")
	})
}
