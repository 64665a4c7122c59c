package patients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/exceptions"
	"gandall-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type staticTokenProvider struct {
	token string
	err   error
}

func (p *staticTokenProvider) AccessToken(ctx context.Context) (string, error) {
	return p.token, p.err
}

func newTestPatientClient(serverURL, token string) *patientFhirClient {
	return &patientFhirClient{
		BaseUrl:       serverURL + "/" + constvars.ResourcePatient,
		HttpClient:    &http.Client{},
		TokenProvider: &staticTokenProvider{token: token},
		Limiter:       rate.NewLimiter(rate.Inf, 1),
		Log:           zap.NewNop(),
	}
}

func TestPatientFhirClient_CreatePatient(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends FHIR JSON And Decodes The Created Resource", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method, "Create should use POST")
			assert.Equal(t, "/Patient", r.URL.Path, "Create should post to the resource type path")
			assert.Equal(t, constvars.MIMEApplicationFHIRJSON, r.Header.Get(constvars.HeaderContentType), "Create should send FHIR JSON")
			assert.Equal(t, "Bearer test-token", r.Header.Get(constvars.HeaderAuthorization), "Create should carry the system bearer token")

			var received fhir_dto.Patient
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received), "Request body should be a Patient resource")
			assert.Equal(t, constvars.ResourcePatient, received.ResourceType, "Request body should declare its resource type")

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(fhir_dto.Patient{
				ResourceType: constvars.ResourcePatient,
				ID:           "patient-1",
				Name:         received.Name,
			})
		}))
		defer server.Close()

		client := newTestPatientClient(server.URL, "test-token")

		created, err := client.CreatePatient(ctx, &fhir_dto.Patient{
			ResourceType: constvars.ResourcePatient,
			Name:         []fhir_dto.HumanName{{Family: "Lestari", Given: []string{"Dewi"}}},
		})

		require.NoError(t, err, "Error should be nil when the server accepts the resource")
		assert.Equal(t, "patient-1", created.ID, "The server-assigned id should be decoded")
	})

	t.Run("Server Rejection Surfaces The Outcome Diagnostics", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(fhir_dto.OperationOutcome{
				ResourceType: "OperationOutcome",
				Issue: []fhir_dto.OperationOutcomeIssue{
					{Severity: "error", Code: "invalid", Diagnostics: "Patient.name is required"},
				},
			})
		}))
		defer server.Close()

		client := newTestPatientClient(server.URL, "test-token")

		created, err := client.CreatePatient(ctx, &fhir_dto.Patient{ResourceType: constvars.ResourcePatient})

		require.Error(t, err, "A rejected create should return an error")
		assert.Nil(t, created, "No resource should be returned on rejection")

		var customError *exceptions.CustomError
		require.ErrorAs(t, err, &customError, "Client errors should surface as CustomError")
		assert.Contains(t, customError.DevMessage, "Patient.name is required", "The OperationOutcome diagnostics should be carried")
	})
}

func TestPatientFhirClient_FindPatientByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Fetches By ID", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method, "Read should use GET")
			assert.Equal(t, "/Patient/patient-1", r.URL.Path, "Read should address the resource instance")

			_ = json.NewEncoder(w).Encode(fhir_dto.Patient{
				ResourceType: constvars.ResourcePatient,
				ID:           "patient-1",
				Gender:       "female",
			})
		}))
		defer server.Close()

		client := newTestPatientClient(server.URL, "test-token")

		patient, err := client.FindPatientByID(ctx, "patient-1")

		require.NoError(t, err, "Error should be nil when the resource exists")
		assert.Equal(t, "patient-1", patient.ID, "The resource id should be decoded")
		assert.Equal(t, "female", patient.Gender, "The resource fields should be decoded")
	})

	t.Run("Not Found Maps To 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(fhir_dto.OperationOutcome{
				ResourceType: "OperationOutcome",
				Issue: []fhir_dto.OperationOutcomeIssue{
					{Severity: "error", Code: "not-found", Diagnostics: "Resource Patient/missing is not known"},
				},
			})
		}))
		defer server.Close()

		client := newTestPatientClient(server.URL, "test-token")

		patient, err := client.FindPatientByID(ctx, "missing")

		require.Error(t, err, "A missing resource should return an error")
		assert.Nil(t, patient, "No resource should be returned when missing")

		var customError *exceptions.CustomError
		require.ErrorAs(t, err, &customError, "Client errors should surface as CustomError")
		assert.Equal(t, constvars.StatusNotFound, customError.StatusCode, "A missing resource should map to 404")
	})
}

func TestPatientFhirClient_UpdatePatient(t *testing.T) {
	ctx := context.Background()

	t.Run("Puts To The Resource Instance Path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method, "Update should use PUT")
			assert.Equal(t, "/Patient/patient-1", r.URL.Path, "Update should address the resource instance")

			_ = json.NewEncoder(w).Encode(fhir_dto.Patient{
				ResourceType: constvars.ResourcePatient,
				ID:           "patient-1",
				Active:       true,
			})
		}))
		defer server.Close()

		client := newTestPatientClient(server.URL, "test-token")

		updated, err := client.UpdatePatient(ctx, &fhir_dto.Patient{
			ResourceType: constvars.ResourcePatient,
			ID:           "patient-1",
			Active:       true,
		})

		require.NoError(t, err, "Error should be nil when the server accepts the update")
		assert.Equal(t, "patient-1", updated.ID, "The resource id should be decoded")
	})
}

func TestPatientFhirClient_FindPatientsByName(t *testing.T) {
	ctx := context.Background()

	bundleWith := func(total int, resources ...interface{}) fhir_dto.Bundle {
		entries := make([]fhir_dto.BundleEntry, 0, len(resources))
		for _, resource := range resources {
			raw, _ := json.Marshal(resource)
			entries = append(entries, fhir_dto.BundleEntry{Resource: raw})
		}
		return fhir_dto.Bundle{
			ResourceType: "Bundle",
			Type:         "searchset",
			Total:        total,
			Entry:        entries,
		}
	}

	t.Run("Builds HAPI Search Parameters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			assert.Equal(t, "dewi", query.Get("name:contains"), "Name should search with the contains modifier")
			assert.Equal(t, "10", query.Get("_count"), "Page size should map to _count")
			assert.Equal(t, "10", query.Get("_getpagesoffset"), "Page two should map to a row offset")

			_ = json.NewEncoder(w).Encode(bundleWith(25,
				fhir_dto.Patient{ResourceType: constvars.ResourcePatient, ID: "patient-1"},
			))
		}))
		defer server.Close()

		client := newTestPatientClient(server.URL, "test-token")

		patients, total, err := client.FindPatientsByName(ctx, "dewi", 2, 10)

		require.NoError(t, err, "Error should be nil for a successful search")
		assert.Equal(t, 25, total, "Total should come from the bundle")
		require.Len(t, patients, 1, "Each matching entry should be decoded")
		assert.Equal(t, "patient-1", patients[0].ID, "The entry resource should be decoded")
	})

	t.Run("Non Patient Entries Are Skipped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(bundleWith(1,
				fhir_dto.Patient{ResourceType: constvars.ResourcePatient, ID: "patient-1"},
				fhir_dto.OperationOutcome{ResourceType: "OperationOutcome"},
			))
		}))
		defer server.Close()

		client := newTestPatientClient(server.URL, "test-token")

		patients, _, err := client.FindPatientsByName(ctx, "", 1, 10)

		require.NoError(t, err, "Error should be nil for a successful search")
		require.Len(t, patients, 1, "OperationOutcome entries should be skipped")
		assert.Equal(t, "patient-1", patients[0].ID, "The Patient entry should be kept")
	})

	t.Run("Empty Token Sends No Authorization Header", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get(constvars.HeaderAuthorization), "An unauthenticated client should send no bearer token")
			_ = json.NewEncoder(w).Encode(bundleWith(0))
		}))
		defer server.Close()

		client := newTestPatientClient(server.URL, "")

		_, _, err := client.FindPatientsByName(ctx, "", 1, 10)

		require.NoError(t, err, "Error should be nil for a successful search")
	})
}
