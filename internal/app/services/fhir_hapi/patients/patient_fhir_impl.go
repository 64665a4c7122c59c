package patients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"gandall-service/internal/app/contracts"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/exceptions"
	"gandall-service/internal/pkg/fhir_dto"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	patientFhirClientInstance contracts.PatientFhirClient
	oncePatientFhirClient     sync.Once
)

type patientFhirClient struct {
	BaseUrl       string
	HttpClient    *http.Client
	TokenProvider contracts.FhirTokenProvider
	Limiter       *rate.Limiter
	Log           *zap.Logger
}

func NewPatientFhirClient(baseUrl string, tokenProvider contracts.FhirTokenProvider, limiter *rate.Limiter, logger *zap.Logger) contracts.PatientFhirClient {
	oncePatientFhirClient.Do(func() {
		client := &patientFhirClient{
			BaseUrl:       baseUrl + "/" + constvars.ResourcePatient,
			HttpClient:    &http.Client{},
			TokenProvider: tokenProvider,
			Limiter:       limiter,
			Log:           logger,
		}
		patientFhirClientInstance = client
	})
	return patientFhirClientInstance
}

// newRequest throttles, builds the request, and attaches content type plus
// the system bearer token when one is configured.
func (c *patientFhirClient) newRequest(ctx context.Context, method, requestUrl string, body io.Reader) (*http.Request, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestUrl, body)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)

	token, err := c.TokenProvider.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
	}
	return req, nil
}

func (c *patientFhirClient) CreatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientFhirClient.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		c.Log.Error("patientFhirClient.CreatePatient error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := c.newRequest(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("patientFhirClient.CreatePatient error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		c.Log.Error("patientFhirClient.CreatePatient error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusCreated && resp.StatusCode != constvars.StatusOK {
		err := c.decodeOutcomeError(resp, requestID, "CreatePatient")
		return nil, exceptions.ErrCreateFHIRResource(err, constvars.ResourcePatient)
	}

	patientFhir := new(fhir_dto.Patient)
	err = json.NewDecoder(resp.Body).Decode(&patientFhir)
	if err != nil {
		c.Log.Error("patientFhirClient.CreatePatient error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
	}

	c.Log.Info("patientFhirClient.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientFhir.ID),
	)
	return patientFhir, nil
}

func (c *patientFhirClient) FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientFhirClient.FindPatientByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	req, err := c.newRequest(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s", c.BaseUrl, patientID), nil)
	if err != nil {
		c.Log.Error("patientFhirClient.FindPatientByID error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		c.Log.Error("patientFhirClient.FindPatientByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		err := c.decodeOutcomeError(resp, requestID, "FindPatientByID")
		return nil, exceptions.ErrFHIRResourceNotFound(err, constvars.ResourcePatient)
	}

	if resp.StatusCode != constvars.StatusOK {
		err := c.decodeOutcomeError(resp, requestID, "FindPatientByID")
		return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourcePatient)
	}

	patientFhir := new(fhir_dto.Patient)
	err = json.NewDecoder(resp.Body).Decode(&patientFhir)
	if err != nil {
		c.Log.Error("patientFhirClient.FindPatientByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
	}

	c.Log.Info("patientFhirClient.FindPatientByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientFhir.ID),
	)
	return patientFhir, nil
}

func (c *patientFhirClient) UpdatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientFhirClient.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.ID),
	)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		c.Log.Error("patientFhirClient.UpdatePatient error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := c.newRequest(ctx, constvars.MethodPut, fmt.Sprintf("%s/%s", c.BaseUrl, request.ID), bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("patientFhirClient.UpdatePatient error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		c.Log.Error("patientFhirClient.UpdatePatient error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		err := c.decodeOutcomeError(resp, requestID, "UpdatePatient")
		return nil, exceptions.ErrFHIRResourceNotFound(err, constvars.ResourcePatient)
	}

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		err := c.decodeOutcomeError(resp, requestID, "UpdatePatient")
		return nil, exceptions.ErrUpdateFHIRResource(err, constvars.ResourcePatient)
	}

	patientFhir := new(fhir_dto.Patient)
	err = json.NewDecoder(resp.Body).Decode(&patientFhir)
	if err != nil {
		c.Log.Error("patientFhirClient.UpdatePatient error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
	}

	c.Log.Info("patientFhirClient.UpdatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientFhir.ID),
	)
	return patientFhir, nil
}

func (c *patientFhirClient) FindPatientsByName(ctx context.Context, name string, page, pageSize int) ([]fhir_dto.Patient, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientFhirClient.FindPatientsByName called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	queryParams := url.Values{}
	if name != "" {
		queryParams.Set("name:contains", name)
	}
	if pageSize > 0 {
		queryParams.Set("_count", strconv.Itoa(pageSize))
		if page > 1 {
			queryParams.Set("_getpagesoffset", strconv.Itoa((page-1)*pageSize))
		}
	}

	requestUrl := c.BaseUrl
	if encoded := queryParams.Encode(); encoded != "" {
		requestUrl += "?" + encoded
	}

	c.Log.Info("patientFhirClient.FindPatientsByName built URL",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFhirUrlKey, requestUrl),
	)

	req, err := c.newRequest(ctx, constvars.MethodGet, requestUrl, nil)
	if err != nil {
		c.Log.Error("patientFhirClient.FindPatientsByName error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		c.Log.Error("patientFhirClient.FindPatientsByName error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		err := c.decodeOutcomeError(resp, requestID, "FindPatientsByName")
		return nil, 0, exceptions.ErrSearchFHIRResource(err, constvars.ResourcePatient)
	}

	bundle := new(fhir_dto.Bundle)
	err = json.NewDecoder(resp.Body).Decode(&bundle)
	if err != nil {
		c.Log.Error("patientFhirClient.FindPatientsByName error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
	}

	patients := make([]fhir_dto.Patient, 0, len(bundle.Entry))
	for _, entry := range bundle.Entry {
		var patient fhir_dto.Patient
		if err := json.Unmarshal(entry.Resource, &patient); err != nil {
			c.Log.Error("patientFhirClient.FindPatientsByName error unmarshaling entry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, 0, exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
		}
		if patient.ResourceType != constvars.ResourcePatient {
			continue
		}
		patients = append(patients, patient)
	}

	c.Log.Info("patientFhirClient.FindPatientsByName succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(patients)),
	)
	return patients, bundle.Total, nil
}

// decodeOutcomeError reads a non-2xx body and surfaces the first
// OperationOutcome diagnostic, falling back to the raw status.
func (c *patientFhirClient) decodeOutcomeError(resp *http.Response, requestID, method string) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("patientFhirClient."+method+" error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	var outcome fhir_dto.OperationOutcome
	if err := json.Unmarshal(bodyBytes, &outcome); err == nil && len(outcome.Issue) > 0 {
		fhirErrorIssue := fmt.Errorf("%s", outcome.Issue[0].Diagnostics)
		c.Log.Error("patientFhirClient."+method+" FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(fhirErrorIssue),
		)
		return fhirErrorIssue
	}

	statusErr := fmt.Errorf("unexpected status %s", resp.Status)
	c.Log.Error("patientFhirClient."+method+" FHIR error",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(statusErr),
	)
	return statusErr
}
