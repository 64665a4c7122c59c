package practitioners

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
	practitionerFhirClientInstance contracts.PractitionerFhirClient
	oncePractitionerFhirClient     sync.Once
)

type practitionerFhirClient struct {
	BaseUrl       string
	HttpClient    *http.Client
	TokenProvider contracts.FhirTokenProvider
	Limiter       *rate.Limiter
	Log           *zap.Logger
}

func NewPractitionerFhirClient(baseUrl string, tokenProvider contracts.FhirTokenProvider, limiter *rate.Limiter, logger *zap.Logger) contracts.PractitionerFhirClient {
	oncePractitionerFhirClient.Do(func() {
		client := &practitionerFhirClient{
			BaseUrl:       baseUrl + "/" + constvars.ResourcePractitioner,
			HttpClient:    &http.Client{},
			TokenProvider: tokenProvider,
			Limiter:       limiter,
			Log:           logger,
		}
		practitionerFhirClientInstance = client
	})
	return practitionerFhirClientInstance
}

func (c *practitionerFhirClient) newRequest(ctx context.Context, method, requestUrl string, body io.Reader) (*http.Request, error) {
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

func (c *practitionerFhirClient) CreatePractitioner(ctx context.Context, request *fhir_dto.Practitioner) (*fhir_dto.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerFhirClient.CreatePractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		c.Log.Error("practitionerFhirClient.CreatePractitioner error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := c.newRequest(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("practitionerFhirClient.CreatePractitioner error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		c.Log.Error("practitionerFhirClient.CreatePractitioner error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusCreated && resp.StatusCode != constvars.StatusOK {
		err := c.decodeOutcomeError(resp, requestID, "CreatePractitioner")
		return nil, exceptions.ErrCreateFHIRResource(err, constvars.ResourcePractitioner)
	}

	practitionerFhir := new(fhir_dto.Practitioner)
	err = json.NewDecoder(resp.Body).Decode(&practitionerFhir)
	if err != nil {
		c.Log.Error("practitionerFhirClient.CreatePractitioner error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
	}

	c.Log.Info("practitionerFhirClient.CreatePractitioner succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerFhir.ID),
	)
	return practitionerFhir, nil
}

func (c *practitionerFhirClient) FindPractitionerByID(ctx context.Context, practitionerID string) (*fhir_dto.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerFhirClient.FindPractitionerByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	req, err := c.newRequest(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s", c.BaseUrl, practitionerID), nil)
	if err != nil {
		c.Log.Error("practitionerFhirClient.FindPractitionerByID error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		c.Log.Error("practitionerFhirClient.FindPractitionerByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		err := c.decodeOutcomeError(resp, requestID, "FindPractitionerByID")
		return nil, exceptions.ErrFHIRResourceNotFound(err, constvars.ResourcePractitioner)
	}

	if resp.StatusCode != constvars.StatusOK {
		err := c.decodeOutcomeError(resp, requestID, "FindPractitionerByID")
		return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourcePractitioner)
	}

	practitionerFhir := new(fhir_dto.Practitioner)
	err = json.NewDecoder(resp.Body).Decode(&practitionerFhir)
	if err != nil {
		c.Log.Error("practitionerFhirClient.FindPractitionerByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
	}

	c.Log.Info("practitionerFhirClient.FindPractitionerByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerFhir.ID),
	)
	return practitionerFhir, nil
}

func (c *practitionerFhirClient) UpdatePractitioner(ctx context.Context, request *fhir_dto.Practitioner) (*fhir_dto.Practitioner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerFhirClient.UpdatePractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, request.ID),
	)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		c.Log.Error("practitionerFhirClient.UpdatePractitioner error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := c.newRequest(ctx, constvars.MethodPut, fmt.Sprintf("%s/%s", c.BaseUrl, request.ID), bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("practitionerFhirClient.UpdatePractitioner error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		c.Log.Error("practitionerFhirClient.UpdatePractitioner error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		err := c.decodeOutcomeError(resp, requestID, "UpdatePractitioner")
		return nil, exceptions.ErrFHIRResourceNotFound(err, constvars.ResourcePractitioner)
	}

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		err := c.decodeOutcomeError(resp, requestID, "UpdatePractitioner")
		return nil, exceptions.ErrUpdateFHIRResource(err, constvars.ResourcePractitioner)
	}

	practitionerFhir := new(fhir_dto.Practitioner)
	err = json.NewDecoder(resp.Body).Decode(&practitionerFhir)
	if err != nil {
		c.Log.Error("practitionerFhirClient.UpdatePractitioner error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
	}

	c.Log.Info("practitionerFhirClient.UpdatePractitioner succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerFhir.ID),
	)
	return practitionerFhir, nil
}

func (c *practitionerFhirClient) FindPractitionersByName(ctx context.Context, name string, page, pageSize int) ([]fhir_dto.Practitioner, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("practitionerFhirClient.FindPractitionersByName called",
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

	c.Log.Info("practitionerFhirClient.FindPractitionersByName built URL",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFhirUrlKey, requestUrl),
	)

	req, err := c.newRequest(ctx, constvars.MethodGet, requestUrl, nil)
	if err != nil {
		c.Log.Error("practitionerFhirClient.FindPractitionersByName error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		c.Log.Error("practitionerFhirClient.FindPractitionersByName error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		err := c.decodeOutcomeError(resp, requestID, "FindPractitionersByName")
		return nil, 0, exceptions.ErrSearchFHIRResource(err, constvars.ResourcePractitioner)
	}

	bundle := new(fhir_dto.Bundle)
	err = json.NewDecoder(resp.Body).Decode(&bundle)
	if err != nil {
		c.Log.Error("practitionerFhirClient.FindPractitionersByName error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
	}

	practitioners := make([]fhir_dto.Practitioner, 0, len(bundle.Entry))
	for _, entry := range bundle.Entry {
		var practitioner fhir_dto.Practitioner
		if err := json.Unmarshal(entry.Resource, &practitioner); err != nil {
			c.Log.Error("practitionerFhirClient.FindPractitionersByName error unmarshaling entry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, 0, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
		}
		if practitioner.ResourceType != constvars.ResourcePractitioner {
			continue
		}
		practitioners = append(practitioners, practitioner)
	}

	c.Log.Info("practitionerFhirClient.FindPractitionersByName succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(practitioners)),
	)
	return practitioners, bundle.Total, nil
}

func (c *practitionerFhirClient) decodeOutcomeError(resp *http.Response, requestID, method string) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("practitionerFhirClient."+method+" error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	var outcome fhir_dto.OperationOutcome
	if err := json.Unmarshal(bodyBytes, &outcome); err == nil && len(outcome.Issue) > 0 {
		fhirErrorIssue := fmt.Errorf("%s", outcome.Issue[0].Diagnostics)
		c.Log.Error("practitionerFhirClient."+method+" FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(fhirErrorIssue),
		)
		return fhirErrorIssue
	}

	statusErr := fmt.Errorf("unexpected status %s", resp.Status)
	c.Log.Error("practitionerFhirClient."+method+" FHIR error",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(statusErr),
	)
	return statusErr
}
