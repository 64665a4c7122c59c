package organizations

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
	organizationFhirClientInstance contracts.OrganizationFhirClient
	onceOrganizationFhirClient     sync.Once
)

type organizationFhirClient struct {
	BaseUrl       string
	HttpClient    *http.Client
	TokenProvider contracts.FhirTokenProvider
	Limiter       *rate.Limiter
	Log           *zap.Logger
}

func NewOrganizationFhirClient(baseUrl string, tokenProvider contracts.FhirTokenProvider, limiter *rate.Limiter, logger *zap.Logger) contracts.OrganizationFhirClient {
	onceOrganizationFhirClient.Do(func() {
		client := &organizationFhirClient{
			BaseUrl:       baseUrl + "/" + constvars.ResourceOrganization,
			HttpClient:    &http.Client{},
			TokenProvider: tokenProvider,
			Limiter:       limiter,
			Log:           logger,
		}
		organizationFhirClientInstance = client
	})
	return organizationFhirClientInstance
}

func (c *organizationFhirClient) newRequest(ctx context.Context, method, requestUrl string, body io.Reader) (*http.Request, error) {
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

func (c *organizationFhirClient) CreateOrganization(ctx context.Context, request *fhir_dto.Organization) (*fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("organizationFhirClient.CreateOrganization called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		c.Log.Error("organizationFhirClient.CreateOrganization error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := c.newRequest(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("organizationFhirClient.CreateOrganization error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		c.Log.Error("organizationFhirClient.CreateOrganization error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusCreated && resp.StatusCode != constvars.StatusOK {
		err := c.decodeOutcomeError(resp, requestID, "CreateOrganization")
		return nil, exceptions.ErrCreateFHIRResource(err, constvars.ResourceOrganization)
	}

	organizationFhir := new(fhir_dto.Organization)
	err = json.NewDecoder(resp.Body).Decode(&organizationFhir)
	if err != nil {
		c.Log.Error("organizationFhirClient.CreateOrganization error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceOrganization)
	}

	c.Log.Info("organizationFhirClient.CreateOrganization succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationFhir.ID),
	)
	return organizationFhir, nil
}

func (c *organizationFhirClient) FindOrganizationByID(ctx context.Context, organizationID string) (*fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("organizationFhirClient.FindOrganizationByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
	)

	req, err := c.newRequest(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s", c.BaseUrl, organizationID), nil)
	if err != nil {
		c.Log.Error("organizationFhirClient.FindOrganizationByID error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		c.Log.Error("organizationFhirClient.FindOrganizationByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		err := c.decodeOutcomeError(resp, requestID, "FindOrganizationByID")
		return nil, exceptions.ErrFHIRResourceNotFound(err, constvars.ResourceOrganization)
	}

	if resp.StatusCode != constvars.StatusOK {
		err := c.decodeOutcomeError(resp, requestID, "FindOrganizationByID")
		return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourceOrganization)
	}

	organizationFhir := new(fhir_dto.Organization)
	err = json.NewDecoder(resp.Body).Decode(&organizationFhir)
	if err != nil {
		c.Log.Error("organizationFhirClient.FindOrganizationByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceOrganization)
	}

	c.Log.Info("organizationFhirClient.FindOrganizationByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationFhir.ID),
	)
	return organizationFhir, nil
}

func (c *organizationFhirClient) UpdateOrganization(ctx context.Context, request *fhir_dto.Organization) (*fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("organizationFhirClient.UpdateOrganization called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, request.ID),
	)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		c.Log.Error("organizationFhirClient.UpdateOrganization error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := c.newRequest(ctx, constvars.MethodPut, fmt.Sprintf("%s/%s", c.BaseUrl, request.ID), bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("organizationFhirClient.UpdateOrganization error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		c.Log.Error("organizationFhirClient.UpdateOrganization error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		err := c.decodeOutcomeError(resp, requestID, "UpdateOrganization")
		return nil, exceptions.ErrFHIRResourceNotFound(err, constvars.ResourceOrganization)
	}

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		err := c.decodeOutcomeError(resp, requestID, "UpdateOrganization")
		return nil, exceptions.ErrUpdateFHIRResource(err, constvars.ResourceOrganization)
	}

	organizationFhir := new(fhir_dto.Organization)
	err = json.NewDecoder(resp.Body).Decode(&organizationFhir)
	if err != nil {
		c.Log.Error("organizationFhirClient.UpdateOrganization error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceOrganization)
	}

	c.Log.Info("organizationFhirClient.UpdateOrganization succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationFhir.ID),
	)
	return organizationFhir, nil
}

func (c *organizationFhirClient) FindOrganizationsByName(ctx context.Context, name string, page, pageSize int) ([]fhir_dto.Organization, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("organizationFhirClient.FindOrganizationsByName called",
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

	c.Log.Info("organizationFhirClient.FindOrganizationsByName built URL",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFhirUrlKey, requestUrl),
	)

	req, err := c.newRequest(ctx, constvars.MethodGet, requestUrl, nil)
	if err != nil {
		c.Log.Error("organizationFhirClient.FindOrganizationsByName error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		c.Log.Error("organizationFhirClient.FindOrganizationsByName error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		err := c.decodeOutcomeError(resp, requestID, "FindOrganizationsByName")
		return nil, 0, exceptions.ErrSearchFHIRResource(err, constvars.ResourceOrganization)
	}

	bundle := new(fhir_dto.Bundle)
	err = json.NewDecoder(resp.Body).Decode(&bundle)
	if err != nil {
		c.Log.Error("organizationFhirClient.FindOrganizationsByName error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrDecodeResponse(err, constvars.ResourceOrganization)
	}

	organizations := make([]fhir_dto.Organization, 0, len(bundle.Entry))
	for _, entry := range bundle.Entry {
		var organization fhir_dto.Organization
		if err := json.Unmarshal(entry.Resource, &organization); err != nil {
			c.Log.Error("organizationFhirClient.FindOrganizationsByName error unmarshaling entry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, 0, exceptions.ErrDecodeResponse(err, constvars.ResourceOrganization)
		}
		if organization.ResourceType != constvars.ResourceOrganization {
			continue
		}
		organizations = append(organizations, organization)
	}

	c.Log.Info("organizationFhirClient.FindOrganizationsByName succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(organizations)),
	)
	return organizations, bundle.Total, nil
}

func (c *organizationFhirClient) decodeOutcomeError(resp *http.Response, requestID, method string) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("organizationFhirClient."+method+" error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	var outcome fhir_dto.OperationOutcome
	if err := json.Unmarshal(bodyBytes, &outcome); err == nil && len(outcome.Issue) > 0 {
		fhirErrorIssue := fmt.Errorf("%s", outcome.Issue[0].Diagnostics)
		c.Log.Error("organizationFhirClient."+method+" FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(fhirErrorIssue),
		)
		return fhirErrorIssue
	}

	statusErr := fmt.Errorf("unexpected status %s", resp.Status)
	c.Log.Error("organizationFhirClient."+method+" FHIR error",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(statusErr),
	)
	return statusErr
}
