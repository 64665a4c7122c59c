package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"gandall-service/internal/app/contracts"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/forms"
	"gandall-service/internal/pkg/exceptions"
	"gandall-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrganizationController struct {
	Log                 *zap.Logger
	OrganizationUsecase contracts.OrganizationUsecase
}

var (
	organizationControllerInstance *OrganizationController
	onceOrganizationController     sync.Once
)

func NewOrganizationController(logger *zap.Logger, organizationUsecase contracts.OrganizationUsecase) *OrganizationController {
	onceOrganizationController.Do(func() {
		instance := &OrganizationController{
			Log:                 logger,
			OrganizationUsecase: organizationUsecase,
		}
		organizationControllerInstance = instance
	})
	return organizationControllerInstance
}

func (ctrl *OrganizationController) GetDefaultOrganizationForm(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("OrganizationController.GetDefaultOrganizationForm requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("OrganizationController.GetDefaultOrganizationForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.OrganizationUsecase.GetDefaultOrganizationForm(ctx)
	if err != nil {
		ctrl.Log.Error("OrganizationController.GetDefaultOrganizationForm error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("OrganizationController.GetDefaultOrganizationForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrganizationFormGetSuccess, response)
}

func (ctrl *OrganizationController) FindOrganizationFormByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("OrganizationController.FindOrganizationFormByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("OrganizationController.FindOrganizationFormByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	organizationID := chi.URLParam(r, constvars.URLParamOrganizationID)
	if err := utils.ValidateUrlParamID(organizationID); err != nil {
		ctrl.Log.Error("OrganizationController.FindOrganizationFormByID invalid url parameter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamOrganizationID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.OrganizationUsecase.GetOrganizationForm(ctx, organizationID)
	if err != nil {
		ctrl.Log.Error("OrganizationController.FindOrganizationFormByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("OrganizationController.FindOrganizationFormByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrganizationFormGetSuccess, response)
}

func (ctrl *OrganizationController) SearchOrganizations(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("OrganizationController.SearchOrganizations requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("OrganizationController.SearchOrganizations called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	name := r.URL.Query().Get(constvars.URLQueryParamName)
	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, total, err := ctrl.OrganizationUsecase.SearchOrganizations(ctx, name, pagination.Page, pagination.PageSize)
	if err != nil {
		ctrl.Log.Error("OrganizationController.SearchOrganizations error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("OrganizationController.SearchOrganizations succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("organization_count", len(result)),
	)
	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.SearchOrganizationsSuccess, paginationResponse, result)
}

func (ctrl *OrganizationController) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("OrganizationController.CreateOrganization requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("OrganizationController.CreateOrganization called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(forms.OrganizationFormValues)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("OrganizationController.CreateOrganization error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.OrganizationUsecase.CreateOrganization(ctx, request)
	if err != nil {
		ctrl.Log.Error("OrganizationController.CreateOrganization error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("OrganizationController.CreateOrganization succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, response.OrganizationID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.OrganizationCreatedSuccess, response)
}

func (ctrl *OrganizationController) UpdateOrganizationByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("OrganizationController.UpdateOrganizationByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("OrganizationController.UpdateOrganizationByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	organizationID := chi.URLParam(r, constvars.URLParamOrganizationID)
	if err := utils.ValidateUrlParamID(organizationID); err != nil {
		ctrl.Log.Error("OrganizationController.UpdateOrganizationByID invalid url parameter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamOrganizationID))
		return
	}

	request := new(forms.OrganizationFormValues)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("OrganizationController.UpdateOrganizationByID error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.OrganizationUsecase.UpdateOrganization(ctx, organizationID, request)
	if err != nil {
		ctrl.Log.Error("OrganizationController.UpdateOrganizationByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("OrganizationController.UpdateOrganizationByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrganizationUpdatedSuccess, response)
}

func (ctrl *OrganizationController) ValidateOrganizationForm(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("OrganizationController.ValidateOrganizationForm requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("OrganizationController.ValidateOrganizationForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(forms.OrganizationFormValues)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("OrganizationController.ValidateOrganizationForm error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	response := ctrl.OrganizationUsecase.ValidateOrganizationForm(r.Context(), request)

	ctrl.Log.Info("OrganizationController.ValidateOrganizationForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("valid", response.Valid),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FormValidationSuccess, response)
}
