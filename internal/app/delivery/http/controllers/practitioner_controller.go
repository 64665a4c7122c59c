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

type PractitionerController struct {
	Log                 *zap.Logger
	PractitionerUsecase contracts.PractitionerUsecase
}

var (
	practitionerControllerInstance *PractitionerController
	oncePractitionerController     sync.Once
)

func NewPractitionerController(logger *zap.Logger, practitionerUsecase contracts.PractitionerUsecase) *PractitionerController {
	oncePractitionerController.Do(func() {
		instance := &PractitionerController{
			Log:                 logger,
			PractitionerUsecase: practitionerUsecase,
		}
		practitionerControllerInstance = instance
	})
	return practitionerControllerInstance
}

func (ctrl *PractitionerController) GetDefaultPractitionerForm(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PractitionerController.GetDefaultPractitionerForm requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("PractitionerController.GetDefaultPractitionerForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.PractitionerUsecase.GetDefaultPractitionerForm(ctx)
	if err != nil {
		ctrl.Log.Error("PractitionerController.GetDefaultPractitionerForm error from usecase",
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

	ctrl.Log.Info("PractitionerController.GetDefaultPractitionerForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PractitionerFormGetSuccess, response)
}

func (ctrl *PractitionerController) FindPractitionerFormByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PractitionerController.FindPractitionerFormByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("PractitionerController.FindPractitionerFormByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	practitionerID := chi.URLParam(r, constvars.URLParamPractitionerID)
	if err := utils.ValidateUrlParamID(practitionerID); err != nil {
		ctrl.Log.Error("PractitionerController.FindPractitionerFormByID invalid url parameter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamPractitionerID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.PractitionerUsecase.GetPractitionerForm(ctx, practitionerID)
	if err != nil {
		ctrl.Log.Error("PractitionerController.FindPractitionerFormByID error from usecase",
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

	ctrl.Log.Info("PractitionerController.FindPractitionerFormByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PractitionerFormGetSuccess, response)
}

func (ctrl *PractitionerController) SearchPractitioners(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PractitionerController.SearchPractitioners requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("PractitionerController.SearchPractitioners called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	name := r.URL.Query().Get(constvars.URLQueryParamName)
	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, total, err := ctrl.PractitionerUsecase.SearchPractitioners(ctx, name, pagination.Page, pagination.PageSize)
	if err != nil {
		ctrl.Log.Error("PractitionerController.SearchPractitioners error from usecase",
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

	ctrl.Log.Info("PractitionerController.SearchPractitioners succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("practitioner_count", len(result)),
	)
	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.SearchPractitionersSuccess, paginationResponse, result)
}

func (ctrl *PractitionerController) CreatePractitioner(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PractitionerController.CreatePractitioner requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("PractitionerController.CreatePractitioner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(forms.PractitionerFormValues)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("PractitionerController.CreatePractitioner error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.PractitionerUsecase.CreatePractitioner(ctx, request)
	if err != nil {
		ctrl.Log.Error("PractitionerController.CreatePractitioner error from usecase",
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

	ctrl.Log.Info("PractitionerController.CreatePractitioner succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, response.PractitionerID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PractitionerCreatedSuccess, response)
}

func (ctrl *PractitionerController) UpdatePractitionerByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PractitionerController.UpdatePractitionerByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("PractitionerController.UpdatePractitionerByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	practitionerID := chi.URLParam(r, constvars.URLParamPractitionerID)
	if err := utils.ValidateUrlParamID(practitionerID); err != nil {
		ctrl.Log.Error("PractitionerController.UpdatePractitionerByID invalid url parameter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamPractitionerID))
		return
	}

	request := new(forms.PractitionerFormValues)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("PractitionerController.UpdatePractitionerByID error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.PractitionerUsecase.UpdatePractitioner(ctx, practitionerID, request)
	if err != nil {
		ctrl.Log.Error("PractitionerController.UpdatePractitionerByID error from usecase",
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

	ctrl.Log.Info("PractitionerController.UpdatePractitionerByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PractitionerUpdatedSuccess, response)
}

func (ctrl *PractitionerController) ValidatePractitionerForm(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PractitionerController.ValidatePractitionerForm requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("PractitionerController.ValidatePractitionerForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(forms.PractitionerFormValues)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("PractitionerController.ValidatePractitionerForm error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	response := ctrl.PractitionerUsecase.ValidatePractitionerForm(r.Context(), request)

	ctrl.Log.Info("PractitionerController.ValidatePractitionerForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("valid", response.Valid),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FormValidationSuccess, response)
}
