package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"gandall-service/internal/app/contracts"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/exceptions"
	"gandall-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type CountryController struct {
	Log            *zap.Logger
	CountryUsecase contracts.CountryUsecase
}

var (
	countryControllerInstance *CountryController
	onceCountryController     sync.Once
)

func NewCountryController(logger *zap.Logger, countryUsecase contracts.CountryUsecase) *CountryController {
	onceCountryController.Do(func() {
		instance := &CountryController{
			Log:            logger,
			CountryUsecase: countryUsecase,
		}
		countryControllerInstance = instance
	})
	return countryControllerInstance
}

func (ctrl *CountryController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("CountryController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("CountryController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.CountryUsecase.FindAll(ctx)
	if err != nil {
		ctrl.Log.Error("CountryController.FindAll error from usecase",
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

	ctrl.Log.Info("CountryController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("country_count", len(result)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCountriesSuccessMessage, result)
}
