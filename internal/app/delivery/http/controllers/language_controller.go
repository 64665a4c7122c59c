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

type LanguageController struct {
	Log             *zap.Logger
	LanguageUsecase contracts.LanguageUsecase
}

var (
	languageControllerInstance *LanguageController
	onceLanguageController     sync.Once
)

func NewLanguageController(logger *zap.Logger, languageUsecase contracts.LanguageUsecase) *LanguageController {
	onceLanguageController.Do(func() {
		instance := &LanguageController{
			Log:             logger,
			LanguageUsecase: languageUsecase,
		}
		languageControllerInstance = instance
	})
	return languageControllerInstance
}

func (ctrl *LanguageController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("LanguageController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("LanguageController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.LanguageUsecase.FindAll(ctx)
	if err != nil {
		ctrl.Log.Error("LanguageController.FindAll error from usecase",
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

	ctrl.Log.Info("LanguageController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("language_count", len(result)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetLanguagesSuccessMessage, result)
}
