package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"gandall-service/internal/app/contracts"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/requests"
	"gandall-service/internal/pkg/exceptions"
	"gandall-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type PhotoController struct {
	Log          *zap.Logger
	PhotoUsecase contracts.PhotoUsecase
}

var (
	photoControllerInstance *PhotoController
	oncePhotoController     sync.Once
)

func NewPhotoController(logger *zap.Logger, photoUsecase contracts.PhotoUsecase) *PhotoController {
	oncePhotoController.Do(func() {
		instance := &PhotoController{
			Log:          logger,
			PhotoUsecase: photoUsecase,
		}
		photoControllerInstance = instance
	})
	return photoControllerInstance
}

func (ctrl *PhotoController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PhotoController.UploadPhoto requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("PhotoController.UploadPhoto called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.UploadPhoto)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("PhotoController.UploadPhoto error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.PhotoUsecase.UploadPhoto(ctx, request)
	if err != nil {
		ctrl.Log.Error("PhotoController.UploadPhoto error from usecase",
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

	ctrl.Log.Info("PhotoController.UploadPhoto succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, response.ObjectName),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PhotoUploadedSuccess, response)
}
