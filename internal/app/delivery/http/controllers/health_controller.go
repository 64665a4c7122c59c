package controllers

import (
	"net/http"
	"sync"

	"gandall-service/internal/app/config"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/responses"
	"gandall-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type HealthController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
}

var (
	healthControllerInstance *HealthController
	onceHealthController     sync.Once
)

func NewHealthController(logger *zap.Logger, internalConfig *config.InternalConfig) *HealthController {
	onceHealthController.Do(func() {
		instance := &HealthController{
			Log:            logger,
			InternalConfig: internalConfig,
		}
		healthControllerInstance = instance
	})
	return healthControllerInstance
}

func (ctrl *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	response := responses.Health{
		Status:      "ok",
		Version:     ctrl.InternalConfig.App.Version,
		Environment: ctrl.InternalConfig.App.Env,
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, response)
}
