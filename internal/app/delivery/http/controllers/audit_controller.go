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

type AuditController struct {
	Log          *zap.Logger
	AuditUsecase contracts.AuditUsecase
}

var (
	auditControllerInstance *AuditController
	onceAuditController     sync.Once
)

func NewAuditController(logger *zap.Logger, auditUsecase contracts.AuditUsecase) *AuditController {
	onceAuditController.Do(func() {
		instance := &AuditController{
			Log:          logger,
			AuditUsecase: auditUsecase,
		}
		auditControllerInstance = instance
	})
	return auditControllerInstance
}

func (ctrl *AuditController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AuditController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("AuditController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	resourceType := r.URL.Query().Get(constvars.URLQueryParamResourceType)
	resourceID := r.URL.Query().Get(constvars.URLQueryParamResourceID)
	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, total, err := ctrl.AuditUsecase.FindResourceAudits(ctx, resourceType, resourceID, pagination.Page, pagination.PageSize)
	if err != nil {
		ctrl.Log.Error("AuditController.FindAll error from usecase",
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

	ctrl.Log.Info("AuditController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("audit_count", len(result)),
	)
	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetAuditsSuccessMessage, paginationResponse, result)
}
