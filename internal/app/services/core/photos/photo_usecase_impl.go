package photos

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gandall-service/internal/app/config"
	"gandall-service/internal/app/contracts"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/requests"
	"gandall-service/internal/pkg/dto/responses"
	"gandall-service/internal/pkg/exceptions"
	"gandall-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type photoUsecase struct {
	Storage        contracts.Storage
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

var (
	photoUsecaseInstance contracts.PhotoUsecase
	oncePhotoUsecase     sync.Once
)

func NewPhotoUsecase(
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PhotoUsecase {
	oncePhotoUsecase.Do(func() {
		photoUsecaseInstance = &photoUsecase{
			Storage:        storage,
			InternalConfig: internalConfig,
			Log:            logger,
		}
	})
	return photoUsecaseInstance
}

func (uc *photoUsecase) UploadPhoto(ctx context.Context, request *requests.UploadPhoto) (*responses.UploadPhoto, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("photoUsecase.UploadPhoto called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("file_name", request.FileName),
	)

	if err := utils.ValidateStruct(request); err != nil {
		uc.Log.Error("photoUsecase.UploadPhoto request failed validation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	imageData, fileExtension, err := utils.DecodeBase64Image(request.Data, request.ContentType)
	if err != nil {
		uc.Log.Error("photoUsecase.UploadPhoto error decoding image payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrImageValidation(err)
	}

	maxUploadSizeInBytes := uc.InternalConfig.Minio.PhotoMaxUploadSizeInMB * 1024 * 1024
	if int64(len(imageData)) > maxUploadSizeInBytes {
		errTooLarge := fmt.Errorf("image is %d bytes, limit is %d bytes", len(imageData), maxUploadSizeInBytes)
		uc.Log.Error("photoUsecase.UploadPhoto image exceeds upload limit",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(errTooLarge),
		)
		return nil, exceptions.ErrImageTooLarge(errTooLarge)
	}

	fileName := utils.GenerateFileName(constvars.StoragePhotoObjectPrefix, fileExtension)
	objectName, err := uc.Storage.UploadBase64Image(ctx, imageData, uc.InternalConfig.Minio.BucketName, fileName, fileExtension)
	if err != nil {
		return nil, err
	}

	expiryTime := time.Duration(uc.InternalConfig.Minio.PreSignedUrlObjectExpiryTimeInHours) * time.Hour
	objectUrl, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.InternalConfig.Minio.BucketName, objectName, expiryTime)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("photoUsecase.UploadPhoto succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("object_name", objectName),
	)
	return &responses.UploadPhoto{
		ObjectName: objectName,
		Url:        objectUrl,
	}, nil
}
