package contracts

import (
	"context"

	"gandall-service/internal/pkg/dto/requests"
	"gandall-service/internal/pkg/dto/responses"
)

type PhotoUsecase interface {
	UploadPhoto(ctx context.Context, request *requests.UploadPhoto) (*responses.UploadPhoto, error)
}
