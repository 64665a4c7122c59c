package photos

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"gandall-service/internal/app/config"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/dto/requests"
	"gandall-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadBase64Image(ctx context.Context, imageData []byte, bucketName, fileName, fileExtension string) (string, error) {
	args := m.Called(ctx, imageData, bucketName, fileName, fileExtension)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

func newTestPhotoUsecase(storage *MockStorage) *photoUsecase {
	return &photoUsecase{
		Storage: storage,
		InternalConfig: &config.InternalConfig{
			Minio: config.AppMinio{
				BucketName:                          "gandall-photos",
				PhotoMaxUploadSizeInMB:              1,
				PreSignedUrlObjectExpiryTimeInHours: 24,
			},
		},
		Log: zap.NewNop(),
	}
}

func TestPhotoUsecase_UploadPhoto(t *testing.T) {
	ctx := context.Background()
	imageBytes := []byte("png image bytes")

	t.Run("Valid Upload Returns Object Name And URL", func(t *testing.T) {
		storage := new(MockStorage)
		uc := newTestPhotoUsecase(storage)

		storage.On("UploadBase64Image", mock.Anything, imageBytes, "gandall-photos", mock.MatchedBy(func(fileName string) bool {
			return strings.HasPrefix(fileName, constvars.StoragePhotoObjectPrefix+"_") && strings.HasSuffix(fileName, ".png")
		}), ".png").Return("resource-photos_20250101_080000.png", nil)
		storage.On("GetObjectUrlWithExpiryTime", mock.Anything, "gandall-photos", "resource-photos_20250101_080000.png", 24*time.Hour).
			Return("https://storage.gandall.example/resource-photos_20250101_080000.png", nil)

		response, err := uc.UploadPhoto(ctx, &requests.UploadPhoto{
			FileName:    "profile.png",
			ContentType: "image/png",
			Data:        base64.StdEncoding.EncodeToString(imageBytes),
		})

		require.NoError(t, err, "Error should be nil for a valid upload")
		assert.Equal(t, "resource-photos_20250101_080000.png", response.ObjectName, "ObjectName should come from the storage layer")
		assert.Equal(t, "https://storage.gandall.example/resource-photos_20250101_080000.png", response.Url, "Url should be the pre-signed object URL")
		storage.AssertExpectations(t)
	})

	t.Run("Data URI Carries Its Own Content Type", func(t *testing.T) {
		storage := new(MockStorage)
		uc := newTestPhotoUsecase(storage)

		storage.On("UploadBase64Image", mock.Anything, imageBytes, "gandall-photos", mock.Anything, ".png").
			Return("resource-photos_20250101_080000.png", nil)
		storage.On("GetObjectUrlWithExpiryTime", mock.Anything, "gandall-photos", mock.Anything, 24*time.Hour).
			Return("https://storage.gandall.example/resource-photos_20250101_080000.png", nil)

		response, err := uc.UploadPhoto(ctx, &requests.UploadPhoto{
			Data: "data:image/png;base64," + base64.StdEncoding.EncodeToString(imageBytes),
		})

		require.NoError(t, err, "A data URI should not need a declared content type")
		assert.NotEmpty(t, response.ObjectName, "ObjectName should be set")
	})

	t.Run("Missing Data Is Rejected", func(t *testing.T) {
		storage := new(MockStorage)
		uc := newTestPhotoUsecase(storage)

		response, err := uc.UploadPhoto(ctx, &requests.UploadPhoto{ContentType: "image/png"})

		require.Error(t, err, "An empty payload should be rejected")
		assert.Nil(t, response, "Response should be nil on rejection")

		var customError *exceptions.CustomError
		require.ErrorAs(t, err, &customError, "Input validation failures should surface as CustomError")
		assert.Equal(t, constvars.StatusBadRequest, customError.StatusCode, "Missing data should map to 400")
		storage.AssertNotCalled(t, "UploadBase64Image", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid Base64 Is Rejected", func(t *testing.T) {
		storage := new(MockStorage)
		uc := newTestPhotoUsecase(storage)

		_, err := uc.UploadPhoto(ctx, &requests.UploadPhoto{
			ContentType: "image/png",
			Data:        "!!!not-base64!!!",
		})

		require.Error(t, err, "A malformed payload should be rejected")

		var customError *exceptions.CustomError
		require.ErrorAs(t, err, &customError, "Decode failures should surface as CustomError")
		assert.Equal(t, constvars.StatusBadRequest, customError.StatusCode, "A malformed payload should map to 400")
	})

	t.Run("Unknown Content Type Is Rejected", func(t *testing.T) {
		storage := new(MockStorage)
		uc := newTestPhotoUsecase(storage)

		_, err := uc.UploadPhoto(ctx, &requests.UploadPhoto{
			ContentType: "not-a-mime-type",
			Data:        base64.StdEncoding.EncodeToString(imageBytes),
		})

		require.Error(t, err, "A content type without a known extension should be rejected")
	})

	t.Run("Oversized Image Is Rejected", func(t *testing.T) {
		storage := new(MockStorage)
		uc := newTestPhotoUsecase(storage)

		oversized := bytes.Repeat([]byte("a"), 1536*1024)

		_, err := uc.UploadPhoto(ctx, &requests.UploadPhoto{
			ContentType: "image/png",
			Data:        base64.StdEncoding.EncodeToString(oversized),
		})

		require.Error(t, err, "A payload over the configured limit should be rejected")

		var customError *exceptions.CustomError
		require.ErrorAs(t, err, &customError, "Size failures should surface as CustomError")
		assert.Equal(t, constvars.StatusRequestEntityTooLarge, customError.StatusCode, "An oversized payload should map to 413")
		storage.AssertNotCalled(t, "UploadBase64Image", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Storage Error Propagates", func(t *testing.T) {
		storage := new(MockStorage)
		uc := newTestPhotoUsecase(storage)

		storageError := exceptions.ErrMinioCreateObject(errors.New("connection refused"), "gandall-photos")
		storage.On("UploadBase64Image", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", storageError)

		response, err := uc.UploadPhoto(ctx, &requests.UploadPhoto{
			ContentType: "image/png",
			Data:        base64.StdEncoding.EncodeToString(imageBytes),
		})

		require.Error(t, err, "A storage failure should propagate")
		assert.Nil(t, response, "Response should be nil on storage failure")
		assert.Equal(t, storageError, err, "The storage error should come back unchanged")
	})
}
