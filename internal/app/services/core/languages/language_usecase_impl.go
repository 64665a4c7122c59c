package languages

import (
	"context"
	"sync"

	"gandall-service/internal/app/contracts"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/fhirform"

	"go.uber.org/zap"
)

type languageUsecase struct {
	Log *zap.Logger
}

var (
	languageUsecaseInstance contracts.LanguageUsecase
	onceLanguageUsecase     sync.Once
)

func NewLanguageUsecase(logger *zap.Logger) contracts.LanguageUsecase {
	onceLanguageUsecase.Do(func() {
		languageUsecaseInstance = &languageUsecase{
			Log: logger,
		}
	})
	return languageUsecaseInstance
}

// FindAll serves the supported language list. The list is compiled-in
// reference data, so there is no repository behind it.
func (uc *languageUsecase) FindAll(ctx context.Context) ([]fhirform.Language, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("languageUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	languages := fhirform.SupportedLanguages()

	uc.Log.Info("languageUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("language_count", len(languages)),
	)
	return languages, nil
}
