package countries

import (
	"context"
	"sync"

	"gandall-service/internal/app/contracts"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/fhirform"

	"go.uber.org/zap"
)

type countryUsecase struct {
	Log *zap.Logger
}

var (
	countryUsecaseInstance contracts.CountryUsecase
	onceCountryUsecase     sync.Once
)

func NewCountryUsecase(logger *zap.Logger) contracts.CountryUsecase {
	onceCountryUsecase.Do(func() {
		countryUsecaseInstance = &countryUsecase{
			Log: logger,
		}
	})
	return countryUsecaseInstance
}

// FindAll serves the country list. The list is compiled-in reference
// data, so there is no repository behind it.
func (uc *countryUsecase) FindAll(ctx context.Context) ([]fhirform.Country, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("countryUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	countries := fhirform.Countries()

	uc.Log.Info("countryUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("country_count", len(countries)),
	)
	return countries, nil
}
