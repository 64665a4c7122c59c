package contracts

import (
	"context"

	"gandall-service/internal/pkg/fhirform"
)

type LanguageUsecase interface {
	FindAll(ctx context.Context) ([]fhirform.Language, error)
}

type CountryUsecase interface {
	FindAll(ctx context.Context) ([]fhirform.Country, error)
}
