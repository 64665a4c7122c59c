package contracts

import "context"

// FhirTokenProvider issues the bearer token the FHIR clients attach to
// outbound requests. Implementations may return an empty token, in which
// case requests go out unauthenticated.
type FhirTokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}
