package ratelimiter

import "golang.org/x/time/rate"

// NewFhirLimiter bounds outbound calls to the FHIR server. One limiter is
// shared across all resource clients so the cap holds for the whole process.
// Burst equals the per-second quota so short spikes drain without waiting.
func NewFhirLimiter(maxRequestsPerSecond int) *rate.Limiter {
	if maxRequestsPerSecond <= 0 {
		maxRequestsPerSecond = 10
	}
	return rate.NewLimiter(rate.Limit(maxRequestsPerSecond), maxRequestsPerSecond)
}
