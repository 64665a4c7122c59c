package fhirauth

import (
	"context"
	"sync"
	"time"

	"gandall-service/internal/app/config"
	"gandall-service/internal/app/contracts"
	"gandall-service/internal/pkg/constvars"
	"gandall-service/internal/pkg/exceptions"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const tokenSubject = "gandall-service"

// renewMargin forces a re-sign shortly before expiry so in-flight requests
// never carry a token that lapses mid-call.
const renewMargin = 30 * time.Second

type tokenProvider struct {
	secret string
	ttl    time.Duration
	log    *zap.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenProvider builds the HS256 system-token provider for the FHIR server.
// An empty secret disables signing; AccessToken then returns an empty token and
// requests go out unauthenticated, which is how a local development server runs.
func NewTokenProvider(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.FhirTokenProvider {
	ttl := time.Duration(internalConfig.FHIR.JWTExpiredTimeInMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &tokenProvider{
		secret: internalConfig.FHIR.JWTSecret,
		ttl:    ttl,
		log:    logger,
	}
}

func (p *tokenProvider) AccessToken(ctx context.Context) (string, error) {
	if p.secret == "" {
		return "", nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now().UTC()
	if p.token != "" && now.Before(p.expiresAt.Add(-renewMargin)) {
		return p.token, nil
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("tokenProvider.AccessToken signing new token",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	expiresAt := now.Add(p.ttl)
	claims := jwt.MapClaims{
		"sub": tokenSubject,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(p.secret))
	if err != nil {
		p.log.Error("tokenProvider.AccessToken error signing token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrSignFHIRToken(err)
	}

	p.token = signed
	p.expiresAt = expiresAt
	return signed, nil
}
