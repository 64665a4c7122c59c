package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gandall-service/internal/app/config"
	"gandall-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequireAdminAPIKey(t *testing.T) {
	logger := zap.NewNop()

	testAPIKey := "test-admin-api-key-12345"
	internalConfig := &config.InternalConfig{
		App: config.App{
			AdminAPIKey: testAPIKey,
		},
	}

	middlewares := &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKeyAuth, ok := r.Context().Value(constvars.CONTEXT_API_KEY_AUTH_KEY).(bool)
		assert.True(t, ok, "api key auth flag should be set")
		assert.True(t, apiKeyAuth, "api key auth flag should be true")

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/gandall/api/v1/audits", nil)
		req.Header.Set(HeaderAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		handler := middlewares.RequireAdminAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for valid API key")
		assert.Equal(t, "success", rr.Body.String(), "should return success message")
	})

	t.Run("Missing API Key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/gandall/api/v1/audits", nil)

		rr := httptest.NewRecorder()
		handler := middlewares.RequireAdminAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for missing API key")
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/gandall/api/v1/audits", nil)
		req.Header.Set(HeaderAPIKey, "invalid-api-key")

		rr := httptest.NewRecorder()
		handler := middlewares.RequireAdminAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for invalid API key")
	})

	t.Run("Case Sensitivity", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/gandall/api/v1/audits", nil)
		req.Header.Set(HeaderAPIKey, "TEST-ADMIN-API-KEY-12345")

		rr := httptest.NewRecorder()
		handler := middlewares.RequireAdminAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for case-mismatched API key")
	})

	t.Run("Whitespace in API Key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/gandall/api/v1/audits", nil)
		req.Header.Set(HeaderAPIKey, " "+testAPIKey+" ")

		rr := httptest.NewRecorder()
		handler := middlewares.RequireAdminAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for API key with whitespace")
	})

	t.Run("Unconfigured Admin Key", func(t *testing.T) {
		emptyConfig := &config.InternalConfig{App: config.App{AdminAPIKey: ""}}
		emptyMiddlewares := &Middlewares{Log: logger, InternalConfig: emptyConfig}

		req := httptest.NewRequest("GET", "/gandall/api/v1/audits", nil)
		req.Header.Set(HeaderAPIKey, "")

		rr := httptest.NewRecorder()
		handler := emptyMiddlewares.RequireAdminAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized when no admin key is configured")
	})
}

func TestAPIKeyAuth_Optional(t *testing.T) {
	logger := zap.NewNop()

	testAPIKey := "test-admin-api-key-12345"
	internalConfig := &config.InternalConfig{
		App: config.App{
			AdminAPIKey: testAPIKey,
		},
	}

	middlewares := &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKeyAuth, ok := r.Context().Value(constvars.CONTEXT_API_KEY_AUTH_KEY).(bool)
		if ok {
			assert.True(t, apiKeyAuth, "api key auth flag is only set after a successful match")
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("No API Key - Should Pass", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/gandall/api/v1/patients", nil)

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK when no API key provided (optional middleware)")
		assert.Equal(t, "success", rr.Body.String(), "should return success message")
	})

	t.Run("Valid API Key - Should Pass", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/gandall/api/v1/patients", nil)
		req.Header.Set(HeaderAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for valid API key")
		assert.Equal(t, "success", rr.Body.String(), "should return success message")
	})

	t.Run("Invalid API Key - Should Fail", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/gandall/api/v1/patients", nil)
		req.Header.Set(HeaderAPIKey, "invalid-api-key")

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for invalid API key")
	})
}

func TestRequireAdminAPIKey_ContextValues(t *testing.T) {
	logger := zap.NewNop()

	testAPIKey := "test-admin-api-key-12345"
	internalConfig := &config.InternalConfig{
		App: config.App{
			AdminAPIKey: testAPIKey,
		},
	}

	middlewares := &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}

	t.Run("Context Values Set Correctly", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/gandall/api/v1/audits", nil)
		req.Header.Set(HeaderAPIKey, testAPIKey)

		var capturedContext context.Context
		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			capturedContext = r.Context()
			w.WriteHeader(http.StatusOK)
		})

		rr := httptest.NewRecorder()
		handler := middlewares.RequireAdminAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK")

		apiKeyAuth, ok := capturedContext.Value(constvars.CONTEXT_API_KEY_AUTH_KEY).(bool)
		assert.True(t, ok, "api key auth flag should be set")
		assert.True(t, apiKeyAuth, "api key auth flag should be true")
	})
}
