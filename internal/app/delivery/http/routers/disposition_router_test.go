package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"medicore-service/internal/app/config"
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/app/services/core/dispositions"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockDispositionUsecase struct {
	mock.Mock
}

func (m *MockDispositionUsecase) Disposition(ctx context.Context, encounterID string, request *requests.CreateDisposition) (*responses.DispositionResult, error) {
	args := m.Called(ctx, encounterID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.DispositionResult), args.Error(1)
}

func signTestToken(t *testing.T, secret, subject string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestDispositionRouter_CreateDisposition(t *testing.T) {
	logger := zap.NewNop()
	testSecret := "test-jwt-secret"

	internalConfig := &config.InternalConfig{
		App: config.App{
			RequestTimeoutInSeconds: 5,
		},
		JWT: config.JWT{
			Secret: testSecret,
		},
	}

	mockUsecase := new(MockDispositionUsecase)
	controller := dispositions.NewDispositionController(logger, mockUsecase, internalConfig)

	middlewareInstance := &middlewares.Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}

	router := chi.NewRouter()
	attachDispositionRoutes(router, middlewareInstance, controller)

	t.Run("disposition with valid token", func(t *testing.T) {
		mockUsecase.On("Disposition", mock.Anything, "enc-1", mock.AnythingOfType("*requests.CreateDisposition")).
			Return(&responses.DispositionResult{
				Outcome:     constvars.DispositionOutcomeDischarged,
				EncounterID: "enc-1",
			}, nil).Once()

		requestBody := requests.CreateDisposition{
			DispositionKind: constvars.DispositionKindDischarge,
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/enc-1/disposition", bytes.NewBuffer(jsonBody))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+signTestToken(t, testSecret, "clinician-1"))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockUsecase.AssertExpectations(t)
	})

	t.Run("disposition without token", func(t *testing.T) {
		requestBody := requests.CreateDisposition{
			DispositionKind: constvars.DispositionKindDischarge,
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/enc-1/disposition", bytes.NewBuffer(jsonBody))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("disposition with malformed token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/enc-1/disposition", bytes.NewBufferString("{}"))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-token")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("disposition with invalid body", func(t *testing.T) {
		requestBody := requests.CreateDisposition{
			DispositionKind: "teleport",
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/enc-1/disposition", bytes.NewBuffer(jsonBody))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+signTestToken(t, testSecret, "clinician-1"))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
