package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"servicio-usuarios/internal/pkg/cache"
	"servicio-usuarios/internal/pkg/logger"
	"servicio-usuarios/internal/pkg/middleware"
	"servicio-usuarios/internal/pkg/token"
)

// --- Mock TokenService ---

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) ValidateToken(tokenString string) (*token.CustomClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.CustomClaims), args.Error(1)
}

// --- Mock cache.Client ---

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) Incr(ctx context.Context, key string, exp time.Duration) (int64, error) {
	args := m.Called(ctx, key, exp)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Close() error { return nil }

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
			w.Header().Set("X-Correo", claims.Correo)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setupMock  func(m *MockTokenService)
		wantStatus int
		wantCorreo string
	}{
		{
			name:       "Sem header",
			header:     "",
			setupMock:  func(m *MockTokenService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Esquema errado",
			header:     "Basic abc",
			setupMock:  func(m *MockTokenService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Token inválido",
			header: "Bearer ruim",
			setupMock: func(m *MockTokenService) {
				m.On("ValidateToken", "ruim").Return(nil, errors.New("assinatura inválida")).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Token válido",
			header: "Bearer bom",
			setupMock: func(m *MockTokenService) {
				m.On("ValidateToken", "bom").Return(&token.CustomClaims{Correo: "ana@test.com"}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantCorreo: "ana@test.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := new(MockTokenService)
			tt.setupMock(tokenSvc)

			req := httptest.NewRequest(http.MethodGet, "/api/usuarios", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			middleware.NewAuthMiddleware(tokenSvc)(okHandler(t)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCorreo, rec.Header().Get("X-Correo"))
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), `"mensaje"`)
			}
			tokenSvc.AssertExpectations(t)
		})
	}
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	client := cache.NewMemoryClient(time.Minute)
	h := middleware.RateLimiter(client, 2, time.Minute, logger.NewNopLogger())(okHandler(t))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/usuarios", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_FailsOpenOnCacheError(t *testing.T) {
	client := new(MockCache)
	client.On("Incr", mock.Anything, mock.Anything, time.Minute).Return(int64(0), errors.New("redis fora")).Once()

	h := middleware.RateLimiter(client, 1, time.Minute, logger.NewNopLogger())(okHandler(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/usuarios", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	client.AssertExpectations(t)
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	h := middleware.RequestLogger(logger.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/usuarios", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := middleware.NewStatusRecorder(rec)
	assert.Equal(t, http.StatusOK, sr.Status)

	sr.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, sr.Status)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Same(t, rec, sr.Unwrap())

	// Só Write, sem WriteHeader: continua 200.
	implicit := middleware.NewStatusRecorder(httptest.NewRecorder())
	_, err := implicit.Write([]byte("ok"))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, implicit.Status)
}
