package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicio-usuarios/internal/api/router"
	"servicio-usuarios/internal/api/usuario"
	"servicio-usuarios/internal/domain"
	"servicio-usuarios/internal/pkg/cache"
	"servicio-usuarios/internal/pkg/logger"
	"servicio-usuarios/internal/pkg/metrics"
	"servicio-usuarios/internal/pkg/token"
)

// stubService responde sempre com sucesso.
type stubService struct{}

func (stubService) FindAll(context.Context) ([]domain.Usuario, error) {
	return []domain.Usuario{{ID: "1", Nombre: "Ana", Telefonos: []domain.Telefono{}}}, nil
}

func (stubService) FindByID(_ context.Context, id string) (domain.Usuario, error) {
	return domain.Usuario{ID: id}, nil
}

func (stubService) Save(context.Context, domain.UsuarioRequest) (*domain.UsuarioResponse, error) {
	return &domain.UsuarioResponse{ID: "1", Token: "jwt", Activo: true}, nil
}

func (stubService) Update(_ context.Context, id string, _ domain.UsuarioRequest) (domain.Usuario, error) {
	return domain.Usuario{ID: id}, nil
}

func (stubService) ParcialUpdate(_ context.Context, id string, _ domain.UsuarioParcial) (domain.Usuario, error) {
	return domain.Usuario{ID: id}, nil
}

func (stubService) Delete(context.Context, string) error { return nil }

func setup(t *testing.T, rateLimit int) (http.Handler, *token.Service) {
	t.Helper()
	tokens := token.NewService("segredo-de-teste", time.Hour)
	log := logger.NewNopLogger()
	h := router.NewRouter(router.Options{
		UsuarioHandler:     usuario.NewHandler(stubService{}, log),
		TokenService:       tokens,
		Cache:              cache.NewMemoryClient(time.Minute),
		Metrics:            metrics.New(),
		Logger:             log,
		RateLimitMax:       rateLimit,
		RateLimitPeriod:    time.Minute,
		CORSAllowedOrigins: []string{"*"},
	})
	return h, tokens
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_OpenEndpoints(t *testing.T) {
	h, _ := setup(t, 100)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/v3/api-docs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/usuarios/{id}")

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "usuarios_http_requests_total")

	body := `{"nombre":"Ana","correo":"ana@test.com","contrasena":"abc123"}`
	rec = serve(h, httptest.NewRequest(http.MethodPost, "/api/usuarios", strings.NewReader(body)))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	h, tokens := setup(t, 100)
	jwt, err := tokens.GenerateToken("ana@test.com")
	require.NoError(t, err)

	paths := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/usuarios", "", http.StatusOK},
		{http.MethodGet, "/api/usuarios/abc", "", http.StatusOK},
		{http.MethodPut, "/api/usuarios/abc", `{"nombre":"Ana"}`, http.StatusOK},
		{http.MethodPatch, "/api/usuarios/abc", `{}`, http.StatusOK},
		{http.MethodDelete, "/api/usuarios/abc", "", http.StatusNoContent},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := serve(h, httptest.NewRequest(p.method, p.path, strings.NewReader(p.body)))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"mensaje"`)

			req := httptest.NewRequest(p.method, p.path, strings.NewReader(p.body))
			req.Header.Set("Authorization", "Bearer "+jwt)
			rec = serve(h, req)
			assert.Equal(t, p.want, rec.Code)
		})
	}
}

func TestRouter_CreateIsRateLimited(t *testing.T) {
	h, _ := setup(t, 1)
	body := `{"nombre":"Ana","correo":"ana@test.com","contrasena":"abc123"}`

	first := serve(h, httptest.NewRequest(http.MethodPost, "/api/usuarios", strings.NewReader(body)))
	second := serve(h, httptest.NewRequest(http.MethodPost, "/api/usuarios", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	h, _ := setup(t, 100)

	req := httptest.NewRequest(http.MethodOptions, "/api/usuarios", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(h, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
