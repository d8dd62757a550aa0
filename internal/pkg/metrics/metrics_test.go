package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicio-usuarios/internal/pkg/metrics"
)

func TestMiddleware_CountsByRouteTemplate(t *testing.T) {
	m := metrics.New()
	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/api/usuarios/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/usuarios/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	expected := `
# HELP usuarios_http_requests_total Total de requisições HTTP por método, rota e status.
# TYPE usuarios_http_requests_total counter
usuarios_http_requests_total{method="GET",route="/api/usuarios/{id}",status="404"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "usuarios_http_requests_total"))
}

func TestMiddleware_DefaultsToOKWithoutWriteHeader(t *testing.T) {
	m := metrics.New()
	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/api/usuarios", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/usuarios", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	expected := `
# HELP usuarios_http_requests_total Total de requisições HTTP por método, rota e status.
# TYPE usuarios_http_requests_total counter
usuarios_http_requests_total{method="GET",route="/api/usuarios",status="200"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "usuarios_http_requests_total"))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := metrics.New()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
