package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/swaggo/swag"

	// Registra a documentação gerada pelo swag
	_ "servicio-usuarios/docs"
	"servicio-usuarios/internal/api/usuario"
	"servicio-usuarios/internal/pkg/cache"
	"servicio-usuarios/internal/pkg/logger"
	"servicio-usuarios/internal/pkg/metrics"
	"servicio-usuarios/internal/pkg/middleware"
)

// Options reúne as dependências já inicializadas que o roteador precisa.
type Options struct {
	UsuarioHandler     *usuario.Handler
	TokenService       middleware.TokenService
	Cache              cache.Client
	Metrics            *metrics.Metrics
	Logger             logger.Logger
	RateLimitMax       int
	RateLimitPeriod    time.Duration
	CORSAllowedOrigins []string
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(opts Options) http.Handler {
	r := mux.NewRouter()

	// --- 0. Middlewares globais ---
	r.Use(middleware.RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	// --- 1. Rotas abertas: health check, métricas e documentação ---
	r.HandleFunc("/ping", PingHandler).Methods(http.MethodGet)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/v3/api-docs", APIDocsHandler).Methods(http.MethodGet)
	r.Handle("/swagger-ui", http.RedirectHandler("/swagger-ui/index.html", http.StatusMovedPermanently))
	r.PathPrefix("/swagger-ui/").Handler(httpSwagger.Handler(httpSwagger.URL("/v3/api-docs")))

	// --- 2. Módulo de Usuarios ---
	h := opts.UsuarioHandler
	api := r.PathPrefix("/api/usuarios").Subrouter()

	// POST /api/usuarios: criação pública, limitada por IP
	create := http.Handler(http.HandlerFunc(h.CreateHandler))
	if opts.Cache != nil && opts.RateLimitMax > 0 {
		create = middleware.RateLimiter(opts.Cache, opts.RateLimitMax, opts.RateLimitPeriod, opts.Logger)(create)
	}
	api.Handle("", create).Methods(http.MethodPost)

	// Demais rotas exigem Bearer token
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.NewAuthMiddleware(opts.TokenService))
	protected.HandleFunc("", h.FindAllHandler).Methods(http.MethodGet)
	protected.HandleFunc("/{id}", h.FindByIDHandler).Methods(http.MethodGet)
	protected.HandleFunc("/{id}", h.UpdateHandler).Methods(http.MethodPut)
	protected.HandleFunc("/{id}", h.ParcialUpdateHandler).Methods(http.MethodPatch)
	protected.HandleFunc("/{id}", h.DeleteHandler).Methods(http.MethodDelete)

	// --- 3. CORS envolvendo o roteador ---
	c := cors.New(cors.Options{
		AllowedOrigins: opts.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return c.Handler(r)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// APIDocsHandler serve o documento OpenAPI gerado pelo swag.
func APIDocsHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
