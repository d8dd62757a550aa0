package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"servicio-usuarios/config"
	"servicio-usuarios/internal/pkg/cache"
	"servicio-usuarios/internal/pkg/database"
	"servicio-usuarios/internal/pkg/logger"
	"servicio-usuarios/internal/pkg/metrics"
	"servicio-usuarios/internal/pkg/password"
	"servicio-usuarios/internal/pkg/token"
	"servicio-usuarios/internal/pkg/validator"

	// Camadas do Usuario para Injeção de Dependências
	"servicio-usuarios/internal/api/router"  // Roteador central
	"servicio-usuarios/internal/api/usuario" // Handlers
	"servicio-usuarios/internal/repository/telefonorepo"
	"servicio-usuarios/internal/repository/usuariorepo" // Acesso a Dados
	"servicio-usuarios/internal/service/usuarioservice" // Lógica de Negócio
)

// @title Servicio de Usuarios API
// @version 1.0
// @description CRUD de usuarios y sus teléfonos con autenticación JWT.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Informe "Bearer " seguido do token devolvido na criação do usuario.
func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel, cfg.Environment)
	defer appLog.Sync()
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis ou memória)
	cacheClient, err := cache.New(cfg.CacheDriver, cfg.RedisAddr)
	if err != nil {
		appLog.Fatal("Falha ao inicializar o cache.", err)
	}
	defer cacheClient.Close()
	appLog.Info("Cache inicializado.", map[string]interface{}{"driver": cfg.CacheDriver})

	// C. Validação (padrão configurável da contrasena)
	v, err := validator.New(cfg.PasswordPattern)
	if err != nil {
		appLog.Fatal("Padrão de contrasena inválido.", err)
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios
	telefonoRepo := telefonorepo.NewTelefonoRepository(db, cfg.DBTimeout)
	usuarioRepo := usuariorepo.NewUsuarioRepository(db, cacheClient, telefonoRepo, appLog, cfg.DBTimeout, cfg.CacheTTL)
	appLog.Debug("Repositórios inicializados.", nil)

	// B. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// C. Serviço de Usuario
	usuarioSvc := usuarioservice.NewService(
		usuarioRepo,
		database.NewTxManager(db),
		tokenSvc,
		password.NewBcryptHasher(),
		v,
		appLog,
	)
	appLog.Debug("Serviço de Usuario inicializado.", nil)

	// D. Handler de Usuario
	usuarioHandler := usuario.NewHandler(usuarioSvc, appLog)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(router.Options{
		UsuarioHandler:     usuarioHandler,
		TokenService:       tokenSvc,
		Cache:              cacheClient,
		Metrics:            metrics.New(),
		Logger:             appLog,
		RateLimitMax:       cfg.RateLimitMaxRequests,
		RateLimitPeriod:    cfg.RateLimitPeriod,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
