package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultPasswordPattern aceita apenas letras e dígitos, com pelo menos uma letra, pelo menos
// um dígito e no mínimo 6 caracteres. O RE2 não suporta lookahead, então as posições da
// transição letra/dígito são enumeradas.
const DefaultPasswordPattern = `(?:[A-Za-z\d]{4,}(?:[A-Za-z]\d|\d[A-Za-z])[A-Za-z\d]*` +
	`|[A-Za-z\d]{3}(?:[A-Za-z]\d|\d[A-Za-z])[A-Za-z\d]+` +
	`|[A-Za-z\d]{2}(?:[A-Za-z]\d|\d[A-Za-z])[A-Za-z\d]{2,}` +
	`|[A-Za-z\d](?:[A-Za-z]\d|\d[A-Za-z])[A-Za-z\d]{3,}` +
	`|(?:[A-Za-z]\d|\d[A-Za-z])[A-Za-z\d]{4,})`

// Config armazena todas as configurações do serviço de usuarios.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis ou memória)
	CacheDriver string
	RedisAddr   string
	CacheTTL    time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting do endpoint público de criação
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	CORSAllowedOrigins []string

	// Padrão que toda contrasena deve satisfazer (validação de senha).
	PasswordPattern string
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Banco de Dados (PostgreSQL)
		// mustGetEnv garante que a aplicação não inicie sem credenciais de DB
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		// 3. Cache
		CacheDriver: getEnv("CACHE_DRIVER", "redis"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:    getDurationEnv("CACHE_TTL_SEC", 300) * time.Second,

		// 4. Segurança (JWT)
		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		// 6. CORS
		CORSAllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),

		// 7. Regras de negócio
		PasswordPattern: getEnv("USUARIO_CONTRASENA_PATRON", DefaultPasswordPattern),
	}

	return cfg
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getListEnv lê uma lista separada por vírgulas.
func getListEnv(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
