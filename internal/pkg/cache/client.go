package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client define o contrato de interface para qualquer serviço de cache que o Repositório
// e os middlewares possam usar.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr incrementa o contador da chave; o TTL é aplicado quando a chave é criada.
	Incr(ctx context.Context, key string, expiration time.Duration) (int64, error)
	Close() error
}

// ErrCacheMiss é retornado quando a chave não é encontrada no cache.
var ErrCacheMiss = errors.New("cache: chave não encontrada")

// New cria o Client para o driver informado ("redis" ou "memory").
func New(driver string, redisAddr string) (Client, error) {
	switch driver {
	case "redis":
		return NewRedisClient(redisAddr)
	case "memory", "":
		return NewMemoryClient(5 * time.Minute), nil
	default:
		return nil, fmt.Errorf("driver de cache desconhecido: %q", driver)
	}
}
