package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryClient implementa Client em memória (desenvolvimento e testes).
type MemoryClient struct {
	c *gocache.Cache
}

// NewMemoryClient cria um cache em memória com o TTL padrão informado.
func NewMemoryClient(defaultTTL time.Duration) *MemoryClient {
	return &MemoryClient{c: gocache.New(defaultTTL, time.Minute)}
}

func (m *MemoryClient) Get(_ context.Context, key string) (string, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", ErrCacheMiss
	}
	s, _ := v.(string)
	return s, nil
}

func (m *MemoryClient) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	m.c.Set(key, value, expiration)
	return nil
}

func (m *MemoryClient) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

func (m *MemoryClient) Incr(_ context.Context, key string, expiration time.Duration) (int64, error) {
	for {
		if err := m.c.Add(key, int64(1), expiration); err == nil {
			return 1, nil
		}
		n, err := m.c.IncrementInt64(key, 1)
		if err == nil {
			return n, nil
		}
		// A chave expirou entre o Add e o Increment: tenta de novo.
	}
}

func (m *MemoryClient) Close() error {
	m.c.Flush()
	return nil
}
