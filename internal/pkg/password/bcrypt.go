package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher gera o hash da contrasena antes de persistir.
type Hasher interface {
	Hash(plain string) (string, error)
}

// BcryptHasher implementa Hasher com bcrypt.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher cria um BcryptHasher com o custo padrão da biblioteca.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

// Hash gera o hash bcrypt da senha informada.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", fmt.Errorf("falha ao gerar hash da senha: %w", err)
	}
	return string(hashed), nil
}

