package domain

import (
	"context"
	"time"
)

// MsgCorreoRegistrado é a mensagem de conflito quando o correo já pertence a um usuario,
// seja detectada pelo serviço ou pela constraint única do banco.
const MsgCorreoRegistrado = "El correo ya está registrado"

// Usuario representa uma conta registrada no serviço.
// Contrasena e Token nunca são serializados nas respostas de leitura.
type Usuario struct {
	ID          string     `json:"id"`
	Nombre      string     `json:"nombre"`
	Correo      string     `json:"correo"`
	Contrasena  string     `json:"-"` // Hash bcrypt da senha
	Telefonos   []Telefono `json:"telefonos"`
	Creado      time.Time  `json:"creado"`
	Modificado  time.Time  `json:"modificado"`
	UltimoLogin time.Time  `json:"ultimoLogin"`
	Token       string     `json:"-"`
	Activo      bool       `json:"activo"`
}

// AddTelefono anexa um telefone à coleção, atribuindo o dono.
func (u *Usuario) AddTelefono(t Telefono) {
	t.UsuarioID = u.ID
	u.Telefonos = append(u.Telefonos, t)
}

// Telefono é um número de telefone pertencente a exatamente um Usuario.
type Telefono struct {
	ID           string `json:"id"`
	Numero       string `json:"numero"`
	CodigoCiudad string `json:"codigoCiudad"`
	CodigoPais   string `json:"codigoPais"`
	UsuarioID    string `json:"-"` // Referência ao dono, não exposta
}

// UsuarioResponse é a projeção devolvida apenas na criação do usuario.
// @Description Resultado da criação: nunca contém nombre, correo, contrasena ou telefonos.
type UsuarioResponse struct {
	ID          string    `json:"id" example:"3c95b8c8-6f1e-4d1b-9a59-2f3e6a1d8b10"`
	Creado      time.Time `json:"creado"`
	Modificado  time.Time `json:"modificado"`
	UltimoLogin time.Time `json:"ultimoLogin"`
	Token       string    `json:"token"`
	Activo      bool      `json:"activo" example:"true"`
}

// --- Payloads de Entrada ---

// TelefonoRequest é o payload de um telefone nas requisições de escrita.
type TelefonoRequest struct {
	Numero       string `json:"numero" validate:"notblank" example:"123456789"`
	CodigoCiudad string `json:"codigoCiudad" validate:"notblank" example:"1"`
	CodigoPais   string `json:"codigoPais" validate:"notblank" example:"56"`
}

// UsuarioRequest é o payload de criação (POST) e de substituição completa (PUT).
// No PUT a contrasena é opcional: vazia significa "manter a atual".
type UsuarioRequest struct {
	Nombre     string            `json:"nombre" validate:"notblank" example:"Ana"`
	Correo     string            `json:"correo" validate:"notblank" example:"ana@test.com"`
	Contrasena string            `json:"contrasena" example:"abc123"`
	Telefonos  []TelefonoRequest `json:"telefonos" validate:"dive"`
}

// UsuarioParcial é o payload da atualização parcial (PATCH).
// Campos nil não são aplicados.
type UsuarioParcial struct {
	Nombre     *string           `json:"nombre,omitempty" validate:"omitempty,notblank"`
	Correo     *string           `json:"correo,omitempty" validate:"omitempty,notblank"`
	Contrasena *string           `json:"contrasena,omitempty"`
	Telefonos  []TelefonoRequest `json:"telefonos,omitempty" validate:"dive"`
	Activo     *bool             `json:"activo,omitempty"`
}

// --- Interfaces de Contrato ---

// UsuarioRepository define o contrato de persistência para a entidade Usuario.
// Save insere ou atualiza o usuario e sincroniza a coleção de telefonos.
type UsuarioRepository interface {
	FindAll(ctx context.Context) ([]Usuario, error)
	FindByID(ctx context.Context, id string) (Usuario, error)
	ExistsByCorreo(ctx context.Context, correo string) (bool, error)
	Save(ctx context.Context, usuario Usuario) (Usuario, error)
	DeleteByID(ctx context.Context, id string) error
}

// TelefonoRepository define o contrato de persistência dos telefones de um usuario.
type TelefonoRepository interface {
	FindByUsuarioIDs(ctx context.Context, usuarioIDs ...string) (map[string][]Telefono, error)
	ReplaceForUsuario(ctx context.Context, usuarioID string, telefonos []Telefono) error
	DeleteByUsuarioID(ctx context.Context, usuarioID string) error
}

// UsuarioService define o contrato de lógica de negócio para a entidade Usuario.
type UsuarioService interface {
	FindAll(ctx context.Context) ([]Usuario, error)
	FindByID(ctx context.Context, id string) (Usuario, error)
	Save(ctx context.Context, req UsuarioRequest) (*UsuarioResponse, error)
	Update(ctx context.Context, id string, req UsuarioRequest) (Usuario, error)
	ParcialUpdate(ctx context.Context, id string, parcial UsuarioParcial) (Usuario, error)
	Delete(ctx context.Context, id string) error
}
