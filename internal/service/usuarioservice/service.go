package usuarioservice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"servicio-usuarios/internal/domain"
	apperror "servicio-usuarios/internal/errors"
	"servicio-usuarios/internal/mapper"
	"servicio-usuarios/internal/pkg/logger"
	"servicio-usuarios/internal/pkg/password"
	"servicio-usuarios/internal/pkg/validator"
)

// Mensagens de negócio devolvidas ao cliente.
const (
	MsgCorreoEnUso = "El correo ya está en uso por otro usuario."
	MsgIDInvalido  = "El id del usuario debe ser un UUID válido."
)

// Transactor executa uma função dentro de uma transação propagada pelo contexto.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenGenerator emite o token de autenticação vinculado ao correo.
type TokenGenerator interface {
	GenerateToken(correo string) (string, error)
}

// Validator agrupa as validações de payload e de formato usadas pelo serviço.
type Validator interface {
	Struct(s interface{}) error
	ValidCorreo(correo string) bool
	ValidContrasena(contrasena string) bool
}

// Service é a estrutura que implementa a interface domain.UsuarioService.
type Service struct {
	repo      domain.UsuarioRepository
	tx        Transactor
	tokens    TokenGenerator
	hasher    password.Hasher
	validator Validator
	logger    logger.Logger
	now       func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Usuario.
func NewService(
	repo domain.UsuarioRepository,
	tx Transactor,
	tokens TokenGenerator,
	hasher password.Hasher,
	v Validator,
	log logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		tx:        tx,
		tokens:    tokens,
		hasher:    hasher,
		validator: v,
		logger:    log,
		now:       time.Now,
	}
}

// --- Implementação: FindAll ---
func (s *Service) FindAll(ctx context.Context) ([]domain.Usuario, error) {
	usuarios, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar usuarios.", err)
		return nil, err
	}
	return usuarios, nil
}

// --- Implementação: FindByID ---
func (s *Service) FindByID(ctx context.Context, id string) (domain.Usuario, error) {
	// 1. Validação de Formato
	if err := validateID(id); err != nil {
		return domain.Usuario{}, err
	}

	// 2. Delegação para o Repositório (NotFound é propagado como está)
	return s.repo.FindByID(ctx, id)
}

// --- Implementação: Save ---
// Ordem das verificações: campos obrigatórios, unicidade do correo, padrão da contrasena,
// formato do correo. Devolve somente a projeção UsuarioResponse.
func (s *Service) Save(ctx context.Context, req domain.UsuarioRequest) (*domain.UsuarioResponse, error) {
	// 1. Validação de campos obrigatórios (antes de tocar o banco)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Contrasena) == "" {
		return nil, apperror.NewValidationError(validator.MsgContrasenaRequerida)
	}

	var created domain.Usuario
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// 2. Regras de negócio, na ordem em que devem aparecer
		exists, err := s.repo.ExistsByCorreo(ctx, req.Correo)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewConflictError(domain.MsgCorreoRegistrado)
		}
		if !s.validator.ValidContrasena(req.Contrasena) {
			return apperror.NewValidationError(validator.MsgContrasenaInvalida)
		}
		if !s.validator.ValidCorreo(req.Correo) {
			return apperror.NewValidationError(validator.MsgCorreoInvalido)
		}

		// 3. Token, hash e timestamps
		token, err := s.tokens.GenerateToken(req.Correo)
		if err != nil {
			return apperror.NewInternalError("Falha ao gerar token.", err)
		}
		hash, err := s.hasher.Hash(req.Contrasena)
		if err != nil {
			return apperror.NewInternalError("Falha ao gerar hash da contrasena.", err)
		}

		now := s.now().UTC()
		usuario := domain.Usuario{
			ID:          uuid.NewString(),
			Nombre:      req.Nombre,
			Correo:      req.Correo,
			Contrasena:  hash,
			Telefonos:   []domain.Telefono{},
			Creado:      now,
			Modificado:  now,
			UltimoLogin: now,
			Token:       token,
			Activo:      true,
		}
		for _, t := range req.Telefonos {
			usuario.AddTelefono(newTelefono(t))
		}

		// 4. Persistência
		created, err = s.repo.Save(ctx, usuario)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Usuario criado.", map[string]interface{}{"id": created.ID})
	return mapper.ToUsuarioResponse(&created), nil
}

// --- Implementação: Update ---
// Substituição completa: telefones não vazios substituem a coleção atual.
// Não reemite token nem altera ultimoLogin.
func (s *Service) Update(ctx context.Context, id string, req domain.UsuarioRequest) (domain.Usuario, error) {
	if err := validateID(id); err != nil {
		return domain.Usuario{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return domain.Usuario{}, err
	}

	var updated domain.Usuario
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Correo != current.Correo {
			if err := s.ensureCorreoLibre(ctx, req.Correo); err != nil {
				return err
			}
		}
		if req.Contrasena != "" && !s.validator.ValidContrasena(req.Contrasena) {
			return apperror.NewValidationError(validator.MsgContrasenaInvalida)
		}
		if !s.validator.ValidCorreo(req.Correo) {
			return apperror.NewValidationError(validator.MsgCorreoInvalido)
		}

		current.Nombre = req.Nombre
		current.Correo = req.Correo
		if req.Contrasena != "" {
			hash, err := s.hasher.Hash(req.Contrasena)
			if err != nil {
				return apperror.NewInternalError("Falha ao gerar hash da contrasena.", err)
			}
			current.Contrasena = hash
		}
		if len(req.Telefonos) > 0 {
			current.Telefonos = []domain.Telefono{}
			for _, t := range req.Telefonos {
				current.AddTelefono(newTelefono(t))
			}
		}
		current.Modificado = s.now().UTC()

		updated, err = s.repo.Save(ctx, current)
		return err
	})
	if err != nil {
		return domain.Usuario{}, err
	}

	s.logger.Debug("Usuario atualizado.", map[string]interface{}{"id": id})
	return updated, nil
}

// --- Implementação: ParcialUpdate ---
// Mescla apenas os campos presentes; telefones não vazios são anexados.
func (s *Service) ParcialUpdate(ctx context.Context, id string, parcial domain.UsuarioParcial) (domain.Usuario, error) {
	if err := validateID(id); err != nil {
		return domain.Usuario{}, err
	}
	if err := s.validator.Struct(parcial); err != nil {
		return domain.Usuario{}, err
	}

	var updated domain.Usuario
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if parcial.Nombre != nil {
			current.Nombre = *parcial.Nombre
		}
		if parcial.Correo != nil {
			if *parcial.Correo != current.Correo {
				if err := s.ensureCorreoLibre(ctx, *parcial.Correo); err != nil {
					return err
				}
			}
			if !s.validator.ValidCorreo(*parcial.Correo) {
				return apperror.NewValidationError(validator.MsgCorreoInvalido)
			}
			current.Correo = *parcial.Correo
		}
		if parcial.Contrasena != nil {
			if !s.validator.ValidContrasena(*parcial.Contrasena) {
				return apperror.NewValidationError(validator.MsgContrasenaInvalida)
			}
			hash, err := s.hasher.Hash(*parcial.Contrasena)
			if err != nil {
				return apperror.NewInternalError("Falha ao gerar hash da contrasena.", err)
			}
			current.Contrasena = hash
		}
		for _, t := range parcial.Telefonos {
			current.AddTelefono(newTelefono(t))
		}
		if parcial.Activo != nil {
			current.Activo = *parcial.Activo
		}
		current.Modificado = s.now().UTC()

		updated, err = s.repo.Save(ctx, current)
		return err
	})
	if err != nil {
		return domain.Usuario{}, err
	}

	s.logger.Debug("Usuario atualizado parcialmente.", map[string]interface{}{"id": id})
	return updated, nil
}

// --- Implementação: Delete ---
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			return err
		}
		return s.repo.DeleteByID(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Usuario removido.", map[string]interface{}{"id": id})
	return nil
}

// ensureCorreoLibre falha com ConflictError se o correo já pertence a outro usuario.
func (s *Service) ensureCorreoLibre(ctx context.Context, correo string) error {
	exists, err := s.repo.ExistsByCorreo(ctx, correo)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewConflictError(MsgCorreoEnUso)
	}
	return nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError(MsgIDInvalido)
	}
	return nil
}

func newTelefono(t domain.TelefonoRequest) domain.Telefono {
	return domain.Telefono{
		ID:           uuid.NewString(),
		Numero:       t.Numero,
		CodigoCiudad: t.CodigoCiudad,
		CodigoPais:   t.CodigoPais,
	}
}
