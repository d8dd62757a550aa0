package usuariorepo

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"servicio-usuarios/internal/domain"
	"servicio-usuarios/internal/errors"
	"servicio-usuarios/internal/pkg/cache"
	"servicio-usuarios/internal/pkg/database"
	"servicio-usuarios/internal/pkg/logger"
)

// Define a chave de cache para usuarios.
const usuarioCacheKey = "usuario:%s"

// Código SQLSTATE do PostgreSQL para violação de unicidade.
const uniqueViolation = "23505"

// UsuarioRepository implementa a interface domain.UsuarioRepository.
// Ela contém as conexões necessárias para acessar dados.
type UsuarioRepository struct {
	DB        *sql.DB      // Conexão principal com o banco de dados (PostgreSQL)
	Cache     cache.Client // Cliente para operações de cache (Redis ou memória)
	Telefonos domain.TelefonoRepository
	Logger    logger.Logger
	DBTimeout time.Duration
	CacheTTL  time.Duration
}

// NewUsuarioRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewUsuarioRepository(
	db *sql.DB,
	cacheClient cache.Client,
	telefonos domain.TelefonoRepository,
	log logger.Logger,
	dbTimeout time.Duration,
	cacheTTL time.Duration,
) *UsuarioRepository {
	return &UsuarioRepository{
		DB:        db,
		Cache:     cacheClient,
		Telefonos: telefonos,
		Logger:    log,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
	}
}

// cachedUsuario é a forma serializada no cache. Diferente de domain.Usuario,
// preserva contrasena e token.
type cachedUsuario struct {
	ID          string            `json:"id"`
	Nombre      string            `json:"nombre"`
	Correo      string            `json:"correo"`
	Contrasena  string            `json:"contrasena"`
	Telefonos   []domain.Telefono `json:"telefonos"`
	Creado      time.Time         `json:"creado"`
	Modificado  time.Time         `json:"modificado"`
	UltimoLogin time.Time         `json:"ultimoLogin"`
	Token       string            `json:"token"`
	Activo      bool              `json:"activo"`
}

func toCached(u domain.Usuario) cachedUsuario {
	return cachedUsuario{
		ID:          u.ID,
		Nombre:      u.Nombre,
		Correo:      u.Correo,
		Contrasena:  u.Contrasena,
		Telefonos:   u.Telefonos,
		Creado:      u.Creado,
		Modificado:  u.Modificado,
		UltimoLogin: u.UltimoLogin,
		Token:       u.Token,
		Activo:      u.Activo,
	}
}

func (c cachedUsuario) toDomain() domain.Usuario {
	telefonos := c.Telefonos
	if telefonos == nil {
		telefonos = []domain.Telefono{}
	}
	for i := range telefonos {
		telefonos[i].UsuarioID = c.ID
	}
	return domain.Usuario{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Correo:      c.Correo,
		Contrasena:  c.Contrasena,
		Telefonos:   telefonos,
		Creado:      c.Creado,
		Modificado:  c.Modificado,
		UltimoLogin: c.UltimoLogin,
		Token:       c.Token,
		Activo:      c.Activo,
	}
}

const selectUsuarioSQL = `
	SELECT id, nombre, correo, contrasena, creado, modificado, ultimo_login, token, activo
	FROM usuarios`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUsuario(s scanner) (domain.Usuario, error) {
	var u domain.Usuario
	err := s.Scan(
		&u.ID,
		&u.Nombre,
		&u.Correo,
		&u.Contrasena,
		&u.Creado,
		&u.Modificado,
		&u.UltimoLogin,
		&u.Token,
		&u.Activo,
	)
	return u, err
}

// FindAll retorna todos os usuarios com seus telefones, ordenados pela criação.
func (r *UsuarioRepository) FindAll(ctx context.Context) ([]domain.Usuario, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := database.Executor(ctx, r.DB).QueryContext(ctxTimeout, selectUsuarioSQL+` ORDER BY creado, id`)
	if err != nil {
		return nil, errors.NewDBError("falha ao listar usuarios", err)
	}
	defer rows.Close()

	usuarios := []domain.Usuario{}
	ids := []string{}
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, errors.NewDBError("falha ao ler usuario", err)
		}
		usuarios = append(usuarios, u)
		ids = append(ids, u.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("falha ao iterar usuarios", err)
	}

	// Carrega os telefones de todos os usuarios numa única consulta
	telefonos, err := r.Telefonos.FindByUsuarioIDs(ctx, ids...)
	if err != nil {
		return nil, err
	}
	for i := range usuarios {
		usuarios[i].Telefonos = nonNil(telefonos[usuarios[i].ID])
	}

	return usuarios, nil
}

// FindByID busca um usuario pelo ID, utilizando a estratégia Cache-Aside.
// Dentro de uma transação o cache é ignorado.
func (r *UsuarioRepository) FindByID(ctx context.Context, id string) (domain.Usuario, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(usuarioCacheKey, id)
	useCache := r.Cache != nil && !database.InTransaction(ctx)

	// --- 1. Estratégia Cache-Aside (READ) ---
	if useCache {
		cachedData, err := r.Cache.Get(ctxTimeout, key)
		if err == nil {
			var c cachedUsuario
			if json.Unmarshal([]byte(cachedData), &c) == nil {
				return c.toDomain(), nil
			}
			r.Logger.Warn("Falha ao desserializar usuario do cache.", map[string]interface{}{"key": key})
		} else if !stderrors.Is(err, cache.ErrCacheMiss) {
			r.Logger.Warn("Falha ao ler do cache.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	// --- 2. Busca no Banco de Dados ---
	row := database.Executor(ctx, r.DB).QueryRowContext(ctxTimeout, selectUsuarioSQL+` WHERE id = $1`, id)
	usuario, err := scanUsuario(row)
	if err == sql.ErrNoRows {
		return domain.Usuario{}, errors.NewNotFoundError("Usuario no encontrado con el id: " + id)
	}
	if err != nil {
		return domain.Usuario{}, errors.NewDBError("falha ao buscar usuario", err)
	}

	telefonos, err := r.Telefonos.FindByUsuarioIDs(ctx, id)
	if err != nil {
		return domain.Usuario{}, err
	}
	usuario.Telefonos = nonNil(telefonos[id])

	// --- 3. Popular o Cache (WRITE) ---
	if useCache {
		if data, err := json.Marshal(toCached(usuario)); err == nil {
			if err := r.Cache.Set(ctxTimeout, key, string(data), r.CacheTTL); err != nil {
				r.Logger.Warn("Falha ao gravar usuario no cache.", map[string]interface{}{"key": key, "error": err.Error()})
			}
		}
	}

	return usuario, nil
}

// ExistsByCorreo informa se algum usuario já usa o correo.
func (r *UsuarioRepository) ExistsByCorreo(ctx context.Context, correo string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var exists bool
	err := database.Executor(ctx, r.DB).
		QueryRowContext(ctxTimeout, `SELECT EXISTS (SELECT 1 FROM usuarios WHERE correo = $1)`, correo).
		Scan(&exists)
	if err != nil {
		return false, errors.NewDBError("falha ao verificar correo", err)
	}
	return exists, nil
}

// Save insere o usuario ou, se o ID já existe, atualiza seus campos (creado é preservado),
// e substitui a coleção de telefones. A violação da unicidade do correo vira ConflictError.
func (r *UsuarioRepository) Save(ctx context.Context, usuario domain.Usuario) (domain.Usuario, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const upsertSQL = `
		INSERT INTO usuarios (id, nombre, correo, contrasena, creado, modificado, ultimo_login, token, activo)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			nombre       = EXCLUDED.nombre,
			correo       = EXCLUDED.correo,
			contrasena   = EXCLUDED.contrasena,
			modificado   = EXCLUDED.modificado,
			ultimo_login = EXCLUDED.ultimo_login,
			token        = EXCLUDED.token,
			activo       = EXCLUDED.activo`

	_, err := database.Executor(ctx, r.DB).ExecContext(ctxTimeout, upsertSQL,
		usuario.ID,
		usuario.Nombre,
		usuario.Correo,
		usuario.Contrasena,
		usuario.Creado,
		usuario.Modificado,
		usuario.UltimoLogin,
		usuario.Token,
		usuario.Activo,
	)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.Usuario{}, errors.NewConflictError(domain.MsgCorreoRegistrado)
		}
		return domain.Usuario{}, errors.NewDBError("falha ao salvar usuario", err)
	}

	telefonos := make([]domain.Telefono, 0, len(usuario.Telefonos))
	for _, t := range usuario.Telefonos {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		t.UsuarioID = usuario.ID
		telefonos = append(telefonos, t)
	}
	if err := r.Telefonos.ReplaceForUsuario(ctx, usuario.ID, telefonos); err != nil {
		return domain.Usuario{}, err
	}
	usuario.Telefonos = telefonos

	r.invalidateAfterCommit(ctx, usuario.ID)

	return usuario, nil
}

// DeleteByID remove os telefones e depois o usuario. Remover um ID inexistente não é erro.
func (r *UsuarioRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.Telefonos.DeleteByUsuarioID(ctx, id); err != nil {
		return err
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := database.Executor(ctx, r.DB).ExecContext(ctxTimeout, `DELETE FROM usuarios WHERE id = $1`, id); err != nil {
		return errors.NewDBError("falha ao remover usuario", err)
	}

	r.invalidateAfterCommit(ctx, id)
	return nil
}

// invalidateAfterCommit remove a entrada do cache depois do commit da transação do
// contexto (ou imediatamente, fora de uma). Falhas apenas são registradas.
func (r *UsuarioRepository) invalidateAfterCommit(ctx context.Context, id string) {
	if r.Cache == nil {
		return
	}
	key := fmt.Sprintf(usuarioCacheKey, id)
	database.AfterCommit(ctx, func() {
		r.invalidate(context.WithoutCancel(ctx), key)
	})
}

func (r *UsuarioRepository) invalidate(ctx context.Context, key string) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if err := r.Cache.Delete(ctxTimeout, key); err != nil {
		r.Logger.Warn("Falha ao invalidar cache do usuario.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func nonNil(t []domain.Telefono) []domain.Telefono {
	if t == nil {
		return []domain.Telefono{}
	}
	return t
}
