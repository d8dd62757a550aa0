package telefonorepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"servicio-usuarios/internal/domain"
	"servicio-usuarios/internal/errors"
	"servicio-usuarios/internal/pkg/database"
)

// TelefonoRepository implementa domain.TelefonoRepository sobre o PostgreSQL.
// Participa da transação carregada no contexto, quando houver.
type TelefonoRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
}

// NewTelefonoRepository cria e retorna uma nova instância do Repositório.
func NewTelefonoRepository(db *sql.DB, dbTimeout time.Duration) *TelefonoRepository {
	return &TelefonoRepository{DB: db, DBTimeout: dbTimeout}
}

// FindByUsuarioIDs carrega, numa única consulta, os telefones dos usuarios informados,
// agrupados por usuario e na ordem de inserção.
func (r *TelefonoRepository) FindByUsuarioIDs(ctx context.Context, usuarioIDs ...string) (map[string][]domain.Telefono, error) {
	result := make(map[string][]domain.Telefono, len(usuarioIDs))
	if len(usuarioIDs) == 0 {
		return result, nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		SELECT id, numero, codigo_ciudad, codigo_pais, usuario_id
		FROM telefonos
		WHERE usuario_id = ANY($1)
		ORDER BY usuario_id, orden`

	rows, err := database.Executor(ctx, r.DB).QueryContext(ctxTimeout, query, pq.Array(usuarioIDs))
	if err != nil {
		return nil, errors.NewDBError("falha ao consultar telefonos", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Telefono
		if err := rows.Scan(&t.ID, &t.Numero, &t.CodigoCiudad, &t.CodigoPais, &t.UsuarioID); err != nil {
			return nil, errors.NewDBError("falha ao ler telefono", err)
		}
		result[t.UsuarioID] = append(result[t.UsuarioID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("falha ao iterar telefonos", err)
	}

	return result, nil
}

// ReplaceForUsuario substitui a coleção de telefones do usuario pela informada.
// Telefones sem ID recebem um UUID novo.
func (r *TelefonoRepository) ReplaceForUsuario(ctx context.Context, usuarioID string, telefonos []domain.Telefono) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	exec := database.Executor(ctx, r.DB)

	if _, err := exec.ExecContext(ctxTimeout, `DELETE FROM telefonos WHERE usuario_id = $1`, usuarioID); err != nil {
		return errors.NewDBError("falha ao remover telefonos", err)
	}

	const insertSQL = `INSERT INTO telefonos (id, numero, codigo_ciudad, codigo_pais, usuario_id)
                       VALUES ($1,$2,$3,$4,$5)`

	for _, t := range telefonos {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if _, err := exec.ExecContext(ctxTimeout, insertSQL, t.ID, t.Numero, t.CodigoCiudad, t.CodigoPais, usuarioID); err != nil {
			return errors.NewDBError("falha ao inserir telefono", err)
		}
	}
	return nil
}

// DeleteByUsuarioID remove todos os telefones do usuario.
func (r *TelefonoRepository) DeleteByUsuarioID(ctx context.Context, usuarioID string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := database.Executor(ctx, r.DB).ExecContext(ctxTimeout, `DELETE FROM telefonos WHERE usuario_id = $1`, usuarioID); err != nil {
		return errors.NewDBError("falha ao remover telefonos", err)
	}
	return nil
}
