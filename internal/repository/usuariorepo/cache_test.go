package usuariorepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicio-usuarios/internal/domain"
	apperror "servicio-usuarios/internal/errors"
	"servicio-usuarios/internal/pkg/cache"
	"servicio-usuarios/internal/pkg/database"
	"servicio-usuarios/internal/pkg/database/dbtest"
	"servicio-usuarios/internal/pkg/logger"
)

// stubTelefonos não acessa o banco; os eventos vêm apenas da tabela usuarios.
type stubTelefonos struct{}

func (stubTelefonos) FindByUsuarioIDs(context.Context, ...string) (map[string][]domain.Telefono, error) {
	return map[string][]domain.Telefono{}, nil
}
func (stubTelefonos) ReplaceForUsuario(context.Context, string, []domain.Telefono) error { return nil }
func (stubTelefonos) DeleteByUsuarioID(context.Context, string) error                    { return nil }

// recordingCache registra as remoções no mesmo Recorder do banco.
type recordingCache struct {
	*cache.MemoryClient
	rec *dbtest.Recorder
}

func (c recordingCache) Delete(ctx context.Context, key string) error {
	c.rec.Add("cache-delete")
	return c.MemoryClient.Delete(ctx, key)
}

type fixture struct {
	repo  *UsuarioRepository
	tx    *database.TxManager
	cache recordingCache
	rec   *dbtest.Recorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	rec := &dbtest.Recorder{}
	db := dbtest.Open(rec)
	t.Cleanup(func() { db.Close() })

	c := recordingCache{MemoryClient: cache.NewMemoryClient(time.Minute), rec: rec}
	return fixture{
		repo:  NewUsuarioRepository(db, c, stubTelefonos{}, logger.NewNopLogger(), time.Second, time.Minute),
		tx:    database.NewTxManager(db),
		cache: c,
		rec:   rec,
	}
}

// seed grava o usuario no cache como FindByID faria.
func (f fixture) seed(t *testing.T, u domain.Usuario) {
	t.Helper()
	data, err := json.Marshal(toCached(u))
	require.NoError(t, err)
	require.NoError(t, f.cache.Set(context.Background(), fmt.Sprintf(usuarioCacheKey, u.ID), string(data), time.Minute))
}

func (f fixture) cached(id string) bool {
	_, err := f.cache.Get(context.Background(), fmt.Sprintf(usuarioCacheKey, id))
	return err == nil
}

func sampleUsuario() domain.Usuario {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return domain.Usuario{
		ID:          "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Nombre:      "Ana",
		Correo:      "ana@test.com",
		Contrasena:  "hash",
		Creado:      now,
		Modificado:  now,
		UltimoLogin: now,
		Token:       "tok",
		Activo:      true,
		Telefonos: []domain.Telefono{
			{ID: "t1", Numero: "123", CodigoCiudad: "1", CodigoPais: "56"},
		},
	}
}

func TestFindByID_CacheHitKeepsSecrets(t *testing.T) {
	f := newFixture(t)
	u := sampleUsuario()
	f.seed(t, u)

	found, err := f.repo.FindByID(context.Background(), u.ID)

	require.NoError(t, err)
	assert.Equal(t, "hash", found.Contrasena)
	assert.Equal(t, "tok", found.Token)
	assert.True(t, u.Creado.Equal(found.Creado))
	require.Len(t, found.Telefonos, 1)
	assert.Equal(t, u.ID, found.Telefonos[0].UsuarioID)
	assert.Empty(t, f.rec.Events(), "leitura com cache não deve consultar o banco")
}

func TestFindByID_InsideTransactionBypassesCache(t *testing.T) {
	f := newFixture(t)
	u := sampleUsuario()
	f.seed(t, u)

	err := f.tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		_, err := f.repo.FindByID(ctx, u.ID)
		return err
	})

	// O driver de teste não devolve linhas: a leitura foi ao banco.
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Equal(t, []string{"begin", "query", "rollback"}, f.rec.Events())
}

func TestSave_InvalidatesCacheAfterCommit(t *testing.T) {
	f := newFixture(t)
	u := sampleUsuario()
	f.seed(t, u)

	err := f.tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		atualizado := u
		atualizado.Nombre = "Ana María"
		if _, err := f.repo.Save(ctx, atualizado); err != nil {
			return err
		}
		// Um leitor concorrente ainda vê a versão confirmada e repopula o cache.
		f.seed(t, u)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"begin", "exec", "commit", "cache-delete"}, f.rec.Events())
	assert.False(t, f.cached(u.ID), "versão antiga não pode sobreviver ao commit")
}

func TestSave_RollbackKeepsCache(t *testing.T) {
	f := newFixture(t)
	u := sampleUsuario()
	f.seed(t, u)
	abortar := errors.New("abortar")

	err := f.tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if _, err := f.repo.Save(ctx, u); err != nil {
			return err
		}
		return abortar
	})

	assert.ErrorIs(t, err, abortar)
	assert.Equal(t, []string{"begin", "exec", "rollback"}, f.rec.Events())
	assert.True(t, f.cached(u.ID))
}

func TestSave_OutsideTransactionInvalidatesImmediately(t *testing.T) {
	f := newFixture(t)
	u := sampleUsuario()
	f.seed(t, u)

	_, err := f.repo.Save(context.Background(), u)

	require.NoError(t, err)
	assert.Equal(t, []string{"exec", "cache-delete"}, f.rec.Events())
	assert.False(t, f.cached(u.ID))
}

func TestDeleteByID_InvalidatesCacheAfterCommit(t *testing.T) {
	f := newFixture(t)
	u := sampleUsuario()
	f.seed(t, u)

	err := f.tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return f.repo.DeleteByID(ctx, u.ID)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"begin", "exec", "commit", "cache-delete"}, f.rec.Events())
	assert.False(t, f.cached(u.ID))
}

func TestSave_UniqueViolationIsConflict(t *testing.T) {
	f := newFixture(t)
	u := sampleUsuario()
	f.seed(t, u)
	f.rec.FailExec(&pq.Error{Code: uniqueViolation, Constraint: "usuarios_correo_key"})

	_, err := f.repo.Save(context.Background(), u)

	require.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.Equal(t, domain.MsgCorreoRegistrado, err.Error())
	assert.Equal(t, []string{"exec"}, f.rec.Events())
	assert.True(t, f.cached(u.ID), "falha na escrita não invalida o cache")
}
