package mapper_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicio-usuarios/internal/domain"
	"servicio-usuarios/internal/mapper"
)

func TestToUsuarioResponse_Nil(t *testing.T) {
	assert.Nil(t, mapper.ToUsuarioResponse(nil))
}

func TestToUsuarioResponse_CopiesOnlyPublicFields(t *testing.T) {
	now := time.Now().UTC()
	usuario := &domain.Usuario{
		ID:          uuid.NewString(),
		Nombre:      "Ana",
		Correo:      "ana@test.com",
		Contrasena:  "hash",
		Telefonos:   []domain.Telefono{{ID: uuid.NewString(), Numero: "123"}},
		Creado:      now,
		Modificado:  now,
		UltimoLogin: now,
		Token:       "jwt-token",
		Activo:      true,
	}

	resp := mapper.ToUsuarioResponse(usuario)

	require.NotNil(t, resp)
	assert.Equal(t, usuario.ID, resp.ID)
	assert.Equal(t, now, resp.Creado)
	assert.Equal(t, now, resp.Modificado)
	assert.Equal(t, now, resp.UltimoLogin)
	assert.Equal(t, "jwt-token", resp.Token)
	assert.True(t, resp.Activo)

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.ElementsMatch(t, []string{"id", "creado", "modificado", "ultimoLogin", "token", "activo"}, keys(fields))
}

func TestUsuarioJSON_HidesSecrets(t *testing.T) {
	usuario := domain.Usuario{ID: "1", Nombre: "Ana", Contrasena: "hash", Token: "jwt-token"}

	body, err := json.Marshal(usuario)
	require.NoError(t, err)

	assert.NotContains(t, string(body), "contrasena")
	assert.NotContains(t, string(body), "token")
	assert.NotContains(t, string(body), "hash")
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
