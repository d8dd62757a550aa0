// Package mapper converte entidades persistidas nas projeções públicas da API.
package mapper

import "servicio-usuarios/internal/domain"

// ToUsuarioResponse projeta um Usuario no payload de criação.
// Copia apenas id, timestamps, token e activo; retorna nil para entrada nil.
func ToUsuarioResponse(usuario *domain.Usuario) *domain.UsuarioResponse {
	if usuario == nil {
		return nil
	}

	return &domain.UsuarioResponse{
		ID:          usuario.ID,
		Creado:      usuario.Creado,
		Modificado:  usuario.Modificado,
		UltimoLogin: usuario.UltimoLogin,
		Token:       usuario.Token,
		Activo:      usuario.Activo,
	}
}
