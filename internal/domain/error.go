package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Mensaje string `json:"mensaje" example:"Usuario no encontrado con el id: 3c95b8c8-6f1e-4d1b-9a59-2f3e6a1d8b10"`
}
