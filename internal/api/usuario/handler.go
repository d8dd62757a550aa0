package usuario

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"servicio-usuarios/internal/domain"
	apperror "servicio-usuarios/internal/errors"
	"servicio-usuarios/internal/pkg/logger"
	"servicio-usuarios/internal/pkg/middleware"
)

// Mensagens devolvidas diretamente pelo Handler.
const (
	MsgSinRegistros    = "No se encontraron registros"
	MsgErrorCrear      = "Error al crear el usuario"
	MsgPayloadInvalido = "El cuerpo de la solicitud no es un JSON válido."
)

// Handler agrupa todos os métodos de Handler do usuario.
type Handler struct {
	Service domain.UsuarioService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc domain.UsuarioService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
// Erros viram {"mensaje": ...} com o status do mapeamento de apperror.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		if data == nil {
			w.WriteHeader(successStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
			h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{
			"path":    r.URL.Path,
			"mensaje": message,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Mensaje: message})
}

// decode lê o corpo JSON; falhas viram ValidationError (400).
func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewValidationError(MsgPayloadInvalido)
	}
	return nil
}

// FindAllHandler lida com a requisição GET /api/usuarios.
// @Summary Lista todos os usuarios
// @Description Retorna todos os usuarios com seus telefones. Lista vazia responde 404.
// @Tags usuarios
// @Produce json
// @Success 200 {array} domain.Usuario "Usuarios encontrados"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "No se encontraron registros"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security BearerAuth
// @Router /api/usuarios [get]
func (h *Handler) FindAllHandler(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.Service.FindAll(r.Context())
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if len(usuarios) == 0 {
		h.handleServiceResponse(w, r, nil, apperror.NewNotFoundError(MsgSinRegistros), http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, usuarios, nil, http.StatusOK)
}

// FindByIDHandler lida com a requisição GET /api/usuarios/{id}.
// @Summary Obtém um usuario por ID
// @Tags usuarios
// @Produce json
// @Param id path string true "ID do usuario (UUID)"
// @Success 200 {object} domain.Usuario "Usuario encontrado"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Usuario não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security BearerAuth
// @Router /api/usuarios/{id} [get]
func (h *Handler) FindByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	usuario, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, usuario, nil, http.StatusOK)
}

// CreateHandler lida com a requisição POST /api/usuarios.
// @Summary Cria um novo usuario
// @Description Registra o usuario e devolve id, timestamps, token e activo. Endpoint público.
// @Tags usuarios
// @Accept json
// @Produce json
// @Param usuario body domain.UsuarioRequest true "Dados do usuario"
// @Success 201 {object} domain.UsuarioResponse "Usuario criado"
// @Failure 400 {object} domain.ErrorResponse "Validação ou correo já registrado"
// @Failure 429 {object} domain.ErrorResponse "Limite de requisições excedido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/usuarios [post]
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.UsuarioRequest
	if err := decode(r, &req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	resp, err := h.Service.Save(r.Context(), req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}
	if resp == nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError(MsgErrorCrear), http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, resp, nil, http.StatusCreated)
}

// UpdateHandler lida com a requisição PUT /api/usuarios/{id}.
// @Summary Substitui um usuario
// @Description Substitui nombre, correo e (se informada) contrasena. Telefones não vazios substituem os atuais.
// @Tags usuarios
// @Accept json
// @Produce json
// @Param id path string true "ID do usuario (UUID)"
// @Param usuario body domain.UsuarioRequest true "Dados do usuario"
// @Success 200 {object} domain.Usuario "Usuario atualizado"
// @Failure 400 {object} domain.ErrorResponse "Validação ou correo em uso"
// @Failure 404 {object} domain.ErrorResponse "Usuario não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security BearerAuth
// @Router /api/usuarios/{id} [put]
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req domain.UsuarioRequest
	if err := decode(r, &req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	usuario, err := h.Service.Update(r.Context(), id, req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, usuario, nil, http.StatusOK)
}

// ParcialUpdateHandler lida com a requisição PATCH /api/usuarios/{id}.
// @Summary Atualiza parcialmente um usuario
// @Description Aplica apenas os campos presentes. Telefones informados são anexados.
// @Tags usuarios
// @Accept json
// @Produce json
// @Param id path string true "ID do usuario (UUID)"
// @Param usuario body domain.UsuarioParcial true "Campos a atualizar"
// @Success 200 {object} domain.Usuario "Usuario atualizado"
// @Failure 400 {object} domain.ErrorResponse "Validação ou correo em uso"
// @Failure 404 {object} domain.ErrorResponse "Usuario não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security BearerAuth
// @Router /api/usuarios/{id} [patch]
func (h *Handler) ParcialUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var parcial domain.UsuarioParcial
	if err := decode(r, &parcial); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	usuario, err := h.Service.ParcialUpdate(r.Context(), id, parcial)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, usuario, nil, http.StatusOK)
}

// DeleteHandler lida com a requisição DELETE /api/usuarios/{id}.
// @Summary Remove um usuario
// @Description Remove o usuario e seus telefones.
// @Tags usuarios
// @Param id path string true "ID do usuario (UUID)"
// @Success 204 "Usuario removido"
// @Failure 404 {object} domain.ErrorResponse "Usuario não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security BearerAuth
// @Router /api/usuarios/{id} [delete]
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		h.Logger.Info("Remoção de usuario solicitada.", map[string]interface{}{
			"id":          id,
			"solicitante": claims.Correo,
		})
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}
