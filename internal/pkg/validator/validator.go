// Package validator concentra as validações de entrada do serviço: campos obrigatórios
// (via go-playground/validator), formato do correo e padrão configurável da contrasena.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	apperror "servicio-usuarios/internal/errors"
)

// Mensagens de validação devolvidas ao cliente.
const (
	MsgCorreoInvalido      = "El formato del correo electrónico es inválido."
	MsgContrasenaInvalida  = "La contraseña debe tener al menos 6 caracteres y contener letras y números."
	MsgContrasenaRequerida = "La contraseña es requerida"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// requiredMessages mapeia o nome JSON do campo para a mensagem de campo obrigatório.
var requiredMessages = map[string]string{
	"nombre":       "El nombre es requerido",
	"correo":       "El correo es requerido",
	"contrasena":   MsgContrasenaRequerida,
	"numero":       "El número de teléfono es requerido",
	"codigoCiudad": "El código de ciudad es requerido",
	"codigoPais":   "El código de país es requerido",
}

// Validator valida payloads e aplica as regras de formato do domínio.
type Validator struct {
	validate        *validator.Validate
	passwordPattern *regexp.Regexp
}

// New cria um Validator. O padrão da contrasena precisa casar com o valor inteiro.
func New(passwordPattern string) (*Validator, error) {
	re, err := regexp.Compile(`^(?:` + passwordPattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("padrão de contrasena inválido: %w", err)
	}

	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("falha ao registrar validação notblank: %w", err)
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v, passwordPattern: re}, nil
}

// Struct valida as tags `validate` do payload e traduz as falhas em um ValidationError.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewInternalError("Falha ao validar payload.", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := requiredMessages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("El campo %s es inválido", fe.Field())
		}
		msgs = append(msgs, msg)
	}
	return apperror.NewValidationError(strings.Join(msgs, "; "))
}

// ValidCorreo informa se o correo tem o formato local@dominio.tld.
func (v *Validator) ValidCorreo(correo string) bool {
	return emailPattern.MatchString(correo)
}

// ValidContrasena informa se a contrasena satisfaz o padrão configurado.
func (v *Validator) ValidContrasena(contrasena string) bool {
	return v.passwordPattern.MatchString(contrasena)
}
