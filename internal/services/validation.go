package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// erros com o nome do campo no JSON (data, tipo, funcionarioId)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("tipo_lancamento", func(fl validator.FieldLevel) bool {
		return models.Tipo(fl.Field().String()).Valid()
	}); err != nil {
		panic(fmt.Sprintf("registrar validação tipo_lancamento: %v", err))
	}
	return v
}

// fieldMessages traduz os erros do validator para as mensagens da API, na ordem dos campos.
func fieldMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "data.required":
		return "Data não informada."
	case "tipo.required":
		return "Tipo não informado."
	case "tipo.tipo_lancamento":
		return fmt.Sprintf("Tipo de lançamento inválido: %v.", fe.Value())
	case "funcionarioId.required":
		return "Funcionário não informado."
	}
	return fmt.Sprintf("Campo %s inválido (%s).", fe.Field(), fe.Tag())
}
