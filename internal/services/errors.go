package services

import (
	"errors"
	"strings"
)

// ErrForbidden: a operação exige uma capability que não foi concedida no contexto.
var ErrForbidden = errors.New("operação não permitida para o perfil do usuário")

// ValidationError acumula todas as falhas de uma requisição (400).
type ValidationError struct {
	Erros []string
}

func (e *ValidationError) Error() string {
	return "validação: " + strings.Join(e.Erros, "; ")
}

func (e *ValidationError) add(msg string) { e.Erros = append(e.Erros, msg) }

func (e *ValidationError) empty() bool { return len(e.Erros) == 0 }

// NotFoundError é o 404 das buscas por id.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }
