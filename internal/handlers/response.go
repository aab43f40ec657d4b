package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/services"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/utils"
)

// Response é o envelope de todas as respostas da API: data OU erros.
type Response[T any] struct {
	Data  *T       `json:"data"`
	Erros []string `json:"erros"`
}

func writeData[T any](w http.ResponseWriter, code int, data T) {
	utils.WriteJSON(w, code, Response[T]{Data: &data, Erros: []string{}})
}

func writeErrors(w http.ResponseWriter, code int, erros ...string) {
	if erros == nil {
		erros = []string{}
	}
	utils.WriteJSON(w, code, Response[any]{Erros: erros})
}

// writeServiceError mapeia os erros do service para status HTTP.
// Qualquer coisa não reconhecida é falha de infraestrutura: loga e devolve 500 genérico.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var verr *services.ValidationError
	var nf *services.NotFoundError

	switch {
	case errors.As(err, &verr):
		writeErrors(w, http.StatusBadRequest, verr.Erros...)
	case errors.As(err, &nf):
		writeErrors(w, http.StatusNotFound, nf.Msg)
	case errors.Is(err, services.ErrForbidden):
		writeErrors(w, http.StatusForbidden, "Acesso negado.")
	default:
		log.Error("request_failed",
			"request_id", RequestIDFrom(r.Context()),
			"method", r.Method, "path", r.URL.Path, "err", err)
		writeErrors(w, http.StatusInternalServerError, "Erro interno. Tente novamente mais tarde.")
	}
}
