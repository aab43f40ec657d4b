package security

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/utils"
)

type FuncionarioFinder interface {
	FindByID(ctx context.Context, id string) (*models.Funcionario, error)
}

// mesmo envelope dos handlers: {"data": null, "erros": [...]}
func writeError(w http.ResponseWriter, code int, msg string) {
	utils.WriteJSON(w, code, map[string]any{"data": nil, "erros": []string{msg}})
}

// Authenticate resolve o funcionário a partir do header repassado pelo gateway
// (que já validou o token) e coloca o Principal no contexto.
func Authenticate(dir FuncionarioFinder, header string, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(header))
			if id == "" {
				writeError(w, http.StatusUnauthorized, "Usuário não autenticado.")
				return
			}

			f, err := dir.FindByID(r.Context(), id)
			if err != nil {
				log.Error("auth_lookup_error", "funcionario_id", id, "err", err)
				writeError(w, http.StatusInternalServerError, "Erro ao autenticar usuário.")
				return
			}
			if f == nil {
				writeError(w, http.StatusUnauthorized, "Usuário não autenticado.")
				return
			}

			ctx := WithPrincipal(r.Context(), Principal{
				FuncionarioID: f.ID,
				Email:         f.Email,
				Perfil:        f.Perfil,
				EmpresaID:     f.EmpresaID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require barra a requisição (403) se o perfil do Principal não tiver a capability.
func Require(a *Authorizer, c Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Usuário não autenticado.")
				return
			}
			allowed, err := a.Allowed(p.Perfil, c)
			if err != nil {
				a.log.Error("rbac_error", "capability", c.String(), "err", err)
				writeError(w, http.StatusInternalServerError, "Erro ao verificar permissões.")
				return
			}
			if !allowed {
				a.log.Warn("access_denied", "funcionario_id", p.FuncionarioID, "perfil", p.Perfil, "capability", c.String())
				writeError(w, http.StatusForbidden, "Acesso negado.")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithGrant(r.Context(), c)))
		})
	}
}
