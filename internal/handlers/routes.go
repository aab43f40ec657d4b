package handlers

import (
	"log/slog"
	"net/http"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/security"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/services"
)

type RouterDeps struct {
	Lancamentos  *LancamentoHandler
	Empresas     *EmpresaHandler
	Funcionarios security.FuncionarioFinder
	Authz        *security.Authorizer
	AuthHeader   string
	Log          *slog.Logger

	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter monta as rotas da API. Tudo sob /api exige funcionário autenticado
// e a capability correspondente no RBAC.
func NewRouter(d RouterDeps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	auth := security.Authenticate(d.Funcionarios, d.AuthHeader, log)
	limit := security.RateLimitByFuncionario(d.RateLimitRPS, d.RateLimitBurst)
	guard := func(c security.Capability, h http.HandlerFunc) http.Handler {
		return auth(limit(security.Require(d.Authz, c)(h)))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", Health)

	l := d.Lancamentos
	mux.Handle("GET /api/lancamentos/funcionario/{funcionarioId}", guard(services.LerLancamentos, l.ListByFuncionario))
	mux.Handle("GET /api/lancamentos/{id}", guard(services.LerLancamentos, l.GetByID))
	mux.Handle("POST /api/lancamentos", guard(services.GravarLancamentos, l.Create))
	mux.Handle("PUT /api/lancamentos/{id}", guard(services.GravarLancamentos, l.Update))
	mux.Handle("DELETE /api/lancamentos/{id}", guard(services.RemoverLancamento, l.Delete))

	mux.Handle("GET /api/empresas/cnpj/{cnpj}", guard(services.LerEmpresas, d.Empresas.ByCNPJ))

	return RequestID(Logging(log)(mux))
}
