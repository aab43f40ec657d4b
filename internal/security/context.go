package security

import (
	"context"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
)

// Principal é o funcionário autenticado da requisição.
type Principal struct {
	FuncionarioID string
	Email         string
	Perfil        models.Perfil
	EmpresaID     string
}

// Capability identifica uma operação protegida (recurso + ação da política RBAC).
type Capability struct {
	Resource string
	Action   string
}

func (c Capability) String() string { return c.Resource + ":" + c.Action }

type ctxKey int

const (
	principalKey ctxKey = iota
	grantsKey
)

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// WithGrant marca no contexto que a capability já foi autorizada.
// Só o middleware Require deveria chamar isso fora de testes.
func WithGrant(ctx context.Context, c Capability) context.Context {
	prev, _ := ctx.Value(grantsKey).([]Capability)
	grants := make([]Capability, 0, len(prev)+1)
	grants = append(grants, prev...)
	grants = append(grants, c)
	return context.WithValue(ctx, grantsKey, grants)
}

func Granted(ctx context.Context, c Capability) bool {
	grants, _ := ctx.Value(grantsKey).([]Capability)
	for _, g := range grants {
		if g == c {
			return true
		}
	}
	return false
}
