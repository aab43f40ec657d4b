package security

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
)

//go:embed rbac/model.conf
var modelConf string

//go:embed rbac/policy.csv
var defaultPolicy string

// Authorizer decide se um perfil pode executar uma Capability.
type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
	log      *slog.Logger
}

// NewAuthorizer carrega a política embutida.
func NewAuthorizer(log *slog.Logger) (*Authorizer, error) {
	return NewAuthorizerWithPolicy(defaultPolicy, log)
}

func NewAuthorizerWithPolicy(policy string, log *slog.Logger) (*Authorizer, error) {
	if log == nil {
		log = slog.Default()
	}
	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m, stringadapter.NewAdapter(policy))
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}
	return &Authorizer{enforcer: e, log: log.With("cmp", "rbac")}, nil
}

func (a *Authorizer) Allowed(perfil models.Perfil, c Capability) (bool, error) {
	ok, err := a.enforcer.Enforce(string(perfil), c.Resource, c.Action)
	if err != nil {
		return false, fmt.Errorf("rbac enforce %s: %w", c, err)
	}
	a.log.Debug("rbac_enforce", "perfil", perfil, "capability", c.String(), "allowed", ok)
	return ok, nil
}
