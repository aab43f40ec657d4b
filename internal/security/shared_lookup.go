package security

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
)

// sharedFinder junta buscas simultâneas pelo mesmo id numa única ida ao banco.
// Não guarda nada depois que a busca termina.
// A busca compartilhada roda desacoplada do contexto de quem chegou primeiro:
// cada chamador só deixa de esperar quando o próprio ctx acaba.
type sharedFinder struct {
	dir     FuncionarioFinder
	sf      singleflight.Group
	timeout time.Duration
}

const sharedLookupTimeout = 5 * time.Second

func SharedLookups(dir FuncionarioFinder) FuncionarioFinder {
	return &sharedFinder{dir: dir, timeout: sharedLookupTimeout}
}

func (s *sharedFinder) FindByID(ctx context.Context, id string) (*models.Funcionario, error) {
	ch := s.sf.DoChan(id, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.dir.FindByID(lctx, id)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	f, _ := res.Val.(*models.Funcionario)
	if f == nil {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}
