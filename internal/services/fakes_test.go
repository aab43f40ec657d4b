package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/pagination"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/repository"
)

// memStore imita o LancamentoRepository em memória.
type memStore struct {
	mu      sync.Mutex
	seq     int
	items   map[string]models.Lancamento
	saves   int
	deletes int
	err     error
	lastReq pagination.PageRequest
}

func newMemStore(items ...models.Lancamento) *memStore {
	s := &memStore{items: map[string]models.Lancamento{}}
	for _, l := range items {
		s.items[l.ID] = l
	}
	return s
}

func (s *memStore) FindByID(_ context.Context, id string) (*models.Lancamento, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	l, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (s *memStore) FindByFuncionarioID(_ context.Context, funcionarioID string, p pagination.PageRequest) (pagination.Page[models.Lancamento], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastReq = p
	if s.err != nil {
		return pagination.Page[models.Lancamento]{}, s.err
	}

	var all []models.Lancamento
	for _, l := range s.items {
		if l.FuncionarioID == funcionarioID {
			all = append(all, l)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if p.Direction == pagination.ASC {
			return all[i].ID < all[j].ID
		}
		return all[i].ID > all[j].ID
	})

	start := int(p.Skip())
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Size
	if end > len(all) {
		end = len(all)
	}
	return pagination.NewPage(all[start:end], p, int64(len(all))), nil
}

func (s *memStore) Save(_ context.Context, l *models.Lancamento) (*models.Lancamento, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.saves++
	doc := *l
	if doc.ID == "" {
		s.seq++
		doc.ID = fmt.Sprintf("L%03d", s.seq)
	} else if _, ok := s.items[doc.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	doc.UpdatedAt = time.Now()
	s.items[doc.ID] = doc
	return &doc, nil
}

func (s *memStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.deletes++
	delete(s.items, id)
	return nil
}

type funcionariosFake struct {
	ids map[string]bool
	err error
}

func (f funcionariosFake) FindByID(_ context.Context, id string) (*models.Funcionario, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !f.ids[id] {
		return nil, nil
	}
	return &models.Funcionario{ID: id, Perfil: models.PerfilUsuario}, nil
}
