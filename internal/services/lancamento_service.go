// Package services contém o ciclo de vida dos lançamentos: validação, conversão
// DTO <-> registro, paginação e as operações de CRUD sobre a store.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/pagination"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/repository"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/security"
)

// Capabilities exigidas pelas rotas de lançamento. Só RemoverLancamento é
// verificada aqui dentro; as demais ficam a cargo do middleware.
var (
	LerLancamentos    = security.Capability{Resource: "lancamentos", Action: "ler"}
	GravarLancamentos = security.Capability{Resource: "lancamentos", Action: "gravar"}
	RemoverLancamento = security.Capability{Resource: "lancamentos", Action: "remover"}
	LerEmpresas       = security.Capability{Resource: "empresas", Action: "ler"}
)

const DefaultPageSize = 15

type LancamentoDTO struct {
	ID            string `json:"id,omitempty"`
	Data          string `json:"data" validate:"required"`
	Tipo          string `json:"tipo" validate:"required,tipo_lancamento"`
	Descricao     string `json:"descricao"`
	Localizacao   string `json:"localizacao"`
	FuncionarioID string `json:"funcionarioId" validate:"required"`
}

type LancamentoStore interface {
	FindByID(ctx context.Context, id string) (*models.Lancamento, error)
	FindByFuncionarioID(ctx context.Context, funcionarioID string, p pagination.PageRequest) (pagination.Page[models.Lancamento], error)
	Save(ctx context.Context, l *models.Lancamento) (*models.Lancamento, error)
	DeleteByID(ctx context.Context, id string) error
}

// FuncionarioFinder devolve (nil, nil) quando o funcionário não existe.
type FuncionarioFinder interface {
	FindByID(ctx context.Context, id string) (*models.Funcionario, error)
}

type LancamentoService struct {
	store        LancamentoStore
	funcionarios FuncionarioFinder
	pageSize     int
	loc          *time.Location
	validate     *validator.Validate
	log          *slog.Logger
}

func NewLancamentoService(store LancamentoStore, funcionarios FuncionarioFinder, pageSize int, loc *time.Location, log *slog.Logger) *LancamentoService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}
	return &LancamentoService{
		store:        store,
		funcionarios: funcionarios,
		pageSize:     pageSize,
		loc:          loc,
		validate:     newValidator(),
		log:          log.With("cmp", "lancamentos"),
	}
}

func (s *LancamentoService) ListarPorFuncionario(ctx context.Context, funcionarioID string, pag int, ord string, dir pagination.Direction) (pagination.Page[LancamentoDTO], error) {
	req := pagination.NewPageRequest(pag, s.pageSize, ord, dir)

	page, err := s.store.FindByFuncionarioID(ctx, funcionarioID, req)
	if err != nil {
		return pagination.Page[LancamentoDTO]{}, fmt.Errorf("listar lançamentos do funcionário %s: %w", funcionarioID, err)
	}
	return pagination.Map(page, s.toDTO), nil
}

func (s *LancamentoService) BuscarPorID(ctx context.Context, id string) (LancamentoDTO, error) {
	l, err := s.store.FindByID(ctx, id)
	if err != nil {
		return LancamentoDTO{}, fmt.Errorf("buscar lançamento %s: %w", id, err)
	}
	if l == nil {
		return LancamentoDTO{}, &NotFoundError{Msg: fmt.Sprintf("Lançamento não encontrado para o id %s", id)}
	}
	return s.toDTO(*l), nil
}

func (s *LancamentoService) Adicionar(ctx context.Context, dto LancamentoDTO) (LancamentoDTO, error) {
	dto.ID = ""
	l, err := s.validar(ctx, dto, false)
	if err != nil {
		return LancamentoDTO{}, err
	}

	saved, err := s.store.Save(ctx, l)
	if err != nil {
		return LancamentoDTO{}, fmt.Errorf("salvar lançamento: %w", err)
	}
	s.log.Info("lancamento_criado", "id", saved.ID, "funcionario_id", saved.FuncionarioID, "tipo", saved.Tipo)
	return s.toDTO(*saved), nil
}

// Atualizar substitui todos os campos do lançamento id. Nunca cria.
func (s *LancamentoService) Atualizar(ctx context.Context, id string, dto LancamentoDTO) (LancamentoDTO, error) {
	dto.ID = id
	l, err := s.validar(ctx, dto, true)
	if err != nil {
		return LancamentoDTO{}, err
	}

	saved, err := s.store.Save(ctx, l)
	if errors.Is(err, repository.ErrNotFound) {
		// removido entre a validação e a escrita
		return LancamentoDTO{}, &ValidationError{Erros: []string{"Lançamento não encontrado."}}
	}
	if err != nil {
		return LancamentoDTO{}, fmt.Errorf("atualizar lançamento %s: %w", id, err)
	}
	s.log.Info("lancamento_atualizado", "id", saved.ID, "funcionario_id", saved.FuncionarioID, "tipo", saved.Tipo)
	return s.toDTO(*saved), nil
}

// Remover exige RemoverLancamento concedida no contexto.
// Devolve o lançamento removido para quem precisa notificar a remoção.
func (s *LancamentoService) Remover(ctx context.Context, id string) (LancamentoDTO, error) {
	if !security.Granted(ctx, RemoverLancamento) {
		return LancamentoDTO{}, ErrForbidden
	}

	l, err := s.store.FindByID(ctx, id)
	if err != nil {
		return LancamentoDTO{}, fmt.Errorf("buscar lançamento %s: %w", id, err)
	}
	if l == nil {
		return LancamentoDTO{}, &NotFoundError{Msg: fmt.Sprintf("Erro ao remover lançamento. Registro não encontrado para o id %s", id)}
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return LancamentoDTO{}, fmt.Errorf("remover lançamento %s: %w", id, err)
	}
	s.log.Info("lancamento_removido", "id", id, "funcionario_id", l.FuncionarioID)
	return s.toDTO(*l), nil
}

// validar junta todas as falhas antes de qualquer escrita.
// Erro de infraestrutura (mongo fora) interrompe e volta como erro comum.
func (s *LancamentoService) validar(ctx context.Context, dto LancamentoDTO, update bool) (*models.Lancamento, error) {
	verr := &ValidationError{}

	dto.FuncionarioID = strings.TrimSpace(dto.FuncionarioID)
	dto.Tipo = strings.TrimSpace(dto.Tipo)
	dto.Data = strings.TrimSpace(dto.Data)

	if err := s.validate.Struct(dto); err != nil {
		for _, msg := range fieldMessages(err) {
			verr.add(msg)
		}
	}

	var data time.Time
	if dto.Data != "" {
		d, err := ParseData(dto.Data, s.loc)
		if err != nil {
			verr.add("Data inválida. Formato esperado: yyyy-MM-dd HH:mm:ss.")
		}
		data = d
	}

	if dto.FuncionarioID != "" {
		f, err := s.funcionarios.FindByID(ctx, dto.FuncionarioID)
		if err != nil {
			return nil, fmt.Errorf("buscar funcionário %s: %w", dto.FuncionarioID, err)
		}
		if f == nil {
			verr.add("Funcionário não encontrado. ID inexistente.")
		}
	}

	if update {
		l, err := s.store.FindByID(ctx, dto.ID)
		if err != nil {
			return nil, fmt.Errorf("buscar lançamento %s: %w", dto.ID, err)
		}
		if l == nil {
			verr.add("Lançamento não encontrado.")
		}
	}


	if !verr.empty() {
		return nil, verr
	}

	return &models.Lancamento{
		ID:            dto.ID,
		Data:          data,
		Tipo:          models.Tipo(dto.Tipo),
		FuncionarioID: dto.FuncionarioID,
		Descricao:     dto.Descricao,
		Localizacao:   dto.Localizacao,
	}, nil
}

func (s *LancamentoService) toDTO(l models.Lancamento) LancamentoDTO {
	return LancamentoDTO{
		ID:            l.ID,
		Data:          FormatData(l.Data, s.loc),
		Tipo:          string(l.Tipo),
		Descricao:     l.Descricao,
		Localizacao:   l.Localizacao,
		FuncionarioID: l.FuncionarioID,
	}
}
