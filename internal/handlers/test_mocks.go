package handlers

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/pagination"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/services"
)

type svcMock struct {
	ListarFn    func(ctx context.Context, funcionarioID string, pag int, ord string, dir pagination.Direction) (pagination.Page[services.LancamentoDTO], error)
	BuscarFn    func(ctx context.Context, id string) (services.LancamentoDTO, error)
	AdicionarFn func(ctx context.Context, dto services.LancamentoDTO) (services.LancamentoDTO, error)
	AtualizarFn func(ctx context.Context, id string, dto services.LancamentoDTO) (services.LancamentoDTO, error)
	RemoverFn   func(ctx context.Context, id string) (services.LancamentoDTO, error)
}

func (m *svcMock) ListarPorFuncionario(ctx context.Context, funcionarioID string, pag int, ord string, dir pagination.Direction) (pagination.Page[services.LancamentoDTO], error) {
	if m.ListarFn == nil {
		return pagination.Page[services.LancamentoDTO]{}, errors.New("ListarFn not set")
	}
	return m.ListarFn(ctx, funcionarioID, pag, ord, dir)
}
func (m *svcMock) BuscarPorID(ctx context.Context, id string) (services.LancamentoDTO, error) {
	if m.BuscarFn == nil {
		return services.LancamentoDTO{}, errors.New("BuscarFn not set")
	}
	return m.BuscarFn(ctx, id)
}
func (m *svcMock) Adicionar(ctx context.Context, dto services.LancamentoDTO) (services.LancamentoDTO, error) {
	if m.AdicionarFn == nil {
		return services.LancamentoDTO{}, errors.New("AdicionarFn not set")
	}
	return m.AdicionarFn(ctx, dto)
}
func (m *svcMock) Atualizar(ctx context.Context, id string, dto services.LancamentoDTO) (services.LancamentoDTO, error) {
	if m.AtualizarFn == nil {
		return services.LancamentoDTO{}, errors.New("AtualizarFn not set")
	}
	return m.AtualizarFn(ctx, id, dto)
}
func (m *svcMock) Remover(ctx context.Context, id string) (services.LancamentoDTO, error) {
	if m.RemoverFn == nil {
		return services.LancamentoDTO{}, errors.New("RemoverFn not set")
	}
	return m.RemoverFn(ctx, id)
}

type empresaMock struct {
	FindByCNPJFn func(ctx context.Context, cnpj string) (*models.Company, error)
}

func (m *empresaMock) FindByCNPJ(ctx context.Context, cnpj string) (*models.Company, error) {
	if m.FindByCNPJFn == nil {
		return nil, errors.New("FindByCNPJFn not set")
	}
	return m.FindByCNPJFn(ctx, cnpj)
}

type funcionarioMock struct {
	FindByIDFn func(ctx context.Context, id string) (*models.Funcionario, error)
}

func (m *funcionarioMock) FindByID(ctx context.Context, id string) (*models.Funcionario, error) {
	if m.FindByIDFn == nil {
		return nil, errors.New("FindByIDFn not set")
	}
	return m.FindByIDFn(ctx, id)
}

type pubMock struct {
	PublishFn func(ctx context.Context, body string, headers amqp.Table) error
	CloseFn   func() error
}

func (p *pubMock) Publish(ctx context.Context, body string, headers amqp.Table) error {
	if p.PublishFn == nil {
		return nil
	}
	return p.PublishFn(ctx, body, headers)
}
func (p *pubMock) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}
