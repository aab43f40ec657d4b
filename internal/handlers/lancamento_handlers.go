package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/pagination"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/services"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/utils"
)

type LancamentoService interface {
	ListarPorFuncionario(ctx context.Context, funcionarioID string, pag int, ord string, dir pagination.Direction) (pagination.Page[services.LancamentoDTO], error)
	BuscarPorID(ctx context.Context, id string) (services.LancamentoDTO, error)
	Adicionar(ctx context.Context, dto services.LancamentoDTO) (services.LancamentoDTO, error)
	Atualizar(ctx context.Context, id string, dto services.LancamentoDTO) (services.LancamentoDTO, error)
	Remover(ctx context.Context, id string) (services.LancamentoDTO, error)
}

type Publisher interface {
	Publish(ctx context.Context, body string, headers amqp.Table) error
	Close() error
}

type LancamentoHandler struct {
	Svc     LancamentoService
	Pub     Publisher
	Log     *slog.Logger
	Timeout time.Duration
}

func NewLancamentoHandler(svc LancamentoService, pub Publisher, log *slog.Logger, timeout time.Duration) *LancamentoHandler {
	if log == nil {
		log = slog.Default()
	}
	return &LancamentoHandler{Svc: svc, Pub: pub, Log: log, Timeout: timeout}
}

func (h *LancamentoHandler) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	t := h.Timeout
	if t <= 0 {
		t = 5 * time.Second
	}
	return context.WithTimeout(r.Context(), t)
}

func (h *LancamentoHandler) logger() *slog.Logger {
	if h.Log == nil {
		return slog.Default()
	}
	return h.Log
}

// GET /api/lancamentos/funcionario/{funcionarioId}?pag=0&ord=id&dir=DESC
func (h *LancamentoHandler) ListByFuncionario(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pag := 0
	if s := q.Get("pag"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeErrors(w, http.StatusBadRequest, fmt.Sprintf("Parâmetro pag inválido: %q.", s))
			return
		}
		pag = v
	}
	dir, err := pagination.ParseDirection(q.Get("dir"))
	if err != nil {
		writeErrors(w, http.StatusBadRequest, fmt.Sprintf("Parâmetro dir inválido: %q. Use ASC ou DESC.", q.Get("dir")))
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	page, err := h.Svc.ListarPorFuncionario(ctx, r.PathValue("funcionarioId"), pag, q.Get("ord"), dir)
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	writeData(w, http.StatusOK, page)
}

// GET /api/lancamentos/{id}
func (h *LancamentoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	dto, err := h.Svc.BuscarPorID(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	writeData(w, http.StatusOK, dto)
}

// POST /api/lancamentos
func (h *LancamentoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto services.LancamentoDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		writeErrors(w, http.StatusBadRequest, utils.FormatDecodeError(err))
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	out, err := h.Svc.Adicionar(ctx, dto)
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	h.publishEvent("Cadastro", out)
	writeData(w, http.StatusOK, out)
}

// PUT /api/lancamentos/{id}
func (h *LancamentoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var dto services.LancamentoDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		writeErrors(w, http.StatusBadRequest, utils.FormatDecodeError(err))
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	out, err := h.Svc.Atualizar(ctx, r.PathValue("id"), dto)
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	h.publishEvent("Edição", out)
	writeData(w, http.StatusOK, out)
}

// DELETE /api/lancamentos/{id} (ROLE_ADMIN)
func (h *LancamentoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	removed, err := h.Svc.Remover(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger(), err)
		return
	}
	h.publishEvent("Exclusão", removed)
	writeErrors(w, http.StatusOK)
}

// publishEvent avisa o serviço de websocket. Falha no broker não derruba a requisição.
func (h *LancamentoHandler) publishEvent(acao string, l services.LancamentoDTO) {
	if h.Pub == nil {
		return
	}
	msg := fmt.Sprintf("%s de LANÇAMENTO %s do funcionário %s em %s", acao, l.Tipo, l.FuncionarioID, l.Data)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := h.Pub.Publish(ctx, msg, amqp.Table{
		"action":         strings.ToLower(acao), // cadastro|edição|exclusão
		"lancamento_id":  l.ID,
		"funcionario_id": l.FuncionarioID,
		"tipo":           l.Tipo,
		"data":           l.Data,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger().Warn("publish_event_error", "action", acao, "lancamento_id", l.ID, "err", err)
	}
}
