package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/utils"
)

type EmpresaFinder interface {
	FindByCNPJ(ctx context.Context, cnpj string) (*models.Company, error)
}

type EmpresaHandler struct {
	Repo EmpresaFinder
	Log  *slog.Logger
}

func NewEmpresaHandler(repo EmpresaFinder, log *slog.Logger) *EmpresaHandler {
	if log == nil {
		log = slog.Default()
	}
	return &EmpresaHandler{Repo: repo, Log: log}
}

func (h *EmpresaHandler) logger() *slog.Logger {
	if h.Log == nil {
		return slog.Default()
	}
	return h.Log
}

func Health(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/empresas/cnpj/{cnpj} (aceita com ou sem máscara)
func (h *EmpresaHandler) ByCNPJ(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("cnpj")
	cnpj := utils.SanitizeCNPJ(raw)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.Repo.FindByCNPJ(ctx, cnpj)
	if err != nil {
		writeServiceError(w, r, h.logger(), fmt.Errorf("buscar empresa %s: %w", cnpj, err))
		return
	}
	if c == nil {
		writeErrors(w, http.StatusNotFound, fmt.Sprintf("Empresa não encontrada para o CNPJ %s", raw))
		return
	}
	writeData(w, http.StatusOK, *c)
}
