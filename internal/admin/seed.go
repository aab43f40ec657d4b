package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/repository"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/utils"
)

//go:embed seeds/empresa.json
var empresaJSON []byte

type CompanyDirectory interface {
	FindByCNPJ(ctx context.Context, cnpj string) (*models.Company, error)
	Save(ctx context.Context, c *models.Company) (*models.Company, error)
}

type FuncionarioDirectory interface {
	FindByCPF(ctx context.Context, cpf string) (*models.Funcionario, error)
	Save(ctx context.Context, f *models.Funcionario) (*models.Funcionario, error)
}

type Hasher interface {
	Hash(senha string) (string, error)
}

type seedFile struct {
	Empresa struct {
		CNPJ        string `json:"cnpj"`
		RazaoSocial string `json:"razao_social"`
	} `json:"empresa"`
	Funcionarios []seedFuncionario `json:"funcionarios"`
}

type seedFuncionario struct {
	Nome                string   `json:"nome"`
	Email               string   `json:"email"`
	Senha               string   `json:"senha"`
	CPF                 string   `json:"cpf"`
	Perfil              string   `json:"perfil"`
	ValorHora           *float64 `json:"valor_hora"`
	QtdHorasTrabalhoDia *float32 `json:"qtd_horas_trabalho_dia"`
	QtdHorasAlmoco      *float32 `json:"qtd_horas_almoco"`
}

type Seeder struct {
	Empresas     CompanyDirectory
	Funcionarios FuncionarioDirectory
	Hasher       Hasher
	Log          *slog.Logger
}

// SeedEmpresa carrega a empresa padrão embutida no binário.
func (s *Seeder) SeedEmpresa(ctx context.Context) error {
	return s.Seed(ctx, empresaJSON)
}

// Seed é idempotente: empresa por CNPJ e funcionários por CPF; o que já existe é ignorado.
func (s *Seeder) Seed(ctx context.Context, raw []byte) error {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}

	var f seedFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("seed json: %w", err)
	}

	cnpj := utils.SanitizeCNPJ(f.Empresa.CNPJ)
	if !utils.ValidateCNPJ(cnpj) {
		return fmt.Errorf("seed: cnpj inválido %q", f.Empresa.CNPJ)
	}

	empresa, err := s.ensureEmpresa(ctx, cnpj, f.Empresa.RazaoSocial, log)
	if err != nil {
		return err
	}

	created := 0
	for _, sf := range f.Funcionarios {
		ok, err := s.ensureFuncionario(ctx, empresa.ID, sf, log)
		if err != nil {
			return err
		}
		if ok {
			created++
		}
	}

	log.Info("seed_done", "empresa_id", empresa.ID, "funcionarios_criados", created, "total", len(f.Funcionarios))
	return nil
}

func (s *Seeder) ensureEmpresa(ctx context.Context, cnpj, razao string, log *slog.Logger) (*models.Company, error) {
	ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	existing, err := s.Empresas.FindByCNPJ(ictx, cnpj)
	if err != nil {
		return nil, fmt.Errorf("seed empresa %s: %w", cnpj, err)
	}
	if existing != nil {
		log.Info("seed_company_exists", "cnpj", cnpj, "id", existing.ID)
		return existing, nil
	}

	c, err := s.Empresas.Save(ictx, &models.Company{CNPJ: cnpj, RazaoSocial: razao})
	if err != nil {
		return nil, fmt.Errorf("seed empresa %s: %w", cnpj, err)
	}
	log.Info("seed_company_created", "cnpj", cnpj, "id", c.ID)
	return c, nil
}

// ensureFuncionario devolve true quando criou um novo registro.
func (s *Seeder) ensureFuncionario(ctx context.Context, empresaID string, sf seedFuncionario, log *slog.Logger) (bool, error) {
	cpf := utils.SanitizeCPF(sf.CPF)
	if !utils.ValidateCPF(cpf) {
		log.Warn("seed_skip_invalid_cpf", "raw", sf.CPF)
		return false, nil
	}
	perfil := models.Perfil(sf.Perfil)
	if !perfil.Valid() {
		log.Warn("seed_skip_invalid_perfil", "cpf", cpf, "perfil", sf.Perfil)
		return false, nil
	}

	ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	existing, err := s.Funcionarios.FindByCPF(ictx, cpf)
	if err != nil {
		return false, fmt.Errorf("seed funcionario %s: %w", cpf, err)
	}
	if existing != nil {
		log.Info("seed_funcionario_exists", "cpf", cpf, "id", existing.ID)
		return false, nil
	}

	hash, err := s.Hasher.Hash(sf.Senha)
	if err != nil {
		return false, fmt.Errorf("seed funcionario %s: %w", cpf, err)
	}

	saved, err := s.Funcionarios.Save(ictx, &models.Funcionario{
		Nome:                sf.Nome,
		Email:               strings.ToLower(strings.TrimSpace(sf.Email)),
		Senha:               hash,
		CPF:                 cpf,
		Perfil:              perfil,
		EmpresaID:           empresaID,
		ValorHora:           sf.ValorHora,
		QtdHorasTrabalhoDia: sf.QtdHorasTrabalhoDia,
		QtdHorasAlmoco:      sf.QtdHorasAlmoco,
	})
	if errors.Is(err, repository.ErrDuplicateEmail) || errors.Is(err, repository.ErrDuplicateCPF) {
		log.Warn("seed_funcionario_duplicate", "cpf", cpf, "email", sf.Email, "err", err)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed funcionario %s: %w", cpf, err)
	}
	log.Info("seed_funcionario_created", "cpf", cpf, "id", saved.ID, "perfil", perfil)
	return true, nil
}
