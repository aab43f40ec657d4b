package models

import "time"

type Perfil string

const (
	PerfilAdmin   Perfil = "ROLE_ADMIN"
	PerfilUsuario Perfil = "ROLE_USUARIO"
)

func (p Perfil) Valid() bool {
	return p == PerfilAdmin || p == PerfilUsuario
}

type Funcionario struct {
	ID                  string    `bson:"_id,omitempty" json:"id"`
	Nome                string    `bson:"nome" json:"nome"`
	Email               string    `bson:"email" json:"email"`
	Senha               string    `bson:"senha" json:"-"` // hash bcrypt
	CPF                 string    `bson:"cpf" json:"cpf"`
	Perfil              Perfil    `bson:"perfil" json:"perfil"`
	EmpresaID           string    `bson:"empresa_id" json:"empresaId"`
	ValorHora           *float64  `bson:"valor_hora,omitempty" json:"valorHora,omitempty"`
	QtdHorasTrabalhoDia *float32  `bson:"qtd_horas_trabalho_dia,omitempty" json:"qtdHorasTrabalhoDia,omitempty"`
	QtdHorasAlmoco      *float32  `bson:"qtd_horas_almoco,omitempty" json:"qtdHorasAlmoco,omitempty"`
	CreatedAt           time.Time `bson:"created_at" json:"-"`
	UpdatedAt           time.Time `bson:"updated_at" json:"-"`
}
