package models

import "time"

type Company struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	RazaoSocial string    `bson:"razao_social" json:"razaoSocial"`
	CNPJ        string    `bson:"cnpj" json:"cnpj"` // armazenado normalizado (apenas dígitos)
	CreatedAt   time.Time `bson:"created_at" json:"-"`
	UpdatedAt   time.Time `bson:"updated_at" json:"-"`
}
