package models

import "time"

type Tipo string

const (
	TipoInicioTrabalho  Tipo = "INICIO_TRABALHO"
	TipoInicioAlmoco    Tipo = "INICIO_ALMOCO"
	TipoTerminoAlmoco   Tipo = "TERMINO_ALMOCO"
	TipoTerminoTrabalho Tipo = "TERMINO_TRABALHO"
)

var Tipos = []Tipo{TipoInicioTrabalho, TipoInicioAlmoco, TipoTerminoAlmoco, TipoTerminoTrabalho}

func (t Tipo) Valid() bool {
	for _, v := range Tipos {
		if t == v {
			return true
		}
	}
	return false
}

// Lancamento é uma batida de ponto. ID vazio = ainda não persistido.
type Lancamento struct {
	ID            string    `bson:"_id,omitempty"`
	Data          time.Time `bson:"data"`
	Tipo          Tipo      `bson:"tipo"`
	FuncionarioID string    `bson:"funcionario_id"`
	Descricao     string    `bson:"descricao"`
	Localizacao   string    `bson:"localizacao"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}
