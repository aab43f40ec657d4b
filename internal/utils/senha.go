package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrSenhaVazia = errors.New("senha vazia")

// BCryptHasher gera o hash one-way guardado em Funcionario.Senha.
type BCryptHasher struct {
	Cost int
}

func NewBCryptHasher(cost int) BCryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BCryptHasher{Cost: cost}
}

func (h BCryptHasher) Hash(senha string) (string, error) {
	if senha == "" {
		return "", ErrSenhaVazia
	}
	b, err := bcrypt.GenerateFromPassword([]byte(senha), h.Cost)
	return string(b), err
}
