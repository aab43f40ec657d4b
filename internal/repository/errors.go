package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound       = errors.New("document not found")
	ErrDuplicateCNPJ  = errors.New("cnpj already exists")
	ErrDuplicateCPF   = errors.New("cpf already exists")
	ErrDuplicateEmail = errors.New("email already exists")
)

// duplicateIndex devolve o nome do índice único violado (E11000), ou "" se não for duplicidade.
func duplicateIndex(err error) string {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return ""
	}
	for _, e := range we.WriteErrors {
		if e.Code != 11000 {
			continue
		}
		// mensagem: "E11000 duplicate key error collection: db.coll index: uniq_cpf dup key: {...}"
		if i := strings.Index(e.Message, "index: "); i >= 0 {
			rest := e.Message[i+len("index: "):]
			if j := strings.IndexByte(rest, ' '); j >= 0 {
				return rest[:j]
			}
			return rest
		}
		return "unknown"
	}
	return ""
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (*T, error) {
	var v T
	err := coll.FindOne(ctx, filter).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s find: %w", coll.Name(), err)
	}
	return &v, nil
}
