package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
)

type FuncionarioRepository struct {
	coll *mongo.Collection
}

func NewFuncionarioRepository(db *mongo.Database) *FuncionarioRepository {
	return &FuncionarioRepository{coll: db.Collection("funcionarios")}
}

func (r *FuncionarioRepository) EnsureIndexes(ctx context.Context) error {
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "cpf", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_cpf")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		{Keys: bson.D{{Key: "empresa_id", Value: 1}}, Options: options.Index().SetName("idx_empresa")},
	}
	for _, m := range idx {
		if err := ensureIndex(ctx, r.coll, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *FuncionarioRepository) FindByID(ctx context.Context, id string) (*models.Funcionario, error) {
	return findOne[models.Funcionario](ctx, r.coll, bson.M{"_id": id})
}

func (r *FuncionarioRepository) FindByCPF(ctx context.Context, cpf string) (*models.Funcionario, error) {
	return findOne[models.Funcionario](ctx, r.coll, bson.M{"cpf": cpf})
}

func (r *FuncionarioRepository) FindByEmail(ctx context.Context, email string) (*models.Funcionario, error) {
	return findOne[models.Funcionario](ctx, r.coll, bson.M{"email": email})
}

func (r *FuncionarioRepository) Save(ctx context.Context, f *models.Funcionario) (*models.Funcionario, error) {
	doc := *f
	now := time.Now().UTC()
	doc.UpdatedAt = now

	if doc.ID == "" {
		doc.ID = primitive.NewObjectID().Hex()
		doc.CreatedAt = now
		if _, err := r.coll.InsertOne(ctx, doc); err != nil {
			return nil, funcionarioWriteErr("insert", err)
		}
		return &doc, nil
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return nil, funcionarioWriteErr("replace", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &doc, nil
}

func funcionarioWriteErr(op string, err error) error {
	switch duplicateIndex(err) {
	case "":
		return fmt.Errorf("funcionarios %s: %w", op, err)
	case "uniq_email":
		return ErrDuplicateEmail
	default:
		return ErrDuplicateCPF
	}
}
