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

type CompanyRepository struct {
	coll *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{coll: db.Collection("empresas")}
}

func (r *CompanyRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndex(ctx, r.coll, mongo.IndexModel{
		Keys:    bson.D{{Key: "cnpj", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_cnpj"),
	})
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*models.Company, error) {
	return findOne[models.Company](ctx, r.coll, bson.M{"_id": id})
}

// FindByCNPJ espera o cnpj já normalizado (só dígitos).
func (r *CompanyRepository) FindByCNPJ(ctx context.Context, cnpj string) (*models.Company, error) {
	return findOne[models.Company](ctx, r.coll, bson.M{"cnpj": cnpj})
}

// Save insere quando ID está vazio, senão substitui o documento existente.
func (r *CompanyRepository) Save(ctx context.Context, c *models.Company) (*models.Company, error) {
	doc := *c
	now := time.Now().UTC()
	doc.UpdatedAt = now

	if doc.ID == "" {
		doc.ID = primitive.NewObjectID().Hex()
		doc.CreatedAt = now
		if _, err := r.coll.InsertOne(ctx, doc); err != nil {
			if duplicateIndex(err) != "" {
				return nil, ErrDuplicateCNPJ
			}
			return nil, fmt.Errorf("empresas insert: %w", err)
		}
		return &doc, nil
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if duplicateIndex(err) != "" {
			return nil, ErrDuplicateCNPJ
		}
		return nil, fmt.Errorf("empresas replace: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &doc, nil
}
