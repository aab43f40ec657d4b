package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/pagination"
)

// nomes aceitos em "ord" -> campo no documento
var lancamentoSortKeys = map[string]string{
	"id":            "_id",
	"data":          "data",
	"tipo":          "tipo",
	"funcionarioId": "funcionario_id",
	"descricao":     "descricao",
	"localizacao":   "localizacao",
}

type LancamentoRepository struct {
	coll *mongo.Collection
}

func NewLancamentoRepository(db *mongo.Database) *LancamentoRepository {
	return &LancamentoRepository{coll: db.Collection("lancamentos")}
}

func (r *LancamentoRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndex(ctx, r.coll, mongo.IndexModel{
		Keys:    bson.D{{Key: "funcionario_id", Value: 1}, {Key: "data", Value: -1}},
		Options: options.Index().SetName("idx_funcionario_data"),
	})
}

func (r *LancamentoRepository) FindByID(ctx context.Context, id string) (*models.Lancamento, error) {
	return findOne[models.Lancamento](ctx, r.coll, bson.M{"_id": id})
}

func (r *LancamentoRepository) FindByFuncionarioID(ctx context.Context, funcionarioID string, p pagination.PageRequest) (pagination.Page[models.Lancamento], error) {
	filter := bson.M{"funcionario_id": funcionarioID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return pagination.Page[models.Lancamento]{}, fmt.Errorf("lancamentos count: %w", err)
	}

	opts := options.Find().
		SetSkip(p.Skip()).
		SetLimit(p.Limit()).
		SetSort(sortSpec(p))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return pagination.Page[models.Lancamento]{}, fmt.Errorf("lancamentos find: %w", err)
	}
	defer cur.Close(ctx)

	list := []models.Lancamento{}
	if err := cur.All(ctx, &list); err != nil {
		return pagination.Page[models.Lancamento]{}, fmt.Errorf("lancamentos decode: %w", err)
	}
	return pagination.NewPage(list, p, total), nil
}

// sortSpec traduz o campo pedido; campos desconhecidos caem no _id.
// _id entra como desempate para a paginação ser estável.
func sortSpec(p pagination.PageRequest) bson.D {
	key, ok := lancamentoSortKeys[p.SortField]
	if !ok {
		key = "_id"
	}
	sort := bson.D{{Key: key, Value: p.Direction.Sign()}}
	if key != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: p.Direction.Sign()})
	}
	return sort
}

// Save insere quando l.ID está vazio (gera o id) ou sobrescreve todos os campos
// do lançamento existente. Nunca faz upsert: id inexistente -> ErrNotFound.
func (r *LancamentoRepository) Save(ctx context.Context, l *models.Lancamento) (*models.Lancamento, error) {
	now := time.Now().UTC()

	if l.ID == "" {
		doc := *l
		doc.ID = primitive.NewObjectID().Hex()
		doc.CreatedAt = now
		doc.UpdatedAt = now
		if _, err := r.coll.InsertOne(ctx, doc); err != nil {
			return nil, fmt.Errorf("lancamentos insert: %w", err)
		}
		return &doc, nil
	}

	set := bson.M{
		"data":           l.Data,
		"tipo":           l.Tipo,
		"funcionario_id": l.FuncionarioID,
		"descricao":      l.Descricao,
		"localizacao":    l.Localizacao,
		"updated_at":     now,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Lancamento
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": l.ID}, bson.M{"$set": set}, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lancamentos update: %w", err)
	}
	return &out, nil
}

func (r *LancamentoRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("lancamentos delete: %w", err)
	}
	return nil
}
