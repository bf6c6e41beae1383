package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nguyenanhtu/realty_backend/internal/model"
	"github.com/nguyenanhtu/realty_backend/pkg/constants"
)

// ProductSummaryProjection selects the list-view fields.
var ProductSummaryProjection = bson.M{
	"name":          1,
	"area":          1,
	"investor":      1,
	"defaultImage":  1,
	"slug":          1,
	"apartmentType": 1,
}

type ProductRepo struct {
	s       store[model.Product]
	summary store[model.ProductSummary]
}

func NewProductRepo(db *mongo.Database) *ProductRepo {
	coll := db.Collection(constants.CollectionProducts)
	return &ProductRepo{
		s:       store[model.Product]{coll: coll},
		summary: store[model.ProductSummary]{coll: coll},
	}
}

func (r *ProductRepo) List(ctx context.Context, f ProductFilter) ([]model.ProductSummary, error) {
	page := f.Page.Normalize()
	opts := options.Find().
		SetProjection(ProductSummaryProjection).
		SetSort(newestFirst()).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))
	return r.summary.find(ctx, BuildProductFilter(f), opts)
}

func (r *ProductRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	return r.s.get(ctx, id)
}

func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.s.findOne(ctx, bson.M{"slug": slug})
}

// Create returns ErrDuplicate when the slug is taken.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	id, err := r.s.insert(ctx, p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *ProductRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	return r.s.set(ctx, id, fields)
}

func (r *ProductRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return r.s.delete(ctx, id)
}

// Distinct lists the values of a filterable field (area, investor, apartmentType, name).
func (r *ProductRepo) Distinct(ctx context.Context, field string) ([]string, error) {
	return r.s.distinct(ctx, field)
}
