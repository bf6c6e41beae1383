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

type BlogRepo struct {
	s store[model.Blog]
}

func NewBlogRepo(db *mongo.Database) *BlogRepo {
	return &BlogRepo{s: store[model.Blog]{coll: db.Collection(constants.CollectionBlogs)}}
}

func (r *BlogRepo) List(ctx context.Context, f BlogFilter) ([]model.Blog, error) {
	return r.s.find(ctx, BuildBlogFilter(f), options.Find().SetSort(newestFirst()))
}

func (r *BlogRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Blog, error) {
	return r.s.get(ctx, id)
}

func (r *BlogRepo) Create(ctx context.Context, b *model.Blog) error {
	id, err := r.s.insert(ctx, b)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *BlogRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	return r.s.set(ctx, id, fields)
}

func (r *BlogRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return r.s.delete(ctx, id)
}
