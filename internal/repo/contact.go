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

// ContactRepo has no update or delete: contacts are append-only.
type ContactRepo struct {
	s store[model.Contact]
}

func NewContactRepo(db *mongo.Database) *ContactRepo {
	return &ContactRepo{s: store[model.Contact]{coll: db.Collection(constants.CollectionContacts)}}
}

func (r *ContactRepo) List(ctx context.Context) ([]model.Contact, error) {
	return r.s.find(ctx, bson.M{}, options.Find().SetSort(newestFirst()))
}

func (r *ContactRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Contact, error) {
	return r.s.get(ctx, id)
}

func (r *ContactRepo) Create(ctx context.Context, c *model.Contact) error {
	id, err := r.s.insert(ctx, c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}
