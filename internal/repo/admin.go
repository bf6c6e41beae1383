package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nguyenanhtu/realty_backend/internal/model"
	"github.com/nguyenanhtu/realty_backend/pkg/constants"
)

// AdminRepo stores the single admin credential.
type AdminRepo struct {
	s store[model.Admin]
}

func NewAdminRepo(db *mongo.Database) *AdminRepo {
	return &AdminRepo{s: store[model.Admin]{coll: db.Collection(constants.CollectionAdmins)}}
}

// Get returns the admin document, ErrNotFound before `system init` has run.
func (r *AdminRepo) Get(ctx context.Context) (*model.Admin, error) {
	return r.s.findOne(ctx, bson.M{})
}

// Save replaces the admin credential, creating it if absent.
func (r *AdminRepo) Save(ctx context.Context, a *model.Admin) error {
	a.UpdatedAt = time.Now().UTC()
	_, err := r.s.coll.ReplaceOne(ctx, bson.M{}, bson.M{
		"username":     a.Username,
		"passwordHash": a.PasswordHash,
		"phone":        a.Phone,
		"updatedAt":    a.UpdatedAt,
	}, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save admin: %w", err)
	}
	return nil
}

func (r *AdminRepo) SetPasswordHash(ctx context.Context, hash string) error {
	_, err := r.s.coll.UpdateOne(ctx, bson.M{}, bson.M{"$set": bson.M{
		"passwordHash": hash,
		"updatedAt":    time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set admin password: %w", err)
	}
	return nil
}
