package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nguyenanhtu/realty_backend/pkg/constants"
)

// IndexSpec lists the indexes a collection must carry.
type IndexSpec struct {
	Collection string
	Models     []mongo.IndexModel
}

func newestFirst() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	}
}

func uniqueOn(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(field + "_unique").SetUnique(true),
	}
}

// Indexes returns the index layout for every application collection.
func Indexes() []IndexSpec {
	return []IndexSpec{
		{Collection: constants.CollectionBlogs, Models: []mongo.IndexModel{newestFirst()}},
		{Collection: constants.CollectionProducts, Models: []mongo.IndexModel{newestFirst(), uniqueOn("slug")}},
		{Collection: constants.CollectionContacts, Models: []mongo.IndexModel{newestFirst()}},
		{Collection: constants.CollectionProjects, Models: []mongo.IndexModel{newestFirst(), uniqueOn("slug")}},
		{Collection: constants.CollectionAdmins, Models: []mongo.IndexModel{uniqueOn("username")}},
	}
}

// EnsureIndexes creates missing indexes. CreateMany is a no-op for indexes that
// already exist with the same definition, so this is safe to run on every deploy.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range Indexes() {
		if _, err := db.Collection(spec.Collection).Indexes().CreateMany(ctx, spec.Models); err != nil {
			return fmt.Errorf("create indexes on %q: %w", spec.Collection, err)
		}
	}
	return nil
}
