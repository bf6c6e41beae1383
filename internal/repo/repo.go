// Package repo implements one MongoDB repository per collection. Every method
// is a single-document (or single-query) operation; nothing spans documents.
package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid object id")
	ErrDuplicate = errors.New("duplicate key")
)

// ParseID validates a 24-hex identifier before any query is issued.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// store holds the collection-level operations shared by every repository.
type store[T any] struct {
	coll *mongo.Collection
}

func (s store[T]) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.coll.Name(), err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.coll.Name(), err)
	}
	return out, nil
}

func (s store[T]) findOne(ctx context.Context, filter any) (*T, error) {
	var doc T
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one %s: %w", s.coll.Name(), err)
	}
	return &doc, nil
}

func (s store[T]) get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s store[T]) insert(ctx context.Context, doc any) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrDuplicate
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert %s: %w", s.coll.Name(), err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// set applies a $set and reports the matched count; callers decide whether
// zero matches is an error.
func (s store[T]) set(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if mongo.IsDuplicateKeyError(err) {
		return 0, ErrDuplicate
	}
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", s.coll.Name(), err)
	}
	return res.MatchedCount, nil
}

func (s store[T]) delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", s.coll.Name(), err)
	}
	return res.DeletedCount, nil
}

// distinct returns the sorted non-empty string values of field.
func (s store[T]) distinct(ctx context.Context, field string) ([]string, error) {
	vals, err := s.coll.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct %s.%s: %w", s.coll.Name(), field, err)
	}
	return cleanDistinct(vals), nil
}

func cleanDistinct(vals []any) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func newestFirst() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}}
}
