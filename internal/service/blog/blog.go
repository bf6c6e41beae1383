package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nguyenanhtu/realty_backend/internal/contract"
	"github.com/nguyenanhtu/realty_backend/internal/model"
	"github.com/nguyenanhtu/realty_backend/internal/repo"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Image       string `json:"image"`
}

// Store is the persistence the service needs; *repo.BlogRepo satisfies it.
type Store interface {
	List(ctx context.Context, f repo.BlogFilter) ([]model.Blog, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Blog, error)
	Create(ctx context.Context, b *model.Blog) error
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, title string) ([]model.Blog, error)
	Get(ctx context.Context, id string) (*model.Blog, error)
	Create(ctx context.Context, doc map[string]any) (*model.Blog, error)
	Update(ctx context.Context, id string, doc map[string]any) (*model.Blog, error)
	Delete(ctx context.Context, id string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type blogService struct {
	store     Store
	validator *contract.Validator
}

func New(store Store, v *contract.Validator) Service {
	return &blogService{store: store, validator: v}
}

func (s *blogService) List(ctx context.Context, title string) ([]model.Blog, error) {
	return s.store.List(ctx, repo.BlogFilter{Title: title})
}

func (s *blogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.get(ctx, oid)
}

func (s *blogService) get(ctx context.Context, oid primitive.ObjectID) (*model.Blog, error) {
	b, err := s.store.Get(ctx, oid)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return b, nil
}

func (s *blogService) Create(ctx context.Context, doc map[string]any) (*model.Blog, error) {
	if err := s.validator.Validate(contract.BlogCreate, doc); err != nil {
		return nil, err
	}
	var req CreateRequest
	if err := contract.Decode(doc, &req); err != nil {
		return nil, fmt.Errorf("decode blog: %w", err)
	}

	now := time.Now().UTC()
	b := &model.Blog{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Author:      req.Author,
		Image:       req.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return b, nil
}

// Update applies a partial document. Identifier keys in the body are ignored.
func (s *blogService) Update(ctx context.Context, id string, doc map[string]any) (*model.Blog, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	delete(doc, "_id")
	delete(doc, "id")
	if err := s.validator.Validate(contract.BlogUpdate, doc); err != nil {
		return nil, err
	}

	if _, err := s.get(ctx, oid); err != nil {
		return nil, err
	}

	fields := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range doc {
		fields[k] = v
	}
	matched, err := s.store.Update(ctx, oid, fields)
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	if matched == 0 {
		return nil, ErrUpdateFailed
	}
	return s.get(ctx, oid)
}

func (s *blogService) Delete(ctx context.Context, id string) error {
	oid, err := repo.ParseID(id)
	if err != nil {
		return ErrInvalidID
	}
	if _, err := s.get(ctx, oid); err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, oid)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if deleted == 0 {
		return ErrDeleteFailed
	}
	return nil
}
