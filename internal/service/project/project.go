package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyenanhtu/realty_backend/internal/contract"
	"github.com/nguyenanhtu/realty_backend/internal/model"
	"github.com/nguyenanhtu/realty_backend/internal/repo"
)

type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Slug        string `json:"slug"`
}

type Store interface {
	List(ctx context.Context, f repo.ProjectFilter) ([]model.Project, error)
	Create(ctx context.Context, p *model.Project) error
}

type Service interface {
	List(ctx context.Context, f repo.ProjectFilter) ([]model.Project, error)
	Create(ctx context.Context, doc map[string]any) (*model.Project, error)
}

type projectService struct {
	store     Store
	validator *contract.Validator
}

func New(store Store, v *contract.Validator) Service {
	return &projectService{store: store, validator: v}
}

func (s *projectService) List(ctx context.Context, f repo.ProjectFilter) ([]model.Project, error) {
	return s.store.List(ctx, f)
}

// Create derives the slug from the name when none is given. A taken slug is
// reported, not suffixed: project slugs are chosen by the editor.
func (s *projectService) Create(ctx context.Context, doc map[string]any) (*model.Project, error) {
	if err := s.validator.Validate(contract.ProjectCreate, doc); err != nil {
		return nil, err
	}
	var req CreateRequest
	if err := contract.Decode(doc, &req); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	if req.Slug == "" {
		req.Slug = model.Slugify(req.Name)
	}
	if req.Slug == "" {
		return nil, &contract.ValidationError{Field: "name", Message: "name must contain letters or digits"}
	}

	now := time.Now().UTC()
	p := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Slug:        req.Slug,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.store.Create(ctx, p)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}
