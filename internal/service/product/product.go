package product

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

// slug attempts after the bare slug: name, name-2 ... name-6
const slugAttempts = 6

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	Name          string   `json:"name"`
	Area          string   `json:"area"`
	Investor      string   `json:"investor"`
	Type          string   `json:"type"`
	ApartmentType string   `json:"apartmentType"`
	Acreage       string   `json:"acreage"`
	DefaultImage  string   `json:"defaultImage"`
	ListImages    []string `json:"listImages"`
	Detail        string   `json:"detail"`
}

// Options are the distinct values used to build the listing filters.
type Options struct {
	Areas          []string `json:"areas"`
	Investors      []string `json:"investors"`
	ApartmentTypes []string `json:"apartmentTypes"`
	Projects       []string `json:"projects"`
}

type Store interface {
	List(ctx context.Context, f repo.ProductFilter) ([]model.ProductSummary, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Distinct(ctx context.Context, field string) ([]string, error)
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, f repo.ProductFilter) ([]model.ProductSummary, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	Create(ctx context.Context, doc map[string]any) (*model.Product, error)
	Update(ctx context.Context, id string, doc map[string]any) (*model.Product, error)
	Delete(ctx context.Context, id string) error

	Areas(ctx context.Context) ([]string, error)
	Investors(ctx context.Context) ([]string, error)
	ApartmentTypes(ctx context.Context) ([]string, error)
	Projects(ctx context.Context) ([]string, error)
	Options(ctx context.Context) (*Options, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type productService struct {
	store     Store
	validator *contract.Validator
}

func New(store Store, v *contract.Validator) Service {
	return &productService{store: store, validator: v}
}

func (s *productService) List(ctx context.Context, f repo.ProductFilter) ([]model.ProductSummary, error) {
	if t, ok := model.ParseProductType(f.Type); ok {
		f.Type = string(t)
	}
	return s.store.List(ctx, f)
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.get(ctx, oid)
}

func (s *productService) get(ctx context.Context, oid primitive.ObjectID) (*model.Product, error) {
	p, err := s.store.Get(ctx, oid)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	p, err := s.store.GetBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return p, nil
}

func (s *productService) Create(ctx context.Context, doc map[string]any) (*model.Product, error) {
	if err := s.validator.Validate(contract.ProductCreate, doc); err != nil {
		return nil, err
	}
	var req CreateRequest
	if err := contract.Decode(doc, &req); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	// the schema enum only admits parseable labels
	typ, _ := model.ParseProductType(req.Type)

	now := time.Now().UTC()
	p := &model.Product{
		Name:          req.Name,
		Area:          req.Area,
		Investor:      req.Investor,
		Type:          typ,
		ApartmentType: req.ApartmentType,
		Acreage:       req.Acreage,
		DefaultImage:  req.DefaultImage,
		ListImages:    req.ListImages,
		Detail:        req.Detail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	base := model.Slugify(req.Name)
	if base == "" {
		base = "product"
	}
	for i := 1; i <= slugAttempts; i++ {
		p.Slug = base
		if i > 1 {
			p.Slug = fmt.Sprintf("%s-%d", base, i)
		}
		err := s.store.Create(ctx, p)
		if errors.Is(err, repo.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create product: %w", err)
		}
		return p, nil
	}
	return nil, ErrSlugTaken
}

// Update applies a partial document. The slug is kept stable across renames
// so published links keep working.
func (s *productService) Update(ctx context.Context, id string, doc map[string]any) (*model.Product, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	delete(doc, "_id")
	delete(doc, "id")
	if err := s.validator.Validate(contract.ProductUpdate, doc); err != nil {
		return nil, err
	}

	if _, err := s.get(ctx, oid); err != nil {
		return nil, err
	}

	fields := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range doc {
		fields[k] = v
	}
	if raw, ok := doc["type"].(string); ok {
		t, _ := model.ParseProductType(raw)
		fields["type"] = string(t)
	}

	matched, err := s.store.Update(ctx, oid, fields)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if matched == 0 {
		return nil, ErrUpdateFailed
	}
	return s.get(ctx, oid)
}

func (s *productService) Delete(ctx context.Context, id string) error {
	oid, err := repo.ParseID(id)
	if err != nil {
		return ErrInvalidID
	}
	if _, err := s.get(ctx, oid); err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, oid)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if deleted == 0 {
		return ErrDeleteFailed
	}
	return nil
}

func (s *productService) Areas(ctx context.Context) ([]string, error) {
	return s.store.Distinct(ctx, "area")
}

func (s *productService) Investors(ctx context.Context) ([]string, error) {
	return s.store.Distinct(ctx, "investor")
}

func (s *productService) ApartmentTypes(ctx context.Context) ([]string, error) {
	return s.store.Distinct(ctx, "apartmentType")
}

// Projects lists product names; the project filter matches on name.
func (s *productService) Projects(ctx context.Context) ([]string, error) {
	return s.store.Distinct(ctx, "name")
}

func (s *productService) Options(ctx context.Context) (*Options, error) {
	var (
		o   Options
		err error
	)
	if o.Areas, err = s.Areas(ctx); err != nil {
		return nil, err
	}
	if o.Investors, err = s.Investors(ctx); err != nil {
		return nil, err
	}
	if o.ApartmentTypes, err = s.ApartmentTypes(ctx); err != nil {
		return nil, err
	}
	if o.Projects, err = s.Projects(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}
