package router

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nguyenanhtu/realty_backend/internal/model"
	"github.com/nguyenanhtu/realty_backend/internal/repo"
	"github.com/nguyenanhtu/realty_backend/pkg/email"
)

// docs is an in-memory collection keyed by ObjectID. Partial updates go
// through a bson round trip so they behave like $set on the real store.
type docs[T any] struct {
	mu    sync.Mutex
	byID  map[primitive.ObjectID]T
	order []primitive.ObjectID
	idOf  func(*T) *primitive.ObjectID
}

func newDocs[T any](idOf func(*T) *primitive.ObjectID) *docs[T] {
	return &docs[T]{byID: map[primitive.ObjectID]T{}, idOf: idOf}
}

func (d *docs[T]) insert(v *T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := primitive.NewObjectID()
	*d.idOf(v) = id
	d.byID[id] = *v
	d.order = append(d.order, id)
}

func (d *docs[T]) get(id primitive.ObjectID) (*T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &v, nil
}

func (d *docs[T]) set(id primitive.ObjectID, fields bson.M) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.byID[id]
	if !ok {
		return 0, nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return 0, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return 0, err
	}
	for k, val := range fields {
		m[k] = val
	}
	if raw, err = bson.Marshal(m); err != nil {
		return 0, err
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		return 0, err
	}
	d.byID[id] = out
	return 1, nil
}

func (d *docs[T]) remove(id primitive.ObjectID) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byID[id]; !ok {
		return 0
	}
	delete(d.byID, id)
	d.order = slices.DeleteFunc(d.order, func(o primitive.ObjectID) bool { return o == id })
	return 1
}

// all returns newest first.
func (d *docs[T]) all() []T {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]T, 0, len(d.order))
	for i := len(d.order) - 1; i >= 0; i-- {
		out = append(out, d.byID[d.order[i]])
	}
	return out
}

// ---------------------------------------------------------------------------

type memBlogs struct{ *docs[model.Blog] }

func newMemBlogs() *memBlogs {
	return &memBlogs{newDocs(func(b *model.Blog) *primitive.ObjectID { return &b.ID })}
}

func (m *memBlogs) List(_ context.Context, f repo.BlogFilter) ([]model.Blog, error) {
	out := []model.Blog{}
	for _, b := range m.all() {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(f.Title)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBlogs) Get(_ context.Context, id primitive.ObjectID) (*model.Blog, error) {
	return m.get(id)
}

func (m *memBlogs) Create(_ context.Context, b *model.Blog) error {
	m.insert(b)
	return nil
}

func (m *memBlogs) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	return m.set(id, fields)
}

func (m *memBlogs) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	return m.remove(id), nil
}

// ---------------------------------------------------------------------------

type memProducts struct{ *docs[model.Product] }

func newMemProducts() *memProducts {
	return &memProducts{newDocs(func(p *model.Product) *primitive.ObjectID { return &p.ID })}
}

func matchAny(values []string, v string) bool {
	return len(values) == 0 || slices.Contains(values, v)
}

func (m *memProducts) List(_ context.Context, f repo.ProductFilter) ([]model.ProductSummary, error) {
	out := []model.ProductSummary{}
	for _, p := range m.all() {
		if f.Type != "" && string(p.Type) != f.Type {
			continue
		}
		if !matchAny(f.Areas, p.Area) || !matchAny(f.Investors, p.Investor) {
			continue
		}
		if f.ApartmentType != "" && p.ApartmentType != f.ApartmentType {
			continue
		}
		if f.Project != "" && p.Name != f.Project {
			continue
		}
		out = append(out, model.ProductSummary{
			ID: p.ID, Name: p.Name, Area: p.Area, Investor: p.Investor,
			DefaultImage: p.DefaultImage, Slug: p.Slug, ApartmentType: p.ApartmentType,
		})
	}
	return out, nil
}

func (m *memProducts) Get(_ context.Context, id primitive.ObjectID) (*model.Product, error) {
	return m.get(id)
}

func (m *memProducts) GetBySlug(_ context.Context, slug string) (*model.Product, error) {
	for _, p := range m.all() {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memProducts) Create(ctx context.Context, p *model.Product) error {
	if _, err := m.GetBySlug(ctx, p.Slug); err == nil {
		return repo.ErrDuplicate
	}
	m.insert(p)
	return nil
}

func (m *memProducts) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	return m.set(id, fields)
}

func (m *memProducts) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	return m.remove(id), nil
}

func (m *memProducts) Distinct(_ context.Context, field string) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range m.all() {
		var v string
		switch field {
		case "area":
			v = p.Area
		case "investor":
			v = p.Investor
		case "apartmentType":
			v = p.ApartmentType
		case "name":
			v = p.Name
		}
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out, nil
}

// ---------------------------------------------------------------------------

type memContacts struct{ *docs[model.Contact] }

func newMemContacts() *memContacts {
	return &memContacts{newDocs(func(c *model.Contact) *primitive.ObjectID { return &c.ID })}
}

func (m *memContacts) List(context.Context) ([]model.Contact, error) { return m.all(), nil }

func (m *memContacts) Get(_ context.Context, id primitive.ObjectID) (*model.Contact, error) {
	return m.get(id)
}

func (m *memContacts) Create(_ context.Context, c *model.Contact) error {
	m.insert(c)
	return nil
}

// ---------------------------------------------------------------------------

type memProjects struct{ *docs[model.Project] }

func newMemProjects() *memProjects {
	return &memProjects{newDocs(func(p *model.Project) *primitive.ObjectID { return &p.ID })}
}

func (m *memProjects) List(_ context.Context, f repo.ProjectFilter) ([]model.Project, error) {
	out := []model.Project{}
	for _, p := range m.all() {
		if (f.Category == "" || p.Category == f.Category) && (f.Type == "" || p.Type == f.Type) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProjects) Create(_ context.Context, p *model.Project) error {
	for _, existing := range m.all() {
		if existing.Slug == p.Slug {
			return repo.ErrDuplicate
		}
	}
	m.insert(p)
	return nil
}

// ---------------------------------------------------------------------------

type memAdmins struct {
	mu    sync.Mutex
	admin *model.Admin
}

func (m *memAdmins) Get(context.Context) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.admin == nil {
		return nil, repo.ErrNotFound
	}
	cp := *m.admin
	return &cp, nil
}

func (m *memAdmins) Save(_ context.Context, a *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.admin = &cp
	return nil
}

func (m *memAdmins) SetPasswordHash(_ context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admin.PasswordHash = hash
	return nil
}

// ---------------------------------------------------------------------------

type outbox struct {
	mu   sync.Mutex
	sent []email.Message
	fail error
}

func (o *outbox) Send(_ context.Context, m email.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail != nil {
		return o.fail
	}
	o.sent = append(o.sent, m)
	return nil
}

func (o *outbox) failWith(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fail = err
}

func (o *outbox) Enabled() bool      { return true }
func (o *outbox) NotifyTo() []string { return []string{"sales@example.com"} }

func (o *outbox) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.sent)
}
