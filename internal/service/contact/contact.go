package contact

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nguyenanhtu/realty_backend/internal/contract"
	"github.com/nguyenanhtu/realty_backend/internal/listing"
	"github.com/nguyenanhtu/realty_backend/internal/model"
	"github.com/nguyenanhtu/realty_backend/internal/repo"
	"github.com/nguyenanhtu/realty_backend/pkg/email"
	"github.com/nguyenanhtu/realty_backend/pkg/util/phone"
)

// ExportHeader is the first row of the CSV export.
var ExportHeader = []string{"id", "name", "email", "phone", "project", "message", "createdAt"}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Project string `json:"project"`
	Message string `json:"message"`
}

type Store interface {
	List(ctx context.Context) ([]model.Contact, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Contact, error)
	Create(ctx context.Context, c *model.Contact) error
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// Submit stores the contact, then notifies the site owner. A notification
	// failure returns the stored contact together with ErrNotifyFailed.
	Submit(ctx context.Context, doc map[string]any, locale string) (*model.Contact, error)
	List(ctx context.Context, q string) ([]model.Contact, error)
	Get(ctx context.Context, id string) (*model.Contact, error)
	Export(ctx context.Context, w io.Writer) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type Deps struct {
	Store      Store
	Validator  *contract.Validator
	Mailer     email.Sender
	Translator email.Translator
	Log        *slog.Logger
	Events     Recorder

	// PhoneRegion is the region assumed for numbers without a country code.
	PhoneRegion string
}

// Recorder is implemented by *observability.Events.
type Recorder interface {
	ContactSubmitted(ctx context.Context, notified bool)
}

type nopRecorder struct{}

func (nopRecorder) ContactSubmitted(context.Context, bool) {}

// keyLabels renders catalog keys as-is when no translator is wired.
type keyLabels struct{}

func (keyLabels) T(_, key string, _ ...any) string { return key }

type contactService struct {
	Deps
}

func New(d Deps) Service {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Events == nil {
		d.Events = nopRecorder{}
	}
	if d.Translator == nil {
		d.Translator = keyLabels{}
	}
	return &contactService{Deps: d}
}

func (s *contactService) Submit(ctx context.Context, doc map[string]any, locale string) (*model.Contact, error) {
	if err := s.Validator.Validate(contract.ContactCreate, doc); err != nil {
		return nil, err
	}
	var req CreateRequest
	if err := contract.Decode(doc, &req); err != nil {
		return nil, fmt.Errorf("decode contact: %w", err)
	}
	if _, err := phone.Normalize(req.Phone, s.PhoneRegion); err != nil {
		return nil, ErrInvalidPhone
	}

	c := &model.Contact{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Project:   req.Project,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	err := s.notify(ctx, c, locale)
	s.Events.ContactSubmitted(ctx, err == nil)
	if err != nil {
		s.Log.ErrorContext(ctx, "contact notification failed",
			slog.String("contact_id", c.ID.Hex()),
			slog.Any("error", err),
		)
		return c, ErrNotifyFailed
	}
	return c, nil
}

func (s *contactService) notify(ctx context.Context, c *model.Contact, locale string) error {
	if s.Mailer == nil || !s.Mailer.Enabled() {
		return nil
	}
	msg := email.BuildContactNotification(s.Translator, locale, s.Mailer.NotifyTo(), email.ContactNotification{
		ID:         c.ID.Hex(),
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Project:    c.Project,
		Message:    c.Message,
		ReceivedAt: c.CreatedAt,
	})
	return s.Mailer.Send(ctx, msg)
}

// List returns contacts newest first, narrowed by a case-insensitive search
// over name, email, phone and project.
func (s *contactService) List(ctx context.Context, q string) ([]model.Contact, error) {
	all, err := s.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return listing.Filter(all, q, SearchFields), nil
}

func SearchFields(c model.Contact) []string {
	return []string{c.Name, c.Email, c.Phone, c.Project}
}

func (s *contactService) Get(ctx context.Context, id string) (*model.Contact, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	c, err := s.Store.Get(ctx, oid)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (s *contactService) Export(ctx context.Context, w io.Writer) error {
	all, err := s.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, c := range all {
		row := []string{c.ID.Hex(), c.Name, c.Email, c.Phone, c.Project, c.Message, c.CreatedAt.Format(time.RFC3339)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
