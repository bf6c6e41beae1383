// Package listing holds the product filter selection, its URL query form and
// pagination helpers. Selection and FromValues parse list queries for the API;
// Controller mirrors the browser-side filter panel (options load, URL sync,
// refetch on every toggle) so clients and tests share one definition of it.
package listing

import (
	"context"
	"errors"
	"slices"
	"sync"
)

type State int

const (
	StateUninitialized State = iota
	StateLoadingOptions
	StateInitialized
)

func (s State) String() string {
	switch s {
	case StateLoadingOptions:
		return "loading-options"
	case StateInitialized:
		return "initialized"
	default:
		return "uninitialized"
	}
}

var (
	ErrNotInitialized     = errors.New("listing: controller is not initialized")
	ErrInvalidTransition  = errors.New("listing: invalid state transition")
	ErrAlreadyInitialized = errors.New("listing: already initialized")
)

// Options are the values offered by the filter UI.
type Options struct {
	Areas          []string `json:"areas"`
	Investors      []string `json:"investors"`
	ApartmentTypes []string `json:"apartmentTypes"`
	Projects       []string `json:"projects"`
}

// URLWriter replaces the current query string without navigating.
type URLWriter interface {
	ReplaceQuery(query string)
}

// Fetcher reloads the listing for a selection and reports the total number
// of matching items.
type Fetcher interface {
	Fetch(ctx context.Context, sel Selection) (total int, err error)
}

// Controller keeps the filter selection, the URL query string and the fetched
// listing in step. Every mutation updates the selection, rewrites the URL and
// fetches, in that order, before returning.
type Controller struct {
	mu       sync.Mutex
	state    State
	options  Options
	sel      Selection
	pageSize int

	url   URLWriter
	fetch Fetcher
}

func NewController(url URLWriter, fetch Fetcher, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = AdminPageSize
	}
	return &Controller{url: url, fetch: fetch, pageSize: pageSize, sel: Selection{Page: 1}}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.options
}

// Selection returns a copy of the current selection.
func (c *Controller) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Canonical()
}

// Load starts loading filter options; it is only valid once, from Uninitialized.
func (c *Controller) Load(opts Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateUninitialized {
		return ErrInvalidTransition
	}
	c.options = opts
	c.state = StateLoadingOptions
	return nil
}

// Init seeds the selection from the page's query string. The URL is read only
// here; afterwards the controller is the source of truth and writes it back.
func (c *Controller) Init(ctx context.Context, rawQuery string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateInitialized:
		return ErrAlreadyInitialized
	case StateUninitialized:
		return ErrInvalidTransition
	}

	sel, err := Decode(rawQuery)
	if err != nil {
		return err
	}
	c.sel = sel
	c.state = StateInitialized
	return c.syncLocked(ctx)
}

func (c *Controller) ToggleArea(ctx context.Context, area string) error {
	return c.mutate(ctx, func(s *Selection) {
		s.Areas = toggle(s.Areas, area)
		s.Page = 1
	})
}

func (c *Controller) ToggleInvestor(ctx context.Context, investor string) error {
	return c.mutate(ctx, func(s *Selection) {
		s.Investors = toggle(s.Investors, investor)
		s.Page = 1
	})
}

// SelectApartmentType picks at most one apartment type; "" clears it.
func (c *Controller) SelectApartmentType(ctx context.Context, t string) error {
	return c.mutate(ctx, func(s *Selection) {
		s.ApartmentType = t
		s.Page = 1
	})
}

// SelectProject picks at most one project; "" clears it.
func (c *Controller) SelectProject(ctx context.Context, project string) error {
	return c.mutate(ctx, func(s *Selection) {
		s.Project = project
		s.Page = 1
	})
}

func (c *Controller) SetSearch(ctx context.Context, q string) error {
	return c.mutate(ctx, func(s *Selection) {
		if s.Query != q {
			s.Page = 1
		}
		s.Query = q
	})
}

func (c *Controller) SetPage(ctx context.Context, page int) error {
	return c.mutate(ctx, func(s *Selection) {
		s.Page = max(page, 1)
	})
}

// Clear resets every dimension; the URL ends up with no query parameters.
func (c *Controller) Clear(ctx context.Context) error {
	return c.mutate(ctx, func(s *Selection) {
		*s = Selection{Page: 1}
	})
}

func (c *Controller) mutate(ctx context.Context, fn func(*Selection)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInitialized {
		return ErrNotInitialized
	}
	fn(&c.sel)
	return c.syncLocked(ctx)
}

// syncLocked writes the URL and fetches. If the fetch shows the current page
// no longer exists, it falls back to page 1 and syncs again.
func (c *Controller) syncLocked(ctx context.Context) error {
	c.sel = c.sel.Canonical()
	c.url.ReplaceQuery(Encode(c.sel))

	total, err := c.fetch.Fetch(ctx, c.sel)
	if err != nil {
		return err
	}
	if c.sel.Page > 1 && c.sel.Page > PageCount(total, c.pageSize) {
		c.sel.Page = 1
		c.url.ReplaceQuery(Encode(c.sel))
		if _, err := c.fetch.Fetch(ctx, c.sel); err != nil {
			return err
		}
	}
	return nil
}

func toggle(set []string, v string) []string {
	if v == "" {
		return set
	}
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}
