// Package intent turns user actions into store mutations and view
// parameter changes.
//
// A Controller is one session: it owns the transient view parameters and
// talks to a shared state.Store. Mutating intents go through the store, so
// whatever is attached to the store (persistence) sees them.
package intent

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/roach88/usertable/internal/record"
	"github.com/roach88/usertable/internal/state"
	"github.com/roach88/usertable/internal/view"
)

// Controller handles the intents of one session.
//
// Thread-safety: safe for concurrent use. Two imports started together both
// land; their batches are appended in whichever order they finish.
type Controller struct {
	store  *state.Store
	ids    record.IDGenerator
	logger *slog.Logger

	mu     sync.Mutex
	params view.Params
}

// Option configures a Controller.
type Option func(*Controller)

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(g record.IDGenerator) Option {
	return func(c *Controller) {
		c.ids = g
	}
}

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithParams sets the starting view parameters.
func WithParams(p view.Params) Option {
	return func(c *Controller) {
		c.params = p
	}
}

// NewController returns a Controller over store with default view parameters.
func NewController(store *state.Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		ids:    record.RandomGenerator{},
		logger: slog.Default(),
		params: view.DefaultParams(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.params.Page < 1 {
		c.params.Page = 1
	}
	return c
}

// Store returns the underlying store.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Form is the raw input of the add-one form.
type Form struct {
	Name  string
	Age   string
	Email string
}

// AddOne validates f, assigns a fresh ID and appends the record.
// On a *ValidationError nothing is added.
func (c *Controller) AddOne(f Form) (record.Record, error) {
	if strings.TrimSpace(f.Name) == "" {
		return record.Record{}, &ValidationError{Field: "name", Message: "required"}
	}
	if strings.TrimSpace(f.Age) == "" {
		return record.Record{}, &ValidationError{Field: "age", Message: "required"}
	}
	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil {
		return record.Record{}, &ValidationError{Field: "age", Message: fmt.Sprintf("%q is not a whole number", f.Age)}
	}
	if age < 0 {
		return record.Record{}, &ValidationError{Field: "age", Message: "must not be negative"}
	}
	if strings.TrimSpace(f.Email) == "" {
		return record.Record{}, &ValidationError{Field: "email", Message: "required"}
	}

	r := record.Record{
		ID:    c.ids.Generate(),
		Name:  f.Name,
		Age:   age,
		Email: f.Email,
	}
	if !c.store.AddOne(r) {
		return record.Record{}, fmt.Errorf("add user: id %s already in use", r.ID)
	}

	c.logger.Debug("user added", "id", r.ID)
	return r, nil
}

// Delete removes the record with id. Unknown ids are ignored.
// Returns whether a record was removed.
func (c *Controller) Delete(id string) bool {
	removed := c.store.DeleteByID(id)
	c.logger.Debug("delete requested", "id", id, "removed", removed)
	return removed
}

// Params returns the current view parameters.
func (c *Controller) Params() view.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// View derives the current page from the store and the view parameters.
func (c *Controller) View() view.Page {
	return view.Derive(c.store.All(), c.Params())
}

// SetSearch changes the search term. A changed term resets the page to 1.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.params.SearchTerm == term {
		return
	}
	c.params.SearchTerm = term
	c.params.Page = 1
}

// SetSort changes the sort mode. A changed mode resets the page to 1.
func (c *Controller) SetSort(mode view.SortMode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid sort mode %q: must be one of %v", mode, view.SortModes)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.params.Sort == mode {
		return nil
	}
	c.params.Sort = mode
	c.params.Page = 1
	return nil
}

// NextPage moves forward one page. No-op on the last page.
// Returns whether the page changed.
func (c *Controller) NextPage() bool {
	total := c.View().TotalPages

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.params.Page >= total {
		return false
	}
	c.params.Page++
	return true
}

// PrevPage moves back one page. No-op on the first page.
// Returns whether the page changed.
func (c *Controller) PrevPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.params.Page <= 1 {
		return false
	}
	c.params.Page--
	return true
}

// GoToPage jumps to page n, clamped to [1, TotalPages]. With no records the
// only page is 1.
func (c *Controller) GoToPage(n int) int {
	total := max(c.View().TotalPages, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.Page = min(max(n, 1), total)
	return c.params.Page
}
