// Package engine implements the recipe collection controller: the
// add/edit draft state machine, search query, and per-card visibility
// that sit on top of the recipe store.
package engine

import (
	"fmt"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/search"
)

// Option configures the controller.
type Option func(*Controller)

// WithQuery sets the initial search query.
func WithQuery(q string) Option {
	return func(c *Controller) {
		c.query = q
	}
}

// WithExpanded shows ingredients on every card initially.
func WithExpanded() Option {
	return func(c *Controller) {
		c.expandAll = true
	}
}

// Controller owns all view state for one catalog session. All methods
// are safe for concurrent use so async completions can re-enter it.
type Controller struct {
	store domain.RecipeStore
	log   *logger.Logger

	mu        sync.Mutex
	draft     *domain.Draft // nil when closed
	gen       domain.DraftToken
	query     string
	shown     map[string]bool
	expandAll bool
	lastErr   error // most recent image failure for the open draft
}

// New creates a controller over the given store.
func New(store domain.RecipeStore, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		log:   log,
		shown: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Collection views ─────────────────────────────────────────────

// ListVisible returns the search-filtered recipes in display order.
func (c *Controller) ListVisible() []domain.Recipe {
	c.mu.Lock()
	q := c.query
	c.mu.Unlock()
	return search.Filter(c.store.List(), q)
}

// ListAll returns every recipe regardless of the search query.
func (c *Controller) ListAll() []domain.Recipe {
	return c.store.List()
}

// Recipe returns a copy of a recipe by id.
func (c *Controller) Recipe(id string) (domain.Recipe, error) {
	return c.store.Get(id)
}

// SetSearchQuery replaces the search query.
func (c *Controller) SetSearchQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
	c.log.Debug("search query set to %q", q)
}

// SearchQuery returns the current search query.
func (c *Controller) SearchQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// DeleteRecipe removes a recipe. Returns false if no recipe had the id.
func (c *Controller) DeleteRecipe(id string) bool {
	removed := c.store.Remove(id)

	c.mu.Lock()
	delete(c.shown, id)
	c.mu.Unlock()

	if removed == 0 {
		c.log.Debug("delete: no recipe with id %s", id)
		return false
	}
	return true
}

// ToggleIngredients flips whether a card shows its ingredients. Returns
// the new state, and false as the second value if the id is unknown.
func (c *Controller) ToggleIngredients(id string) (shown bool, ok bool) {
	if _, err := c.store.Get(id); err != nil {
		return false, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	shown = !c.isShown(id)
	c.shown[id] = shown
	return shown, true
}

// IngredientsShown reports whether a card's ingredients are visible.
func (c *Controller) IngredientsShown(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isShown(id)
}

func (c *Controller) isShown(id string) bool {
	if v, ok := c.shown[id]; ok {
		return v
	}
	return c.expandAll
}

// ── Draft state machine ──────────────────────────────────────────

// Mode returns the current modal state.
func (c *Controller) Mode() domain.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return domain.ModeClosed
	}
	return c.draft.Mode
}

// Draft returns a copy of the open draft, or false when closed.
func (c *Controller) Draft() (domain.Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return domain.Draft{}, false
	}
	d := *c.draft
	d.Recipe = d.Recipe.Clone()
	return d, true
}

// StartAdd opens an empty draft for a new recipe.
func (c *Controller) StartAdd() (domain.DraftToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft != nil {
		return 0, domain.ErrDraftOpen
	}
	c.open(domain.ModeCreating, "", domain.Recipe{Ingredients: []string{}})
	c.log.Debug("draft %d: creating", c.gen)
	return c.gen, nil
}

// StartEdit opens a draft holding a copy of the recipe with the given
// id. Returns ok=false and leaves state untouched if no recipe matches.
func (c *Controller) StartEdit(id string) (token domain.DraftToken, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft != nil {
		return 0, false, domain.ErrDraftOpen
	}
	r, err := c.store.Get(id)
	if err != nil {
		c.log.Debug("edit: no recipe with id %s", id)
		return 0, false, nil
	}
	c.open(domain.ModeEditing, id, r)
	c.log.Debug("draft %d: editing %s", c.gen, id)
	return c.gen, true, nil
}

// open installs a new draft under a fresh token. Callers hold mu.
func (c *Controller) open(mode domain.Mode, originalID string, r domain.Recipe) {
	c.gen++
	c.lastErr = nil
	c.draft = &domain.Draft{
		Mode:       mode,
		OriginalID: originalID,
		Recipe:     r,
		Token:      c.gen,
	}
}

// close discards the draft and retires its token. Callers hold mu.
func (c *Controller) close() {
	c.draft = nil
	c.lastErr = nil
	c.gen++
}

// CancelEdit discards the open draft. No-op when closed.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return
	}
	c.log.Debug("draft %d: cancelled", c.draft.Token)
	c.close()
}

// CommitDraft merges the open draft into the collection and closes it.
// A new recipe gets a fresh id from the store; an edited recipe replaces
// the original in place. Returns the committed recipe.
func (c *Controller) CommitDraft() (domain.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return domain.Recipe{}, domain.ErrNoDraft
	}

	d := c.draft
	var committed domain.Recipe
	switch d.Mode {
	case domain.ModeCreating:
		committed = c.store.Add(d.Recipe)
	case domain.ModeEditing:
		committed = d.Recipe.Clone()
		committed.ID = d.OriginalID
		if !c.store.Update(d.OriginalID, d.Recipe) {
			c.log.Warn("draft %d: recipe %s vanished before commit", d.Token, d.OriginalID)
		}
	}
	c.log.Debug("draft %d: committed %s", d.Token, committed.ID)
	c.close()
	return committed, nil
}

// SetDraftField sets one draft attribute. The ingredients value is the
// single-line text form and is split on domain.IngredientSeparator.
func (c *Controller) SetDraftField(field domain.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return domain.ErrNoDraft
	}

	r := &c.draft.Recipe
	switch field {
	case domain.FieldName:
		r.Name = value
	case domain.FieldDescription:
		r.Description = value
	case domain.FieldIngredients:
		r.Ingredients = domain.SplitIngredients(value)
	case domain.FieldImage:
		r.Image = value
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	return nil
}

// SetName sets the draft name.
func (c *Controller) SetName(v string) error { return c.SetDraftField(domain.FieldName, v) }

// SetDescription sets the draft description.
func (c *Controller) SetDescription(v string) error {
	return c.SetDraftField(domain.FieldDescription, v)
}

// SetIngredients sets the draft ingredients from their text form.
func (c *Controller) SetIngredients(text string) error {
	return c.SetDraftField(domain.FieldIngredients, text)
}

// SetImage sets the draft image reference.
func (c *Controller) SetImage(v string) error { return c.SetDraftField(domain.FieldImage, v) }

// ── Async image loading ──────────────────────────────────────────

// BeginImageLoad returns the token an image encode for the open draft
// must present when it completes.
func (c *Controller) BeginImageLoad() (domain.DraftToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return 0, domain.ErrNoDraft
	}
	c.lastErr = nil
	return c.draft.Token, nil
}

// ApplyImage sets the draft image if token still identifies the open
// draft. Stale completions are dropped and report false.
func (c *Controller) ApplyImage(token domain.DraftToken, dataURL string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil || c.draft.Token != token {
		c.log.Debug("dropping stale image for draft %d", token)
		return false
	}
	c.draft.Recipe.Image = dataURL
	c.lastErr = nil
	return true
}

// ImageFailed records a failed encode for the draft identified by
// token. The draft image is left unchanged. Reports whether the failure
// belongs to the open draft.
func (c *Controller) ImageFailed(token domain.DraftToken, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil || c.draft.Token != token {
		return false
	}
	c.lastErr = err
	c.log.Warn("draft %d: image load failed: %v", token, err)
	return true
}

// ImageError returns the last image failure for the open draft.
func (c *Controller) ImageError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ── Status ───────────────────────────────────────────────────────

// ViewState returns a snapshot for the status bar.
func (c *Controller) ViewState() domain.ViewState {
	all := c.store.List()

	c.mu.Lock()
	defer c.mu.Unlock()

	vs := domain.ViewState{
		Mode:    domain.ModeClosed,
		Query:   c.query,
		Visible: len(search.Filter(all, c.query)),
		Total:   len(all),
	}
	if c.draft != nil {
		vs.Mode = c.draft.Mode
		vs.DraftName = c.draft.Recipe.Name
	}
	return vs
}
