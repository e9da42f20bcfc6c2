package form

import (
	"context"
	"sync"

	"homebook/internal/domain"
	"homebook/internal/port"

	"go.uber.org/zap"
)

// SelectableCategory is a category together with whether it is enabled
// for the household, as shown on the Settings page.
type SelectableCategory struct {
	domain.Category
	Enabled bool
}

// CategoryController manages the Settings category list: create,
// rename, delete, and per-household enable/disable. Default categories
// are read-only.
type CategoryController struct {
	categories port.CategoryService
	household  port.HouseholdFetcher
	confirm    Confirm
	logger     *zap.Logger

	mu        sync.Mutex
	list      []SelectableCategory
	draft     domain.CategoryForm
	editingID int64 // 0 = create row
	busy      bool
}

// NewCategoryController creates the controller.
func NewCategoryController(categories port.CategoryService, hh port.HouseholdFetcher, confirm Confirm, logger *zap.Logger) *CategoryController {
	return &CategoryController{
		categories: categories,
		household:  hh,
		confirm:    confirm,
		logger:     logger,
	}
}

// Reload fetches all categories and marks the ones enabled for the
// household. Replaces the list wholesale.
func (c *CategoryController) Reload(ctx context.Context) error {
	hh, err := c.household.Get(ctx)
	if err != nil {
		return err
	}
	all, err := c.categories.List(ctx)
	if err != nil {
		return err
	}

	enabled := make(map[int64]bool, len(hh.Categories))
	for _, cat := range hh.Categories {
		enabled[cat.ID] = true
	}
	list := make([]SelectableCategory, 0, len(all))
	for _, cat := range all {
		list = append(list, SelectableCategory{Category: cat, Enabled: enabled[cat.ID]})
	}

	c.mu.Lock()
	c.list = list
	c.mu.Unlock()
	return nil
}

// Categories returns the current Settings list.
func (c *CategoryController) Categories() []SelectableCategory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list
}

// Draft returns the current field values.
func (c *CategoryController) Draft() domain.CategoryForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// EditingID returns the id of the row in edit mode, 0 when idle.
func (c *CategoryController) EditingID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// Busy reports whether a call is in flight.
func (c *CategoryController) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// StartCreate resets the draft for the add row.
func (c *CategoryController) StartCreate() {
	c.mu.Lock()
	c.draft = domain.CategoryForm{}
	c.editingID = 0
	c.mu.Unlock()
}

// StartEdit loads the target category's name into the draft. Default
// categories cannot be renamed.
func (c *CategoryController) StartEdit(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cat := range c.list {
		if cat.ID == id {
			if cat.Default {
				return &domain.ErrDefaultCategory{Name: cat.Name}
			}
			catID := cat.ID
			c.draft = domain.CategoryForm{ID: &catID, Name: cat.Name}
			c.editingID = id
			return nil
		}
	}
	return &domain.ErrValidation{Message: "Category not found"}
}

// CancelEdit discards draft changes and returns to the create row.
func (c *CategoryController) CancelEdit() {
	c.StartCreate()
}

// SetDraftName records the user's current name field value.
func (c *CategoryController) SetDraftName(name string) {
	c.mu.Lock()
	c.draft.Name = name
	c.mu.Unlock()
}

func (c *CategoryController) begin(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return &domain.ErrBusy{Operation: op}
	}
	c.busy = true
	return nil
}

func (c *CategoryController) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// Submit validates the draft and creates or renames the category, then
// reloads the full list. On failure the draft stays intact.
func (c *CategoryController) Submit(ctx context.Context) error {
	c.mu.Lock()
	draft := c.draft
	c.mu.Unlock()

	if err := ValidateCategory(draft.Name); err != nil {
		return err
	}

	if err := c.begin("submit category"); err != nil {
		return err
	}
	defer c.end()

	var err error
	if draft.ID != nil {
		err = c.categories.Update(ctx, draft)
	} else {
		err = c.categories.Add(ctx, draft)
	}
	if err != nil {
		return err
	}

	if err := c.Reload(ctx); err != nil {
		return err
	}
	c.StartCreate()
	return nil
}

// Delete removes a category after explicit confirmation. Default
// categories cannot be deleted.
func (c *CategoryController) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	for _, cat := range c.list {
		if cat.ID == id && cat.Default {
			c.mu.Unlock()
			return &domain.ErrDefaultCategory{Name: cat.Name}
		}
	}
	c.mu.Unlock()

	if !c.confirm("Are you sure you want to delete this category?") {
		return nil
	}
	if err := c.begin("delete category"); err != nil {
		return err
	}
	defer c.end()

	if err := c.categories.Delete(ctx, id); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// Toggle enables or disables a category for the household. Only the
// local flag is updated on success; the Settings close action refreshes
// the shared household aggregate.
func (c *CategoryController) Toggle(ctx context.Context, id int64, enabled bool) error {
	if err := c.begin("toggle category"); err != nil {
		return err
	}
	defer c.end()

	var err error
	if enabled {
		err = c.household.EnableCategory(ctx, id)
	} else {
		err = c.household.DisableCategory(ctx, id)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.list {
		if c.list[i].ID == id {
			c.list[i].Enabled = enabled
		}
	}
	c.mu.Unlock()
	return nil
}
