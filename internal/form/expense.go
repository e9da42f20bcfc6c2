package form

import (
	"context"
	"strconv"
	"sync"
	"time"

	"homebook/internal/domain"
	"homebook/internal/household"
	"homebook/internal/monthtab"
	"homebook/internal/port"

	"go.uber.org/zap"
)

// ExpenseController manages the expense list for the active month and
// the create/edit draft. Exactly one row is editable at a time; the
// in-memory list is never patched, only reloaded after a mutation.
type ExpenseController struct {
	expenses  port.ExpenseService
	household *household.Provider
	months    *monthtab.Controller
	confirm   Confirm
	logger    *zap.Logger

	mu        sync.Mutex
	list      []domain.Expense
	draft     domain.ExpenseForm
	editingID int64 // 0 = idle
	busy      bool
}

// NewExpenseController creates the controller with an empty create
// draft for the current month.
func NewExpenseController(expenses port.ExpenseService, hh *household.Provider, months *monthtab.Controller, confirm Confirm, logger *zap.Logger) *ExpenseController {
	c := &ExpenseController{
		expenses:  expenses,
		household: hh,
		months:    months,
		confirm:   confirm,
		logger:    logger,
	}
	c.StartCreate()
	return c
}

// StartCreate resets the draft to create defaults: today's pay date,
// and single-option category/payer fields auto-selected when the
// household offers exactly one choice.
func (c *ExpenseController) StartCreate() {
	draft := domain.ExpenseForm{
		PayDate: time.Now().Format("2006-01-02"),
	}
	if hh := c.household.Data(); hh != nil {
		if len(hh.Members) == 1 {
			draft.PayerID = hh.Members[0].ID
		}
		if len(hh.Categories) == 1 {
			draft.CategoryID = hh.Categories[0].ID
		}
	}
	c.mu.Lock()
	c.draft = draft
	c.editingID = 0
	c.mu.Unlock()
}

// StartEdit loads the target expense into the draft. Starting an edit
// while another row is open implicitly closes the other, discarding
// its unsaved changes.
func (c *ExpenseController) StartEdit(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.list {
		if e.ID == id {
			c.draft = domain.ExpenseForm{
				ID:          e.ID,
				PayDate:     e.PayDate,
				CategoryID:  e.Category.ID,
				PayerID:     e.Payer.ID,
				Amount:      strconv.FormatFloat(e.Amount, 'f', 2, 64),
				Description: e.Description,
				Remark:      e.Remark,
			}
			c.editingID = id
			return nil
		}
	}
	return &domain.ErrValidation{Message: "Expense not found"}
}

// CancelEdit discards draft changes and returns to idle. No network call.
func (c *ExpenseController) CancelEdit() {
	c.StartCreate()
}

// SetDraft replaces the draft with the user's current field values.
func (c *ExpenseController) SetDraft(f domain.ExpenseForm) {
	c.mu.Lock()
	c.draft = f
	if f.ID != 0 {
		c.editingID = f.ID
	}
	c.mu.Unlock()
}

// Draft returns the current field values.
func (c *ExpenseController) Draft() domain.ExpenseForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// EditingID returns the id of the row in edit mode, 0 when idle.
func (c *ExpenseController) EditingID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// Expenses returns the list for the active month, in server order.
func (c *ExpenseController) Expenses() []domain.Expense {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list
}

// Busy reports whether a call is in flight; the form is inert while so.
func (c *ExpenseController) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *ExpenseController) begin(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return &domain.ErrBusy{Operation: op}
	}
	c.busy = true
	return nil
}

func (c *ExpenseController) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// Submit validates the draft and creates or saves the expense. On
// success the active month switches to the month of the submitted pay
// date and that month's list reloads; a create also resets the draft.
// On failure the draft stays intact so the user can retry.
func (c *ExpenseController) Submit(ctx context.Context) error {
	c.mu.Lock()
	draft := c.draft
	c.mu.Unlock()

	// Validation failures block submission without any network call.
	if err := ValidateExpense(draft); err != nil {
		return err
	}
	amount, err := ParseAmount(draft.Amount)
	if err != nil {
		return err
	}

	if err := c.begin("submit expense"); err != nil {
		return err
	}
	defer c.end()

	payload := domain.ExpensePayload{
		PayDate:     draft.PayDate,
		Category:    domain.Ref{ID: draft.CategoryID},
		Payer:       domain.Ref{ID: draft.PayerID},
		Amount:      amount,
		Description: draft.Description,
		Remark:      draft.Remark,
	}

	if draft.ID != 0 {
		err = c.expenses.Update(ctx, draft.ID, payload)
	} else {
		err = c.expenses.Add(ctx, payload)
	}
	if err != nil {
		return err
	}

	// Route the expense into its owning month tab.
	if key, kerr := monthtab.KeyFromDate(draft.PayDate); kerr == nil {
		c.months.SetActive(key)
	}
	if err := c.reload(ctx); err != nil {
		return err
	}

	c.StartCreate()
	return nil
}

// Delete removes an expense after explicit confirmation. Declining
// leaves the list unchanged and issues no request. On success the list
// reloads; on failure it is left untouched.
func (c *ExpenseController) Delete(ctx context.Context, id int64) error {
	if !c.confirm("Are you sure you want to delete this expense?") {
		return nil
	}
	if err := c.begin("delete expense"); err != nil {
		return err
	}
	defer c.end()

	if err := c.expenses.Delete(ctx, id); err != nil {
		return err
	}
	return c.reload(ctx)
}

// SetMonth switches the active tab and reloads that month's expenses.
// Re-selecting the active month is an idempotent no-op.
func (c *ExpenseController) SetMonth(ctx context.Context, key string) error {
	if !c.months.SetActive(key) {
		return nil
	}
	return c.Reload(ctx)
}

// Reload fetches the active month's list, replacing it wholesale.
func (c *ExpenseController) Reload(ctx context.Context) error {
	if err := c.begin("load expenses"); err != nil {
		return err
	}
	defer c.end()
	return c.reload(ctx)
}

// reload must only run inside a begin/end window.
func (c *ExpenseController) reload(ctx context.Context) error {
	month := c.months.Active()
	list, err := c.expenses.ListByMonth(ctx, month)
	if err != nil {
		c.logger.Warn("expenses: reload failed", zap.String("month", month), zap.Error(err))
		return err
	}
	c.mu.Lock()
	c.list = list
	c.mu.Unlock()
	return nil
}
