package form

import (
	"context"
	"sync"

	"homebook/internal/domain"
	"homebook/internal/port"

	"go.uber.org/zap"
)

// MemberController manages the Settings member list. Members can be
// created and edited but never deleted; the password is write-only and
// must be re-entered on every edit.
type MemberController struct {
	persons port.PersonService
	logger  *zap.Logger

	mu        sync.Mutex
	list      []domain.Person
	draft     domain.PersonForm
	editingID int64 // 0 = create row
	busy      bool
}

// NewMemberController creates the controller.
func NewMemberController(persons port.PersonService, logger *zap.Logger) *MemberController {
	return &MemberController{persons: persons, logger: logger}
}

// Reload fetches all members, replacing the list wholesale.
func (c *MemberController) Reload(ctx context.Context) error {
	list, err := c.persons.List(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.list = list
	c.mu.Unlock()
	return nil
}

// Members returns the current list.
func (c *MemberController) Members() []domain.Person {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list
}

// Draft returns the current field values. The password field is never
// prefilled from the server.
func (c *MemberController) Draft() domain.PersonForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// EditingID returns the id of the row in edit mode, 0 when idle.
func (c *MemberController) EditingID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// Busy reports whether a call is in flight.
func (c *MemberController) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// StartCreate resets the draft for the add row.
func (c *MemberController) StartCreate() {
	c.mu.Lock()
	c.draft = domain.PersonForm{}
	c.editingID = 0
	c.mu.Unlock()
}

// StartEdit loads the member's name and email into the draft with an
// empty password, which the user must replace to save.
func (c *MemberController) StartEdit(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.list {
		if p.ID == id {
			memberID := p.ID
			c.draft = domain.PersonForm{ID: &memberID, Name: p.Name, Email: p.Email}
			c.editingID = id
			return nil
		}
	}
	return &domain.ErrValidation{Message: "Member not found"}
}

// CancelEdit discards draft changes and returns to the create row.
func (c *MemberController) CancelEdit() {
	c.StartCreate()
}

// SetDraft replaces the draft with the user's current field values.
func (c *MemberController) SetDraft(f domain.PersonForm) {
	c.mu.Lock()
	c.draft = f
	if f.ID != nil {
		c.editingID = *f.ID
	}
	c.mu.Unlock()
}

func (c *MemberController) begin(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return &domain.ErrBusy{Operation: op}
	}
	c.busy = true
	return nil
}

func (c *MemberController) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// Submit validates the draft and creates or saves the member, then
// reloads the full list. On failure the draft stays intact.
func (c *MemberController) Submit(ctx context.Context) error {
	c.mu.Lock()
	draft := c.draft
	c.mu.Unlock()

	if err := ValidatePerson(draft); err != nil {
		return err
	}

	if err := c.begin("submit member"); err != nil {
		return err
	}
	defer c.end()

	var err error
	if draft.ID != nil {
		err = c.persons.Update(ctx, draft)
	} else {
		err = c.persons.Add(ctx, draft)
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
