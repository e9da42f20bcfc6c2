package form_test

import (
	"context"
	"testing"

	"homebook/internal/domain"
	"homebook/internal/form"

	"go.uber.org/zap"
)

type mockPersonService struct {
	list    []domain.Person
	listErr error
	addErr  error
	updErr  error

	addCalls    int
	updateCalls int
	lastUpdate  domain.PersonForm
}

func (m *mockPersonService) List(_ context.Context) ([]domain.Person, error) {
	return m.list, m.listErr
}

func (m *mockPersonService) Add(_ context.Context, _ domain.PersonForm) error {
	m.addCalls++
	return m.addErr
}

func (m *mockPersonService) Update(_ context.Context, f domain.PersonForm) error {
	m.updateCalls++
	m.lastUpdate = f
	return m.updErr
}

func newMemberController(t *testing.T, svc *mockPersonService) *form.MemberController {
	t.Helper()
	c := form.NewMemberController(svc, zap.NewNop())
	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return c
}

func TestMemberEditNeverPrefillsPassword(t *testing.T) {
	svc := &mockPersonService{list: []domain.Person{{ID: 1, Name: "Ann", Email: "ann@example.com"}}}
	c := newMemberController(t, svc)

	if err := c.StartEdit(1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	draft := c.Draft()
	if draft.Name != "Ann" || draft.Email != "ann@example.com" {
		t.Errorf("expected name and email prefilled, got %+v", draft)
	}
	if draft.Password != "" {
		t.Error("expected password field empty on edit")
	}
}

func TestMemberEditRequiresReenteredPassword(t *testing.T) {
	svc := &mockPersonService{list: []domain.Person{{ID: 1, Name: "Ann", Email: "ann@example.com"}}}
	c := newMemberController(t, svc)

	if err := c.StartEdit(1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	err := c.Submit(context.Background())
	if err == nil {
		t.Fatal("expected validation error without a password, got nil")
	}
	if err.Error() != "Member password is required" {
		t.Errorf("expected password message, got %q", err.Error())
	}
	if svc.updateCalls != 0 {
		t.Error("expected no update call on validation failure")
	}
}

func TestMemberSubmitEdit(t *testing.T) {
	svc := &mockPersonService{list: []domain.Person{{ID: 1, Name: "Ann", Email: "ann@example.com"}}}
	c := newMemberController(t, svc)

	if err := c.StartEdit(1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	id := int64(1)
	c.SetDraft(domain.PersonForm{ID: &id, Name: "Ann Smith", Email: "ann@example.com", Password: "new-secret"})

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if svc.updateCalls != 1 {
		t.Errorf("expected one update call, got %d", svc.updateCalls)
	}
	if svc.lastUpdate.Name != "Ann Smith" || svc.lastUpdate.Password != "new-secret" {
		t.Errorf("expected updated fields sent, got %+v", svc.lastUpdate)
	}
	if c.EditingID() != 0 {
		t.Error("expected edit mode closed after save")
	}
}

func TestMemberSubmitCreate(t *testing.T) {
	svc := &mockPersonService{}
	c := newMemberController(t, svc)

	c.SetDraft(domain.PersonForm{Name: "Bob", Email: "bob@example.com", Password: "secret"})
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if svc.addCalls != 1 {
		t.Errorf("expected one add call, got %d", svc.addCalls)
	}
	if c.Draft().Name != "" {
		t.Error("expected draft reset after create")
	}
}
