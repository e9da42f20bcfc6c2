package form_test

import (
	"testing"

	"homebook/internal/domain"
	"homebook/internal/form"
)

func TestValidateExpensePriorityOrder(t *testing.T) {
	tests := []struct {
		name  string
		draft domain.ExpenseForm
		want  string
	}{
		{
			name:  "all empty reports pay date first",
			draft: domain.ExpenseForm{},
			want:  "Pay Date is required",
		},
		{
			name:  "category next",
			draft: domain.ExpenseForm{PayDate: "2026-03-01"},
			want:  "Category is required",
		},
		{
			name:  "payer next",
			draft: domain.ExpenseForm{PayDate: "2026-03-01", CategoryID: 1},
			want:  "Payer is required",
		},
		{
			name:  "description next",
			draft: domain.ExpenseForm{PayDate: "2026-03-01", CategoryID: 1, PayerID: 2},
			want:  "Description is required",
		},
		{
			name:  "whitespace description still missing",
			draft: domain.ExpenseForm{PayDate: "2026-03-01", CategoryID: 1, PayerID: 2, Description: "   "},
			want:  "Description is required",
		},
		{
			name:  "amount last",
			draft: domain.ExpenseForm{PayDate: "2026-03-01", CategoryID: 1, PayerID: 2, Description: "Groceries"},
			want:  "Amount must be a positive number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := form.ValidateExpense(tt.draft)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestValidateExpenseOK(t *testing.T) {
	draft := domain.ExpenseForm{
		PayDate:     "2026-03-01",
		CategoryID:  1,
		PayerID:     2,
		Description: "Groceries",
		Amount:      "42.50",
	}
	if err := form.ValidateExpense(draft); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12.50", 12.50, false},
		{"12,50", 12.50, false},
		{" 7 ", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := form.ParseAmount(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q): expected error, got nil", tt.in)
			} else if err.Error() != "Amount must be a positive number" {
				t.Errorf("ParseAmount(%q): expected amount message, got %q", tt.in, err.Error())
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q): expected no error, got %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAmount(%q): expected %v, got %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	if err := form.ValidateCategory("  "); err == nil {
		t.Error("expected error for blank name")
	}
	if err := form.ValidateCategory("Groceries"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidatePersonRequiresPassword(t *testing.T) {
	err := form.ValidatePerson(domain.PersonForm{Name: "Ann", Email: "ann@example.com"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "Member password is required" {
		t.Errorf("expected password message, got %q", err.Error())
	}

	ok := domain.PersonForm{Name: "Ann", Email: "ann@example.com", Password: "secret"}
	if err := form.ValidatePerson(ok); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
