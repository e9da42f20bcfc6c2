// Package form implements the create/edit lifecycle for expenses,
// categories and members: one draft, one row in edit mode at a time,
// shared validation, and a strict call-then-reload flow with no
// optimistic updates.
package form

import (
	"math"
	"strconv"
	"strings"

	"homebook/internal/domain"
)

// Validation messages, reported inline per form.
const (
	msgPayDateRequired     = "Pay Date is required"
	msgCategoryRequired    = "Category is required"
	msgPayerRequired       = "Payer is required"
	msgDescriptionRequired = "Description is required"
	msgAmountInvalid       = "Amount must be a positive number"

	msgCategoryNameRequired   = "Category name is required"
	msgMemberNameRequired     = "Member name is required"
	msgMemberEmailRequired    = "Member email is required"
	msgMemberPasswordRequired = "Member password is required"
)

// ParseAmount parses a positive decimal amount, accepting both "." and
// "," as the decimal separator.
func ParseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, &domain.ErrValidation{Message: msgAmountInvalid}
	}
	amt, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(amt) || math.IsInf(amt, 0) || amt <= 0 {
		return 0, &domain.ErrValidation{Message: msgAmountInvalid}
	}
	return amt, nil
}

// ValidateExpense checks an expense draft and returns the first
// violated rule, in fixed priority order: pay date, category, payer,
// description, amount. Nil means the draft is submittable.
func ValidateExpense(f domain.ExpenseForm) error {
	if f.PayDate == "" {
		return &domain.ErrValidation{Message: msgPayDateRequired}
	}
	if f.CategoryID == 0 {
		return &domain.ErrValidation{Message: msgCategoryRequired}
	}
	if f.PayerID == 0 {
		return &domain.ErrValidation{Message: msgPayerRequired}
	}
	if strings.TrimSpace(f.Description) == "" {
		return &domain.ErrValidation{Message: msgDescriptionRequired}
	}
	if _, err := ParseAmount(f.Amount); err != nil {
		return err
	}
	return nil
}

// ValidateCategory checks a category draft: name non-empty.
func ValidateCategory(name string) error {
	if strings.TrimSpace(name) == "" {
		return &domain.ErrValidation{Message: msgCategoryNameRequired}
	}
	return nil
}

// ValidatePerson checks a member draft. The password is required on
// create and on edit — an edit always carries a replacement password.
func ValidatePerson(f domain.PersonForm) error {
	if strings.TrimSpace(f.Name) == "" {
		return &domain.ErrValidation{Message: msgMemberNameRequired}
	}
	if strings.TrimSpace(f.Email) == "" {
		return &domain.ErrValidation{Message: msgMemberEmailRequired}
	}
	if strings.TrimSpace(f.Password) == "" {
		return &domain.ErrValidation{Message: msgMemberPasswordRequired}
	}
	return nil
}

// Confirm asks the user to approve a destructive operation before any
// request is sent. The view layer supplies the real dialog; tests
// substitute a canned answer.
type Confirm func(prompt string) bool

// AlwaysConfirm is used when the surrounding view has already asked.
func AlwaysConfirm(string) bool { return true }
