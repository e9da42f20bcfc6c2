// Package domain holds the entities exchanged with the expense API and
// the error types shared across the application.
package domain

// Ref is an identifier-only reference to another resource, used where
// the API expects `{"id": N}` instead of the full object.
type Ref struct {
	ID int64 `json:"id"`
}

// Category of spending. Default categories are provided by the server
// and cannot be renamed or deleted.
type Category struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// CategoryForm is the create/update payload for a category.
// A nil ID means create.
type CategoryForm struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

// Person is a household member. The password is write-only: the API
// never returns it, and editing a member requires entering a new one.
type Person struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PersonForm is the create/update payload for a member.
type PersonForm struct {
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Household is the aggregate owning categories and members. It is the
// single source of truth for every option list in the forms.
type Household struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
	Members    []Person   `json:"members"`
}

// Expense as returned by the API. PayDate is a calendar date in
// YYYY-MM-DD form, no time component.
type Expense struct {
	ID          int64    `json:"id"`
	PayDate     string   `json:"payDate"`
	Category    Category `json:"category"`
	Payer       Person   `json:"payer"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description"`
	Remark      string   `json:"remark,omitempty"`
}

// ExpenseForm is the mutable draft used for create and edit. Category
// and payer are identifier-only (zero means not chosen), and the amount
// stays a string until validation parses it. ID zero means create.
type ExpenseForm struct {
	ID          int64
	PayDate     string
	CategoryID  int64
	PayerID     int64
	Amount      string
	Description string
	Remark      string
}

// ExpensePayload is the wire shape for POST/PUT /expenses.
type ExpensePayload struct {
	PayDate     string  `json:"payDate"`
	Category    Ref     `json:"category"`
	Payer       Ref     `json:"payer"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Remark      string  `json:"remark"`
}

// Credentials for POST /authenticate.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest for POST /signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by both authentication endpoints.
type TokenResponse struct {
	Token string `json:"token"`
}
