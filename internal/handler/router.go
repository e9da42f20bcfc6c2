// Package handler wires the HTTP surface: login, the expenses page, the
// settings page, and the operational endpoints.
package handler

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"homebook/internal/domain"
	"homebook/internal/form"
	"homebook/internal/household"
	"homebook/internal/infra/api"
	"homebook/internal/infra/observability"
	"homebook/internal/monthtab"
	"homebook/internal/session"
	"homebook/internal/stats"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps carries everything the routes need.
type Deps struct {
	Session    *session.Store
	Auth       *api.AuthClient
	Household  *household.Provider
	Months     *monthtab.Controller
	Expenses   *form.ExpenseController
	Categories *form.CategoryController
	Members    *form.MemberController
	Metrics    *observability.Metrics
	Templates  *template.Template
	Logger     *zap.Logger
}

// NewRouter builds the full route tree.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(d.Logger))
	r.Use(observability.TracePropagation)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	r.Get("/healthz", d.handleHealthz())
	r.Get("/readyz", d.handleReadyz())
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{}))
	r.Get("/metrics/summary", d.handleMetricsSummary())

	r.Get("/login", d.handleLoginPage())
	r.Post("/login", d.handleLogin())
	r.Post("/signup", d.handleSignup())
	r.Post("/logout", d.handleLogout())

	r.Group(func(r chi.Router) {
		r.Use(RequireSession(d.Session))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/expenses", http.StatusSeeOther)
		})

		r.Get("/expenses", d.handleExpensesPage())
		r.Post("/expenses", d.handleExpenseSave())
		r.Post("/expenses/{id}", d.handleExpenseSave())
		r.Post("/expenses/{id}/edit", d.handleExpenseEdit())
		r.Post("/expenses/cancel", d.handleExpenseCancel())
		r.Post("/expenses/{id}/delete", d.handleExpenseDelete())

		r.Get("/settings", d.handleSettingsPage())
		r.Post("/settings/close", d.handleSettingsClose())

		r.Post("/settings/categories", d.handleCategorySave())
		r.Post("/settings/categories/{id}", d.handleCategorySave())
		r.Post("/settings/categories/{id}/edit", d.handleCategoryEdit())
		r.Post("/settings/categories/cancel", d.handleCategoryCancel())
		r.Post("/settings/categories/{id}/delete", d.handleCategoryDelete())
		r.Post("/settings/categories/{id}/toggle", d.handleCategoryToggle())

		r.Post("/settings/members", d.handleMemberSave())
		r.Post("/settings/members/{id}", d.handleMemberSave())
		r.Post("/settings/members/{id}/edit", d.handleMemberEdit())
		r.Post("/settings/members/cancel", d.handleMemberCancel())
	})

	return r
}

func (d Deps) handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (d Deps) handleReadyz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Household.State() == household.StateError {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (d Deps) handleMetricsSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Metrics.GetSnapshot())
	}
}

type loginPageData struct {
	Error string
}

func (d Deps) handleLoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Session.IsAuthenticated() {
			http.Redirect(w, r, "/expenses", http.StatusSeeOther)
			return
		}
		d.render(w, "login.html", loginPageData{Error: r.URL.Query().Get("error")})
	}
}

func (d Deps) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		err := d.Auth.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
		if err != nil {
			d.Logger.Warn("login failed", zap.Error(err))
			d.Metrics.IncrRequest("error")
			http.Redirect(w, r, "/login?error="+template.URLQueryEscaper(err.Error()), http.StatusSeeOther)
			return
		}
		d.Metrics.IncrRequest("success")
		go d.loadInitialData()
		http.Redirect(w, r, "/expenses", http.StatusSeeOther)
	}
}

func (d Deps) handleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		err := d.Auth.Signup(r.Context(),
			r.PostFormValue("name"),
			r.PostFormValue("email"),
			r.PostFormValue("password"))
		if err != nil {
			d.Logger.Warn("signup failed", zap.Error(err))
			d.Metrics.IncrRequest("error")
			http.Redirect(w, r, "/login?error="+template.URLQueryEscaper(err.Error()), http.StatusSeeOther)
			return
		}
		d.Metrics.IncrRequest("success")
		go d.loadInitialData()
		http.Redirect(w, r, "/expenses", http.StatusSeeOther)
	}
}

func (d Deps) handleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Auth.Logout()
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// loadInitialData warms the household aggregate right after sign-in so
// the expenses page has selectable categories and payers on first paint.
func (d Deps) loadInitialData() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := d.Household.Load(ctx); err != nil {
		d.Logger.Warn("initial household load failed", zap.Error(err))
	}
}

type expensesPageData struct {
	Household *domain.Household
	Months    []monthtab.Month
	Active    string
	Expenses  []domain.Expense
	Summary   stats.MonthSummary
	Draft     domain.ExpenseForm
	EditingID int64
	Busy      bool
	Error     string
}

func (d Deps) handleExpensesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		pageErr := r.URL.Query().Get("error")

		if d.Household.Data() == nil {
			if err := d.Household.Load(ctx); err != nil {
				if d.redirectIfUnauthorized(w, r, err) {
					return
				}
				pageErr = err.Error()
			}
		}

		var err error
		if key := r.URL.Query().Get("month"); key != "" && key != d.Months.Active() {
			err = d.Expenses.SetMonth(ctx, key)
		} else {
			err = d.Expenses.Reload(ctx)
		}
		if err != nil {
			if d.redirectIfUnauthorized(w, r, err) {
				return
			}
			d.Logger.Warn("expense reload failed", zap.Error(err))
			if pageErr == "" {
				pageErr = err.Error()
			}
		}

		list := d.Expenses.Expenses()
		d.render(w, "expenses.html", expensesPageData{
			Household: d.Household.Data(),
			Months:    d.Months.Window(),
			Active:    d.Months.Active(),
			Expenses:  list,
			Summary:   stats.Summarize(list),
			Draft:     d.Expenses.Draft(),
			EditingID: d.Expenses.EditingID(),
			Busy:      d.Expenses.Busy(),
			Error:     pageErr,
		})
	}
}

func (d Deps) redirectIfUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	var unauthorized *domain.ErrUnauthorized
	if errors.As(err, &unauthorized) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return true
	}
	return false
}

func (d Deps) handleExpenseSave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		draft := domain.ExpenseForm{
			PayDate:     r.PostFormValue("pay_date"),
			CategoryID:  parseID(r.PostFormValue("category_id")),
			PayerID:     parseID(r.PostFormValue("payer_id")),
			Amount:      r.PostFormValue("amount"),
			Description: r.PostFormValue("description"),
			Remark:      r.PostFormValue("remark"),
		}
		if id := chi.URLParam(r, "id"); id != "" {
			draft.ID = parseID(id)
		}
		d.Expenses.SetDraft(draft)
		d.redirectAfterAction(w, r, d.Expenses.Submit(r.Context()), "/expenses")
	}
}

func (d Deps) handleExpenseEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.redirectAfterAction(w, r, d.Expenses.StartEdit(parseID(chi.URLParam(r, "id"))), "/expenses")
	}
}

func (d Deps) handleExpenseCancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Expenses.CancelEdit()
		http.Redirect(w, r, "/expenses", http.StatusSeeOther)
	}
}

func (d Deps) handleExpenseDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.redirectAfterAction(w, r, d.Expenses.Delete(r.Context(), parseID(chi.URLParam(r, "id"))), "/expenses")
	}
}

type settingsPageData struct {
	Categories        []form.SelectableCategory
	CategoryDraft     domain.CategoryForm
	CategoryEditingID int64
	Members           []domain.Person
	MemberDraft       domain.PersonForm
	MemberEditingID   int64
	Error             string
}

func (d Deps) handleSettingsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		pageErr := r.URL.Query().Get("error")

		if err := d.Categories.Reload(ctx); err != nil {
			if d.redirectIfUnauthorized(w, r, err) {
				return
			}
			pageErr = err.Error()
		}
		if err := d.Members.Reload(ctx); err != nil {
			if d.redirectIfUnauthorized(w, r, err) {
				return
			}
			if pageErr == "" {
				pageErr = err.Error()
			}
		}

		d.render(w, "settings.html", settingsPageData{
			Categories:        d.Categories.Categories(),
			CategoryDraft:     d.Categories.Draft(),
			CategoryEditingID: d.Categories.EditingID(),
			Members:           d.Members.Members(),
			MemberDraft:       d.Members.Draft(),
			MemberEditingID:   d.Members.EditingID(),
			Error:             pageErr,
		})
	}
}

// handleSettingsClose refreshes the shared household aggregate so the
// expenses page picks up category and member changes, then leaves the
// settings page.
func (d Deps) handleSettingsClose() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Household.Refresh(r.Context()); err != nil {
			if d.redirectIfUnauthorized(w, r, err) {
				return
			}
			d.Logger.Warn("household refresh failed", zap.Error(err))
		}
		http.Redirect(w, r, "/expenses", http.StatusSeeOther)
	}
}

func (d Deps) handleCategorySave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		d.Categories.SetDraftName(r.PostFormValue("name"))
		d.redirectAfterAction(w, r, d.Categories.Submit(r.Context()), "/settings")
	}
}

func (d Deps) handleCategoryEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.redirectAfterAction(w, r, d.Categories.StartEdit(parseID(chi.URLParam(r, "id"))), "/settings")
	}
}

func (d Deps) handleCategoryCancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Categories.CancelEdit()
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
	}
}

func (d Deps) handleCategoryDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.redirectAfterAction(w, r, d.Categories.Delete(r.Context(), parseID(chi.URLParam(r, "id"))), "/settings")
	}
}

func (d Deps) handleCategoryToggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		enabled := r.PostFormValue("enabled") == "true"
		d.redirectAfterAction(w, r, d.Categories.Toggle(r.Context(), parseID(chi.URLParam(r, "id")), enabled), "/settings")
	}
}

func (d Deps) handleMemberSave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		draft := domain.PersonForm{
			Name:     r.PostFormValue("name"),
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		}
		if id := parseID(chi.URLParam(r, "id")); id != 0 {
			draft.ID = &id
		}
		d.Members.SetDraft(draft)
		d.redirectAfterAction(w, r, d.Members.Submit(r.Context()), "/settings")
	}
}

func (d Deps) handleMemberEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.redirectAfterAction(w, r, d.Members.StartEdit(parseID(chi.URLParam(r, "id"))), "/settings")
	}
}

func (d Deps) handleMemberCancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Members.CancelEdit()
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
	}
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
