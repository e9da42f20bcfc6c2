package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"homebook/internal/form"
	"homebook/internal/handler"
	"homebook/internal/household"
	"homebook/internal/infra/api"
	"homebook/internal/infra/observability"
	"homebook/internal/monthtab"
	"homebook/internal/session"
	"homebook/web"

	"go.uber.org/zap"
)

// newTestRouter wires the full stack against a fake upstream API.
func newTestRouter(t *testing.T, upstream http.Handler) (http.Handler, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	sess := session.NewStore("")
	metrics := observability.NewMetrics()
	logger := zap.NewNop()

	apiClient := api.NewClient(srv.Client(), srv.URL, sess, metrics, logger)
	hh := household.NewProvider(api.NewHouseholdClient(apiClient), metrics, logger)
	months := monthtab.NewController(time.Now(), 6)

	templates, err := web.Templates()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}

	router := handler.NewRouter(handler.Deps{
		Session:    sess,
		Auth:       api.NewAuthClient(apiClient, sess, logger),
		Household:  hh,
		Months:     months,
		Expenses:   form.NewExpenseController(api.NewExpenseClient(apiClient), hh, months, form.AlwaysConfirm, logger),
		Categories: form.NewCategoryController(api.NewCategoryClient(apiClient), api.NewHouseholdClient(apiClient), form.AlwaysConfirm, logger),
		Members:    form.NewMemberController(api.NewPersonClient(apiClient), logger),
		Metrics:    metrics,
		Templates:  templates,
		Logger:     logger,
	})
	return router, sess
}

func fakeUpstream() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/authenticate", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"test-token"}`))
	})
	mux.HandleFunc("/household", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"name":"Smith","categories":[{"id":10,"name":"Groceries"}],"members":[{"id":20,"name":"Ann","email":"ann@example.com"}]}`))
	})
	mux.HandleFunc("/expenses", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"payDate":"2026-03-01","amount":12.5,"description":"Bread","category":{"id":10,"name":"Groceries"},"payer":{"id":20,"name":"Ann"}}]`))
	})
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":10,"name":"Groceries","default":true}]`))
	})
	mux.HandleFunc("/person", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":20,"name":"Ann","email":"ann@example.com"}]`))
	})
	return mux
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, fakeUpstream())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, fakeUpstream())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsSummary(t *testing.T) {
	router, _ := newTestRouter(t, fakeUpstream())

	req := httptest.NewRequest(http.MethodGet, "/metrics/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	router, _ := newTestRouter(t, fakeUpstream())

	for _, path := range []string{"/", "/expenses", "/settings"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("%s: expected 303, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}

func TestLoginPageRenders(t *testing.T) {
	router, _ := newTestRouter(t, fakeUpstream())

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sign in") {
		t.Error("expected sign in form in response body")
	}
}

func TestLoginStoresSessionAndRedirects(t *testing.T) {
	router, sess := newTestRouter(t, fakeUpstream())

	body := url.Values{"email": {"ann@example.com"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/expenses" {
		t.Errorf("expected redirect to /expenses, got %q", loc)
	}
	if sess.Get() != "test-token" {
		t.Errorf("expected token stored, got %q", sess.Get())
	}
}

func TestExpensesPageRenders(t *testing.T) {
	router, sess := newTestRouter(t, fakeUpstream())
	sess.Set("test-token")

	req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Bread") {
		t.Error("expected expense row in response body")
	}
	if !strings.Contains(page, "12.50") {
		t.Error("expected formatted amount in response body")
	}
}

func TestSettingsPageRenders(t *testing.T) {
	router, sess := newTestRouter(t, fakeUpstream())
	sess.Set("test-token")

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Groceries") {
		t.Error("expected category row in response body")
	}
	if !strings.Contains(page, "ann@example.com") {
		t.Error("expected member row in response body")
	}
}

func TestLogoutRedirectsToLogin(t *testing.T) {
	router, sess := newTestRouter(t, fakeUpstream())
	sess.Set("test-token")

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if sess.IsAuthenticated() {
		t.Error("expected session cleared after logout")
	}
}
