package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"homebook/internal/domain"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// redirectAfterAction finishes a form POST: session loss goes to the
// login entry point, any other failure becomes a dismissible message on
// the originating page, success redirects clean.
func (d Deps) redirectAfterAction(w http.ResponseWriter, r *http.Request, err error, page string) {
	if err == nil {
		d.Metrics.IncrRequest("success")
		http.Redirect(w, r, page, http.StatusSeeOther)
		return
	}

	var unauthorized *domain.ErrUnauthorized
	if errors.As(err, &unauthorized) {
		d.Metrics.IncrRequest("error")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	var validation *domain.ErrValidation
	if errors.As(err, &validation) {
		d.Logger.Debug("validation error", zap.String("error", err.Error()))
	} else {
		d.Logger.Warn("action failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	d.Metrics.IncrRequest("error")
	http.Redirect(w, r, page+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
}

func (d Deps) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := d.Templates.ExecuteTemplate(w, name, data); err != nil {
		d.Logger.Error("template render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
