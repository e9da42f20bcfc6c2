// Package web embeds the server-rendered page templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded pages with the shared helper funcs.
func Templates() (*template.Template, error) {
	funcs := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
