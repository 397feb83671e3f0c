package handlers

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// LoadTemplates parses the embedded page templates.
func LoadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}
