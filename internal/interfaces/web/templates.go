package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/example/farmhouse/internal/domain/booking"
)

//go:embed templates/*.html
var templatesFS embed.FS

func ParseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"fmtDate": func(t time.Time) string { return t.Format("Jan 2, 2006") },
		"isoDate": booking.FormatDate,
	}
	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}
