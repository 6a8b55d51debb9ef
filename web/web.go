// Package web holds the embedded HTML shell served to browsers. The pages are
// thin: all data comes from the JSON API after load.
package web

import (
	"embed"
	"html/template"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticHandler serves one embedded asset, such as the PWA manifest or the
// service worker, at a fixed path. The asset list is known at build time, so
// a missing name is a 404 rather than a panic.
func StaticHandler(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		b, err := staticFS.ReadFile("static/" + name)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "asset not found")
		}
		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType == "" {
			contentType = echo.MIMEOctetStream
		}
		return c.Blob(http.StatusOK, contentType, b)
	}
}

type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates. It panics on a parse error since
// a broken embed is a build defect, not a runtime condition.
func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
