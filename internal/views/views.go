// Package views holds the embedded HTML templates and the engine that
// renders them.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"postboard/internal/models"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templatesFS embed.FS

// Layout wraps every page.
const Layout = "layouts/base"

// NewEngine returns a template engine over the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(fmt.Sprintf("views: %v", err))
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(Funcs())
	return engine
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"postURL": PostURL,
		"editURL": EditURL,
		"formatDate": func(t time.Time) string {
			return t.Format("2 January 2006 15:04")
		},
		"excerpt": func(p *models.Post, n int) string {
			return p.Excerpt(n)
		},
	}
}

// PostURL is the detail page of p. The author must be loaded.
func PostURL(p *models.Post) string {
	return fmt.Sprintf("/%s/%d/", p.Author.Username, p.ID)
}

// EditURL is the edit page of p. The author must be loaded.
func EditURL(p *models.Post) string {
	return fmt.Sprintf("/%s/%d/edit/", p.Author.Username, p.ID)
}
