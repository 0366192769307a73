// Package views holds the embedded HTML templates for the home page.
package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templates embed.FS

// NewEngine returns a fiber view engine rendering the embedded templates.
// Views are addressed without the directory or extension, e.g. "index".
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		// unreachable: the embed pattern guarantees the directory exists
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
