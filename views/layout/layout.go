package layout

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"
	"github.com/loganlanou/userdesk/views/helpers"
)

//go:embed base.html
var files embed.FS

var base = template.Must(template.New("base.html").Funcs(helpers.Funcs).ParseFS(files, "base.html"))

// Page is the chrome shared by every screen.
type Page struct {
	Title           string
	IsAuthenticated bool
	Email           string
	Flashes         []string
	// CSRFToken goes into every POST form of the page.
	CSRFToken string
}

type basePage struct {
	Page
	Body template.HTML
}

// Base wraps body in the HTML document.
func Base(page Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := body.Render(ctx, &buf); err != nil {
			return err
		}
		return base.Execute(w, basePage{Page: page, Body: template.HTML(buf.String())})
	})
}

// Template turns a parsed html/template into a templ component.
func Template(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := t.ExecuteTemplate(w, name, data); err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		return nil
	})
}
