package auth

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
	"github.com/loganlanou/userdesk/internal/screens"
	"github.com/loganlanou/userdesk/views/helpers"
	"github.com/loganlanou/userdesk/views/layout"
)

//go:embed login.html
var files embed.FS

var tmpl = template.Must(template.New("login").Funcs(helpers.Funcs).ParseFS(files, "login.html"))

type loginData struct {
	screens.LoginView
	CSRFToken string
}

// Login renders the sign-in form for view.
func Login(page layout.Page, view screens.LoginView) templ.Component {
	page.Title = "Account Login"
	return layout.Base(page, layout.Template(tmpl, "login.html", loginData{
		LoginView: view,
		CSRFToken: page.CSRFToken,
	}))
}
