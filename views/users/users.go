package users

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
	"github.com/loganlanou/userdesk/internal/reqres"
	"github.com/loganlanou/userdesk/internal/screens"
	"github.com/loganlanou/userdesk/views/helpers"
	"github.com/loganlanou/userdesk/views/layout"
)

//go:embed *.html
var files embed.FS

var tmpl = template.Must(template.New("users").Funcs(helpers.Funcs).Funcs(template.FuncMap{
	"initials": func(u reqres.User) string { return u.Initials() },
	"loading":  func(s screens.Status) bool { return s == screens.StatusLoading || s == screens.StatusIdle },
}).ParseFS(files, "*.html"))

type listData struct {
	screens.ListView
	CSRFToken string
}

// List renders the user table for view.
func List(page layout.Page, view screens.ListView) templ.Component {
	page.Title = "Users"
	return layout.Base(page, layout.Template(tmpl, "list.html", listData{
		ListView:  view,
		CSRFToken: page.CSRFToken,
	}))
}

type editData struct {
	screens.EditView
	FetchFailed bool
	CSRFToken   string
}

// Edit renders the edit form, or the fetch error when there is no record.
func Edit(page layout.Page, view screens.EditView) templ.Component {
	page.Title = "Edit User"
	return layout.Base(page, layout.Template(tmpl, "edit.html", editData{
		EditView:    view,
		FetchFailed: view.Status == screens.EditFetchFailed,
		CSRFToken:   page.CSRFToken,
	}))
}
