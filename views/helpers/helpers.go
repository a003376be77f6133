package helpers

import (
	"html/template"
	"net/url"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

const (
	ButtonBase     = "inline-flex items-center gap-2 rounded-md px-4 py-2 text-sm font-semibold transition-colors"
	InputBase      = "w-full rounded-md border border-slate-600 bg-slate-800 px-3 py-2 text-slate-100 focus:border-sky-300 focus:outline-none"
	PaginationItem = "rounded px-3 py-1 text-sm text-slate-300 hover:bg-slate-700"
	PaginationCurr = "bg-sky-300 text-slate-900 hover:bg-sky-300"
)

var buttonVariants = map[string]string{
	"primary":  "bg-sky-300 text-slate-900 hover:bg-sky-400",
	"outlined": "border border-sky-300 text-sky-300 hover:bg-sky-300/10",
	"icon":     "px-2 py-1 text-sky-300 hover:bg-sky-300/10",
	"danger":   "px-2 py-1 text-rose-400 hover:bg-rose-400/10",
}

// Classes merges tailwind class lists, later classes winning conflicts.
func Classes(classes ...string) string {
	return twmerge.Merge(classes...)
}

// ButtonClass builds the classes of a button variant; extra overrides.
func ButtonClass(variant string, extra ...string) string {
	return Classes(append([]string{ButtonBase, buttonVariants[variant]}, extra...)...)
}

// InputClass builds the classes of a text input.
func InputClass(extra ...string) string {
	return Classes(append([]string{InputBase}, extra...)...)
}

// PageClass builds the classes of a pagination link.
func PageClass(current bool) string {
	if current {
		return Classes(PaginationItem, PaginationCurr)
	}
	return PaginationItem
}

// AvatarURL returns the user's avatar, or the generated initials avatar when
// the record has none.
func AvatarURL(avatar, initials string) string {
	if strings.TrimSpace(avatar) != "" {
		return avatar
	}
	if initials == "" {
		initials = "?"
	}
	return "/avatar/" + url.PathEscape(initials) + ".png"
}

// PageNumbers returns 1..total.
func PageNumbers(total int) []int {
	if total < 1 {
		total = 1
	}
	pages := make([]int, total)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Funcs is the template function map shared by all views.
var Funcs = template.FuncMap{
	"classes":     Classes,
	"button":      ButtonClass,
	"input":       InputClass,
	"pageClass":   PageClass,
	"avatarURL":   AvatarURL,
	"pageNumbers": PageNumbers,
}
