package screens

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/loganlanou/userdesk/internal/reqres"
)

type EditStatus int

const (
	EditLoading EditStatus = iota
	EditReady
	EditFetchFailed
	EditSaving
	EditSaved
)

// UserEditor is the slice of the API client the edit screen needs.
type UserEditor interface {
	FetchUser(ctx context.Context, id int) (*reqres.UserResponse, error)
	UpdateUser(ctx context.Context, id int, update reqres.UserUpdate) (*reqres.UpdateResponse, error)
}

// EditForm is the local form state. Only the form is edited; the record is
// never touched until a save succeeds upstream.
type EditForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
	Avatar    string `form:"avatar"`
}

func formFromUser(u reqres.User) EditForm {
	return EditForm{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Avatar:    u.Avatar,
	}
}

func (f EditForm) complete() bool {
	return strings.TrimSpace(f.FirstName) != "" &&
		strings.TrimSpace(f.LastName) != "" &&
		strings.TrimSpace(f.Email) != ""
}

func (f EditForm) update() reqres.UserUpdate {
	return reqres.UserUpdate{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Avatar:    f.Avatar,
	}
}

// Initials feeds the avatar fallback.
func (f EditForm) Initials() string {
	return reqres.User{FirstName: f.FirstName, LastName: f.LastName, Email: f.Email}.Initials()
}

type EditView struct {
	Status EditStatus
	ID     int
	Form   EditForm
	Error  string
}

type EditUser struct {
	api UserEditor
}

func NewEditUser(api UserEditor) *EditUser {
	return &EditUser{api: api}
}

// ParseID parses the route id. Ids are positive integers.
func ParseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// Mount fetches the record fresh. Whatever the caller already had is ignored.
func (e *EditUser) Mount(ctx context.Context, rawID string) EditView {
	id, ok := ParseID(rawID)
	if !ok {
		return EditView{Status: EditFetchFailed, Error: MsgFetchUserFailed}
	}
	view := EditView{Status: EditLoading, ID: id}

	resp, err := e.api.FetchUser(ctx, id)
	switch {
	case err != nil:
		slog.WarnContext(ctx, "fetch user request failed", "user_id", id, "error", err)
	case resp.Status != http.StatusOK:
		slog.InfoContext(ctx, "fetch user returned non-success status", "user_id", id, "status", resp.Status)
	default:
		view.Status = EditReady
		view.Form = formFromUser(resp.User)
		return view
	}

	view.Status = EditFetchFailed
	view.Error = MsgFetchUserFailed
	return view
}

// Save sends the full form snapshot. On any failure the view returns to
// ready with exactly the submitted values.
func (e *EditUser) Save(ctx context.Context, rawID string, form EditForm) EditView {
	id, ok := ParseID(rawID)
	if !ok {
		return EditView{Status: EditFetchFailed, Error: MsgFetchUserFailed}
	}
	view := EditView{Status: EditSaving, ID: id, Form: form}

	if !form.complete() {
		return view.ready(MsgRequiredFields)
	}

	resp, err := e.api.UpdateUser(ctx, id, form.update())
	switch {
	case err != nil:
		slog.WarnContext(ctx, "update user request failed", "user_id", id, "error", err)
		return view.ready(MsgUpdateUserFailed)
	case resp.Status != http.StatusOK:
		slog.InfoContext(ctx, "update user returned non-success status", "user_id", id, "status", resp.Status)
		return view.ready(MsgUpdateUserFailed)
	}

	slog.InfoContext(ctx, "user updated", "user_id", id, "updated_at", resp.User.UpdatedAt)
	view.Status = EditSaved
	return view
}

func (v EditView) ready(msg string) EditView {
	v.Status = EditReady
	v.Error = msg
	return v
}
