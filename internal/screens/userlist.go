package screens

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/loganlanou/userdesk/internal/reqres"
)

// UserDirectory is the slice of the API client the list screen needs.
type UserDirectory interface {
	ListUsers(ctx context.Context, page int) (*reqres.ListResponse, error)
	DeleteUser(ctx context.Context, id int) (*reqres.DeleteResponse, error)
}

// ListView is a snapshot of the list screen for rendering.
type ListView struct {
	Status     Status
	Users      []reqres.User
	Page       int
	TotalPages int
	Error      string
}

// UserList is one mounted list screen. Records live only as long as the
// screen does; deleting removes the row locally without re-fetching the page,
// so the page can drift from the server until the next page load.
type UserList struct {
	mu         sync.Mutex
	api        UserDirectory
	state      State[[]reqres.User]
	page       int
	totalPages int
	actionErr  string
}

func NewUserList(api UserDirectory) *UserList {
	return &UserList{
		api:        api,
		state:      Idle[[]reqres.User](),
		page:       1,
		totalPages: 1,
	}
}

// Load fetches page. On success the records and total page count are
// replaced; on failure the previous records stay as they were. Any earlier
// delete error is dropped either way.
func (l *UserList) Load(ctx context.Context, page int) ListView {
	l.mu.Lock()
	defer l.mu.Unlock()

	if page < 1 {
		page = 1
	}
	l.page = page
	l.state = l.state.Loading()
	l.actionErr = ""

	resp, err := l.api.ListUsers(ctx, page)
	switch {
	case err != nil:
		slog.WarnContext(ctx, "list users request failed", "page", page, "error", err)
		l.state = l.state.Failed(MsgFetchUsersFailed)
	case resp.Status != http.StatusOK:
		slog.InfoContext(ctx, "list users returned non-success status", "page", page, "status", resp.Status)
		l.state = l.state.Failed(MsgFetchUsersFailed)
	default:
		l.state = Loaded(resp.Users)
		l.totalPages = max(resp.TotalPages, 1)
	}

	return l.view()
}

// Delete removes the user with id. Only a 204 answer touches the records,
// and then exactly the rows with that id go away.
func (l *UserList) Delete(ctx context.Context, id int) ListView {
	l.mu.Lock()
	defer l.mu.Unlock()

	resp, err := l.api.DeleteUser(ctx, id)
	switch {
	case err != nil:
		slog.WarnContext(ctx, "delete user request failed", "user_id", id, "error", err)
		l.actionErr = MsgDeleteUserFailed
	case resp.Status != http.StatusNoContent:
		slog.InfoContext(ctx, "delete user returned unexpected status", "user_id", id, "status", resp.Status)
		l.actionErr = MsgDeleteUserFailed
	default:
		l.state = l.state.withData(slices.DeleteFunc(slices.Clone(l.state.Data()), func(u reqres.User) bool {
			return u.ID == id
		}))
		l.actionErr = ""
	}

	return l.view()
}

// View returns the current snapshot without contacting the API.
func (l *UserList) View() ListView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.view()
}

// Mounted reports whether the screen has completed at least one load attempt.
func (l *UserList) Mounted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Status() != StatusIdle
}

func (l *UserList) view() ListView {
	errMsg := l.state.Err()
	if l.actionErr != "" {
		errMsg = l.actionErr
	}
	return ListView{
		Status:     l.state.Status(),
		Users:      slices.Clone(l.state.Data()),
		Page:       l.page,
		TotalPages: l.totalPages,
		Error:      errMsg,
	}
}
