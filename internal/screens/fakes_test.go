package screens

import (
	"context"
	"errors"
	"net/http"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/loganlanou/userdesk/internal/reqres"
)

var errNetwork = errors.New("dial tcp: i/o timeout")

// fakeAPI implements every client interface the screens use. Each field
// decides the outcome of one call; calls are counted.
type fakeAPI struct {
	loginResp *reqres.LoginResponse
	loginErr  error

	listResp  map[int]*reqres.ListResponse
	listErr   error
	listPages []int

	userResp *reqres.UserResponse
	userErr  error

	updateResp *reqres.UpdateResponse
	updateErr  error
	updates    []reqres.UserUpdate

	deleteStatus int
	deleteErr    error
	deleted      []int

	calls int
}

func (f *fakeAPI) Authenticate(_ context.Context, _, _ string) (*reqres.LoginResponse, error) {
	f.calls++
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) ListUsers(_ context.Context, page int) (*reqres.ListResponse, error) {
	f.calls++
	f.listPages = append(f.listPages, page)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if resp, ok := f.listResp[page]; ok {
		return resp, nil
	}
	return &reqres.ListResponse{Status: http.StatusNotFound}, nil
}

func (f *fakeAPI) DeleteUser(_ context.Context, id int) (*reqres.DeleteResponse, error) {
	f.calls++
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &reqres.DeleteResponse{Status: f.deleteStatus}, nil
}

func (f *fakeAPI) FetchUser(_ context.Context, _ int) (*reqres.UserResponse, error) {
	f.calls++
	return f.userResp, f.userErr
}

func (f *fakeAPI) UpdateUser(_ context.Context, _ int, update reqres.UserUpdate) (*reqres.UpdateResponse, error) {
	f.calls++
	f.updates = append(f.updates, update)
	return f.updateResp, f.updateErr
}

func fakeUsers(ids ...int) []reqres.User {
	users := make([]reqres.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, reqres.User{
			ID:        id,
			Email:     gofakeit.Email(),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Avatar:    gofakeit.URL(),
		})
	}
	return users
}

func page(n, total int, users []reqres.User) *reqres.ListResponse {
	return &reqres.ListResponse{Status: http.StatusOK, Page: n, TotalPages: total, Users: users}
}
