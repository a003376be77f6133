package screens

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/loganlanou/userdesk/internal/reqres"
)

type LoginStatus int

const (
	LoginIdle LoginStatus = iota
	LoginSubmitting
	LoginAuthenticated
	LoginFailed
)

// Authenticator is the slice of the API client the login screen needs.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*reqres.LoginResponse, error)
}

// TokenStore persists the token of a successful login.
type TokenStore func(ctx context.Context, email, token string) error

// LoginView is what the login page renders. The password is never kept.
type LoginView struct {
	Status LoginStatus
	Email  string
	Error  string
}

type Login struct {
	api      Authenticator
	password string
}

// NewLogin builds the login screen. password is the only accepted password;
// anything else is rejected before the API is contacted.
func NewLogin(api Authenticator, password string) *Login {
	return &Login{api: api, password: password}
}

func (l *Login) Idle(email string) LoginView {
	return LoginView{Status: LoginIdle, Email: email}
}

// Submit runs one login attempt. The token is handed to store only when the
// API answers 200 with a token; every other path leaves the session untouched.
func (l *Login) Submit(ctx context.Context, email, password string, store TokenStore) LoginView {
	view := LoginView{Status: LoginSubmitting, Email: email}

	if password != l.password {
		return view.fail(MsgIncorrectPassword)
	}

	resp, err := l.api.Authenticate(ctx, email, password)
	if err != nil {
		slog.WarnContext(ctx, "login request failed", "email", email, "error", err)
		return view.fail(MsgLoginFailed)
	}

	if resp.Status != http.StatusOK || resp.Token == "" {
		slog.InfoContext(ctx, "login rejected", "email", email, "status", resp.Status)
		if resp.Error != "" {
			return view.fail(resp.Error)
		}
		return view.fail(MsgLoginFailed)
	}

	if err := store(ctx, email, resp.Token); err != nil {
		slog.ErrorContext(ctx, "failed to store session token", "email", email, "error", err)
		return view.fail(MsgLoginFailed)
	}

	view.Status = LoginAuthenticated
	return view
}

func (v LoginView) fail(msg string) LoginView {
	v.Status = LoginFailed
	v.Error = msg
	return v
}
