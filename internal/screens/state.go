// Package screens holds the state machines behind the login, user list and
// edit user pages. Handlers drive them and views render what they return.
package screens

// User-facing messages. Transport failures and non-success statuses share
// one message per operation.
const (
	MsgIncorrectPassword = "Incorrect password"
	MsgLoginFailed       = "Login failed"
	MsgFetchUsersFailed  = "Failed to fetch users"
	MsgDeleteUserFailed  = "Failed to delete user"
	MsgFetchUserFailed   = "Failed to fetch user data"
	MsgUpdateUserFailed  = "Failed to update user"
	MsgRequiredFields    = "First name, last name and email are required"
	MsgUserUpdated       = "User updated successfully"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a tagged load state. A failed state may still carry the data that
// was loaded before the failure so it can stay on screen.
type State[T any] struct {
	status Status
	data   T
	err    string
}

func Idle[T any]() State[T] {
	return State[T]{status: StatusIdle}
}

// Loading keeps the previous data around while a call is outstanding.
func (s State[T]) Loading() State[T] {
	return State[T]{status: StatusLoading, data: s.data}
}

func Loaded[T any](data T) State[T] {
	return State[T]{status: StatusLoaded, data: data}
}

// Failed keeps the previous data and records msg.
func (s State[T]) Failed(msg string) State[T] {
	return State[T]{status: StatusFailed, data: s.data, err: msg}
}

// withData swaps the data and keeps the tag.
func (s State[T]) withData(data T) State[T] {
	s.data = data
	return s
}

func (s State[T]) Status() Status { return s.status }
func (s State[T]) Data() T        { return s.data }
func (s State[T]) Err() string    { return s.err }
