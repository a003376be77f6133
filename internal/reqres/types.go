package reqres

import "strings"

// User is a record as served by the API.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// FullName joins first and last name, skipping empty parts.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns up to two upper-case initials, falling back to the email.
func (u User) Initials() string {
	var b strings.Builder
	for _, part := range []string{u.FirstName, u.LastName} {
		if part = strings.TrimSpace(part); part != "" {
			b.WriteString(strings.ToUpper(string([]rune(part)[0])))
		}
	}
	if b.Len() == 0 && u.Email != "" {
		b.WriteString(strings.ToUpper(string([]rune(u.Email)[0])))
	}
	return b.String()
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate is the full form snapshot sent on save.
type UserUpdate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
}

type LoginResponse struct {
	Status int
	Token  string
	// Error is the API's explanation for a rejected login, if it sent one.
	Error string
}

type ListResponse struct {
	Status     int
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	Users      []User
}

type UserResponse struct {
	Status int
	User   User
}

// UpdateResponse carries the echoed record; reqres adds an updatedAt stamp.
type UpdateResponse struct {
	Status int
	User   UpdatedUser
}

type UpdatedUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
	UpdatedAt string `json:"updatedAt"`
}

type DeleteResponse struct {
	Status int
}
