package session

import "time"

// Data is the session-state value of one signed-in browser.
type Data struct {
	ID        string
	Token     string
	Email     string
	CreatedAt time.Time
}

// Authenticated reports whether a token is present. Nothing else is checked.
func (d *Data) Authenticated() bool {
	return d != nil && d.Token != ""
}
