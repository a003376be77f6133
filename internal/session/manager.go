package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/loganlanou/userdesk/storage/db"
	"github.com/oklog/ulid/v2"
)

const (
	sessionName = "userdesk_session"
	idKey       = "sid"
)

// ErrNoSession is returned when the request carries no live session.
var ErrNoSession = errors.New("no session")

// Queries is the slice of the generated queries the manager needs.
type Queries interface {
	CreateSession(ctx context.Context, arg db.CreateSessionParams) (db.Session, error)
	GetSession(ctx context.Context, id string) (db.Session, error)
	TouchSession(ctx context.Context, id string) error
	DeleteSession(ctx context.Context, id string) error
}

// Manager owns the session token. The cookie carries only an opaque id; the
// token itself stays in the session table.
type Manager struct {
	store   sessions.Store
	queries Queries
}

// NewManager creates a new session manager
func NewManager(secret string, secure bool, queries Queries) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		store:   store,
		queries: queries,
	}
}

// Set stores token for the browser, replacing any previous session.
func (m *Manager) Set(c echo.Context, email, token string) (*Data, error) {
	ctx := c.Request().Context()

	sess, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		// A cookie signed with an old secret decodes to a fresh session
		slog.DebugContext(ctx, "discarding undecodable session cookie", "error", err)
	}

	if oldID, ok := sess.Values[idKey].(string); ok && oldID != "" {
		if err := m.queries.DeleteSession(ctx, oldID); err != nil {
			return nil, fmt.Errorf("failed to drop previous session: %w", err)
		}
	}

	row, err := m.queries.CreateSession(ctx, db.CreateSessionParams{
		ID:    ulid.Make().String(),
		Token: token,
		Email: email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	sess.Values[idKey] = row.ID
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return fromRow(row), nil
}

// Get reads the session of the request. ErrNoSession means unauthenticated.
func (m *Manager) Get(c echo.Context) (*Data, error) {
	ctx := c.Request().Context()

	sess, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		return nil, ErrNoSession
	}

	id, ok := sess.Values[idKey].(string)
	if !ok || id == "" {
		return nil, ErrNoSession
	}

	row, err := m.queries.GetSession(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if err := m.queries.TouchSession(ctx, id); err != nil {
		slog.WarnContext(ctx, "failed to touch session", "session_id", id, "error", err)
	}

	return fromRow(row), nil
}

// Clear removes the token and expires the cookie. There is no upstream
// session to invalidate.
func (m *Manager) Clear(c echo.Context) error {
	sess, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		slog.DebugContext(c.Request().Context(), "clearing undecodable session cookie", "error", err)
	}

	if id, ok := sess.Values[idKey].(string); ok && id != "" {
		if err := m.queries.DeleteSession(c.Request().Context(), id); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}

	// Mark session for deletion
	sess.Options.MaxAge = -1
	delete(sess.Values, idKey)

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}

// AddFlash queues a one-shot message for the next page render.
func (m *Manager) AddFlash(c echo.Context, msg string) error {
	sess, _ := m.store.Get(c.Request(), sessionName)
	sess.AddFlash(msg)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("failed to save flash: %w", err)
	}
	return nil
}

// Flashes pops the queued messages.
func (m *Manager) Flashes(c echo.Context) []string {
	sess, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		return nil
	}

	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.WarnContext(c.Request().Context(), "failed to clear flashes", "error", err)
	}

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}

func fromRow(row db.Session) *Data {
	return &Data{
		ID:        row.ID,
		Token:     row.Token,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	}
}
