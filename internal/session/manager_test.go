package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/userdesk/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *storage.Storage) {
	t.Helper()

	store, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return NewManager("test-secret-test-secret-test-sec", false, store.Queries), store
}

// newContext builds a request that carries cookies from a previous response.
func newContext(prev *httptest.ResponseRecorder) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if prev != nil {
		for _, ck := range prev.Result().Cookies() {
			req.AddCookie(ck)
		}
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestManager_SetGetClear(t *testing.T) {
	mgr, store := newTestManager(t)

	c, rec := newContext(nil)
	data, err := mgr.Set(c, "eve.holt@reqres.in", "QpwL5tke4Pnpja7X4")
	require.NoError(t, err)
	assert.True(t, data.Authenticated())
	assert.NotEmpty(t, data.ID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotContains(t, cookies[0].Value, "QpwL5tke4Pnpja7X4")

	c, _ = newContext(rec)
	got, err := mgr.Get(c)
	require.NoError(t, err)
	assert.Equal(t, "QpwL5tke4Pnpja7X4", got.Token)
	assert.Equal(t, "eve.holt@reqres.in", got.Email)
	assert.Equal(t, data.ID, got.ID)

	c, clearRec := newContext(rec)
	require.NoError(t, mgr.Clear(c))

	count, err := store.Queries.CountSessions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	// The old cookie no longer resolves to a token
	c, _ = newContext(rec)
	_, err = mgr.Get(c)
	assert.ErrorIs(t, err, ErrNoSession)

	expired := clearRec.Result().Cookies()
	require.Len(t, expired, 1)
	assert.Less(t, expired[0].MaxAge, 0)
}

func TestManager_GetWithoutCookie(t *testing.T) {
	mgr, _ := newTestManager(t)

	c, _ := newContext(nil)
	_, err := mgr.Get(c)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_GetWithForeignCookie(t *testing.T) {
	mgr, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionName, Value: "forged"})
	c := echo.New().NewContext(req, httptest.NewRecorder())

	_, err := mgr.Get(c)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_SetReplacesPreviousSession(t *testing.T) {
	mgr, store := newTestManager(t)

	c, rec := newContext(nil)
	first, err := mgr.Set(c, "eve.holt@reqres.in", "first")
	require.NoError(t, err)

	c, rec2 := newContext(rec)
	second, err := mgr.Set(c, "eve.holt@reqres.in", "second")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	count, err := store.Queries.CountSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	c, _ = newContext(rec2)
	got, err := mgr.Get(c)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Token)
}

func TestManager_Flashes(t *testing.T) {
	mgr, _ := newTestManager(t)

	c, rec := newContext(nil)
	require.NoError(t, mgr.AddFlash(c, "User updated successfully"))

	c, rec2 := newContext(rec)
	assert.Equal(t, []string{"User updated successfully"}, mgr.Flashes(c))

	c, _ = newContext(rec2)
	assert.Empty(t, mgr.Flashes(c))
}

func TestData_Authenticated(t *testing.T) {
	var nilData *Data
	assert.False(t, nilData.Authenticated())
	assert.False(t, (&Data{ID: "x"}).Authenticated())
	assert.True(t, (&Data{Token: "t"}).Authenticated())
}
