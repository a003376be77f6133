package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/labstack/echo/v4"
	"github.com/loganlanou/userdesk/internal/middleware"
	"github.com/loganlanou/userdesk/internal/reqres"
	"github.com/loganlanou/userdesk/storage"
)

const (
	testEmail    = "eve.holt@reqres.in"
	testPassword = "cityslicka"
	testToken    = "QpwL5tke4Pnpja7X4"
)

// fakeUpstream is an in-memory stand-in for the reqres API. Like the real
// service, DELETE and PUT do not change what later reads return.
type fakeUpstream struct {
	mu      sync.Mutex
	users   []reqres.User
	perPage int
	// fail maps an operation name (login, list, get, update, delete) to the
	// status the next calls of that operation answer with.
	fail  map[string]int
	calls []string
}

func newFakeUpstream(t *testing.T, count int) (*fakeUpstream, *httptest.Server) {
	t.Helper()

	faker := gofakeit.New(42)
	f := &fakeUpstream{perPage: 6, fail: make(map[string]int)}
	for i := 1; i <= count; i++ {
		f.users = append(f.users, reqres.User{
			ID:        i,
			Email:     faker.Email(),
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
			Avatar:    "https://reqres.in/img/faces/" + strconv.Itoa(i) + "-image.jpg",
		})
	}

	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeUpstream) failWith(op string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = status
}

func (f *fakeUpstream) heal(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.fail, op)
}

// Calls returns the operations served so far, e.g. "list:2" or "delete:7".
func (f *fakeUpstream) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeUpstream) user(id int) (reqres.User, bool) {
	for _, u := range f.users {
		if u.ID == id {
			return u, true
		}
	}
	return reqres.User{}, false
}

func (f *fakeUpstream) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api")
	op, id := "", 0
	switch {
	case path == "/login" && r.Method == http.MethodPost:
		op = "login"
	case path == "/users" && r.Method == http.MethodGet:
		op = "list"
	case strings.HasPrefix(path, "/users/"):
		n, err := strconv.Atoi(strings.TrimPrefix(path, "/users/"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		id = n
		switch r.Method {
		case http.MethodGet:
			op = "get"
		case http.MethodPut:
			op = "update"
		case http.MethodDelete:
			op = "delete"
		}
	}
	if op == "" {
		http.NotFound(w, r)
		return
	}

	switch op {
	case "list":
		f.calls = append(f.calls, op+":"+r.URL.Query().Get("page"))
	case "login":
		f.calls = append(f.calls, op)
	default:
		f.calls = append(f.calls, op+":"+strconv.Itoa(id))
	}

	if status, ok := f.fail[op]; ok {
		writeJSON(w, status, map[string]string{"error": "Missing password"})
		return
	}

	switch op {
	case "login":
		writeJSON(w, http.StatusOK, map[string]string{"token": testToken})
	case "list":
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		start := min((page-1)*f.perPage, len(f.users))
		end := min(start+f.perPage, len(f.users))
		writeJSON(w, http.StatusOK, map[string]any{
			"page":        page,
			"per_page":    f.perPage,
			"total":       len(f.users),
			"total_pages": (len(f.users) + f.perPage - 1) / f.perPage,
			"data":        f.users[start:end],
		})
	case "get":
		u, ok := f.user(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": u})
	case "update":
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{})
			return
		}
		body["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
		writeJSON(w, http.StatusOK, body)
	case "delete":
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// brokenTransport fails every upstream call before it leaves the process.
type brokenTransport struct{}

func (brokenTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}

// setupTestService creates a service instance with an in-memory database
// that talks to upstreamURL through transport (nil for the default).
func setupTestService(t *testing.T, upstreamURL string, transport http.RoundTripper) *Service {
	t.Helper()

	store, cleanup, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	config := &Config{
		Environment: "test",
		Port:        "8080",
	}
	config.Session.Secret = "test-secret-test-secret-test-sec"
	config.Session.ScreenTTL = time.Hour
	config.Reqres.BaseURL = upstreamURL + "/api"
	config.Login.Password = testPassword
	config.Login.RateLimit = 1000

	svc, err := newService(store, config, transport)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

// setupTestEcho creates an Echo instance with routes registered
func setupTestEcho(t *testing.T, upstreamURL string, transport http.RoundTripper) (*echo.Echo, *Service) {
	t.Helper()

	e := echo.New()
	svc := setupTestService(t, upstreamURL, transport)
	svc.RegisterRoutes(e)

	return e, svc
}

// browser replays cookies between requests against an echo instance.
type browser struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, e *echo.Echo) *browser {
	return &browser{t: t, e: e, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()

	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	b.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(b.cookies, ck.Name)
			continue
		}
		b.cookies[ck.Name] = ck
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post submits form the way a rendered page would, with the CSRF token of
// the cookie jar. A browser that has not seen a page yet opens /login first.
func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()

	if _, ok := b.cookies[middleware.CSRFField]; !ok {
		b.get("/login")
	}
	if form == nil {
		form = url.Values{}
	}
	if ck, ok := b.cookies[middleware.CSRFField]; ok {
		form.Set(middleware.CSRFField, ck.Value)
	}
	return b.postRaw(path, form)
}

// postRaw submits form as is.
func (b *browser) postRaw(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return b.do(req)
}

func (b *browser) login(password string) *httptest.ResponseRecorder {
	return b.post("/login", url.Values{"email": {testEmail}, "password": {password}})
}
