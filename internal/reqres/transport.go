package reqres

import (
	"log/slog"
	"net/http"
	"time"
)

// Responder executes a single HTTP transaction.
type Responder func(*http.Request) (*http.Response, error)

// MiddlewareFunc wraps a Responder with extra behaviour.
type MiddlewareFunc func(next Responder) Responder

// Transport is an http.RoundTripper that runs requests through a middleware
// chain before handing them to the underlying transport.
type Transport struct {
	base       Responder
	middleware []MiddlewareFunc
}

func NewTransport(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base.RoundTrip}
}

// Use appends middleware. The first registered middleware runs outermost.
func (t *Transport) Use(middleware ...MiddlewareFunc) {
	t.middleware = append(t.middleware, middleware...)
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	h := t.base
	for i := len(t.middleware) - 1; i >= 0; i-- {
		h = t.middleware[i](h)
	}
	return h(req)
}

// UserAgent sets the User-Agent header on every request.
func UserAgent(userAgent string) MiddlewareFunc {
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			req.Header.Set("User-Agent", userAgent)
			return next(req)
		}
	}
}

// APIKey sets the x-api-key header reqres.in expects from free-tier clients.
func APIKey(key string) MiddlewareFunc {
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			req.Header.Set("x-api-key", key)
			return next(req)
		}
	}
}

// LogRequests logs each upstream call at debug level.
func LogRequests() MiddlewareFunc {
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)
			if err != nil {
				slog.WarnContext(req.Context(), "upstream request failed",
					"method", req.Method,
					"url", req.URL.String(),
					"duration", time.Since(start),
					"error", err,
				)
				return nil, err
			}
			slog.DebugContext(req.Context(), "upstream request",
				"method", req.Method,
				"url", req.URL.String(),
				"status", resp.StatusCode,
				"duration", time.Since(start),
			)
			return resp, nil
		}
	}
}
