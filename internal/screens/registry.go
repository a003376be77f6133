package screens

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type mountedList struct {
	list     *UserList
	lastUsed time.Time
}

// Registry keeps the mounted list screen of each session between requests.
type Registry struct {
	mu    sync.Mutex
	api   UserDirectory
	lists map[string]*mountedList
	now   func() time.Time
}

func NewRegistry(api UserDirectory) *Registry {
	return &Registry{
		api:   api,
		lists: make(map[string]*mountedList),
		now:   time.Now,
	}
}

// UserList returns the list screen mounted for sessionID, mounting a fresh
// one if there is none.
func (r *Registry) UserList(sessionID string) *UserList {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.lists[sessionID]
	if !ok {
		m = &mountedList{list: NewUserList(r.api)}
		r.lists[sessionID] = m
	}
	m.lastUsed = r.now()
	return m.list
}

// Discard unmounts the list screen of sessionID.
func (r *Registry) Discard(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lists, sessionID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lists)
}

// Sweep unmounts screens idle for longer than ttl and returns how many went.
func (r *Registry) Sweep(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	removed := 0
	for id, m := range r.lists {
		if m.lastUsed.Before(cutoff) {
			delete(r.lists, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (r *Registry) StartSweeper(ctx context.Context, interval, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Sweep(ttl); n > 0 {
					slog.Info("unmounted idle list screens", "count", n, "remaining", r.Len())
				}
			}
		}
	}()
}
