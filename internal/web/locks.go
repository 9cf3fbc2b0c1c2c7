package web

import (
	"sync"

	"github.com/gin-gonic/gin"
)

// sessionLocks serializes requests that read-modify-write the same session
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

// lock blocks until id is free and returns the matching unlock. Entries are
// dropped once no request holds or waits on them.
func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	sl, ok := l.locks[id]
	if !ok {
		sl = &sessionLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

// lockSession holds the caller's session until the returned func runs. Requests
// without a cookie start a fresh session and need no lock.
func (s *Server) lockSession(c *gin.Context) func() {
	id, err := c.Cookie(s.cookieName)
	if err != nil || id == "" {
		return func() {}
	}
	return s.locks.lock(id)
}
