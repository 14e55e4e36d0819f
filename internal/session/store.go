package session

import (
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/promptstudio/internal/domain"
	"github.com/promptstudio/internal/infra"
	"github.com/promptstudio/internal/promptsync"
)

// Store is the in-memory session registry. Sessions are reaped once idle for
// longer than the TTL; nothing is ever persisted.
type Store struct {
	ttl    time.Duration
	logger infra.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a registry with the given idle TTL. A TTL of zero disables
// reaping.
func NewStore(ttl time.Duration, logger *infra.Logger) *Store {
	l := infra.Logger(zerolog.New(io.Discard))
	if logger != nil {
		l = *logger
	}
	return &Store{
		ttl:      ttl,
		logger:   l,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
}

// Create registers a new session around an uploaded image and its engine.
func (st *Store) Create(img *domain.UploadedImage, engine *promptsync.Engine) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		Image:  img,
		Engine: engine,
	}
	s.touch(time.Now())
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	s.touch(time.Now())
	return s, nil
}

// Delete removes the session and closes its engine so a pending debounce
// cannot fire against disposed state.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	st.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}
	if s.Engine != nil {
		s.Engine.Close()
	}
	return nil
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// StartJanitor reaps idle sessions on the given interval until Close.
func (st *Store) StartJanitor(interval time.Duration) {
	if st.ttl <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				st.reap(time.Now())
			case <-st.stop:
				return
			}
		}
	}()
}

// Close stops the janitor and closes every remaining engine.
func (st *Store) Close() {
	st.stopOnce.Do(func() { close(st.stop) })
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.sessions {
		if s.Engine != nil {
			s.Engine.Close()
		}
		delete(st.sessions, id)
	}
}

func (st *Store) reap(now time.Time) {
	var expired []*Session
	st.mu.Lock()
	for id, s := range st.sessions {
		if now.Sub(s.lastTouched()) > st.ttl {
			delete(st.sessions, id)
			expired = append(expired, s)
		}
	}
	st.mu.Unlock()
	for _, s := range expired {
		if s.Engine != nil {
			s.Engine.Close()
		}
		st.logger.Debug().Str("session_id", s.ID).Msg("reaped idle session")
	}
}
