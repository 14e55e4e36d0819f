package session

import (
	"sync"
	"time"

	"github.com/promptstudio/internal/chat"
	"github.com/promptstudio/internal/domain"
	"github.com/promptstudio/internal/promptsync"
)

// Session is the server-side aggregate behind one browser session: the
// uploaded image, its prompt engine, the chat flow, and the latest generated
// and edited images. The image is immutable; everything else is guarded by
// the session mutex.
type Session struct {
	ID     string
	Image  *domain.UploadedImage
	Engine *promptsync.Engine

	mu        sync.Mutex
	chatFlow  *chat.Flow
	generated *domain.ImageAsset
	edited    *domain.ImageAsset
	touched   time.Time
}

// Chat returns the session's chat flow, or nil if none has been started.
func (s *Session) Chat() *chat.Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatFlow
}

// StoreChat installs a newly created chat flow. If another flow won the race
// it is kept and returned instead, so exactly one flow serves the session.
func (s *Session) StoreChat(f *chat.Flow) *chat.Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chatFlow != nil {
		return s.chatFlow
	}
	s.chatFlow = f
	return f
}

// SetGenerated replaces the generated-image slot wholesale.
func (s *Session) SetGenerated(a *domain.ImageAsset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generated = a
}

// Generated returns the latest generated image, or nil.
func (s *Session) Generated() *domain.ImageAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generated
}

// SetEdited replaces the edited-image slot wholesale.
func (s *Session) SetEdited(a *domain.ImageAsset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edited = a
}

// Edited returns the latest edited image, or nil.
func (s *Session) Edited() *domain.ImageAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edited
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = now
}

func (s *Session) lastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}
