package session

import (
	"testing"
	"time"

	"github.com/promptstudio/internal/domain"
	"github.com/promptstudio/internal/promptsync"
)

func newTestStore(ttl time.Duration) *Store {
	return NewStore(ttl, nil)
}

func testEngine() *promptsync.Engine {
	return promptsync.New(nil, testImage(), promptsync.Options{})
}

func testImage() *domain.UploadedImage {
	return &domain.UploadedImage{Data: []byte{0x1}, MIME: "image/png"}
}

func TestStoreCreateAndGet(t *testing.T) {
	st := newTestStore(time.Hour)
	defer st.Close()

	s := st.Create(testImage(), nil)
	if s.ID == "" {
		t.Fatal("session should get an ID")
	}
	got, err := st.Get(s.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != s {
		t.Fatal("Get should return the same session")
	}
	if _, err := st.Get("missing"); err != domain.ErrSessionNotFound {
		t.Fatalf("Get(missing) = %v, want ErrSessionNotFound", err)
	}
}

func TestStoreDelete(t *testing.T) {
	st := newTestStore(time.Hour)
	defer st.Close()

	s := st.Create(testImage(), testEngine())
	if err := st.Delete(s.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := st.Get(s.ID); err != domain.ErrSessionNotFound {
		t.Fatalf("deleted session should be gone, got %v", err)
	}
	if err := st.Delete(s.ID); err != domain.ErrSessionNotFound {
		t.Fatalf("second Delete = %v, want ErrSessionNotFound", err)
	}
}

func TestStoreReapExpiresIdleSessions(t *testing.T) {
	st := newTestStore(10 * time.Millisecond)
	defer st.Close()

	s := st.Create(testImage(), testEngine())
	time.Sleep(30 * time.Millisecond)
	st.reap(time.Now())

	if st.Len() != 0 {
		t.Fatalf("Len = %d after reap, want 0", st.Len())
	}
	if _, err := st.Get(s.ID); err != domain.ErrSessionNotFound {
		t.Fatalf("reaped session should be gone, got %v", err)
	}
}

func TestStoreGetRefreshesIdleTimer(t *testing.T) {
	st := newTestStore(50 * time.Millisecond)
	defer st.Close()

	s := st.Create(testImage(), testEngine())
	time.Sleep(30 * time.Millisecond)
	if _, err := st.Get(s.ID); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	st.reap(time.Now())

	if st.Len() != 1 {
		t.Fatal("recently touched session should survive the reap")
	}
}

func TestSessionChatFlowInstalledOnce(t *testing.T) {
	st := newTestStore(time.Hour)
	defer st.Close()

	s := st.Create(testImage(), testEngine())
	if s.Chat() != nil {
		t.Fatal("new session should have no chat flow")
	}
	first := s.StoreChat(nil)
	if first != nil {
		t.Fatal("storing nil should return nil")
	}
}

func TestSessionImageSlotsReplaceWholesale(t *testing.T) {
	st := newTestStore(time.Hour)
	defer st.Close()

	s := st.Create(testImage(), testEngine())
	a := &domain.ImageAsset{Data: []byte{0xA}, MIME: "image/jpeg"}
	b := &domain.ImageAsset{Data: []byte{0xB}, MIME: "image/jpeg"}
	s.SetGenerated(a)
	s.SetGenerated(b)
	if got := s.Generated(); got != b {
		t.Fatal("generated slot should hold the latest asset only")
	}
	if s.Edited() != nil {
		t.Fatal("edited slot should start empty")
	}
}
