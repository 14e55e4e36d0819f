package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMirrorWritesUnderSessionDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}

	if err := store.Mirror("abc123", "generated-image.jpg", []byte{0xFF, 0xD8}); err != nil {
		t.Fatalf("Mirror returned error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "abc123", "generated-image.jpg"))
	if err != nil {
		t.Fatalf("reading mirrored file: %v", err)
	}
	if len(data) != 2 || data[0] != 0xFF {
		t.Fatalf("mirrored bytes mismatch: %v", data)
	}
}

func TestMirrorRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	if err := store.Mirror("..", "../escape.jpg", []byte{0x1}); err == nil {
		t.Fatal("traversal key should be rejected")
	}
}

func TestNilStoreIsNoOp(t *testing.T) {
	var store *FileStore
	if err := store.Mirror("abc", "x.png", []byte{0x1}); err != nil {
		t.Fatalf("nil store Mirror should be a no-op, got %v", err)
	}
	if store.BasePath() != "" {
		t.Fatal("nil store BasePath should be empty")
	}
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	if _, err := NewFileStore("  "); err == nil {
		t.Fatal("empty base path should error")
	}
}
