package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"career-backend/internal/shared/storage/object"
)

func TestSaveOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, size, mimeType, err := store.Save(ctx, "user-1", "my resume.txt", strings.NewReader("Go, SQL\nBackend engineer"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(key, object.UserNamespace("user-1")+"/") {
		t.Fatalf("expected key in user namespace, got %s", key)
	}
	if !strings.HasSuffix(key, "_my resume.txt") {
		t.Fatalf("expected sanitized name suffix, got %s", key)
	}
	if size != int64(len("Go, SQL\nBackend engineer")) {
		t.Fatalf("unexpected size %d", size)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("unexpected mime type %s", mimeType)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "Go, SQL\nBackend engineer" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestSaveRejectsTraversalName(t *testing.T) {
	store := New(t.TempDir())
	if _, _, _, err := store.Save(context.Background(), "user-1", "../x.pdf", strings.NewReader("x")); err == nil {
		t.Fatalf("expected invalid file name error")
	}
}

func TestDeleteUserRemovesNamespace(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.txt"} {
		if _, _, _, err := store.Save(ctx, "user-1", name, strings.NewReader("data")); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	otherKey, _, _, err := store.Save(ctx, "user-2", "c.txt", strings.NewReader("keep"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	removed, err := store.DeleteUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}

	again, err := store.DeleteUser(ctx, "user-1")
	if err != nil || again != 0 {
		t.Fatalf("expected idempotent delete, got %d %v", again, err)
	}

	rc, err := store.Open(ctx, otherKey)
	if err != nil {
		t.Fatalf("other user's object should remain: %v", err)
	}
	rc.Close()
}

func TestDeleteRemovesSingleObject(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, _, _, err := store.Save(ctx, "user-1", "cv.txt", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, key); err == nil {
		t.Fatalf("expected object to be gone")
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("expected missing object to be ignored, got %v", err)
	}
	if err := store.Delete(ctx, "../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}
