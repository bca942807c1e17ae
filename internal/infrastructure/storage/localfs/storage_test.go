package localfs

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	key, err := storage.Save(context.Background(), "memo.pdf", strings.NewReader("%PDF-1.7 payload"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if key == "" || !strings.HasSuffix(key, "_memo.pdf") {
		t.Fatalf("key = %q, want generated prefix plus original name", key)
	}

	f, err := storage.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.7 payload" {
		t.Fatalf("content = %q", data)
	}
}

func TestSaveUniqueKeysForSameName(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	first, _ := storage.Save(context.Background(), "scan.pdf", strings.NewReader("a"))
	second, _ := storage.Save(context.Background(), "scan.pdf", strings.NewReader("b"))
	if first == second {
		t.Fatalf("expected distinct keys, both were %q", first)
	}
}

func TestOpenMissingFile(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := storage.Open(context.Background(), "nope.pdf"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
