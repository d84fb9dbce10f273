package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/martijn/garage/internal/core/repository"
)

func TestStoreSaveAndOpen(t *testing.T) {
	ctx := context.Background()
	store, err := New(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := store.Save(ctx, "01J9Z.pdf", []byte("first"), "application/pdf"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "01J9Z.pdf", []byte("second"), "application/pdf"); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	rc, err := store.Open(ctx, "01J9Z.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	if string(data) != "second" {
		t.Errorf("expected %q, got %q", "second", data)
	}

	entries, _ := os.ReadDir(store.Dir())
	if len(entries) != 1 {
		t.Errorf("expected only the stored file, found %d entries", len(entries))
	}
}

func TestStoreOpenMissing(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = store.Open(context.Background(), "missing.pdf")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreRejectsUnsafeNames(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, name := range []string{"", "../escape.pdf", "sub/file.pdf", ".hidden"} {
		if err := store.Save(context.Background(), name, []byte("x"), "application/pdf"); err == nil {
			t.Errorf("expected an error for name %q", name)
		}
	}
}
