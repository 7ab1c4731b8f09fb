package sqlitestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

func TestStorePushPull(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "books.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	key := "jane@farm.example"

	if _, err := s.Pull(ctx, key); !errors.Is(err, accounting.ErrNotFound) {
		t.Errorf("Pull(empty store) = %v, want ErrNotFound", err)
	}

	book := []byte(`{"owner":"jane@farm.example","revision":1}`)
	if err := s.Push(ctx, key, book); err != nil {
		t.Fatalf("Push: %v", err)
	}
	got, err := s.Pull(ctx, key)
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if string(got) != string(book) {
		t.Errorf("Pull = %s, want %s", got, book)
	}
}

func TestStorePushReplaces(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "books.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	key := "jane@farm.example"
	if err := s.Push(ctx, key, []byte(`{"revision":1}`)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := s.Push(ctx, key, []byte(`{"revision":2}`)); err != nil {
		t.Fatalf("Push again: %v", err)
	}

	got, err := s.Pull(ctx, key)
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if want := `{"revision":2}`; string(got) != want {
		t.Errorf("Pull = %s, want %s", got, want)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "books.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Push(ctx, "k", []byte(`{"revision":9}`)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Pull(ctx, "k")
	if err != nil {
		t.Fatalf("Pull after reopen: %v", err)
	}
	if want := `{"revision":9}`; string(got) != want {
		t.Errorf("Pull after reopen = %s, want %s", got, want)
	}
}

func TestStoreKeysAreIndependent(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "books.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Push(ctx, "a@farm.example", []byte(`{"owner":"a"}`)); err != nil {
		t.Fatalf("Push a: %v", err)
	}
	if err := s.Push(ctx, "b@farm.example", []byte(`{"owner":"b"}`)); err != nil {
		t.Fatalf("Push b: %v", err)
	}

	got, err := s.Pull(ctx, "a@farm.example")
	if err != nil {
		t.Fatalf("Pull a: %v", err)
	}
	if want := `{"owner":"a"}`; string(got) != want {
		t.Errorf("Pull a = %s, want %s", got, want)
	}
}
