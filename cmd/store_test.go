package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

func TestOpenStoreSqliteRoundtrip(t *testing.T) {
	resetConfig(t)
	path := filepath.Join(t.TempDir(), "farmbook.db")
	t.Setenv("FARMBOOK_STORE", "sqlite://"+path)

	ctx := context.Background()
	store, cleanup, err := openStore(ctx)
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	defer cleanup()

	key := "amadou@ferme.sn"
	if _, err := store.Pull(ctx, key); !errors.Is(err, accounting.ErrNotFound) {
		t.Fatalf("Pull() before any push error = %v, want ErrNotFound", err)
	}
	if err := store.Push(ctx, key, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	got, err := store.Pull(ctx, key)
	if err != nil {
		t.Fatalf("Pull() error = %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("Pull() = %s, want the pushed payload", got)
	}
}

func TestOpenStoreSchemes(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "web", url: "https://bins.example.com/books"},
		{name: "s3", url: "s3://farm-books/prod?region=eu-west-1"},
		{name: "unknown scheme", url: "ftp://example.com/books", wantErr: "unknown scheme"},
		{name: "garbled", url: "://books", wantErr: "store URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetConfig(t)
			t.Setenv("FARMBOOK_STORE", tt.url)

			store, cleanup, err := openStore(context.Background())
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("openStore() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("openStore() error = %v", err)
			}
			defer cleanup()
			if store == nil {
				t.Error("openStore() returned a nil store")
			}
		})
	}
}
