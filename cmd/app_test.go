package cmd

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

// resetConfig drops the memoized configuration so the test environment is
// re-read, and leaves a clean slate for the next test.
func resetConfig(t *testing.T) {
	t.Helper()
	appConfig = nil
	t.Cleanup(func() { appConfig = nil })
}

func TestConfigDefaults(t *testing.T) {
	resetConfig(t)
	for _, key := range []string{
		"FARMBOOK_OWNER", "FARMBOOK_FILE", "FARMBOOK_STORE", "FARMBOOK_CURRENCY",
		"FARMBOOK_ADDR", "FARMBOOK_DEBOUNCE",
	} {
		t.Setenv(key, "")
	}

	cfg := config()
	if cfg.BookFile != "farmbook.json" {
		t.Errorf("config() BookFile = %q, want %q", cfg.BookFile, "farmbook.json")
	}
	if cfg.StoreURL != "sqlite://farmbook.db" {
		t.Errorf("config() StoreURL = %q, want %q", cfg.StoreURL, "sqlite://farmbook.db")
	}
	if cfg.Currency != "USD" {
		t.Errorf("config() Currency = %q, want %q", cfg.Currency, "USD")
	}
	if cfg.Addr != ":8080" {
		t.Errorf("config() Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.Debounce != accounting.DefaultDebounce {
		t.Errorf("config() Debounce = %v, want %v", cfg.Debounce, accounting.DefaultDebounce)
	}
}

func TestConfigFromEnv(t *testing.T) {
	resetConfig(t)
	t.Setenv("FARMBOOK_OWNER", "amadou@ferme.sn")
	t.Setenv("FARMBOOK_FILE", "books/main.json")
	t.Setenv("FARMBOOK_STORE", "https://bins.example.com/books")
	t.Setenv("FARMBOOK_CURRENCY", "XOF")
	t.Setenv("FARMBOOK_DEBOUNCE", "10s")

	cfg := config()
	if cfg.Owner != "amadou@ferme.sn" {
		t.Errorf("config() Owner = %q, want %q", cfg.Owner, "amadou@ferme.sn")
	}
	if cfg.BookFile != "books/main.json" {
		t.Errorf("config() BookFile = %q, want %q", cfg.BookFile, "books/main.json")
	}
	if cfg.StoreURL != "https://bins.example.com/books" {
		t.Errorf("config() StoreURL = %q, want %q", cfg.StoreURL, "https://bins.example.com/books")
	}
	if cfg.Currency != "XOF" {
		t.Errorf("config() Currency = %q, want %q", cfg.Currency, "XOF")
	}
	if cfg.Debounce != 10*time.Second {
		t.Errorf("config() Debounce = %v, want %v", cfg.Debounce, 10*time.Second)
	}
}

func TestConfigBadDebounce(t *testing.T) {
	resetConfig(t)
	t.Setenv("FARMBOOK_DEBOUNCE", "soon")

	if got := config().Debounce; got != accounting.DefaultDebounce {
		t.Errorf("config() Debounce = %v, want the default %v", got, accounting.DefaultDebounce)
	}
}

func TestResolve(t *testing.T) {
	b := accounting.NewBook("amadou@ferme.sn")
	b.Categories = []accounting.Category{
		{ID: "cat-1", Name: "Crop Sales", Type: accounting.Income},
		{ID: "cat-2", Name: "Feed", Type: accounting.Expense},
		{ID: "cat-3", Name: "feed", Type: accounting.Expense},
	}

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr string
	}{
		{name: "by id", ref: "cat-1", want: "cat-1"},
		{name: "by name", ref: "Crop Sales", want: "cat-1"},
		{name: "name is case-insensitive", ref: "crop sales", want: "cat-1"},
		{name: "ambiguous name", ref: "Feed", wantErr: "use the category id"},
		{name: "unknown", ref: "Vet", wantErr: `no category named "Vet"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveCategory(b, tt.ref)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("resolveCategory(%q) error = %v, want containing %q", tt.ref, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveCategory(%q) error = %v", tt.ref, err)
			}
			if got != tt.want {
				t.Errorf("resolveCategory(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestLoadBookMissingFileStartsEmpty(t *testing.T) {
	resetConfig(t)
	t.Setenv("FARMBOOK_OWNER", "amadou@ferme.sn")
	t.Setenv("FARMBOOK_FILE", filepath.Join(t.TempDir(), "farmbook.json"))

	b, err := loadBook()
	if err != nil {
		t.Fatalf("loadBook() error = %v", err)
	}
	if b.Owner != "amadou@ferme.sn" {
		t.Errorf("loadBook() Owner = %q, want the configured owner", b.Owner)
	}
	if b.Revision != 0 {
		t.Errorf("loadBook() Revision = %d, want 0", b.Revision)
	}
}

func TestSaveLoadBookRoundtrip(t *testing.T) {
	resetConfig(t)
	t.Setenv("FARMBOOK_OWNER", "amadou@ferme.sn")
	t.Setenv("FARMBOOK_FILE", filepath.Join(t.TempDir(), "books", "farmbook.json"))

	b, err := loadBook()
	if err != nil {
		t.Fatalf("loadBook() error = %v", err)
	}
	evt := accounting.NewPutCategory(accounting.MustParse("2025-03-01"), "", accounting.Category{
		Name: "Feed", Type: accounting.Expense,
	})
	if err := b.Apply(evt); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if err := saveBook(b); err != nil {
		t.Fatalf("saveBook() error = %v", err)
	}

	got, err := loadBook()
	if err != nil {
		t.Fatalf("loadBook() after save error = %v", err)
	}
	if !got.Equal(b) {
		t.Errorf("loadBook() after save differs from the saved book")
	}
}

func TestOwnerKey(t *testing.T) {
	resetConfig(t)
	t.Setenv("FARMBOOK_OWNER", "")

	if _, err := ownerKey(accounting.NewBook("")); err == nil {
		t.Error("ownerKey() on an ownerless book without FARMBOOK_OWNER, want error")
	}

	key, err := ownerKey(accounting.NewBook("amadou@ferme.sn"))
	if err != nil {
		t.Fatalf("ownerKey() error = %v", err)
	}
	if key != "amadou@ferme.sn" {
		t.Errorf("ownerKey() = %q, want the book owner", key)
	}

	resetConfig(t)
	t.Setenv("FARMBOOK_OWNER", "fallback@ferme.sn")
	key, err = ownerKey(accounting.NewBook(""))
	if err != nil {
		t.Fatalf("ownerKey() with configured owner error = %v", err)
	}
	if key != "fallback@ferme.sn" {
		t.Errorf("ownerKey() = %q, want the configured owner", key)
	}
}
