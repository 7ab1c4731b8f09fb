// Package cmd implements the CLI application to keep the farm books.
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&txCmd{}, "records")
	c.Register(&accountCmd{}, "records")
	c.Register(&categoryCmd{}, "records")
	c.Register(&speciesCmd{}, "records")
	c.Register(&logCmd{}, "records")
	c.Register(&itemCmd{}, "records")
	c.Register(&moveCmd{}, "records")
	c.Register(&assetCmd{}, "records")
	c.Register(&liabilityCmd{}, "records")
	c.Register(&payCmd{}, "records")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&activityCmd{}, "reports")
	c.Register(&debtsCmd{}, "reports")
	c.Register(&mortalityCmd{}, "reports")
	c.Register(&adviseCmd{}, "reports")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")
	c.Register(&pushCmd{}, "data")
	c.Register(&pullCmd{}, "data")
	c.Register(&serveCmd{}, "data")

	c.Register(&topicCmd{}, "documentation")
}

// Config is the application configuration, read from the environment and an
// optional .env file in the working directory.
type Config struct {
	Owner    string        // FARMBOOK_OWNER, owner email, the remote bin key
	BookFile string        // FARMBOOK_FILE, the local book file
	StoreURL string        // FARMBOOK_STORE, remote store URL, scheme selects the backend
	APIKey   string        // FARMBOOK_API_KEY, access key sent to web bin stores
	Envelope string        // FARMBOOK_ENVELOPE, jsonpath to the book inside web store responses
	Currency string        // FARMBOOK_CURRENCY, currency for amounts entered on the command line
	Addr     string        // FARMBOOK_ADDR, serve listen address
	Debounce time.Duration // FARMBOOK_DEBOUNCE, quiet period before a sync push
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
var appConfig *Config

// config loads the application configuration once per run.
func config() *Config {
	if appConfig != nil {
		return appConfig
	}
	// Missing .env files are fine, configuration can come from the
	// environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Owner:    os.Getenv("FARMBOOK_OWNER"),
		BookFile: getenvWithDefault("FARMBOOK_FILE", "farmbook.json"),
		StoreURL: getenvWithDefault("FARMBOOK_STORE", "sqlite://farmbook.db"),
		APIKey:   os.Getenv("FARMBOOK_API_KEY"),
		Envelope: os.Getenv("FARMBOOK_ENVELOPE"),
		Currency: getenvWithDefault("FARMBOOK_CURRENCY", "USD"),
		Addr:     getenvWithDefault("FARMBOOK_ADDR", ":8080"),
		Debounce: accounting.DefaultDebounce,
	}
	if raw := os.Getenv("FARMBOOK_DEBOUNCE"); raw != "" {
		if d, err := time.ParseDuration(raw); err != nil {
			log.Printf("warning, ignoring bad FARMBOOK_DEBOUNCE %q: %v", raw, err)
		} else {
			cfg.Debounce = d
		}
	}
	appConfig = cfg
	return cfg
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// loadBook reads the configured book file, or starts a fresh book for the
// configured owner when there is none yet.
func loadBook() (*accounting.Book, error) {
	cfg := config()
	b, err := accounting.LoadBook(cfg.BookFile)
	if errors.Is(err, accounting.ErrNotFound) {
		log.Println("warning, book file does not exist, starting an empty book instead")
		return accounting.NewBook(cfg.Owner), nil
	}
	return b, err
}

// saveBook writes the book back to the configured book file.
func saveBook(b *accounting.Book) error {
	return accounting.SaveBook(config().BookFile, b)
}

// applyAndSave loads the book, applies the events in order, and writes the
// book back. Nothing is written when any event fails validation, so the book
// on disk never holds a partial application.
func applyAndSave(evts ...accounting.Event) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	for _, evt := range evts {
		if err := b.Apply(evt); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// ownerKey returns the remote bin key for the book: the book's owner, or the
// configured owner for books that never had one.
func ownerKey(b *accounting.Book) (string, error) {
	if b.Owner != "" {
		return b.Owner, nil
	}
	if owner := config().Owner; owner != "" {
		return owner, nil
	}
	return "", errors.New("the book has no owner, set FARMBOOK_OWNER")
}

// resolve finds the id of the entity whose id or name equals ref. Matching
// by name is case-insensitive and must be unambiguous.
func resolve[T any](kind, ref string, list []T, id, name func(T) string) (string, error) {
	for _, e := range list {
		if id(e) == ref {
			return ref, nil
		}
	}
	var hits []string
	for _, e := range list {
		if strings.EqualFold(name(e), ref) {
			hits = append(hits, id(e))
		}
	}
	switch len(hits) {
	case 1:
		return hits[0], nil
	case 0:
		return "", fmt.Errorf("no %s named %q", kind, ref)
	default:
		return "", fmt.Errorf("%d entries named %q, use the %s id", len(hits), ref, kind)
	}
}

func resolveCategory(b *accounting.Book, ref string) (string, error) {
	return resolve("category", ref, b.Categories,
		func(c accounting.Category) string { return c.ID },
		func(c accounting.Category) string { return c.Name })
}

func resolveAccount(b *accounting.Book, ref string) (string, error) {
	return resolve("account", ref, b.Accounts,
		func(a accounting.Account) string { return a.ID },
		func(a accounting.Account) string { return a.Name })
}

func resolveSpecies(b *accounting.Book, ref string) (string, error) {
	return resolve("species", ref, b.Species,
		func(s accounting.AnimalSpecies) string { return s.ID },
		func(s accounting.AnimalSpecies) string { return s.Name })
}

func resolveItem(b *accounting.Book, ref string) (string, error) {
	return resolve("item", ref, b.Items,
		func(i accounting.InventoryItem) string { return i.ID },
		func(i accounting.InventoryItem) string { return i.Name })
}

func resolveLiability(b *accounting.Book, ref string) (string, error) {
	return resolve("liability", ref, b.Liabilities,
		func(l accounting.Liability) string { return l.ID },
		func(l accounting.Liability) string { return l.Name })
}
