package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/google/subcommands"
)

type pullCmd struct{}

func (*pullCmd) Name() string     { return "pull" }
func (*pullCmd) Synopsis() string { return "pull the book from the remote store" }
func (*pullCmd) Usage() string {
	return `fbk pull

  Downloads the book from the store configured in FARMBOOK_STORE and
  replaces the local file with it.
`
}

func (c *pullCmd) SetFlags(f *flag.FlagSet) {}

func (c *pullCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := config()

	// The local file may not exist yet, the owner alone is enough to pull.
	key := cfg.Owner
	if b, err := accounting.LoadBook(cfg.BookFile); err == nil {
		if key, err = ownerKey(b); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: the book has no owner, set FARMBOOK_OWNER.")
		return subcommands.ExitFailure
	}

	store, cleanup, err := openStore(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	data, err := store.Pull(ctx, key)
	if errors.Is(err, accounting.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no remote book for %q yet, push one first.\n", key)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error pulling book:", err)
		return subcommands.ExitFailure
	}

	b, err := accounting.DecodeBook(bytes.NewReader(data))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error decoding book:", err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Pulled book revision %d for %s.\n", b.Revision, key)
	return subcommands.ExitSuccess
}
