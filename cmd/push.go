package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/google/subcommands"
)

type pushCmd struct{}

func (*pushCmd) Name() string     { return "push" }
func (*pushCmd) Synopsis() string { return "push the local book to the remote store" }
func (*pushCmd) Usage() string {
	return `fbk push

  Uploads the local book to the store configured in FARMBOOK_STORE,
  keyed by the book owner. The whole book replaces the remote copy.
`
}

func (c *pushCmd) SetFlags(f *flag.FlagSet) {}

func (c *pushCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// Pushing an empty fallback book would wipe the remote copy, so the
	// file has to exist here.
	b, err := accounting.LoadBook(config().BookFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	key, err := ownerKey(b)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	store, cleanup, err := openStore(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	var buf bytes.Buffer
	if err := accounting.EncodeBook(&buf, b); err != nil {
		fmt.Fprintln(os.Stderr, "Error encoding book:", err)
		return subcommands.ExitFailure
	}
	if err := store.Push(ctx, key, buf.Bytes()); err != nil {
		fmt.Fprintln(os.Stderr, "Error pushing book:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Pushed book revision %d for %s.\n", b.Revision, key)
	return subcommands.ExitSuccess
}
