package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a book from JSON" }
func (*importCmd) Usage() string {
	return `fbk import -i <file>

  Reads a JSON export and replaces the local book with it. Use '-' to
  read from stdin.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Source file, or '-' for stdin")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		fmt.Fprintln(os.Stderr, "Error: -i flag is required.")
		return subcommands.ExitUsageError
	}

	var r io.Reader = os.Stdin
	if c.input != "-" {
		file, err := os.Open(c.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.input, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	b, err := accounting.DecodeBook(r)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error decoding book:", err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported book for %q with %d transactions.\n", b.Owner, len(b.Transactions))
	return subcommands.ExitSuccess
}
