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

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the book as JSON" }
func (*exportCmd) Usage() string {
	return `fbk export [-o <file>]

  Writes the whole book as a versioned JSON document, to stdout or to a
  file. The output can be re-imported with 'fbk import'.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Destination file. Defaults to stdout.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	if err := accounting.EncodeBook(w, b); err != nil {
		fmt.Fprintln(os.Stderr, "Error encoding book:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
