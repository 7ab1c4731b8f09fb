package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/bumlambs-max/Accounting-2.0/renderer"
	"github.com/google/subcommands"
)

// debtsCmd holds the flags for the 'debts' subcommand.
type debtsCmd struct {
	date string
}

func (*debtsCmd) Name() string     { return "debts" }
func (*debtsCmd) Synopsis() string { return "display outstanding debts and upcoming payments" }
func (*debtsCmd) Usage() string {
	return `fbk debts [-d <date>]

  Displays every open liability with its balance and due status, and the
  installments falling due within 30 days of the date.
`
}

func (c *debtsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", accounting.Today().String(), "Date to assess due status on.")
}

func (c *debtsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := accounting.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.DebtsMarkdown(b, on))
	return subcommands.ExitSuccess
}
