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

// mortalityCmd holds the flags for the 'mortality' subcommand.
type mortalityCmd struct {
	date     string
	lookback int
	species  string
}

func (*mortalityCmd) Name() string     { return "mortality" }
func (*mortalityCmd) Synopsis() string { return "display death counts per species" }
func (*mortalityCmd) Usage() string {
	return `fbk mortality [-d <date>] [-lookback <days>] [-s <species>]

  Displays recorded deaths per species, total and over the lookback
  window ending on the date.
`
}

func (c *mortalityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", accounting.Today().String(), "End of the lookback window.")
	f.IntVar(&c.lookback, "lookback", 90, "Window length in days.")
	f.StringVar(&c.species, "s", "", "Only count species whose name contains this.")
}

func (c *mortalityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.MortalityMarkdown(b, on, c.lookback, c.species))
	return subcommands.ExitSuccess
}
