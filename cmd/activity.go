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

// activityCmd holds the flags for the 'activity' subcommand.
type activityCmd struct {
	start  string
	end    string
	period string
}

func (*activityCmd) Name() string     { return "activity" }
func (*activityCmd) Synopsis() string { return "display everything recorded over a period" }
func (*activityCmd) Usage() string {
	return `fbk activity [-s <date>] [-d <date>] [-p <period>]

  Displays the transactions, animal logs and stock movements recorded
  between two dates, newest first. With -p, covers the calendar period
  containing the end date, so 'fbk activity -p week' shows this week.
`
}

func (c *activityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date, defaults to 90 days before the end date")
	f.StringVar(&c.end, "d", accounting.Today().String(), "End date (YYYY-MM-DD)")
	f.StringVar(&c.period, "p", "", "Calendar period containing the end date (week, month, quarter, year)")
}

func (c *activityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, status := parseRange(c.start, c.end, c.period)
	if status != subcommands.ExitSuccess {
		return status
	}

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ActivityMarkdown(b, r))
	return subcommands.ExitSuccess
}
