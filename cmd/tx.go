package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/bumlambs-max/Accounting-2.0/renderer"
	"github.com/google/subcommands"
)

type txCmd struct{}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "record, list and delete money transactions" }
func (*txCmd) Usage() string {
	return `fbk tx <add|list|del> [flags]

  Manages the money transactions of the book. See 'fbk tx add -h',
  'fbk tx list -h' and 'fbk tx del -h' for details.
`
}
func (*txCmd) SetFlags(_ *flag.FlagSet) {}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cdr := subcommands.NewCommander(f, "tx")
	cdr.Register(&txAddCmd{}, "")
	cdr.Register(&txListCmd{}, "")
	cdr.Register(&txDelCmd{}, "")
	return cdr.Execute(ctx, args...)
}

type txAddCmd struct {
	amount      string
	category    string
	account     string
	date        string
	description string
	memo        string
}

func (*txAddCmd) Name() string     { return "add" }
func (*txAddCmd) Synopsis() string { return "record a money transaction" }
func (*txAddCmd) Usage() string {
	return `fbk tx add -a <amount> -c <category> -acc <account> [-d <date>] [-desc <text>] [-m <memo>]

  Records an income or expense. The entry type comes from the category: a
  transaction in an expense category is an expense. Category and account
  accept an id or a name.
`
}

func (c *txAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount (e.g., 125.50), in the configured currency")
	f.StringVar(&c.category, "c", "", "Category id or name")
	f.StringVar(&c.account, "acc", "", "Account id or name")
	f.StringVar(&c.date, "d", accounting.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.description, "desc", "", "What the money was for")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *txAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" || c.category == "" || c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a, -c, and -acc flags are all required.")
		return subcommands.ExitUsageError
	}
	day, err := accounting.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := parseMoney(c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	category, err := resolveCategory(b, c.category)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	account, err := resolveAccount(b, c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	cat := b.Category(category)

	tx := accounting.Transaction{
		Date:        day,
		Description: c.description,
		Amount:      amount,
		Category:    category,
		Account:     account,
		Type:        cat.Type,
	}
	if err := b.Apply(accounting.NewPutTransaction(day, c.memo, tx)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s of %s (%s) on %s.\n", strings.ToLower(string(cat.Type)), amount, cat.Name, day)
	return subcommands.ExitSuccess
}

type txListCmd struct {
	start  string
	end    string
	period string
}

func (*txListCmd) Name() string     { return "list" }
func (*txListCmd) Synopsis() string { return "list transactions with their ids" }
func (*txListCmd) Usage() string {
	return `fbk tx list [-s <start_date>] [-d <end_date>] [-p <period>]

  Lists transactions in the range, newest first. Defaults to the last 90
  days. With -p, lists the calendar period containing the end date, so
  'fbk tx list -p month' covers the current month.
`
}

func (c *txListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date, defaults to 90 days before the end date")
	f.StringVar(&c.end, "d", accounting.Today().String(), "End date (YYYY-MM-DD)")
	f.StringVar(&c.period, "p", "", "Calendar period containing the end date (week, month, quarter, year)")
}

func (c *txListCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, status := parseRange(c.start, c.end, c.period)
	if status != subcommands.ExitSuccess {
		return status
	}
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TransactionsMarkdown(b, r))
	return subcommands.ExitSuccess
}

type txDelCmd struct {
	id   string
	memo string
}

func (*txDelCmd) Name() string     { return "del" }
func (*txDelCmd) Synopsis() string { return "delete a transaction by id" }
func (*txDelCmd) Usage() string {
	return `fbk tx del -id <transaction-id> [-m <memo>]

  Deletes one transaction. Use 'fbk tx list' to find the id.
`
}

func (c *txDelCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to delete")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *txDelCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id flag is required.")
		return subcommands.ExitUsageError
	}
	evt := accounting.NewDeleteTransaction(accounting.Today(), c.memo, c.id)
	if status := applyAndSave(evt); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Deleted transaction %s.\n", c.id)
	return subcommands.ExitSuccess
}

// parseRange turns the -s, -d and -p flags into a date range. A period selects
// the calendar period containing the end date; otherwise the start defaults to
// 90 days before the end.
func parseRange(start, end, period string) (accounting.Range, subcommands.ExitStatus) {
	to, err := accounting.ParseDate(end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return accounting.Range{}, subcommands.ExitUsageError
	}
	if period != "" {
		if start != "" {
			fmt.Fprintln(os.Stderr, "Error: -s and -p cannot be combined.")
			return accounting.Range{}, subcommands.ExitUsageError
		}
		p, err := accounting.ParsePeriod(period)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return accounting.Range{}, subcommands.ExitUsageError
		}
		return p.Range(to), subcommands.ExitSuccess
	}
	from := to.Add(-90)
	if start != "" {
		from, err = accounting.ParseDate(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return accounting.Range{}, subcommands.ExitUsageError
		}
	}
	return accounting.NewRange(from, to), subcommands.ExitSuccess
}
