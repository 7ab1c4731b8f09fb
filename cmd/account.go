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

type accountCmd struct{}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "manage money accounts" }
func (*accountCmd) Usage() string {
	return `fbk account <add|list> [flags]

  Manages the accounts money moves through: bank accounts, the cash box,
  credit lines.
`
}
func (*accountCmd) SetFlags(_ *flag.FlagSet) {}

func (c *accountCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cdr := subcommands.NewCommander(f, "account")
	cdr.Register(&accountAddCmd{}, "")
	cdr.Register(&accountListCmd{}, "")
	return cdr.Execute(ctx, args...)
}

type accountAddCmd struct {
	name    string
	typ     string
	balance string
	memo    string
}

func (*accountAddCmd) Name() string     { return "add" }
func (*accountAddCmd) Synopsis() string { return "add a money account" }
func (*accountAddCmd) Usage() string {
	return `fbk account add -name <name> -type <checking|savings|cash|credit> [-balance <amount>] [-m <memo>]

  Adds an account. The initial balance is what the account held before the
  first recorded transaction.
`
}

func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name (e.g., 'Cash Box')")
	f.StringVar(&c.typ, "type", "", "Account type: checking, savings, cash or credit")
	f.StringVar(&c.balance, "balance", "0", "Initial balance, in the configured currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *accountAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.typ == "" {
		fmt.Fprintln(os.Stderr, "Error: -name and -type flags are required.")
		return subcommands.ExitUsageError
	}
	typ, err := accounting.ParseAccountType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	balance, err := parseMoney(c.balance)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	evt := accounting.NewPutAccount(accounting.Today(), c.memo, accounting.Account{
		Name:           c.name,
		Type:           typ,
		InitialBalance: balance,
	})
	if status := applyAndSave(evt); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Added account %q (%s) with initial balance %s.\n", c.name, typ, balance)
	return subcommands.ExitSuccess
}

type accountListCmd struct {
	date string
}

func (*accountListCmd) Name() string     { return "list" }
func (*accountListCmd) Synopsis() string { return "list accounts with balances" }
func (*accountListCmd) Usage() string {
	return `fbk account list [-d <date>]

  Lists all accounts with their balance as of the given date.
`
}

func (c *accountListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", accounting.Today().String(), "Date for the balances (YYYY-MM-DD)")
}

func (c *accountListCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.AccountsMarkdown(b, on))
	return subcommands.ExitSuccess
}
