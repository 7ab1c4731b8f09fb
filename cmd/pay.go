package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/google/subcommands"
)

type payCmd struct {
	liability string
	amount    string
	category  string
	account   string
	date      string
	memo      string
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "pay an installment on a liability" }
func (*payCmd) Usage() string {
	return `fbk pay -l <liability> -a <amount> -c <category> -acc <account> [-d <date>] [-m <memo>]

  Records a payment: the liability balance goes down and a matching expense
  is booked against the account, in one step. An amount above the open
  balance is capped to it.
`
}

func (c *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.liability, "l", "", "Liability id or name")
	f.StringVar(&c.amount, "a", "", "Payment amount, in the configured currency")
	f.StringVar(&c.category, "c", "", "Expense category id or name to book the payment against")
	f.StringVar(&c.account, "acc", "", "Account id or name the payment comes from")
	f.StringVar(&c.date, "d", accounting.Today().String(), "Payment date (YYYY-MM-DD)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *payCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.liability == "" || c.amount == "" || c.category == "" || c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -l, -a, -c, and -acc flags are all required.")
		return subcommands.ExitUsageError
	}
	amount, err := parseMoney(c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	day, err := accounting.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	liability, err := resolveLiability(b, c.liability)
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

	// The model caps a payment at the open balance, so report what was
	// actually paid rather than what was asked.
	if open := b.Liability(liability).CurrentBalance; amount.GreaterThan(open) {
		amount = open
	}

	evt := accounting.NewRecordPayment(day, c.memo, liability, amount, category, account)
	if err := b.Apply(evt); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	l := b.Liability(liability)
	fmt.Printf("Paid %s towards %q, balance now %s.\n", amount, l.Name, l.CurrentBalance)
	return subcommands.ExitSuccess
}
