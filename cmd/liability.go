package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/bumlambs-max/Accounting-2.0/renderer"
	"github.com/google/subcommands"
)

type liabilityCmd struct{}

func (*liabilityCmd) Name() string     { return "liability" }
func (*liabilityCmd) Synopsis() string { return "manage debts and loans" }
func (*liabilityCmd) Usage() string {
	return `fbk liability <add|list> [flags]

  Manages the debt register. Payments go through 'fbk pay' so the balance
  and the expense side always move together.
`
}
func (*liabilityCmd) SetFlags(_ *flag.FlagSet) {}

func (c *liabilityCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cdr := subcommands.NewCommander(f, "liability")
	cdr.Register(&liabilityAddCmd{}, "")
	cdr.Register(&liabilityListCmd{}, "")
	return cdr.Execute(ctx, args...)
}

type liabilityAddCmd struct {
	name        string
	category    string
	amount      string
	balance     string
	rate        string
	due         string
	installment string
	frequency   string
	description string
	memo        string
}

func (*liabilityAddCmd) Name() string     { return "add" }
func (*liabilityAddCmd) Synopsis() string { return "add a debt or loan" }
func (*liabilityAddCmd) Usage() string {
	return `fbk liability add -name <name> -amount <original> [-balance <current>] [-rate <percent>] [-due <date>] [-installment <amount>] [-freq <weekly|monthly|quarterly|yearly>] [-cat <category>] [-desc <text>] [-m <memo>]

  Adds a liability. The current balance defaults to the original amount.
`
}

func (c *liabilityAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Liability name (e.g., 'Tractor Loan')")
	f.StringVar(&c.category, "cat", "", "Free form category (e.g., 'Equipment Loan')")
	f.StringVar(&c.amount, "amount", "", "Original amount, in the configured currency")
	f.StringVar(&c.balance, "balance", "", "Current balance, defaults to the original amount")
	f.StringVar(&c.rate, "rate", "0", "Yearly interest rate in percent (e.g., 12.5)")
	f.StringVar(&c.due, "due", "", "Next due date (YYYY-MM-DD)")
	f.StringVar(&c.installment, "installment", "0", "Installment amount per payment")
	f.StringVar(&c.frequency, "freq", "", "Payment frequency: weekly, monthly, quarterly or yearly")
	f.StringVar(&c.description, "desc", "", "Liability description")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *liabilityAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -name and -amount flags are required.")
		return subcommands.ExitUsageError
	}
	amount, err := parseMoney(c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	balance := amount
	if c.balance != "" {
		if balance, err = parseMoney(c.balance); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
	}
	rate, err := strconv.ParseFloat(c.rate, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: rate %q is not a number\n", c.rate)
		return subcommands.ExitUsageError
	}
	installment, err := parseMoney(c.installment)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	var due accounting.Date
	if c.due != "" {
		if due, err = accounting.ParseDate(c.due); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing due date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	var frequency accounting.PaymentFrequency
	if c.frequency != "" {
		if frequency, err = accounting.ParsePaymentFrequency(c.frequency); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
	}

	evt := accounting.NewPutLiability(accounting.Today(), c.memo, accounting.Liability{
		Name:              c.name,
		Category:          c.category,
		OriginalAmount:    amount,
		CurrentBalance:    balance,
		InterestRate:      accounting.Percent(rate),
		DueDate:           due,
		InstallmentAmount: installment,
		PaymentFrequency:  frequency,
		Description:       c.description,
	})
	if status := applyAndSave(evt); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Added liability %q with balance %s.\n", c.name, balance)
	return subcommands.ExitSuccess
}

type liabilityListCmd struct {
	date string
}

func (*liabilityListCmd) Name() string     { return "list" }
func (*liabilityListCmd) Synopsis() string { return "list liabilities with due statuses" }
func (*liabilityListCmd) Usage() string {
	return `fbk liability list [-d <date>]

  Lists all liabilities with balances and due statuses as of the given date.
`
}

func (c *liabilityListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", accounting.Today().String(), "Date for the due statuses (YYYY-MM-DD)")
}

func (c *liabilityListCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.LiabilitiesMarkdown(b, on))
	return subcommands.ExitSuccess
}
